// Package s3 stores room images in an S3 compatible bucket and serves them from a public domain.
package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks -exclude_interfaces=objectAPI

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/shared/constant"
)

const (
	otelAttrKey    = "object_key"
	otelAttrBucket = "bucket"
	region         = "auto"
)

type S3 interface {
	// Upload stores body under key and returns its public URL.
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL reverses Upload. It reports false for URLs outside the bucket.
	KeyFromURL(url string) (key string, ok bool)
}

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type bucket struct {
	api          objectAPI
	name         string
	publicDomain string
	apiEndpoint  string
	otel         otel.Otel
}

func (b *bucket) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (url string, err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{otelAttrKey: key, otelAttrBucket: b.name})

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
		Body:   body,
	}

	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err = b.api.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return b.publicDomain + "/" + key, nil
}

func (b *bucket) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{otelAttrKey: key, otelAttrBucket: b.name})

	if _, err = b.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

func (b *bucket) KeyFromURL(url string) (string, bool) {
	prefixes := []string{b.publicDomain + "/", b.apiEndpoint + "/" + b.name + "/"}

	for _, prefix := range prefixes {
		if prefix == "/" {
			continue
		}

		if key, ok := strings.CutPrefix(url, prefix); ok && key != "" {
			return key, true
		}
	}

	return "", false
}

func New(cfg *config.Config, otel otel.Otel) (S3, error) {
	settings := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if settings.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(settings.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return newBucket(client, cfg, otel), nil
}

func newBucket(api objectAPI, cfg *config.Config, otel otel.Otel) *bucket {
	settings := cfg.External.S3

	return &bucket{
		api:          api,
		name:         settings.BucketName,
		publicDomain: strings.TrimSuffix(settings.PublicDomain, "/"),
		apiEndpoint:  strings.TrimSuffix(settings.APIEndpoint, "/"),
		otel:         otel,
	}
}
