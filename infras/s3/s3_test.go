package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
)

type fakeAPI struct {
	put     *s3.PutObjectInput
	body    string
	deleted []string
	err     error
}

func (f *fakeAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	data, _ := io.ReadAll(in.Body)
	f.put, f.body = in, string(data)

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.deleted = append(f.deleted, aws.ToString(in.Key))

	return &s3.DeleteObjectOutput{}, nil
}

func newTestBucket(api objectAPI) *bucket {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "frontdesk"
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"

	return newBucket(api, cfg, mocks.NewOtel())
}

func TestBucket_Upload(t *testing.T) {
	api := &fakeAPI{}
	b := newTestBucket(api)

	url, err := b.Upload(context.Background(), "room/a.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/room/a.png", url)
	assert.Equal(t, "frontdesk", aws.ToString(api.put.Bucket))
	assert.Equal(t, "room/a.png", aws.ToString(api.put.Key))
	assert.Equal(t, "image/png", aws.ToString(api.put.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(api.put.ContentLength))
	assert.Equal(t, "png", api.body)
}

func TestBucket_UploadError(t *testing.T) {
	b := newTestBucket(&fakeAPI{err: errors.New("access denied")})

	_, err := b.Upload(context.Background(), "room/a.png", strings.NewReader("png"), 3, "")
	assert.ErrorContains(t, err, "failed to upload room/a.png")
}

func TestBucket_Delete(t *testing.T) {
	api := &fakeAPI{}

	require.NoError(t, newTestBucket(api).Delete(context.Background(), "room/a.png"))
	assert.Equal(t, []string{"room/a.png"}, api.deleted)
}

func TestBucket_KeyFromURL(t *testing.T) {
	b := newTestBucket(&fakeAPI{})

	tests := []struct {
		url    string
		key    string
		wantOK bool
	}{
		{url: "https://cdn.example.com/room/a.png", key: "room/a.png", wantOK: true},
		{url: "https://s3.example.com/frontdesk/room/b.jpg", key: "room/b.jpg", wantOK: true},
		{url: "https://elsewhere.example.com/room/a.png"},
		{url: "https://cdn.example.com/"},
		{url: ""},
	}

	for _, tt := range tests {
		key, ok := b.KeyFromURL(tt.url)
		assert.Equal(t, tt.wantOK, ok, tt.url)
		assert.Equal(t, tt.key, key, tt.url)
	}
}
