// Package jwt issues and verifies the HS256 access and refresh tokens used by staff sessions.
package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/shared/constant"
	"frontdesk/shared/role"
	"frontdesk/shared/timezone"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingToken = errors.New("authorization header must carry a bearer token")
)

const (
	otelScopeName = "jwt"
	bearer        = "Bearer"
	leeway        = 30 * time.Second
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims carries the staff identity. Role is the primary role kept for older clients,
// Roles every role granted. The token id is RegisteredClaims.ID.
type Claims struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role,omitempty"`
	Roles  []string  `json:"roles,omitempty"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Granted merges the scalar and list role claims.
func (c *Claims) Granted() role.Set {
	return role.New(c.Role).Union(role.New(c.Roles...))
}

type Subject struct {
	UserID string
	Email  string
	Role   string
	Roles  role.Set
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(ctx context.Context, subject Subject) (*TokenPair, error)
	ValidateToken(ctx context.Context, token string, tokenType TokenType) (*Claims, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type signer struct {
	cfg  *config.Config
	otel otel.Otel
	now  func() time.Time
}

func New(cfg *config.Config, otel otel.Otel) JWT {
	return &signer{cfg: cfg, otel: otel, now: timezone.Now}
}

func (s *signer) GenerateTokenPair(ctx context.Context, subject Subject) (_ *TokenPair, err error) {
	_, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".GenerateTokenPair")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.now()
	pair := &TokenPair{
		TokenType: bearer,
		ExpiresIn: int64(s.cfg.JWT.AccessExpireMin * constant.MinutesToSeconds),
	}

	if pair.AccessToken, err = s.sign(subject, AccessToken, now); err != nil {
		return nil, err
	}

	if pair.RefreshToken, err = s.sign(subject, RefreshToken, now); err != nil {
		return nil, err
	}

	return pair, nil
}

// settings returns the signing key and lifetime for a token type.
func (s *signer) settings(tokenType TokenType) ([]byte, time.Duration, error) {
	switch tokenType {
	case AccessToken:
		return []byte(s.cfg.JWT.AccessSecret), time.Duration(s.cfg.JWT.AccessExpireMin) * time.Minute, nil
	case RefreshToken:
		return []byte(s.cfg.JWT.RefreshSecret), time.Duration(s.cfg.JWT.RefreshExpireMin) * time.Minute, nil
	default:
		return nil, 0, fmt.Errorf("unknown token type %q", tokenType)
	}
}

func (s *signer) sign(subject Subject, tokenType TokenType, issuedAt time.Time) (string, error) {
	key, ttl, err := s.settings(tokenType)
	if err != nil {
		return "", err
	}

	claims := Claims{
		UserID: subject.UserID,
		Email:  subject.Email,
		Role:   subject.Role,
		Roles:  subject.Roles.Slice(),
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.cfg.App.Name,
			Subject:   subject.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return signed, nil
}

func (s *signer) ValidateToken(ctx context.Context, token string, tokenType TokenType) (_ *Claims, err error) {
	_, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".ValidateToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key, _, err := s.settings(tokenType)
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.App.Name),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	if _, err = parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return key, nil }); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

func (s *signer) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(ctx, refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return s.GenerateTokenPair(ctx, Subject{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		Roles:  claims.Granted(),
	})
}

// ExtractTokenFromHeader returns the token of a "Bearer <token>" Authorization value.
func ExtractTokenFromHeader(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, bearer) || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}

	return strings.TrimSpace(token), nil
}
