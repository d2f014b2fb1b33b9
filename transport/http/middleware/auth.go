package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"frontdesk/config"
	"frontdesk/infras/jwt"
	"frontdesk/infras/otel"
	"frontdesk/permissions"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/shared/role"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func findRoute(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	if path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); path != "" {
		return path
	}

	return request.URL.Path
}

func tokenFailure(err error) error {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return failure.Unauthorized("Token has expired")
	case errors.Is(err, jwt.ErrInvalidToken):
		return failure.Unauthorized("Invalid token")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return failure.Unauthorized("Invalid token claims")
	default:
		return failure.Unauthorized("Token validation failed")
	}
}

// authenticate resolves the caller of a request from its bearer access token.
func (m *authRoleImpl) authenticate(request *http.Request) (*jwt.Claims, error) {
	token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
	if err != nil {
		return nil, failure.Unauthorized("Missing or malformed authorization header")
	}

	claims, err := m.jwtService.ValidateToken(request.Context(), token, jwt.AccessToken)
	if err != nil {
		return nil, tokenFailure(err)
	}

	if claims.UserID == constant.Empty || claims.Email == constant.Empty {
		log.Error().Str("token_id", claims.ID).Msg("access token without user id or email")

		return nil, failure.Unauthorized("Invalid token claims")
	}

	return claims, nil
}

func reject(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(writer, err)
}

// Auth stores the caller identity in the request context.
// The granted roles are stored as a role.Set under ContextKeyUserRoles.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       findRoute(request),
			"http.method":     request.Method,
		})

		claims, err := m.authenticate(request)
		if err != nil {
			reject(writer, scope, err)

			return
		}

		granted := claims.Granted()
		scope.SetAttribute("user.roles", granted.String())

		for key, value := range map[constant.ContextKey]any{
			constant.ContextKeyUserID:    claims.UserID,
			constant.ContextKeyUserEmail: claims.Email,
			constant.ContextKeyUserRole:  claims.Role,
			constant.ContextKeyUserRoles: granted,
			constant.ContextKeyTokenID:   claims.ID,
		} {
			ctx = context.WithValue(ctx, key, value)
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the caller's roles against the permission table.
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if m.permission == nil {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		path := findRoute(request)
		permission := m.permission.FindPermissions(path, request.Method)
		granted, _ := ctx.Value(constant.ContextKeyUserRoles).(role.Set)

		if !permission.Allows(granted) {
			scope.SetAttributes(map[string]any{
				"user_roles":    granted.String(),
				"allowed_roles": permission.Roles.String(),
				"http.route":    path,
			})
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey authenticates the automation bot. Requests act as the bot user.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if m.cfg.App.APIKey == constant.Empty || apiKey == constant.Empty {
			reject(writer, scope, failure.Unauthorized("Missing API key"))

			return
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		scope.SetAttribute("http.source", constant.ContextBot)

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextBot)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRoles, role.New())

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
