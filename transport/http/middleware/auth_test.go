package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/jwt"
	jwtMocks "frontdesk/infras/jwt/mocks"
	"frontdesk/infras/otel/mocks"
	"frontdesk/permissions"
	"frontdesk/shared/constant"
	"frontdesk/shared/role"
	"frontdesk/transport/http/middleware"
)

const table = `{
	"endpoints": [
		{"path": "/v1/users/{id}", "method": "GET", "roles": ["admin"]},
		{"path": "/v1/rooms", "method": "GET", "roles": ["housekeeping", "front-office"]}
	]
}`

type captured struct {
	userID string
	roles  role.Set
}

func setup(t *testing.T) (*jwtMocks.MockJWT, http.Handler, *captured) {
	ctrl := gomock.NewController(t)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	perms, err := permissions.Decode([]byte(table))
	assert.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "bot-secret"

	m := middleware.NewAuthRoleMiddleware(mockJWT, mocks.NewOtel(), perms, cfg)
	seen := &captured{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.userID, _ = r.Context().Value(constant.ContextKeyUserID).(string)
		seen.roles, _ = r.Context().Value(constant.ContextKeyUserRoles).(role.Set)
		w.WriteHeader(http.StatusNoContent)
	})

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(m.Auth, m.RBAC)
			r.Get("/users/{id}", handler)
			r.Get("/rooms", handler)
		})
		r.Group(func(r chi.Router) {
			r.Use(m.APIKey)
			r.Post("/webhooks/orders", handler)
		})
	})

	return mockJWT, router, seen
}

func serve(router http.Handler, method, path string, headers map[string]string) int {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec.Code
}

func bearer(token string) map[string]string {
	return map[string]string{constant.RequestHeaderAuthorization: "Bearer " + token}
}

func TestAuth(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		_, router, _ := setup(t)

		assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/v1/rooms", nil))
	})

	t.Run("expired token", func(t *testing.T) {
		mockJWT, router, _ := setup(t)

		mockJWT.EXPECT().ValidateToken(gomock.Any(), "expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

		assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/v1/rooms", bearer("expired")))
	})

	t.Run("claims without user", func(t *testing.T) {
		mockJWT, router, _ := setup(t)

		mockJWT.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(&jwt.Claims{Email: "a@hotel.test"}, nil)

		assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/v1/rooms", bearer("token")))
	})

	t.Run("scalar and list role claims are merged", func(t *testing.T) {
		mockJWT, router, seen := setup(t)

		mockJWT.EXPECT().
			ValidateToken(gomock.Any(), "token", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "U1", Email: "a@hotel.test", Role: "Manager", Roles: []string{"front-office"}}, nil)

		assert.Equal(t, http.StatusNoContent, serve(router, http.MethodGet, "/v1/rooms", bearer("token")))
		assert.Equal(t, "U1", seen.userID)
		assert.Equal(t, []string{"front-office", "manager"}, seen.roles.Slice())
	})
}

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		claims   jwt.Claims
		path     string
		wantCode int
	}{
		{
			name:     "admin only route denied to manager",
			claims:   jwt.Claims{UserID: "U1", Email: "m@hotel.test", Role: "manager"},
			path:     "/v1/users/U2",
			wantCode: http.StatusForbidden,
		},
		{
			name:     "additional role grants access",
			claims:   jwt.Claims{UserID: "U1", Email: "m@hotel.test", Role: "manager", Roles: []string{"admin"}},
			path:     "/v1/users/U2",
			wantCode: http.StatusNoContent,
		},
		{
			name:     "housekeeping lists rooms",
			claims:   jwt.Claims{UserID: "U3", Email: "h@hotel.test", Roles: []string{"housekeeping"}},
			path:     "/v1/rooms",
			wantCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockJWT, router, _ := setup(t)

			claims := tt.claims
			mockJWT.EXPECT().ValidateToken(gomock.Any(), "token", jwt.AccessToken).Return(&claims, nil)

			assert.Equal(t, tt.wantCode, serve(router, http.MethodGet, tt.path, bearer("token")))
		})
	}
}

func TestAPIKey(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, router, _ := setup(t)

		assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/v1/webhooks/orders", nil))
	})

	t.Run("wrong key", func(t *testing.T) {
		_, router, _ := setup(t)

		code := serve(router, http.MethodPost, "/v1/webhooks/orders", map[string]string{constant.RequestHeaderAPIKey: "nope"})

		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("valid key acts as bot", func(t *testing.T) {
		_, router, seen := setup(t)

		code := serve(router, http.MethodPost, "/v1/webhooks/orders", map[string]string{constant.RequestHeaderAPIKey: "bot-secret"})

		assert.Equal(t, http.StatusNoContent, code)
		assert.Equal(t, constant.ContextBot, seen.userID)
	})
}
