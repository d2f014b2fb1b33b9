package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"frontdesk/infras/otel/mocks"
	"frontdesk/internal/domains/auth/model/dto"
	authMocks "frontdesk/internal/domains/auth/service/mocks"
	userDto "frontdesk/internal/domains/user/model/dto"
	"frontdesk/internal/handlers/auth"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

func setup(t *testing.T) (*authMocks.MockAuth, http.Handler) {
	ctrl := gomock.NewController(t)
	svc := authMocks.NewMockAuth(ctrl)

	handler := auth.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)
	router.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := context.WithValue(r.Context(), constant.ContextKeyUserID, "U1")
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
		handler.ProtectedRouter(r)
	})

	return svc, router
}

func TestHandler_Login(t *testing.T) {
	t.Run("tokens", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().
			Login(gomock.Any(), dto.LoginRequest{Email: "desk@hotel.test", Password: "secret"}).
			Return(dto.LoginResponse{Tokens: dto.Tokens{AccessToken: "a", TokenType: "Bearer"}}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"desk@hotel.test","password":"secret"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"access_token":"a"`)
	})

	t.Run("missing password", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"desk@hotel.test"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "password is required")
	})

	t.Run("wrong credentials", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().
			Login(gomock.Any(), gomock.Any()).
			Return(dto.LoginResponse{}, failure.Unauthorized("invalid email or password"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"desk@hotel.test","password":"nope"}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_Register(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(failure.Conflict("email already registered"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"desk@hotel.test","password":"password123","full_name":"Desk"}`)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_Me(t *testing.T) {
	t.Run("profile of the caller", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Profile(gomock.Any(), "U1").Return(userDto.UserResponse{ID: "U1"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("change password", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().
			ChangePassword(gomock.Any(), dto.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-password"}, "U1").
			Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/me/password",
			strings.NewReader(`{"current_password":"old-pass","new_password":"new-password"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
