// Package auth serves sign in, token refresh and the signed in account endpoints.
package auth

import (
	"context"
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/auth/model/dto"
	"frontdesk/internal/domains/auth/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the public authentication endpoints.
func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
	})
}

// ProtectedRouter mounts the endpoints that act on the signed in account.
func (handler *Handler) ProtectedRouter(r chi.Router) {
	r.Route("/me", func(r chi.Router) {
		r.Get("/", handler.Profile)
		r.Post("/password", handler.ChangePassword)
	})
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)
	response.WithError(w, err)
}

// exchange decodes a request body, passes it to call and writes the result as JSON.
func exchange[Req, Res any](
	w http.ResponseWriter, r *http.Request, scope otel.Scope, action string,
	call func(ctx context.Context, req Req) (Res, error),
) {
	var req Req
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid "+action+" request")

		return
	}

	res, err := call(r.Context(), req)
	if err != nil {
		fail(w, scope, err, action+" failed")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func userID(ctx context.Context) string {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return id
}

// Register
// @Summary Register a staff account
// @Description The account is created inactive with the front-office role.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	var req dto.RegisterRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid register request")

		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		fail(w, scope, err, "failed to register user")

		return
	}

	response.WithMessage(w, http.StatusCreated, "User registered, waiting for activation")
}

// Login
// @Summary Exchange credentials for a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	exchange(w, r.WithContext(ctx), scope, "login", handler.service.Login)
}

// RefreshToken
// @Summary Rotate a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	exchange(w, r.WithContext(ctx), scope, "refresh token", handler.service.RefreshToken)
}

// Profile
// @Summary Current account
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[userDto.UserResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/me [get]
// @Security BearerAuth
func (handler *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Profile")
	defer scope.End()

	res, err := handler.service.Profile(ctx, userID(ctx))
	if err != nil {
		fail(w, scope, err, "failed to get profile")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword
// @Summary Change the password of the signed in account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/me/password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	var req dto.ChangePasswordRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid change password request")

		return
	}

	if err := handler.service.ChangePassword(ctx, req, userID(ctx)); err != nil {
		fail(w, scope, err, "failed to change password")

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}
