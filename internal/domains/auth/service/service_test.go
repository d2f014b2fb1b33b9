package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/jwt"
	jwtMocks "frontdesk/infras/jwt/mocks"
	"frontdesk/infras/otel/mocks"
	"frontdesk/internal/domains/auth/model/dto"
	"frontdesk/internal/domains/auth/service"
	userMocks "frontdesk/internal/domains/user/mocks"
	userModel "frontdesk/internal/domains/user/model"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/password"
	"frontdesk/shared/role"
)

type fixture struct {
	users *userMocks.MockUser
	jwt   *jwtMocks.MockJWT
	svc   service.Auth
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		users: userMocks.NewMockUser(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.users, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

func staffUser(t *testing.T, active bool) userModel.User {
	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-id-123",
		Email:    "sari@hotel.test",
		Password: hashed,
		FullName: "Sari",
		Role:     constant.RoleFrontOffice,
		Roles:    role.New(constant.RoleHousekeeping),
		Active:   active,
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Email: "Dewi@Hotel.test", Password: "password123", FullName: "Dewi"}

	t.Run("creates inactive front office account", func(t *testing.T) {
		f := setup(t)

		f.users.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "dewi@hotel.test", args[userModel.FieldEmail])

				return false, nil
			})
		f.users.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.False(t, user.Active)
				assert.Equal(t, constant.RoleFrontOffice, user.Role)
				assert.NoError(t, password.Verify("password123", user.Password))

				return nil
			})

		assert.NoError(t, f.svc.Register(context.Background(), req))
	})

	t.Run("email taken", func(t *testing.T) {
		f := setup(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Register(context.Background(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(t *testing.T, f fixture)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "sari@hotel.test", Password: "password123"},
			setupMock: func(t *testing.T, f fixture) {
				user := staffUser(t, true)

				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().
					GenerateTokenPair(gomock.Any(), jwt.Subject{
						UserID: user.ID,
						Email:  user.Email,
						Role:   user.Role,
						Roles:  user.Roles,
					}).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				f.users.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)

						_, args := filter.GetWhereClause()
						assert.Equal(t, user.ID, args[userModel.FieldID])

						return nil
					})
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@hotel.test", Password: "password123"},
			setupMock: func(_ *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "sari@hotel.test", Password: "wrong-password"},
			setupMock: func(t *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, true), nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive account",
			req:  dto.LoginRequest{Email: "sari@hotel.test", Password: "password123"},
			setupMock: func(t *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, false), nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Email: "sari@hotel.test", Password: "password123"},
			setupMock: func(_ *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "token generation fails",
			req:  dto.LoginRequest{Email: "sari@hotel.test", Password: "password123"},
			setupMock: func(t *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, true), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any()).Return(nil, errors.New("signing error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMock(t, f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
			assert.Equal(t, []string{constant.RoleFrontOffice, constant.RoleHousekeeping}, res.Roles.Slice())
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token", func(t *testing.T) {
		f := setup(t)

		f.jwt.EXPECT().
			RefreshTokens(gomock.Any(), "valid-refresh-token").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
		assert.Equal(t, "new-refresh", res.RefreshToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		f := setup(t)

		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "expired").Return(nil, jwt.ErrExpiredToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(t *testing.T, f fixture)
		wantCode  int
	}{
		{
			name: "successful change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password"},
			setupMock: func(t *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(staffUser(t, true), nil)
				f.users.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hashed, ok := fields[userModel.FieldPassword].(string)
						assert.True(t, ok)
						assert.NoError(t, password.Verify("new-password", hashed))

						return nil
					})
			},
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password"},
			setupMock: func(_ *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "not-it", NewPassword: "new-password"},
			setupMock: func(t *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(staffUser(t, true), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "same password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"},
			setupMock: func(t *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(staffUser(t, true), nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMock(t, f)

			err := f.svc.ChangePassword(context.Background(), tt.req, "user-id-123")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAuthService_Profile(t *testing.T) {
	f := setup(t)

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, true), nil)

	res, err := f.svc.Profile(context.Background(), "user-id-123")

	assert.NoError(t, err)
	assert.Equal(t, "sari@hotel.test", res.Email)
	assert.Equal(t, constant.RoleFrontOffice, res.Role)
}
