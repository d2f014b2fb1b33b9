package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	userMocks "frontdesk/internal/domains/user/mocks"
	"frontdesk/internal/domains/user/model"
	"frontdesk/internal/domains/user/model/dto"
	"frontdesk/internal/domains/user/service"
	cacheMocks "frontdesk/shared/cache/mocks"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/role"
)

func setup(t *testing.T) (*userMocks.MockUser, *cacheMocks.MockRedisCache, service.User) {
	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
}

func TestUserService_Create(t *testing.T) {
	req := dto.CreateUserRequest{
		Email:    " Sari@Hotel.test ",
		Password: "password123",
		FullName: "Sari",
		Role:     "Front-Office",
		Roles:    []string{"housekeeping"},
	}

	tests := []struct {
		name      string
		setupMock func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, "sari@hotel.test", user.Email)
						assert.Equal(t, constant.RoleFrontOffice, user.Role)
						assert.True(t, user.Roles.Has(constant.RoleHousekeeping))
						assert.NotEqual(t, "password123", user.Password)
						assert.True(t, user.Active)
						assert.Equal(t, "admin-id", user.CreatedBy)

						return nil
					})
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "email taken",
			setupMock: func(repo *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unique violation on insert race",
			setupMock: func(repo *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (user): %w", &pq.Error{Code: "23505"}))
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func(repo *userMocks.MockUser, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := setup(t)
			tt.setupMock(repo, cache)

			id, err := svc.Create(adminContext(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, id)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestUserService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), "user:get:U1", gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "U1", Role: constant.RoleManager, Roles: role.New(constant.RoleAdmin)}, nil)
		cache.EXPECT().Save(gomock.Any(), "user:get:U1", gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "U1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, constant.RoleManager, res.Role)
		assert.True(t, res.Roles.Has(constant.RoleAdmin))
	})

	t.Run("not found", func(t *testing.T) {
		repo, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	active := false

	t.Run("empty request", func(t *testing.T) {
		_, _, svc := setup(t)

		err := svc.Update(adminContext(), dto.UpdateUserRequest{}, "U1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("cannot deactivate self", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Update(adminContext(), dto.UpdateUserRequest{Active: &active}, "admin-id")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("updates roles", func(t *testing.T) {
		repo, cache, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.RoleManager, fields[model.FieldRole])
				assert.Equal(t, role.New(constant.RoleHousekeeping), fields[model.FieldRoles])
				assert.Equal(t, "admin-id", fields[constant.FieldModifiedBy])

				return nil
			})
		cache.EXPECT().Delete(gomock.Any(), "user:get:U1").Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Update(adminContext(), dto.UpdateUserRequest{
			Role:  " Manager ",
			Roles: role.New(constant.RoleHousekeeping),
		}, "U1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(adminContext(), dto.UpdateUserRequest{FullName: "Budi"}, "U1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("cannot delete self", func(t *testing.T) {
		_, _, svc := setup(t)

		err := svc.Delete(adminContext(), "admin-id")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deletes", func(t *testing.T) {
		repo, cache, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().Delete(gomock.Any(), "user:get:U1").Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(adminContext(), "U1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
