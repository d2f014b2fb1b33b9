package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	bookingMocks "frontdesk/internal/domains/booking/mocks"
	bookingModel "frontdesk/internal/domains/booking/model"
	paymentMocks "frontdesk/internal/domains/payment/mocks"
	"frontdesk/internal/domains/payment/model"
	"frontdesk/internal/domains/payment/model/dto"
	"frontdesk/internal/domains/payment/service"
	cacheMocks "frontdesk/shared/cache/mocks"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
)

func setup(t *testing.T) (*paymentMocks.MockPayment, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache, service.Payment) {
	ctrl := gomock.NewController(t)

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockBooking := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return mockRepo, mockBooking, mockCache, service.New(mockRepo, mockBooking, cfg, mockCache, mocks.NewOtel())
}

func TestPaymentService_Create(t *testing.T) {
	req := dto.CreatePaymentRequest{BookingID: "B1", Amount: 300, Method: model.MethodCard}

	tests := []struct {
		name      string
		req       dto.CreatePaymentRequest
		setupMock func(repo *paymentMocks.MockPayment, bookings *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name: "paid now",
			req:  req,
			setupMock: func(repo *paymentMocks.MockPayment, bookings *bookingMocks.MockBooking, cache *cacheMocks.MockRedisCache) {
				bookings.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{ID: "B1", Status: bookingModel.StatusCheckedIn}, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, payment model.Payment) error {
						assert.Equal(t, model.StatusPaid, payment.Status)
						assert.False(t, payment.PaidAt.IsZero())

						return nil
					})
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "non positive amount",
			req: dto.CreatePaymentRequest{
				BookingID: "B1",
				Amount:    0,
				Method:    model.MethodCash,
			},
			setupMock: func(_ *paymentMocks.MockPayment, _ *bookingMocks.MockBooking, _ *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown booking",
			req:  req,
			setupMock: func(_ *paymentMocks.MockPayment, bookings *bookingMocks.MockBooking, _ *cacheMocks.MockRedisCache) {
				bookings.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "cancelled booking",
			req:  req,
			setupMock: func(_ *paymentMocks.MockPayment, bookings *bookingMocks.MockBooking, _ *cacheMocks.MockRedisCache) {
				bookings.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{ID: "B1", Status: bookingModel.StatusCancelled}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "booking lookup failure",
			req:  req,
			setupMock: func(_ *paymentMocks.MockPayment, bookings *bookingMocks.MockBooking, _ *cacheMocks.MockRedisCache) {
				bookings.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, bookings, cache, svc := setup(t)
			tt.setupMock(repo, bookings, cache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			id, err := svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, id)
		})
	}
}

func TestPaymentService_Refund(t *testing.T) {
	t.Run("paid payment", func(t *testing.T) {
		repo, _, cache, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Payment{ID: "P1", Status: model.StatusPaid}, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusRefunded, update[model.FieldStatus])

				return nil
			})
		cache.EXPECT().Delete(gomock.Any(), "payment:get:P1").Return(nil).AnyTimes()
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Refund(context.Background(), "P1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("refund twice", func(t *testing.T) {
		repo, _, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Payment{ID: "P1", Status: model.StatusRefunded}, nil)

		err := svc.Refund(context.Background(), "P1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing payment", func(t *testing.T) {
		repo, _, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)

		err := svc.Refund(context.Background(), "P1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPaymentService_GetAll_CacheHit(t *testing.T) {
	_, _, cache, svc := setup(t)

	cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest any) error {
			res, ok := dest.(*dto.GetPaymentsResponse)
			require.True(t, ok)

			res.TotalData = 7

			return nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 7, res.TotalData)
}
