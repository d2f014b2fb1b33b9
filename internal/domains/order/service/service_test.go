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
	orderMocks "frontdesk/internal/domains/order/mocks"
	"frontdesk/internal/domains/order/model"
	"frontdesk/internal/domains/order/model/dto"
	"frontdesk/internal/domains/order/service"
	roomMocks "frontdesk/internal/domains/room/mocks"
	roomModel "frontdesk/internal/domains/room/model"
	cacheMocks "frontdesk/shared/cache/mocks"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
)

type fixture struct {
	repo     *orderMocks.MockOrder
	bookings *bookingMocks.MockBooking
	rooms    *roomMocks.MockRoom
	svc      service.Order
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     orderMocks.NewMockOrder(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.bookings, f.rooms, cfg, mockCache, mocks.NewOtel())

	return f
}

func TestOrderService_Create(t *testing.T) {
	due := time.Date(2026, 10, 19, 6, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       dto.CreateOrderRequest
		source    string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name:   "staff order by booking",
			req:    dto.CreateOrderRequest{BookingID: "B1", Kind: model.KindService, Item: "Laundry", Quantity: 2, UnitPrice: 5},
			source: model.SourceStaff,
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{ID: "B1", RoomID: "R1", Status: bookingModel.StatusCheckedIn}, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order model.Order) error {
						assert.Equal(t, "R1", order.RoomID)
						assert.Equal(t, model.StatusPending, order.Status)
						assert.Equal(t, model.SourceStaff, order.Source)
						assert.Equal(t, 2, order.Quantity)

						return nil
					})
			},
		},
		{
			name:   "bot reminder by room number",
			req:    dto.CreateOrderRequest{RoomNumber: "101", Kind: model.KindReminder, Item: "Wake-up call", DueAt: &due},
			source: model.SourceBot,
			setupMock: func(f *fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any(), roomModel.FieldID).Return(roomModel.Room{ID: "R1"}, nil)
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (bookingModel.Booking, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, "R1", args[bookingModel.FieldRoomID])
						assert.Equal(t, bookingModel.StatusCheckedIn, args[bookingModel.FieldStatus])

						return bookingModel.Booking{ID: "B1", RoomID: "R1", Status: bookingModel.StatusCheckedIn}, nil
					})
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order model.Order) error {
						assert.Equal(t, "B1", order.BookingID)
						assert.Equal(t, model.SourceBot, order.Source)
						assert.Equal(t, 1, order.Quantity)
						assert.Equal(t, &due, order.DueAt)

						return nil
					})
			},
		},
		{
			name:   "empty room",
			req:    dto.CreateOrderRequest{RoomNumber: "101", Kind: model.KindService, Item: "Towels"},
			source: model.SourceBot,
			setupMock: func(f *fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "R1"}, nil)
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "unknown room",
			req:    dto.CreateOrderRequest{RoomNumber: "999", Kind: model.KindService, Item: "Towels"},
			source: model.SourceBot,
			setupMock: func(f *fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "closed booking",
			req:    dto.CreateOrderRequest{BookingID: "B1", Kind: model.KindService, Item: "Towels"},
			source: model.SourceStaff,
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{ID: "B1", Status: bookingModel.StatusCheckedOut}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "insert failure",
			req:    dto.CreateOrderRequest{BookingID: "B1", Kind: model.KindService, Item: "Towels"},
			source: model.SourceStaff,
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{ID: "B1", Status: bookingModel.StatusReserved}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			id, err := f.svc.Create(ctx, tt.req, tt.source)

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

func TestOrderService_SetStatus(t *testing.T) {
	t.Run("pending to done", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Order{ID: "O1", Status: model.StatusPending}, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusDone, update[model.FieldStatus])

				return nil
			})

		err := f.svc.SetStatus(context.Background(), dto.SetOrderStatusRequest{Status: model.StatusDone}, "O1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("done is final", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Order{ID: "O1", Status: model.StatusDone}, nil)

		err := f.svc.SetStatus(context.Background(), dto.SetOrderStatusRequest{Status: model.StatusCancelled}, "O1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing order", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Order{}, nil)

		err := f.svc.SetStatus(context.Background(), dto.SetOrderStatusRequest{Status: model.StatusDone}, "O1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestOrderService_Update(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Order{ID: "O1", Status: model.StatusCancelled}, nil)

	err := f.svc.Update(context.Background(), dto.UpdateOrderRequest{Notes: "extra pillow"}, "O1")

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
