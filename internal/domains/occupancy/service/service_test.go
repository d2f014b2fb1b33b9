package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/kafka"
	kafkaMocks "frontdesk/infras/kafka/mocks"
	"frontdesk/infras/metrics"
	"frontdesk/infras/otel/mocks"
	bookingMocks "frontdesk/internal/domains/booking/mocks"
	bookingModel "frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/occupancy/model"
	"frontdesk/internal/domains/occupancy/service"
	roomMocks "frontdesk/internal/domains/room/mocks"
	roomModel "frontdesk/internal/domains/room/model"
	cacheMocks "frontdesk/shared/cache/mocks"
	gDto "frontdesk/shared/dto"
)

func fixedClock(value string) func() time.Time {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}

	return func() time.Time { return now }
}

func newMetrics() *metrics.Metrics {
	cfg := &config.Config{}
	cfg.App.Name = "frontdesk"

	return metrics.New(cfg)
}

// bookingStore answers Exist by evaluating the predicate over in-memory bookings.
func bookingStore(bookings []bookingModel.Booking, roomID string, clock func() time.Time) func(context.Context, gDto.FilterGroup) (bool, error) {
	return func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
		window := model.WindowAt(clock(), time.UTC)
		if !assertFilter(filter, window.ActiveBookingFilter(roomID)) {
			return false, errors.New("unexpected filter")
		}

		return model.Occupied(bookings, roomID, window), nil
	}
}

func assertFilter(got, want gDto.FilterGroup) bool {
	gotWhere, gotArgs := got.GetWhereClause()
	wantWhere, wantArgs := want.GetWhereClause()

	if gotWhere != wantWhere || len(gotArgs) != len(wantArgs) {
		return false
	}

	for key, value := range wantArgs {
		if gotArgs[key] != value {
			return false
		}
	}

	return true
}

func TestOccupancyService_Reconcile(t *testing.T) {
	checkedIn := bookingModel.Booking{
		ID:         "B1",
		RoomID:     "R1",
		Status:     bookingModel.StatusCheckedIn,
		CheckinAt:  time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
		CheckoutAt: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name        string
		now         string
		room        roomModel.Room
		bookings    []bookingModel.Booking
		wantOutcome model.Outcome
		wantStatus  string
	}{
		{
			name:        "scenario A: active stay marks room occupied",
			now:         "2025-01-10T09:00:00Z",
			room:        roomModel.Room{ID: "R1", Status: roomModel.StatusAvailable},
			bookings:    []bookingModel.Booking{checkedIn},
			wantOutcome: model.OutcomeUpdated,
			wantStatus:  roomModel.StatusOccupied,
		},
		{
			name:        "scenario B: past checkout frees the room",
			now:         "2025-01-10T13:00:00Z",
			room:        roomModel.Room{ID: "R1", Status: roomModel.StatusOccupied},
			bookings:    []bookingModel.Booking{checkedIn},
			wantOutcome: model.OutcomeUpdated,
			wantStatus:  roomModel.StatusAvailable,
		},
		{
			name: "half-open end: checkout exactly now is free",
			now:  "2025-01-10T09:00:00Z",
			room: roomModel.Room{ID: "R1", Status: roomModel.StatusOccupied},
			bookings: []bookingModel.Booking{{
				RoomID:     "R1",
				Status:     bookingModel.StatusCheckedIn,
				CheckinAt:  time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
				CheckoutAt: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
			}},
			wantOutcome: model.OutcomeUpdated,
			wantStatus:  roomModel.StatusAvailable,
		},
		{
			name: "half-open start: checkin exactly now occupies",
			now:  "2025-01-10T09:00:00Z",
			room: roomModel.Room{ID: "R1", Status: roomModel.StatusAvailable},
			bookings: []bookingModel.Booking{{
				RoomID:     "R1",
				Status:     bookingModel.StatusCheckedIn,
				CheckinAt:  time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
				CheckoutAt: time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
			}},
			wantOutcome: model.OutcomeUpdated,
			wantStatus:  roomModel.StatusOccupied,
		},
		{
			name: "same-day future checkin occupies",
			now:  "2025-01-10T09:00:00Z",
			room: roomModel.Room{ID: "R1", Status: roomModel.StatusAvailable},
			bookings: []bookingModel.Booking{{
				RoomID:     "R1",
				Status:     bookingModel.StatusCheckedIn,
				CheckinAt:  time.Date(2025, 1, 10, 23, 0, 0, 0, time.UTC),
				CheckoutAt: time.Date(2025, 1, 11, 11, 0, 0, 0, time.UTC),
			}},
			wantOutcome: model.OutcomeUpdated,
			wantStatus:  roomModel.StatusOccupied,
		},
		{
			name: "only reserved bookings leave the room available",
			now:  "2025-01-10T09:00:00Z",
			room: roomModel.Room{ID: "R1", Status: roomModel.StatusOccupied},
			bookings: []bookingModel.Booking{{
				RoomID:     "R1",
				Status:     bookingModel.StatusReserved,
				CheckinAt:  time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
				CheckoutAt: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
			}},
			wantOutcome: model.OutcomeUpdated,
			wantStatus:  roomModel.StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRoomRepo := roomMocks.NewMockRoom(ctrl)
			mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			clock := fixedClock(tt.now)

			svc := service.NewWithClock(mockRoomRepo, mockBookingRepo, &config.Config{}, mockCache, mocks.NewOtel(), newMetrics(), nil, clock, time.UTC)

			mockRoomRepo.EXPECT().
				Get(gomock.Any(), gomock.Any(), roomModel.FieldID, roomModel.FieldStatus).
				Return(tt.room, nil)

			mockBookingRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				DoAndReturn(bookingStore(tt.bookings, tt.room.ID, clock))

			var written string

			mockRoomRepo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
					written, _ = update[roomModel.FieldStatus].(string)

					return nil
				})

			mockCache.EXPECT().Delete(gomock.Any(), "room:get:"+tt.room.ID).Return(nil)
			mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
			mockCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(nil)

			outcome, err := svc.Reconcile(context.Background(), tt.room.ID)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, tt.wantStatus, written)
		})
	}
}

func TestOccupancyService_Reconcile_NoWrite(t *testing.T) {
	t.Run("unknown room is a silent no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockRoomRepo := roomMocks.NewMockRoom(ctrl)
		mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		svc := service.NewWithClock(mockRoomRepo, mockBookingRepo, &config.Config{}, mockCache, mocks.NewOtel(), newMetrics(), nil, fixedClock("2025-01-10T09:00:00Z"), time.UTC)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil).
			Times(2)

		outcome, err := svc.Reconcile(context.Background(), "missing")

		assert.NoError(t, err)
		assert.Equal(t, model.OutcomeNotFound, outcome)
		assert.NoError(t, svc.Recompute(context.Background(), "missing-again"))
	})

	t.Run("scenario C: maintenance is never touched", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockRoomRepo := roomMocks.NewMockRoom(ctrl)
		mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		svc := service.NewWithClock(mockRoomRepo, mockBookingRepo, &config.Config{}, mockCache, mocks.NewOtel(), newMetrics(), nil, fixedClock("2025-01-10T09:00:00Z"), time.UTC)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "R2", Status: roomModel.StatusMaintenance}, nil)

		outcome, err := svc.Reconcile(context.Background(), "R2")

		assert.NoError(t, err)
		assert.Equal(t, model.OutcomeMaintenance, outcome)
	})

	t.Run("matching status suppresses the write", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockRoomRepo := roomMocks.NewMockRoom(ctrl)
		mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		svc := service.NewWithClock(mockRoomRepo, mockBookingRepo, &config.Config{}, mockCache, mocks.NewOtel(), newMetrics(), nil, fixedClock("2025-01-10T09:00:00Z"), time.UTC)

		mockRoomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "R1", Status: roomModel.StatusOccupied}, nil)

		mockBookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRoomRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		outcome, err := svc.Reconcile(context.Background(), "R1")

		assert.NoError(t, err)
		assert.Equal(t, model.OutcomeUnchanged, outcome)
	})
}

func TestOccupancyService_Reconcile_TracesError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	tracer, recorder := mocks.NewRecordingOtel()

	svc := service.NewWithClock(mockRoomRepo, mockBookingRepo, &config.Config{}, mockCache, tracer, newMetrics(), nil, fixedClock("2025-01-10T09:00:00Z"), time.UTC)

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(roomModel.Room{}, errors.New("db down"))

	_, err := svc.Reconcile(context.Background(), "R1")
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Status().Description, "db down")
	assert.NotEmpty(t, spans[0].Events())
}

func TestOccupancyService_Reconcile_Errors(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name      string
		setupMock func(roomRepo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking)
	}{
		{
			name: "room lookup fails",
			setupMock: func(roomRepo *roomMocks.MockRoom, _ *bookingMocks.MockBooking) {
				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, dbErr)
			},
		},
		{
			name: "booking lookup fails",
			setupMock: func(roomRepo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking) {
				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "R1", Status: roomModel.StatusAvailable}, nil)

				bookingRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, dbErr)
			},
		},
		{
			name: "status write fails",
			setupMock: func(roomRepo *roomMocks.MockRoom, bookingRepo *bookingMocks.MockBooking) {
				roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "R1", Status: roomModel.StatusAvailable}, nil)

				bookingRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				roomRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(dbErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRoomRepo := roomMocks.NewMockRoom(ctrl)
			mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			m := newMetrics()

			svc := service.NewWithClock(mockRoomRepo, mockBookingRepo, &config.Config{}, mockCache, mocks.NewOtel(), m, nil, fixedClock("2025-01-10T09:00:00Z"), time.UTC)

			tt.setupMock(mockRoomRepo, mockBookingRepo)

			_, err := svc.Reconcile(context.Background(), "R1")

			assert.Error(t, err)
			assert.ErrorIs(t, err, dbErr)
			assert.InDelta(t, 0, testutil.CollectAndCount(m.ReconcileCounter()), 0)
		})
	}
}

func TestOccupancyService_Reconcile_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	m := newMetrics()

	svc := service.NewWithClock(mockRoomRepo, mockBookingRepo, &config.Config{}, mockCache, mocks.NewOtel(), m, nil, fixedClock("2025-01-10T09:00:00Z"), time.UTC)

	status := roomModel.StatusAvailable

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, _ ...string) (roomModel.Room, error) {
			return roomModel.Room{ID: "R1", Status: status}, nil
		}).
		Times(2)

	mockBookingRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil).
		Times(2)

	mockRoomRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
			status, _ = update[roomModel.FieldStatus].(string)

			return nil
		}).
		Times(1)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	first, err := svc.Reconcile(context.Background(), "R1")
	assert.NoError(t, err)

	second, err := svc.Reconcile(context.Background(), "R1")
	assert.NoError(t, err)

	assert.Equal(t, model.OutcomeUpdated, first)
	assert.Equal(t, model.OutcomeUnchanged, second)
	assert.Equal(t, roomModel.StatusOccupied, status)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ReconcileCounter().WithLabelValues("updated")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ReconcileCounter().WithLabelValues("unchanged")), 0)
}

func TestOccupancyService_ReconcileAll(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.NewWithClock(mockRoomRepo, mockBookingRepo, &config.Config{}, mockCache, mocks.NewOtel(), newMetrics(), nil, fixedClock("2025-01-10T09:00:00Z"), time.UTC)

	rooms := map[string]roomModel.Room{
		"R1": {ID: "R1", Status: roomModel.StatusAvailable},
		"R2": {ID: "R2", Status: roomModel.StatusMaintenance},
		"R3": {ID: "R3", Status: roomModel.StatusAvailable},
	}

	mockRoomRepo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{}, gDto.FilterGroup{}, roomModel.FieldID).
		Return([]roomModel.Room{{ID: "R1"}, {ID: "R2"}, {ID: "R3"}}, nil)

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (roomModel.Room, error) {
			_, args := filter.GetWhereClause()
			id, _ := args[roomModel.FieldID].(string)

			return rooms[id], nil
		}).
		Times(3)

	mockBookingRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
			_, args := filter.GetWhereClause()
			if args[bookingModel.FieldRoomID] == "R3" {
				return false, errors.New("timeout")
			}

			return true, nil
		}).
		Times(2)

	mockRoomRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	summary, err := svc.ReconcileAll(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "room R3")
	assert.Equal(t, map[model.Outcome]int{
		model.OutcomeUpdated:     1,
		model.OutcomeMaintenance: 1,
	}, summary)
}

func TestOccupancyService_ReconcileAll_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRoomRepo, mockBookingRepo, &config.Config{}, mockCache, mocks.NewOtel(), nil, nil)

	mockRoomRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	summary, err := svc.ReconcileAll(context.Background())

	assert.Error(t, err)
	assert.Nil(t, summary)
}

func TestOccupancyService_Reconcile_PublishesStatusChange(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockEvents := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.RoomStatus = "frontdesk.room-status"

	now := fixedClock("2025-01-10T09:00:00Z")
	svc := service.NewWithClock(mockRoomRepo, mockBookingRepo, cfg, mockCache, mocks.NewOtel(), nil, mockEvents, now, time.UTC)

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(roomModel.Room{ID: "R1", Status: roomModel.StatusAvailable}, nil)
	mockBookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRoomRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockEvents.EXPECT().Enabled().Return(true)
	mockEvents.EXPECT().
		Publish(gomock.Any(), "frontdesk.room-status", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			assert.Len(t, messages, 1)
			assert.Equal(t, "R1", messages[0].Key)
			assert.Equal(t, model.StatusChanged{
				RoomID:    "R1",
				From:      roomModel.StatusAvailable,
				To:        roomModel.StatusOccupied,
				ChangedAt: now(),
			}, messages[0].Value)

			return errors.New("broker unavailable")
		})

	outcome, err := svc.Reconcile(context.Background(), "R1")

	assert.NoError(t, err)
	assert.Equal(t, model.OutcomeUpdated, outcome)
}
