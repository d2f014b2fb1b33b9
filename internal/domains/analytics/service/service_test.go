package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	analyticsMocks "frontdesk/internal/domains/analytics/mocks"
	"frontdesk/internal/domains/analytics/model"
	"frontdesk/internal/domains/analytics/service"
	cacheMocks "frontdesk/shared/cache/mocks"
)

func TestAnalyticsService_Summary(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)
	today := model.Range{From: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), To: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)}
	month := model.Range{From: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), To: today.To}

	setup := func(t *testing.T) (*analyticsMocks.MockAnalytics, *cacheMocks.MockRedisCache, service.Analytics) {
		ctrl := gomock.NewController(t)

		repo := analyticsMocks.NewMockAnalytics(ctrl)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		cfg := &config.Config{}
		cfg.Cache.TTL = 60

		return repo, cache, service.NewWithClock(repo, cfg, cache, mocks.NewOtel(), func() time.Time { return now })
	}

	t.Run("computed on cache miss", func(t *testing.T) {
		repo, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), "analytics:summary:2026-10-18", gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().RoomsByStatus(gomock.Any()).Return([]model.StatusCount{
			{Status: "available", Total: 6},
			{Status: "occupied", Total: 3},
			{Status: "maintenance", Total: 1},
		}, nil)
		repo.EXPECT().BookingsByStatus(gomock.Any()).Return([]model.StatusCount{{Status: "reserved", Total: 4}}, nil)
		repo.EXPECT().CountArrivals(gomock.Any(), today).Return(2, nil)
		repo.EXPECT().CountDepartures(gomock.Any(), today).Return(1, nil)
		repo.EXPECT().Revenue(gomock.Any(), today).Return(450.0, nil)
		repo.EXPECT().Revenue(gomock.Any(), month).Return(9800.0, nil)
		repo.EXPECT().AverageRating(gomock.Any()).Return(4.5, nil)
		cache.EXPECT().Save(gomock.Any(), "analytics:summary:2026-10-18", gomock.Any(), 60).Return(nil).AnyTimes()

		res, err := svc.Summary(context.Background())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.InDelta(t, 0.3333, res.OccupancyRate, 0.0001)
		assert.Equal(t, 3, res.RoomsByStatus["occupied"])
		assert.Equal(t, 4, res.BookingsByStatus["reserved"])
		assert.Equal(t, 2, res.ArrivalsToday)
		assert.Equal(t, 1, res.DeparturesToday)
		assert.InDelta(t, 450.0, res.RevenueToday, 0.001)
		assert.InDelta(t, 9800.0, res.RevenueMonth, 0.001)
		assert.InDelta(t, 4.5, res.AverageRating, 0.001)
		assert.Equal(t, now, res.GeneratedAt)
	})

	t.Run("served from cache", func(t *testing.T) {
		_, cache, svc := setup(t)

		cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) error {
				summary, ok := dest.(*model.Summary)
				require.True(t, ok)

				summary.ArrivalsToday = 9

				return nil
			})

		res, err := svc.Summary(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 9, res.ArrivalsToday)
	})

	t.Run("query failure", func(t *testing.T) {
		repo, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().RoomsByStatus(gomock.Any()).Return(nil, errors.New("replica down"))

		_, err := svc.Summary(context.Background())

		assert.ErrorContains(t, err, "failed to summarize rooms")
	})
}
