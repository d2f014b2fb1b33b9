package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/analytics/model"
	"frontdesk/internal/domains/analytics/repository"
	roomModel "frontdesk/internal/domains/room/model"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Analytics interface {
	Summary(ctx context.Context) (model.Summary, error)
}

type serviceImpl struct {
	repo  repository.Analytics
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	clock func() time.Time
}

func New(repo repository.Analytics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Analytics {
	return NewWithClock(repo, cfg, cache, otel, timezone.Now)
}

func NewWithClock(repo repository.Analytics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock func() time.Time) Analytics {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		clock: clock,
	}
}

func (s *serviceImpl) Summary(ctx context.Context) (res model.Summary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock()
	dayStart := timezone.StartOfDay(now, now.Location())
	today := model.Range{From: dayStart, To: dayStart.AddDate(0, 0, 1)}
	month := model.Range{
		From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		To:   today.To,
	}

	cacheKey := shared.BuildCacheKey(model.CacheSummary, now.Format(constant.DateOnlyFormat))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	rooms, err := s.repo.RoomsByStatus(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to summarize rooms: %w", err)
	}

	bookings, err := s.repo.BookingsByStatus(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to summarize bookings: %w", err)
	}

	res.RoomsByStatus = model.ToMap(rooms)
	res.BookingsByStatus = model.ToMap(bookings)
	res.OccupancyRate = model.OccupancyRate(res.RoomsByStatus, roomModel.StatusOccupied, roomModel.StatusMaintenance)

	if res.ArrivalsToday, err = s.repo.CountArrivals(ctx, today); err != nil {
		return res, fmt.Errorf("failed to count arrivals: %w", err)
	}

	if res.DeparturesToday, err = s.repo.CountDepartures(ctx, today); err != nil {
		return res, fmt.Errorf("failed to count departures: %w", err)
	}

	if res.RevenueToday, err = s.repo.Revenue(ctx, today); err != nil {
		return res, fmt.Errorf("failed to sum revenue today: %w", err)
	}

	if res.RevenueMonth, err = s.repo.Revenue(ctx, month); err != nil {
		return res, fmt.Errorf("failed to sum revenue this month: %w", err)
	}

	if res.AverageRating, err = s.repo.AverageRating(ctx); err != nil {
		return res, fmt.Errorf("failed to average ratings: %w", err)
	}

	res.GeneratedAt = now

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save analytics summary to cache")
		}
	}()

	return res, nil
}
