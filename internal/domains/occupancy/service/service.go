package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"frontdesk/config"
	"frontdesk/infras/kafka"
	"frontdesk/infras/metrics"
	"frontdesk/infras/otel"
	bookingRepo "frontdesk/internal/domains/booking/repository"
	"frontdesk/internal/domains/occupancy/model"
	roomModel "frontdesk/internal/domains/room/model"
	roomRepo "frontdesk/internal/domains/room/repository"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

type Occupancy interface {
	// Reconcile derives the room status from its bookings and reports what it did.
	Reconcile(ctx context.Context, roomID string) (model.Outcome, error)
	// Recompute is Reconcile for callers that only care about errors.
	Recompute(ctx context.Context, roomID string) error
	// ReconcileAll reconciles every room, continuing past per-room failures.
	ReconcileAll(ctx context.Context) (map[model.Outcome]int, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	cache       cache.RedisCache
	otel        otel.Otel
	metrics     *metrics.Metrics
	events      kafka.Client
	topic       string
	clock       func() time.Time
	location    *time.Location
}

func New(
	roomRepo roomRepo.Room,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	metrics *metrics.Metrics,
	events kafka.Client,
) Occupancy {
	return NewWithClock(roomRepo, bookingRepo, cfg, cache, otel, metrics, events, timezone.Now, timezone.GetLocation())
}

func NewWithClock(
	roomRepo roomRepo.Room,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	metrics *metrics.Metrics,
	events kafka.Client,
	clock func() time.Time,
	location *time.Location,
) Occupancy {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		otel:        otel,
		metrics:     metrics,
		events:      events,
		topic:       cfg.Kafka.Topics.RoomStatus,
		clock:       clock,
		location:    location,
	}
}

func (s *serviceImpl) Reconcile(ctx context.Context, roomID string) (outcome model.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reconcile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("room_id", roomID)

	defer func() {
		if err == nil {
			scope.SetAttribute("outcome", outcome.String())
			s.observe(outcome)
		}
	}()

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName),
		roomModel.FieldID, roomModel.FieldStatus)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to get room for reconciliation")

		return outcome, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return model.OutcomeNotFound, nil
	}

	if room.InMaintenance() {
		return model.OutcomeMaintenance, nil
	}

	window := model.WindowAt(s.clock(), s.location)

	occupied, err := s.bookingRepo.Exist(ctx, window.ActiveBookingFilter(roomID))
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to check active bookings")

		return outcome, fmt.Errorf("failed to check active bookings: %w", err)
	}

	target := roomModel.StatusAvailable
	if occupied {
		target = roomModel.StatusOccupied
	}

	if target == room.Status {
		return model.OutcomeUnchanged, nil
	}

	update := map[string]any{
		roomModel.FieldStatus:    target,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: constant.ContextSystem,
	}

	if err = s.roomRepo.Update(ctx, update, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to update room status")

		return outcome, fmt.Errorf("failed to update room status: %w", err)
	}

	log.Info().Str("room_id", roomID).Str("from", room.Status).Str("to", target).Msg("room status reconciled")

	s.invalidate(ctx, roomID)
	s.publish(ctx, model.StatusChanged{RoomID: roomID, From: room.Status, To: target, ChangedAt: s.clock()})

	return model.OutcomeUpdated, nil
}

func (s *serviceImpl) Recompute(ctx context.Context, roomID string) error {
	_, err := s.Reconcile(ctx, roomID)

	return err
}

func (s *serviceImpl) ReconcileAll(ctx context.Context) (_ map[model.Outcome]int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReconcileAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, roomModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list rooms for reconciliation")

		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	summary := map[model.Outcome]int{}
	errs := []error{}

	for _, room := range rooms {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())

			break
		}

		outcome, rErr := s.Reconcile(ctx, room.ID)
		if rErr != nil {
			errs = append(errs, fmt.Errorf("room %s: %w", room.ID, rErr))

			continue
		}

		summary[outcome]++
	}

	log.Info().
		Int("rooms", len(rooms)).
		Int("updated", summary[model.OutcomeUpdated]).
		Int("failed", len(errs)).
		Msg("room reconciliation finished")

	return summary, errors.Join(errs...)
}

func (s *serviceImpl) observe(outcome model.Outcome) {
	if s.metrics == nil {
		return
	}

	s.metrics.ObserveReconcile(outcome.String())
}

// publish announces a status change. Delivery failures never fail the reconciliation.
func (s *serviceImpl) publish(ctx context.Context, event model.StatusChanged) {
	if s.events == nil || !s.events.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.events.Publish(ctx, s.topic, kafka.Message{Key: event.RoomID, Value: event}); err != nil {
		log.Error().Err(err).Str("room_id", event.RoomID).Msg("failed to publish room status change")
	}
}

// invalidate drops cached room reads after a status write.
func (s *serviceImpl) invalidate(ctx context.Context, roomID string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(roomModel.CacheGetRoom, roomID)); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to delete room cache")
	}

	shared.InvalidateCaches(ctx, s.cache, roomModel.CacheGetAllRoom)
	shared.InvalidateCaches(ctx, s.cache, roomModel.CacheCountRoom)
}
