package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/internal/domains/booking/repository"
	customerModel "frontdesk/internal/domains/customer/model"
	customerRepo "frontdesk/internal/domains/customer/repository"
	occupancyService "frontdesk/internal/domains/occupancy/service"
	promotionService "frontdesk/internal/domains/promotion/service"
	roomModel "frontdesk/internal/domains/room/model"
	roomRepo "frontdesk/internal/domains/room/repository"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	gRepo "frontdesk/shared/repository"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
	CheckIn(ctx context.Context, id string) error
	CheckOut(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	promotion    promotionService.Promotion
	occupancy    occupancyService.Occupancy
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	customerRepo customerRepo.Customer,
	promotion promotionService.Promotion,
	occupancy occupancyService.Occupancy,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		promotion:    promotion,
		occupancy:    occupancy,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if !req.CheckinAt.Before(req.CheckoutAt) {
		return id, failure.BadRequestFromString("checkout_at must be after checkin_at") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName),
		roomModel.FieldID, roomModel.FieldPrice, roomModel.FieldCapacity)
	if err != nil {
		return id, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return id, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if room.Capacity > 0 && req.Guests > room.Capacity {
		return id, failure.BadRequestFromString(fmt.Sprintf("room holds at most %d guests", room.Capacity)) // nolint:wrapcheck
	}

	exist, err := s.customerRepo.Exist(ctx, shared.FilterByID(req.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		return id, fmt.Errorf("failed to check customer: %w", err)
	}

	if !exist {
		return id, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	overlap, err := s.repo.Exist(ctx, model.OverlapFilter(req.RoomID, req.CheckinAt, req.CheckoutAt, constant.Empty))
	if err != nil {
		return id, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if overlap {
		return id, failure.Conflict("room is already booked for the requested dates") // nolint:wrapcheck
	}

	booking := req.ToModel(user, 0)
	booking.TotalPrice = roundCents(room.Price * float64(booking.Nights()))

	if booking.PromotionCode != constant.Empty {
		booking.TotalPrice, err = s.promotion.Apply(ctx, booking.PromotionCode, booking.TotalPrice, timezone.Now())
		if err != nil {
			return id, fmt.Errorf("failed to apply promotion: %w", err)
		}
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return id, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	return booking.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if req.Guests != nil {
		if err = s.checkCapacity(ctx, booking.RoomID, *req.Guests); err != nil {
			return err
		}
	}

	update := shared.TransformFields(req, user)

	if req.MovesDates() {
		if booking.Status != model.StatusReserved {
			return failure.BadRequestFromString("dates can only change while the booking is reserved") // nolint:wrapcheck
		}

		moved := booking
		if req.CheckinAt != nil {
			moved.CheckinAt = *req.CheckinAt
		}

		if req.CheckoutAt != nil {
			moved.CheckoutAt = *req.CheckoutAt
		}

		if !moved.CheckinAt.Before(moved.CheckoutAt) {
			return failure.BadRequestFromString("checkout_at must be after checkin_at") // nolint:wrapcheck
		}

		overlap, err := s.repo.Exist(ctx, model.OverlapFilter(booking.RoomID, moved.CheckinAt, moved.CheckoutAt, booking.ID))
		if err != nil {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}

		if overlap {
			return failure.Conflict("room is already booked for the requested dates") // nolint:wrapcheck
		}

		// the nightly rate, discount included, carries over to the new stay length
		perNight := booking.TotalPrice / float64(booking.Nights())
		update[model.FieldTotalPrice] = roundCents(perNight * float64(moved.Nights()))
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, id)

	if req.MovesDates() {
		return s.recompute(ctx, booking.RoomID)
	}

	return nil
}

// checkCapacity rejects a guest count above what the room holds. A capacity of zero is unlimited.
func (s *serviceImpl) checkCapacity(ctx context.Context, roomID string, guests int) error {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName),
		roomModel.FieldID, roomModel.FieldCapacity)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if room.Capacity > 0 && guests > room.Capacity {
		return failure.BadRequestFromString(fmt.Sprintf("room holds at most %d guests", room.Capacity)) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldRoomID)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		if gRepo.IsForeignKeyViolation(err) {
			return failure.Conflict("booking still has orders, payments or reviews") // nolint:wrapcheck
		}

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return s.recompute(ctx, booking.RoomID)
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCheckedIn)
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCheckedOut)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCancelled)
}

func (s *serviceImpl) transition(ctx context.Context, id, to string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("booking_id", id)
	scope.SetAttribute("status", to)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldRoomID, model.FieldStatus)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !model.CanTransition(booking.Status, to) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot move booking from %s to %s", booking.Status, to)) // nolint:wrapcheck
	}

	update := map[string]any{
		model.FieldStatus:        to,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	s.invalidate(ctx, id)

	return s.recompute(ctx, booking.RoomID)
}

func (s *serviceImpl) recompute(ctx context.Context, roomID string) error {
	if err := s.occupancy.Recompute(ctx, roomID); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to recompute room occupancy")

		return fmt.Errorf("failed to recompute room occupancy: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, model.CacheCountBooking)
	}()
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
