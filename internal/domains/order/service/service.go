package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"frontdesk/config"
	"frontdesk/infras/otel"
	bookingModel "frontdesk/internal/domains/booking/model"
	bookingRepo "frontdesk/internal/domains/booking/repository"
	"frontdesk/internal/domains/order/model"
	"frontdesk/internal/domains/order/model/dto"
	"frontdesk/internal/domains/order/repository"
	roomModel "frontdesk/internal/domains/room/model"
	roomRepo "frontdesk/internal/domains/room/repository"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Order interface {
	// Create records an order for a live stay. source is staff for the API and bot for webhooks.
	Create(ctx context.Context, req dto.CreateOrderRequest, source string) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	Update(ctx context.Context, req dto.UpdateOrderRequest, id string) error
	SetStatus(ctx context.Context, req dto.SetOrderStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Order
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Order,
	bookingRepo bookingRepo.Booking,
	roomRepo roomRepo.Room,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Order {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOrderRequest, source string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("source", source)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.resolveBooking(ctx, req)
	if err != nil {
		return id, err
	}

	if booking.Status != bookingModel.StatusReserved && booking.Status != bookingModel.StatusCheckedIn {
		return id, failure.BadRequestFromString("orders need a reserved or checked in booking") // nolint:wrapcheck
	}

	order := req.ToModel(user, booking.ID, booking.RoomID, source)

	if err = s.repo.Insert(ctx, order); err != nil {
		log.Error().Err(err).Msg("failed to create order")

		return id, fmt.Errorf("failed to create order: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	return order.ID, nil
}

func (s *serviceImpl) resolveBooking(ctx context.Context, req dto.CreateOrderRequest) (bookingModel.Booking, error) {
	columns := []string{bookingModel.FieldID, bookingModel.FieldRoomID, bookingModel.FieldStatus}

	if req.BookingID != constant.Empty {
		booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName), columns...)
		if err != nil {
			return booking, fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return booking, failure.NotFound("booking not found") // nolint:wrapcheck
		}

		return booking, nil
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomNumber, roomModel.FieldNumber, roomModel.TableName), roomModel.FieldID)
	if err != nil {
		return bookingModel.Booking{}, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return bookingModel.Booking{}, failure.NotFound("room not found") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    room.ID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingModel.StatusCheckedIn,
				Table:    bookingModel.TableName,
			},
		},
	}

	booking, err := s.bookingRepo.Get(ctx, filter, columns...)
	if err != nil {
		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("no guest is checked in to room " + req.RoomNumber) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllOrder, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save orders to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCountOrder, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGetOrder, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound("order not found") // nolint:wrapcheck
	}

	res.FromModel(order)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOrderRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	order, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldStatus)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return failure.NotFound("order not found") // nolint:wrapcheck
	}

	if order.Status == model.StatusDone || order.Status == model.StatusCancelled {
		return failure.BadRequestFromString("closed orders cannot be edited") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update order")

		return fmt.Errorf("failed to update order: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) SetStatus(ctx context.Context, req dto.SetOrderStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	order, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldStatus)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return failure.NotFound("order not found") // nolint:wrapcheck
	}

	if !model.CanTransition(order.Status, req.Status) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot move order from %s to %s", order.Status, req.Status)) // nolint:wrapcheck
	}

	update := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to update order status")

		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if order exists: %w", err)
	}

	if !exist {
		return failure.NotFound("order not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete order")

		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGetOrder, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete order cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, model.CacheCountOrder)
	}()
}
