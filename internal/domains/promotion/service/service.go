package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/promotion/model"
	"frontdesk/internal/domains/promotion/model/dto"
	"frontdesk/internal/domains/promotion/repository"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	gRepo "frontdesk/shared/repository"

	"github.com/rs/zerolog/log"
)

type Promotion interface {
	Create(ctx context.Context, req dto.CreatePromotionRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPromotionsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PromotionResponse, error)
	Update(ctx context.Context, req dto.UpdatePromotionRequest, id string) error
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, code string, amount float64, at time.Time) (float64, error)
}

type serviceImpl struct {
	repo  repository.Promotion
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Promotion, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Promotion {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func codeFilter(code string) gDto.FilterGroup {
	return shared.FilterByID(dto.NormalizeCode(code), model.FieldCode, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePromotionRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, codeFilter(req.Code))
	if err != nil {
		return id, fmt.Errorf("failed to check promotion code: %w", err)
	}

	if exist {
		return id, failure.Conflict("promotion code already exists") // nolint:wrapcheck
	}

	promotion := req.ToModel(user)

	if err = s.repo.Insert(ctx, promotion); err != nil {
		log.Error().Err(err).Msg("failed to create promotion")

		if gRepo.IsUniqueViolation(err) {
			return id, failure.Conflict("promotion code already exists") // nolint:wrapcheck
		}

		return id, fmt.Errorf("failed to create promotion: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllPromotion)
		shared.InvalidateCaches(c, s.cache, model.CacheCountPromotion)
	}()

	return promotion.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPromotionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllPromotion, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count promotions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotions")

		return res, fmt.Errorf("failed to get promotions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save promotions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCountPromotion, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count promotions: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save promotion count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGetPromotion, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	promotion, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get promotion: %w", err)
	}

	if promotion.ID == constant.Empty {
		return res, failure.NotFound("promotion not found") // nolint:wrapcheck
	}

	res.FromModel(promotion)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save promotion to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePromotionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldValidFrom, model.FieldValidUntil)
	if err != nil {
		return fmt.Errorf("failed to get promotion: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("promotion not found") // nolint:wrapcheck
	}

	from, until := current.ValidFrom, current.ValidUntil
	if req.ValidFrom != nil {
		from = *req.ValidFrom
	}

	if req.ValidUntil != nil {
		until = *req.ValidUntil
	}

	if !until.After(from) {
		return failure.BadRequestFromString("valid_until must be after valid_from") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update promotion")

		return fmt.Errorf("failed to update promotion: %w", err)
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
		return fmt.Errorf("failed to check if promotion exists: %w", err)
	}

	if !exist {
		return failure.NotFound("promotion not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete promotion")

		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Apply returns amount discounted by the promotion behind code, evaluated at the given instant.
func (s *serviceImpl) Apply(ctx context.Context, code string, amount float64, at time.Time) (res float64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Apply")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("promotion.code", code)

	promotion, err := s.repo.Get(ctx, codeFilter(code))
	if err != nil {
		return res, fmt.Errorf("failed to get promotion: %w", err)
	}

	if promotion.ID == constant.Empty || !promotion.ValidAt(at) {
		return res, failure.BadRequestFromString("promotion code is not valid") // nolint:wrapcheck
	}

	return promotion.Discount(amount), nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGetPromotion, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete promotion cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllPromotion)
		shared.InvalidateCaches(c, s.cache, model.CacheCountPromotion)
	}()
}
