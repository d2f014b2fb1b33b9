package promotion

import (
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/promotion/model"
	"frontdesk/internal/domains/promotion/model/dto"
	"frontdesk/internal/domains/promotion/service"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/timezone"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Promotion
	otel    otel.Otel
}

func New(service service.Promotion, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/promotions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePromotion)
		routerGroup.Get("/", handler.GetPromotions)
		routerGroup.Post("/apply", handler.ApplyPromotion)
		routerGroup.Get("/{id}", handler.GetPromotionByID)
		routerGroup.Patch("/{id}", handler.UpdatePromotion)
		routerGroup.Delete("/{id}", handler.DeletePromotion)
	})
}

// CreatePromotion
// @Summary Create a promotion
// @Tags Promotion
// @Accept json
// @Produce json
// @Param request body dto.CreatePromotionRequest true "Promotion"
// @Success 201 {object} response.Data[gDto.CreatedResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/promotions [post]
// @Security BearerAuth
func (handler *Handler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePromotion")
	defer scope.End()

	var req dto.CreatePromotionRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create promotion")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, gDto.CreatedResponse{ID: id})
}

// GetPromotions
// @Summary Get all promotions
// @Tags Promotion
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param code query string false "Filter by code"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetPromotionsResponse]
// @Router /v1/promotions [get]
// @Security BearerAuth
func (handler *Handler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromotions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Operator: gDto.FilterOperatorLike,
				Value:    dto.NormalizeCode(r.URL.Query().Get(model.FieldCode)),
				Table:    model.TableName,
			},
		},
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	promotions, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promotions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, promotions)
}

// ApplyPromotion quotes the discounted amount for a code at the current time.
// @Summary Apply a promotion code
// @Tags Promotion
// @Accept json
// @Produce json
// @Param request body dto.ApplyPromotionRequest true "Code and amount"
// @Success 200 {object} response.Data[dto.ApplyPromotionResponse]
// @Failure 400 {object} response.Error
// @Router /v1/promotions/apply [post]
// @Security BearerAuth
func (handler *Handler) ApplyPromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyPromotion")
	defer scope.End()

	var req dto.ApplyPromotionRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	discounted, err := handler.service.Apply(ctx, req.Code, req.Amount, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply promotion")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.ApplyPromotionResponse{
		Code:       dto.NormalizeCode(req.Code),
		Amount:     req.Amount,
		Discounted: discounted,
	})
}

// GetPromotionByID
// @Summary Get a promotion by ID
// @Tags Promotion
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Data[dto.PromotionResponse]
// @Failure 404 {object} response.Error
// @Router /v1/promotions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPromotionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromotionByID")
	defer scope.End()

	promotion, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promotion")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, promotion)
}

// UpdatePromotion
// @Summary Update a promotion
// @Tags Promotion
// @Accept json
// @Produce json
// @Param id path string true "Promotion ID"
// @Param request body dto.UpdatePromotionRequest true "Fields to change"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/promotions/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePromotion")
	defer scope.End()

	var req dto.UpdatePromotionRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update promotion")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Promotion updated successfully")
}

// DeletePromotion
// @Summary Delete a promotion
// @Tags Promotion
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/promotions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePromotion")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete promotion")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Promotion deleted successfully")
}
