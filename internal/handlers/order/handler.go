package order

import (
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/order/model"
	"frontdesk/internal/domains/order/model/dto"
	"frontdesk/internal/domains/order/service"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Order
	otel    otel.Otel
}

func New(service service.Order, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/orders", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOrder)
		routerGroup.Get("/", handler.GetOrders)
		routerGroup.Get("/{id}", handler.GetOrderByID)
		routerGroup.Patch("/{id}", handler.UpdateOrder)
		routerGroup.Patch("/{id}/status", handler.SetOrderStatus)
		routerGroup.Delete("/{id}", handler.DeleteOrder)
	})
}

// CreateOrder
// @Summary Create a service order or reminder
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Order"
// @Success 201 {object} response.Data[gDto.CreatedResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/orders [post]
// @Security BearerAuth
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrder")
	defer scope.End()

	var req dto.CreateOrderRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req, model.SourceStaff)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, gDto.CreatedResponse{ID: id})
}

// GetOrders
// @Summary Get all orders
// @Tags Order
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking"
// @Param room_id query string false "Filter by room"
// @Param kind query string false "Filter by kind" Enums(service, reminder)
// @Param status query string false "Filter by status" Enums(pending, in_progress, done, cancelled)
// @Param source query string false "Filter by source" Enums(staff, bot)
// @Success 200 {object} response.Data[dto.GetOrdersResponse]
// @Router /v1/orders [get]
// @Security BearerAuth
func (handler *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldBookingID, model.FieldRoomID, model.FieldKind, model.FieldStatus, model.FieldSource} {
		value := r.URL.Query().Get(field)
		if value == "" {
			continue
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	orders, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get orders")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, orders)
}

// GetOrderByID
// @Summary Get an order by ID
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrderByID")
	defer scope.End()

	order, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, order)
}

// UpdateOrder
// @Summary Update an open order
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateOrderRequest true "Fields to change"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrder")
	defer scope.End()

	var req dto.UpdateOrderRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Order updated successfully")
}

// SetOrderStatus
// @Summary Move an order through its workflow
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.SetOrderStatusRequest true "Status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetOrderStatus")
	defer scope.End()

	var req dto.SetOrderStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetStatus(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set order status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Order status updated successfully")
}

// DeleteOrder
// @Summary Delete an order
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOrder")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete order")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Order deleted successfully")
}
