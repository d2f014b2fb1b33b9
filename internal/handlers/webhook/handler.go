// Package webhook receives requests from the guest messaging bot. The bot
// addresses rooms by number and is authenticated with the application API key.
package webhook

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
	orders service.Order
	otel   otel.Otel
}

func New(orders service.Order, otel otel.Otel) Handler {
	return Handler{
		orders: orders,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/webhooks", func(routerGroup chi.Router) {
		routerGroup.Post("/orders", handler.CreateOrder)
		routerGroup.Post("/reminders", handler.CreateReminder)
	})
}

// CreateOrder
// @Summary Relay a guest service request
// @Description The room number resolves to the booking currently checked in to that room.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param request body dto.BotOrderRequest true "Service request"
// @Success 201 {object} response.Data[gDto.CreatedResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/webhooks/orders [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WebhookCreateOrder")
	defer scope.End()

	var req dto.BotOrderRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate bot order")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("room_number", req.RoomNumber)

	id, err := handler.orders.Create(ctx, req.ToCreateRequest(), model.SourceBot)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_number", req.RoomNumber).Msg("failed to create bot order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, gDto.CreatedResponse{ID: id})
}

// CreateReminder
// @Summary Relay a guest reminder such as a wake-up call
// @Tags Webhook
// @Accept json
// @Produce json
// @Param request body dto.BotReminderRequest true "Reminder"
// @Success 201 {object} response.Data[gDto.CreatedResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/webhooks/reminders [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WebhookCreateReminder")
	defer scope.End()

	var req dto.BotReminderRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate bot reminder")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("room_number", req.RoomNumber)

	id, err := handler.orders.Create(ctx, req.ToCreateRequest(), model.SourceBot)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_number", req.RoomNumber).Msg("failed to create bot reminder")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, gDto.CreatedResponse{ID: id})
}
