package occupancy

import (
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/occupancy/model"
	"frontdesk/internal/domains/occupancy/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ReconcileResponse struct {
	RoomID  string        `json:"room_id"`
	Outcome model.Outcome `json:"outcome"`
}

type ReconcileAllResponse struct {
	Outcomes map[model.Outcome]int `json:"outcomes"`
}

type Handler struct {
	service service.Occupancy
	otel    otel.Otel
}

func New(service service.Occupancy, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/occupancy", func(routerGroup chi.Router) {
		routerGroup.Post("/reconcile", handler.ReconcileAll)
		routerGroup.Post("/rooms/{id}/reconcile", handler.Reconcile)
	})
}

// Reconcile
// @Summary Reconcile the status of one room with its bookings
// @Tags Occupancy
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[ReconcileResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/occupancy/rooms/{id}/reconcile [post]
// @Security BearerAuth
func (handler *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reconcile")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamID)

	outcome, err := handler.service.Reconcile(ctx, roomID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to reconcile room")

		response.WithError(w, err)

		return
	}

	if outcome == model.OutcomeNotFound {
		response.WithError(w, failure.NotFound("room not found"))

		return
	}

	response.WithJSON(w, http.StatusOK, ReconcileResponse{RoomID: roomID, Outcome: outcome})
}

// ReconcileAll
// @Summary Reconcile every room
// @Description Every room is attempted. Any failed room turns the response into an error, rooms already reconciled keep their status.
// @Tags Occupancy
// @Produce json
// @Success 200 {object} response.Data[ReconcileAllResponse]
// @Failure 500 {object} response.Error
// @Router /v1/occupancy/reconcile [post]
// @Security BearerAuth
func (handler *Handler) ReconcileAll(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReconcileAll")
	defer scope.End()

	outcomes, err := handler.service.ReconcileAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, ReconcileAllResponse{Outcomes: outcomes})
}
