package analytics

import (
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/analytics/service"
	"frontdesk/shared/constant"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/analytics/summary", handler.GetSummary)
}

// GetSummary returns the dashboard figures for today.
// @Summary Dashboard summary
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Data[model.Summary]
// @Failure 500 {object} response.Error
// @Router /v1/analytics/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build analytics summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}
