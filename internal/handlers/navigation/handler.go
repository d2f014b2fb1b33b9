package navigation

import (
	"net/http"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/navigation"
	"frontdesk/shared/constant"
	"frontdesk/shared/role"
	"frontdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	menu navigation.Menu
	otel otel.Otel
}

func New(menu navigation.Menu, otel otel.Otel) Handler {
	return Handler{
		menu: menu,
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/navigation", handler.GetNavigation)
}

// GetNavigation returns the sidebar groups visible to the caller's roles.
// @Summary Get the sidebar menu
// @Tags Navigation
// @Produce json
// @Success 200 {object} response.Data[[]navigation.MenuGroup]
// @Failure 401 {object} response.Error
// @Router /v1/navigation [get]
// @Security BearerAuth
func (handler *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNavigation")
	defer scope.End()

	granted, _ := r.Context().Value(constant.ContextKeyUserRoles).(role.Set)
	scope.SetAttribute("roles", granted.String())

	response.WithJSON(w, http.StatusOK, navigation.Filter(handler.menu, granted))
}
