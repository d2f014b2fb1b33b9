package router

import (
	"net/http"

	"frontdesk/config"
	"frontdesk/infras/metrics"
	"frontdesk/internal/handlers/analytics"
	"frontdesk/internal/handlers/auth"
	"frontdesk/internal/handlers/booking"
	"frontdesk/internal/handlers/customer"
	"frontdesk/internal/handlers/navigation"
	"frontdesk/internal/handlers/occupancy"
	"frontdesk/internal/handlers/order"
	"frontdesk/internal/handlers/payment"
	"frontdesk/internal/handlers/promotion"
	"frontdesk/internal/handlers/review"
	"frontdesk/internal/handlers/room"
	"frontdesk/internal/handlers/user"
	"frontdesk/internal/handlers/webhook"
	"frontdesk/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth       auth.Handler
	User       user.Handler
	Room       room.Handler
	Booking    booking.Handler
	Customer   customer.Handler
	Order      order.Handler
	Payment    payment.Handler
	Promotion  promotion.Handler
	Review     review.Handler
	Analytics  analytics.Handler
	Occupancy  occupancy.Handler
	Navigation navigation.Handler
	Webhook    webhook.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	authRole       middleware.AuthRole
	metrics        *metrics.Metrics
	cfg            *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
		r.app.Tracing,
		r.app.Metrics,
	)

	if r.cfg.Metrics.Enable {
		router.Method(http.MethodGet, r.cfg.Metrics.Path, r.metrics.Handler())
	}

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.app.RateLimit())

		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(bot chi.Router) {
			bot.Use(r.authRole.APIKey)

			r.DomainHandlers.Webhook.Router(bot)
		})

		routerGroup.Group(func(staff chi.Router) {
			staff.Use(r.authRole.Auth, r.authRole.RBAC)

			r.DomainHandlers.Auth.ProtectedRouter(staff)
			r.DomainHandlers.Navigation.Router(staff)
			r.DomainHandlers.User.Router(staff)
			r.DomainHandlers.Room.Router(staff)
			r.DomainHandlers.Booking.Router(staff)
			r.DomainHandlers.Customer.Router(staff)
			r.DomainHandlers.Order.Router(staff)
			r.DomainHandlers.Payment.Router(staff)
			r.DomainHandlers.Promotion.Router(staff)
			r.DomainHandlers.Review.Router(staff)
			r.DomainHandlers.Analytics.Router(staff)
			r.DomainHandlers.Occupancy.Router(staff)
		})
	})
}

func New(
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	authRole middleware.AuthRole,
	metrics *metrics.Metrics,
	cfg *config.Config,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		authRole:       authRole,
		metrics:        metrics,
		cfg:            cfg,
	}
}
