//go:build wireinject
// +build wireinject

package di

import (
	"frontdesk/config"
	"frontdesk/infras/jwt"
	"frontdesk/infras/kafka"
	"frontdesk/infras/metrics"
	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/infras/redis"
	"frontdesk/infras/s3"
	"frontdesk/internal/domains/navigation"
	"frontdesk/jobs"
	"frontdesk/permissions"
	"frontdesk/shared/cache"
	"frontdesk/transport/http"
	"frontdesk/transport/http/middleware"
	"frontdesk/transport/http/router"

	"github.com/google/wire"

	analyticsRepository "frontdesk/internal/domains/analytics/repository"
	analyticsService "frontdesk/internal/domains/analytics/service"
	authService "frontdesk/internal/domains/auth/service"
	bookingRepository "frontdesk/internal/domains/booking/repository"
	bookingService "frontdesk/internal/domains/booking/service"
	customerRepository "frontdesk/internal/domains/customer/repository"
	customerService "frontdesk/internal/domains/customer/service"
	occupancyService "frontdesk/internal/domains/occupancy/service"
	orderRepository "frontdesk/internal/domains/order/repository"
	orderService "frontdesk/internal/domains/order/service"
	paymentRepository "frontdesk/internal/domains/payment/repository"
	paymentService "frontdesk/internal/domains/payment/service"
	promotionRepository "frontdesk/internal/domains/promotion/repository"
	promotionService "frontdesk/internal/domains/promotion/service"
	reviewRepository "frontdesk/internal/domains/review/repository"
	reviewService "frontdesk/internal/domains/review/service"
	roomRepository "frontdesk/internal/domains/room/repository"
	roomService "frontdesk/internal/domains/room/service"
	userRepository "frontdesk/internal/domains/user/repository"
	userService "frontdesk/internal/domains/user/service"

	analyticsHandler "frontdesk/internal/handlers/analytics"
	authHandler "frontdesk/internal/handlers/auth"
	bookingHandler "frontdesk/internal/handlers/booking"
	customerHandler "frontdesk/internal/handlers/customer"
	navigationHandler "frontdesk/internal/handlers/navigation"
	occupancyHandler "frontdesk/internal/handlers/occupancy"
	orderHandler "frontdesk/internal/handlers/order"
	paymentHandler "frontdesk/internal/handlers/payment"
	promotionHandler "frontdesk/internal/handlers/promotion"
	reviewHandler "frontdesk/internal/handlers/review"
	roomHandler "frontdesk/internal/handlers/room"
	userHandler "frontdesk/internal/handlers/user"
	webhookHandler "frontdesk/internal/handlers/webhook"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
	navigation.Load,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	metrics.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	userRepository.New,
	roomRepository.New,
	customerRepository.New,
	bookingRepository.New,
	orderRepository.New,
	paymentRepository.New,
	promotionRepository.New,
	reviewRepository.New,
	analyticsRepository.New,
)

var domains = wire.NewSet(
	repositories,
	authService.New,
	userService.New,
	occupancyService.New,
	roomService.New,
	customerService.New,
	promotionService.New,
	bookingService.New,
	orderService.New,
	paymentService.New,
	reviewService.New,
	analyticsService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	customerHandler.New,
	orderHandler.New,
	paymentHandler.New,
	promotionHandler.New,
	reviewHandler.New,
	analyticsHandler.New,
	occupancyHandler.New,
	navigationHandler.New,
	webhookHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		jobs.New,
		jobs.NewBotOrderConsumer,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeScheduler() (*jobs.Scheduler, error) {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		metrics.New,
		kafka.New,
		sharedHelpers,
		roomRepository.New,
		bookingRepository.New,
		occupancyService.New,
		jobs.New,
	)

	return &jobs.Scheduler{}, nil
}
