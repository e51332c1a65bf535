//go:build wireinject
// +build wireinject

package di

import (
	"resto/config"
	"resto/infras/jwt"
	"resto/infras/kafka"
	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/infras/redis"
	"resto/infras/s3"
	"resto/internal/events"
	"resto/shared/cache"
	"resto/transport/http"
	"resto/transport/http/middleware"
	"resto/transport/http/router"

	authService "resto/internal/domains/auth/service"
	availabilityService "resto/internal/domains/availability/service"
	bookingRepository "resto/internal/domains/booking/repository"
	bookingService "resto/internal/domains/booking/service"
	dashboardService "resto/internal/domains/dashboard/service"
	menuRepository "resto/internal/domains/menu/repository"
	menuService "resto/internal/domains/menu/service"
	orderRepository "resto/internal/domains/order/repository"
	orderService "resto/internal/domains/order/service"
	paymentRepository "resto/internal/domains/payment/repository"
	paymentService "resto/internal/domains/payment/service"
	tableRepository "resto/internal/domains/table/repository"
	tableService "resto/internal/domains/table/service"
	userRepository "resto/internal/domains/user/repository"

	authHandler "resto/internal/handlers/auth"
	availabilityHandler "resto/internal/handlers/availability"
	bookingHandler "resto/internal/handlers/booking"
	dashboardHandler "resto/internal/handlers/dashboard"
	menuHandler "resto/internal/handlers/menu"
	orderHandler "resto/internal/handlers/order"
	paymentHandler "resto/internal/handlers/payment"
	tableHandler "resto/internal/handlers/table"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.NewPublisher,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var menuDomain = wire.NewSet(
	menuRepository.NewCategory,
	menuRepository.NewItem,
	menuService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
)

var domains = wire.NewSet(
	authDomain,
	tableDomain,
	availabilityDomain,
	bookingDomain,
	menuDomain,
	orderDomain,
	paymentDomain,
	dashboardDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	tableHandler.New,
	availabilityHandler.New,
	bookingHandler.New,
	menuHandler.New,
	orderHandler.New,
	paymentHandler.New,
	dashboardHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
