//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/infras/websocket"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/shared/event"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"

	amenityRepository "hotel/internal/domains/amenity/repository"
	amenityService "hotel/internal/domains/amenity/service"
	authService "hotel/internal/domains/auth/service"
	billingRepository "hotel/internal/domains/billing/repository"
	billingService "hotel/internal/domains/billing/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	feedbackRepository "hotel/internal/domains/feedback/repository"
	feedbackService "hotel/internal/domains/feedback/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"
	amenityHandler "hotel/internal/handlers/amenity"
	authHandler "hotel/internal/handlers/auth"
	billingHandler "hotel/internal/handlers/billing"
	bookingHandler "hotel/internal/handlers/booking"
	feedbackHandler "hotel/internal/handlers/feedback"
	roomHandler "hotel/internal/handlers/room"
	userHandler "hotel/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	websocket.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userRepository.NewCustomer,
	userRepository.NewStaff,
	userService.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewType,
	roomService.New,
	roomService.NewTypeRoom,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewDetail,
	bookingService.NewAvailability,
	bookingService.New,
)

var amenityDomain = wire.NewSet(
	amenityRepository.New,
	amenityRepository.NewDetail,
	amenityService.New,
)

var billingDomain = wire.NewSet(
	billingRepository.New,
	billingRepository.NewDiscount,
	billingService.New,
	billingService.NewDiscount,
)

var feedbackDomain = wire.NewSet(
	feedbackRepository.New,
	feedbackService.New,
)

var domains = wire.NewSet(
	userDomain,
	roomDomain,
	bookingDomain,
	amenityDomain,
	billingDomain,
	feedbackDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	amenityHandler.New,
	billingHandler.New,
	feedbackHandler.New,
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
