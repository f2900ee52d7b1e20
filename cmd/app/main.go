package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightbook/api"
	"flightbook/config"
	"flightbook/internal/auth"
	"flightbook/internal/bootstrap"
	"flightbook/internal/cache"
	"flightbook/internal/kafka"
	"flightbook/internal/repository"
	"flightbook/internal/service/booking"
	"flightbook/internal/service/flights"
	"flightbook/internal/service/users"
	"flightbook/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg := logger.New(cfg.Log.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logg.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tokens := auth.NewTokenManager(
		cfg.Auth.Secret,
		time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTTLMinutes)*time.Minute,
	)

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(bookingRepo, flightRepo, producer, cfg.Kafka.NotificationsTopic, logg)
	userService := users.NewUserService(userRepo, tokens, producer, cfg.Kafka.NotificationsTopic, logg)

	router := api.SetupRouter(logg, tokens, flightService, bookingService, userService, userRepo)

	logg.Info().Str("address", cfg.HTTP.Address).Msg("starting server")
	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		logg.Fatal().Err(err).Msg("server error")
	}
}
