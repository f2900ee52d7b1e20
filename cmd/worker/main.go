package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"flightbook/config"
	"flightbook/internal/email"
	"flightbook/internal/kafka"
	"flightbook/internal/metrics"
	"flightbook/pkg/logger"

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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logg)
	defer consumer.Close()

	sender := email.NewSender(logg)

	logg.Info().Str("topic", cfg.Kafka.NotificationsTopic).Msg("notification worker started")

	err = consumer.Consume(ctx, func(ctx context.Context, event kafka.NotificationEvent) error {
		if err := sender.Send(ctx, event); err != nil {
			// Delivery failure must not wedge the consumer.
			metrics.NotificationsFailed.Inc()
			logg.Error().Err(err).Str("to", event.Email).Msg("send notification")
			return nil
		}
		metrics.NotificationsSent.Inc()
		return nil
	})
	if err != nil && ctx.Err() == nil {
		logg.Fatal().Err(err).Msg("consumer stopped")
	}
	logg.Info().Msg("notification worker stopped")
}
