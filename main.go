package main

import (
	"os"
	"os/signal"
	"syscall"

	"chatroom/internal/config"
	"chatroom/internal/database"
	"chatroom/internal/logger"
	"chatroom/internal/metrics"
	"chatroom/internal/server"
	"chatroom/internal/services"
	"chatroom/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, log)
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeEvents(func(e rabbitmq.Event) error {
			log.WithFields(logrus.Fields{
				"event":       e.Type,
				"occurred_at": e.OccurredAt,
				"payload":     string(e.Payload),
			}).Info("chat event received")
			return nil
		}); err != nil {
			log.WithError(err).Warn("Failed to start RabbitMQ consumer")
		}
	} else {
		log.Info("RABBITMQ_URL not set, event publishing disabled")
	}

	app := server.NewApp(server.Deps{
		Config:    cfg,
		DB:        db,
		Log:       log,
		Metrics:   metrics.New(),
		Publisher: publisher,
	})

	// --- Start HTTP Server ---
	log.WithField("addr", cfg.AppPort).Info("Starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	log.Info("Server gracefully stopped")
}
