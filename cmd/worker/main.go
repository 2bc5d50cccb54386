package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/darshil-dcis/career-copilot-api/adapters/event"
	"github.com/darshil-dcis/career-copilot-api/adapters/persistence"
	profileUC "github.com/darshil-dcis/career-copilot-api/internal/application/usecase/profile"
	"github.com/darshil-dcis/career-copilot-api/internal/config"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Career Copilot worker...")

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	processProfileEventUC := profileUC.NewProcessProfileEventUseCase(profileRepo, appLogger)

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  "profile-repair-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicProfileEvents))

	ctx := context.Background()
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.ProfileEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal event, skipping", err, zap.String("key", string(msg.Key)))
			commitMessage(appLogger, consumer, msg)
			continue
		}

		if err := processProfileEventUC.Execute(ctx, payload); err != nil {
			appLogger.Error("Failed to process profile event", err,
				zap.String("event_type", payload.EventType),
				zap.String("owner_id", payload.OwnerID.String()),
			)
			continue
		}

		commitMessage(appLogger, consumer, msg)
	}
}

func commitMessage(appLogger logger.Logger, consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		appLogger.Error("Failed to commit message", err)
	}
}
