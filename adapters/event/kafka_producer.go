package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/darshil-dcis/career-copilot-api/internal/config"
)

const (
	TopicProfileEvents = "profile.events"
	TopicSessionEvents = "session.events"
)

const (
	ProfileEventUpdated            = "profile.updated"
	ProfileEventAchievementAwarded = "profile.achievement_awarded"
	SessionEventRecorded           = "session.recorded"
)

type ProfileEventPayload struct {
	EventType    string    `json:"event_type"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Achievements []string  `json:"achievements,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type SessionEventPayload struct {
	EventType  string    `json:"event_type"`
	OwnerID    uuid.UUID `json:"owner_id"`
	SessionID  uuid.UUID `json:"session_id"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
	SessionEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	sessionWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicSessionEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
		SessionEventsWriter: sessionWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishSessionEvent(ctx context.Context, payload SessionEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal session event: %w", err)
	}
	return c.SessionEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
	if c.SessionEventsWriter != nil {
		c.SessionEventsWriter.Close()
	}
}
