package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/darshil-dcis/career-copilot-api/internal/application/service"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
)

// Open transcripts expire on their own if the user never ends the session.
const transcriptTTL = 24 * time.Hour

type redisTranscriptStore struct {
	rdb *redis.Client
}

func NewRedisTranscriptStore(rdb *redis.Client) service.TranscriptStore {
	return &redisTranscriptStore{rdb: rdb}
}

func transcriptKey(kind session.Kind, ownerID uuid.UUID) string {
	return fmt.Sprintf("transcript:%s:%s", kind, ownerID)
}

func (s *redisTranscriptStore) Append(ctx context.Context, kind session.Kind, ownerID uuid.UUID, m session.Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return apperror.NewInternal("failed to marshal transcript message", err)
	}

	key := transcriptKey(kind, ownerID)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, transcriptTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperror.NewInternal("failed to append transcript message", err)
	}
	return nil
}

func (s *redisTranscriptStore) Get(ctx context.Context, kind session.Kind, ownerID uuid.UUID) ([]session.Message, error) {
	raw, err := s.rdb.LRange(ctx, transcriptKey(kind, ownerID), 0, -1).Result()
	if err != nil {
		return nil, apperror.NewInternal("failed to read transcript", err)
	}

	messages := make([]session.Message, 0, len(raw))
	for _, item := range raw {
		var m session.Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (s *redisTranscriptStore) Clear(ctx context.Context, kind session.Kind, ownerID uuid.UUID) error {
	if err := s.rdb.Del(ctx, transcriptKey(kind, ownerID)).Err(); err != nil {
		return apperror.NewInternal("failed to clear transcript", err)
	}
	return nil
}
