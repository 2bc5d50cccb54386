package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
)

// TranscriptStore holds the in-flight transcript of an open chat or
// interview session. It is working state, not history: the transcript moves
// to the session repository when the session ends.
type TranscriptStore interface {
	Append(ctx context.Context, kind session.Kind, ownerID uuid.UUID, m session.Message) error
	Get(ctx context.Context, kind session.Kind, ownerID uuid.UUID) ([]session.Message, error)
	Clear(ctx context.Context, kind session.Kind, ownerID uuid.UUID) error
}
