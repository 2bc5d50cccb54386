package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindInterview Kind = "interview"
	KindVoice     Kind = "voice"
	KindQuiz      Kind = "quiz"
	KindChat      Kind = "chat"
)

// ChatHistoryLimit caps stored chat sessions per user. Oldest entries are
// evicted first once the cap is exceeded.
const ChatHistoryLimit = 20

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is an immutable history record appended when a feature session
// ends. Records are never updated or reordered.
type Session struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Kind      Kind      `json:"kind"`
	Messages  []Message `json:"messages"`
	Summary   string    `json:"summary,omitempty"`
	Score     *int      `json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Append(ctx context.Context, s *Session) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, kind Kind, limit, offset int) ([]*Session, error)
	// EvictBeyond deletes the oldest sessions of the given kind so that at
	// most keep remain.
	EvictBeyond(ctx context.Context, ownerID uuid.UUID, kind Kind, keep int) error
}
