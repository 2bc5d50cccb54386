package history

import (
	"context"

	"github.com/google/uuid"

	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
)

type ListSessionsUseCase struct {
	sessionRepo session.Repository
}

func NewListSessionsUseCase(sr session.Repository) *ListSessionsUseCase {
	return &ListSessionsUseCase{sessionRepo: sr}
}

type ListInput struct {
	OwnerID uuid.UUID
	// Kind filters by session type; empty lists everything.
	Kind   session.Kind
	Limit  int
	Offset int
}

type ListOutput struct {
	Sessions []*session.Session
}

func (uc *ListSessionsUseCase) Execute(ctx context.Context, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	sessions, err := uc.sessionRepo.ListByOwner(ctx, input.OwnerID, input.Kind, limit, input.Offset)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Sessions: sessions}, nil
}
