package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
)

type GetProfileUseCase struct {
	profileRepo profile.Repository
}

func NewGetProfileUseCase(repo profile.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: repo}
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

// Execute passes not-found through untouched: an absent profile means the
// user has not finished onboarding yet.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}
