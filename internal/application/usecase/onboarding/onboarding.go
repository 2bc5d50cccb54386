package onboarding

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/darshil-dcis/career-copilot-api/adapters/event"
	"github.com/darshil-dcis/career-copilot-api/internal/application/service"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

type eventPublisher interface {
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
}

type OnboardingUseCase struct {
	profileRepo profile.Repository
	llm         service.LLMService
	events      eventPublisher
	logger      logger.Logger
}

func NewOnboardingUseCase(repo profile.Repository, llm service.LLMService, events eventPublisher, log logger.Logger) *OnboardingUseCase {
	return &OnboardingUseCase{
		profileRepo: repo,
		llm:         llm,
		events:      events,
		logger:      log,
	}
}

type OnboardingInput struct {
	OwnerID    uuid.UUID
	Name       string
	TargetRole string
	Background string
	Bio        string
	Location   string
}

type OnboardingOutput struct {
	Profile *profile.Profile
}

// Execute generates the initial skill map, roadmap and project suggestions
// from the user's free-text background and creates the profile row. A user
// who already has a profile cannot onboard twice.
func (uc *OnboardingUseCase) Execute(ctx context.Context, input OnboardingInput) (*OnboardingOutput, error) {
	if strings.TrimSpace(input.TargetRole) == "" || strings.TrimSpace(input.Background) == "" {
		return nil, apperror.NewInvalidInput("target role and background are required", nil)
	}

	existing, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflict("profile", "owner_id", input.OwnerID.String())
	}

	plan, err := uc.llm.GenerateCareerPlan(ctx, input.Background, input.TargetRole)
	if err != nil {
		uc.logger.Error("Career plan generation failed", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewBadGateway("career plan generation failed", err)
	}

	now := time.Now().UTC()
	p := &profile.Profile{
		OwnerID:    input.OwnerID,
		Name:       input.Name,
		TargetRole: input.TargetRole,
		Bio:        input.Bio,
		Location:   input.Location,
		Skills:     plan.Skills,
		Roadmap:    plan.Roadmap,
		Projects:   plan.Projects,
		UpdatedAt:  now,
	}
	p.Achievements = profile.EvaluateAchievements(p, now)

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	if err := uc.events.PublishProfileEvent(ctx, event.ProfileEventPayload{
		EventType:  event.ProfileEventUpdated,
		OwnerID:    p.OwnerID,
		OccurredAt: now,
	}); err != nil {
		uc.logger.Warn("Failed to publish profile event", zap.Error(err))
	}

	return &OnboardingOutput{Profile: p}, nil
}
