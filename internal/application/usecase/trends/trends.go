package trends

import (
	"context"
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

type RefreshTrendsUseCase struct {
	llm         service.LLMService
	profileRepo profile.Repository
	events      eventPublisher
	logger      logger.Logger
}

func NewRefreshTrendsUseCase(llm service.LLMService, pr profile.Repository, events eventPublisher, log logger.Logger) *RefreshTrendsUseCase {
	return &RefreshTrendsUseCase{llm: llm, profileRepo: pr, events: events, logger: log}
}

type RefreshInput struct {
	OwnerID uuid.UUID
}

type RefreshOutput struct {
	Trends []profile.Trend
}

// Execute replaces the stored trends with a fresh web-grounded set. On
// gateway failure the stored trends are left untouched.
func (uc *RefreshTrendsUseCase) Execute(ctx context.Context, input RefreshInput) (*RefreshOutput, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	trends, err := uc.llm.GenerateTrends(ctx, p.TargetRole)
	if err != nil {
		uc.logger.Error("Trend refresh failed", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewBadGateway("failed to fetch industry trends", err)
	}

	now := time.Now().UTC()
	p.Trends = trends
	p.UpdatedAt = now

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	if err := uc.events.PublishProfileEvent(ctx, event.ProfileEventPayload{
		EventType:  event.ProfileEventUpdated,
		OwnerID:    input.OwnerID,
		OccurredAt: now,
	}); err != nil {
		uc.logger.Warn("Failed to publish profile event", zap.Error(err))
	}

	return &RefreshOutput{Trends: trends}, nil
}
