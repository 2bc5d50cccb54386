package roadmap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/darshil-dcis/career-copilot-api/adapters/event"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

type eventPublisher interface {
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
}

type ToggleStepUseCase struct {
	profileRepo profile.Repository
	events      eventPublisher
	logger      logger.Logger
}

func NewToggleStepUseCase(repo profile.Repository, events eventPublisher, log logger.Logger) *ToggleStepUseCase {
	return &ToggleStepUseCase{profileRepo: repo, events: events, logger: log}
}

type ToggleStepInput struct {
	OwnerID   uuid.UUID
	StepIndex int
	// Completed is the desired state. Setting a step to the state it is
	// already in is a no-op: no xp moves and nothing is persisted twice.
	Completed bool
}

type ToggleStepOutput struct {
	Profile *profile.Profile
	XPDelta int
}

func (uc *ToggleStepUseCase) Execute(ctx context.Context, input ToggleStepInput) (*ToggleStepOutput, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.StepIndex < 0 || input.StepIndex >= len(p.Roadmap) {
		return nil, apperror.NewInvalidInput(
			fmt.Sprintf("step index %d out of range (roadmap has %d steps)", input.StepIndex, len(p.Roadmap)), nil)
	}

	step := &p.Roadmap[input.StepIndex]
	if step.Completed == input.Completed {
		return &ToggleStepOutput{Profile: p, XPDelta: 0}, nil
	}

	delta := profile.StepXP
	if !input.Completed {
		delta = -profile.StepXP
	}
	step.Completed = input.Completed
	p.AddXP(delta)

	now := time.Now().UTC()
	p.UpdatedAt = now
	before := len(p.Achievements)
	p.Achievements = profile.EvaluateAchievements(p, now)

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	payload := event.ProfileEventPayload{
		EventType:  event.ProfileEventUpdated,
		OwnerID:    p.OwnerID,
		OccurredAt: now,
	}
	if len(p.Achievements) > before {
		payload.EventType = event.ProfileEventAchievementAwarded
		for _, a := range p.Achievements[before:] {
			payload.Achievements = append(payload.Achievements, a.ID)
		}
	}
	if err := uc.events.PublishProfileEvent(ctx, payload); err != nil {
		uc.logger.Warn("Failed to publish profile event", zap.Error(err))
	}

	return &ToggleStepOutput{Profile: p, XPDelta: delta}, nil
}
