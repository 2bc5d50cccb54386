package project

import (
	"context"
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

type UpdateProjectUseCase struct {
	profileRepo profile.Repository
	events      eventPublisher
	logger      logger.Logger
}

func NewUpdateProjectUseCase(repo profile.Repository, events eventPublisher, log logger.Logger) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{profileRepo: repo, events: events, logger: log}
}

// UpdateProjectInput updates the tracked state of one suggested project.
// Status transitions are free-form; xp bookkeeping reacts only to entering
// or leaving Completed.
type UpdateProjectInput struct {
	OwnerID   uuid.UUID
	ProjectID uuid.UUID
	Status    *profile.ProjectStatus
	Notes     *string
}

type UpdateProjectOutput struct {
	Profile *profile.Profile
	XPDelta int
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectOutput, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	var target *profile.Project
	for i := range p.Projects {
		if p.Projects[i].ID == input.ProjectID {
			target = &p.Projects[i]
			break
		}
	}
	if target == nil {
		return nil, apperror.NewNotFound("project", input.ProjectID.String())
	}

	delta := 0
	if input.Status != nil {
		newStatus := *input.Status
		switch newStatus {
		case profile.StatusNotStarted, profile.StatusInProgress, profile.StatusCompleted:
		default:
			return nil, apperror.NewInvalidInput("unknown project status", nil)
		}

		wasCompleted := target.Status == profile.StatusCompleted
		isCompleted := newStatus == profile.StatusCompleted
		if isCompleted && !wasCompleted {
			delta = target.XPReward
		}
		if wasCompleted && !isCompleted {
			delta = -target.XPReward
		}
		target.Status = newStatus
	}
	if input.Notes != nil {
		target.Notes = *input.Notes
	}

	if delta != 0 {
		p.AddXP(delta)
	}

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

	return &UpdateProjectOutput{Profile: p, XPDelta: delta}, nil
}
