package profile

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/darshil-dcis/career-copilot-api/adapters/event"
	"github.com/darshil-dcis/career-copilot-api/internal/application/service"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"

	"github.com/google/uuid"
)

type eventPublisher interface {
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
}

type UpdateProfileUseCase struct {
	profileRepo profile.Repository
	llm         service.LLMService
	events      eventPublisher
	logger      logger.Logger
}

func NewUpdateProfileUseCase(repo profile.Repository, llm service.LLMService, events eventPublisher, log logger.Logger) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		profileRepo: repo,
		llm:         llm,
		events:      events,
		logger:      log,
	}
}

// UpdateProfileInput is a partial update; nil fields are left unchanged.
type UpdateProfileInput struct {
	OwnerID    uuid.UUID
	Name       *string
	TargetRole *string
	Bio        *string
	Location   *string
	Streak     *int
	// ConfirmRoleChange must be set when TargetRole differs from the stored
	// role. Changing the role discards the current roadmap, projects and
	// trends, so the client has to opt in explicitly.
	ConfirmRoleChange bool
}

type UpdateProfileOutput struct {
	Profile     *profile.Profile
	Regenerated bool
}

// Execute merges the partial update, regenerates derived content when the
// target role changed, recomputes achievements and persists. The three
// regeneration calls run concurrently and commit as a unit: if any of them
// fails, nothing is persisted and the stored profile stays as it was.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	current, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if input.Name != nil {
		updated.Name = *input.Name
	}
	if input.Bio != nil {
		updated.Bio = *input.Bio
	}
	if input.Location != nil {
		updated.Location = *input.Location
	}
	if input.Streak != nil {
		updated.Streak = *input.Streak
	}

	roleChanged := false
	if input.TargetRole != nil {
		newRole := strings.TrimSpace(*input.TargetRole)
		if newRole == "" {
			return nil, apperror.NewInvalidInput("target role must not be empty", nil)
		}
		if newRole != current.TargetRole {
			if !input.ConfirmRoleChange {
				return nil, apperror.NewAppError(apperror.ErrConflict,
					"Role change requires confirmation",
					"changing the target role discards the current roadmap, projects and trends",
					nil)
			}
			roleChanged = true
			updated.TargetRole = newRole
		}
	}

	if roleChanged {
		if err := uc.regenerate(ctx, &updated); err != nil {
			uc.logger.Error("Regeneration after role change failed", err,
				zap.String("owner_id", input.OwnerID.String()),
				zap.String("target_role", updated.TargetRole),
			)
			return nil, apperror.NewBadGateway("failed to regenerate content for new role", err)
		}
	}

	now := time.Now().UTC()
	updated.UpdatedAt = now
	before := len(updated.Achievements)
	updated.Achievements = profile.EvaluateAchievements(&updated, now)

	if err := uc.profileRepo.Upsert(ctx, &updated); err != nil {
		return nil, err
	}

	uc.publishUpdated(ctx, &updated, before, now)

	return &UpdateProfileOutput{Profile: &updated, Regenerated: roleChanged}, nil
}

// regenerate fetches the new roadmap, project suggestions and trends
// concurrently. The three calls are independent reads of the same profile
// context; the errgroup join is the barrier before any of them is applied.
func (uc *UpdateProfileUseCase) regenerate(ctx context.Context, p *profile.Profile) error {
	var (
		roadmap  []profile.RoadmapStep
		projects []profile.Project
		trends   []profile.Trend
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roadmap, err = uc.llm.GenerateRoadmap(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = uc.llm.GenerateProjects(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		trends, err = uc.llm.GenerateTrends(gctx, p.TargetRole)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	// All three succeeded, apply as a unit. XP already earned stays with
	// the user; only the derived content is replaced.
	p.Roadmap = roadmap
	p.Projects = projects
	p.Trends = trends
	return nil
}

func (uc *UpdateProfileUseCase) publishUpdated(ctx context.Context, p *profile.Profile, achievementsBefore int, now time.Time) {
	payload := event.ProfileEventPayload{
		EventType:  event.ProfileEventUpdated,
		OwnerID:    p.OwnerID,
		OccurredAt: now,
	}
	if len(p.Achievements) > achievementsBefore {
		payload.EventType = event.ProfileEventAchievementAwarded
		for _, a := range p.Achievements[achievementsBefore:] {
			payload.Achievements = append(payload.Achievements, a.ID)
		}
	}
	if err := uc.events.PublishProfileEvent(ctx, payload); err != nil {
		uc.logger.Warn("Failed to publish profile event", zap.Error(err))
	}
}
