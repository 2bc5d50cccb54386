package profile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/darshil-dcis/career-copilot-api/adapters/event"
	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

// ProcessProfileEventUseCase is the worker-side repair pass. For every
// profile event it reloads the aggregate, reconciles xp against completion
// state and re-runs the achievement rules, persisting only when something
// actually drifted.
type ProcessProfileEventUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewProcessProfileEventUseCase(repo profile.Repository, log logger.Logger) *ProcessProfileEventUseCase {
	return &ProcessProfileEventUseCase{profileRepo: repo, logger: log}
}

func (uc *ProcessProfileEventUseCase) Execute(ctx context.Context, payload event.ProfileEventPayload) error {
	p, err := uc.profileRepo.GetByOwnerID(ctx, payload.OwnerID)
	if err != nil {
		return err
	}

	drift := p.ReconcileXP()
	now := time.Now().UTC()
	before := len(p.Achievements)
	p.Achievements = profile.EvaluateAchievements(p, now)

	if drift <= 0 && len(p.Achievements) == before {
		return nil
	}

	uc.logger.Info("Repairing profile aggregate",
		zap.String("owner_id", payload.OwnerID.String()),
		zap.Int("xp_drift", drift),
		zap.Int("new_achievements", len(p.Achievements)-before),
	)

	p.UpdatedAt = now
	return uc.profileRepo.Upsert(ctx, p)
}
