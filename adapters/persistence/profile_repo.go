package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/darshil-dcis/career-copilot-api/internal/domain/profile"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

// GetByOwnerID returns a typed not-found when no row exists. An absent
// profile is the valid pre-onboarding state, the caller decides what to do
// with it.
func (r *postgresProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT owner_id, name, target_role, bio, location, xp, streak,
		       skills, roadmap, projects, achievements, trends, updated_at
		FROM profiles
		WHERE owner_id = $1
	`
	p := &profile.Profile{}
	var skillsBytes, roadmapBytes, projectsBytes, achievementsBytes, trendsBytes []byte

	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&p.OwnerID,
		&p.Name,
		&p.TargetRole,
		&p.Bio,
		&p.Location,
		&p.XP,
		&p.Streak,
		&skillsBytes,
		&roadmapBytes,
		&projectsBytes,
		&achievementsBytes,
		&trendsBytes,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	// Unmarshal JSONB columns
	r.unmarshalColumn(ownerID, "skills", skillsBytes, &p.Skills)
	r.unmarshalColumn(ownerID, "roadmap", roadmapBytes, &p.Roadmap)
	r.unmarshalColumn(ownerID, "projects", projectsBytes, &p.Projects)
	r.unmarshalColumn(ownerID, "achievements", achievementsBytes, &p.Achievements)
	r.unmarshalColumn(ownerID, "trends", trendsBytes, &p.Trends)

	return p, nil
}

func (r *postgresProfileRepo) unmarshalColumn(ownerID uuid.UUID, column string, raw []byte, dst any) {
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Warn("Failed to unmarshal profile column",
			zap.String("owner_id", ownerID.String()),
			zap.String("column", column),
			zap.Error(err),
		)
	}
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills", err)
	}
	roadmapBytes, err := json.Marshal(p.Roadmap)
	if err != nil {
		return apperror.NewInternal("failed to marshal roadmap", err)
	}
	projectsBytes, err := json.Marshal(p.Projects)
	if err != nil {
		return apperror.NewInternal("failed to marshal projects", err)
	}
	achievementsBytes, err := json.Marshal(p.Achievements)
	if err != nil {
		return apperror.NewInternal("failed to marshal achievements", err)
	}
	trendsBytes, err := json.Marshal(p.Trends)
	if err != nil {
		return apperror.NewInternal("failed to marshal trends", err)
	}

	query := `
		INSERT INTO profiles (owner_id, name, target_role, bio, location, xp, streak,
		                      skills, roadmap, projects, achievements, trends, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (owner_id) DO UPDATE SET
			name = EXCLUDED.name,
			target_role = EXCLUDED.target_role,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			xp = EXCLUDED.xp,
			streak = EXCLUDED.streak,
			skills = EXCLUDED.skills,
			roadmap = EXCLUDED.roadmap,
			projects = EXCLUDED.projects,
			achievements = EXCLUDED.achievements,
			trends = EXCLUDED.trends,
			updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		p.OwnerID,
		p.Name,
		p.TargetRole,
		p.Bio,
		p.Location,
		p.XP,
		p.Streak,
		skillsBytes,
		roadmapBytes,
		projectsBytes,
		achievementsBytes,
		trendsBytes,
		p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}
