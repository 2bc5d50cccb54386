package persistence

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darshil-dcis/career-copilot-api/internal/domain/session"
	"github.com/darshil-dcis/career-copilot-api/pkg/apperror"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
)

type postgresSessionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSessionRepo(db *pgxpool.Pool, logger logger.Logger) session.Repository {
	return &postgresSessionRepo{db: db, logger: logger}
}

var psqlSessions = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresSessionRepo) Append(ctx context.Context, s *session.Session) error {
	messagesBytes, err := json.Marshal(s.Messages)
	if err != nil {
		return apperror.NewInternal("failed to marshal session messages", err)
	}

	query := `
		INSERT INTO sessions (id, owner_id, kind, messages, summary, score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.Exec(ctx, query,
		s.ID, s.OwnerID, string(s.Kind), messagesBytes, s.Summary, s.Score, s.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to insert session", err)
	}
	return nil
}

func (r *postgresSessionRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, kind session.Kind, limit, offset int) ([]*session.Session, error) {
	builder := psqlSessions.
		Select("id", "owner_id", "kind", "messages", "summary", "score", "created_at").
		From("sessions").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if kind != "" {
		builder = builder.Where(sq.Eq{"kind": string(kind)})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build session query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query sessions", err)
	}
	defer rows.Close()

	sessions := make([]*session.Session, 0)
	for rows.Next() {
		s := &session.Session{}
		var messagesBytes []byte
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Kind, &messagesBytes, &s.Summary, &s.Score, &s.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan session", err)
		}
		if err := json.Unmarshal(messagesBytes, &s.Messages); err != nil {
			s.Messages = []session.Message{}
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating sessions", err)
	}
	return sessions, nil
}

func (r *postgresSessionRepo) EvictBeyond(ctx context.Context, ownerID uuid.UUID, kind session.Kind, keep int) error {
	query := `
		DELETE FROM sessions
		WHERE owner_id = $1 AND kind = $2 AND id NOT IN (
			SELECT id FROM sessions
			WHERE owner_id = $1 AND kind = $2
			ORDER BY created_at DESC
			LIMIT $3
		)
	`
	_, err := r.db.Exec(ctx, query, ownerID, string(kind), keep)
	if err != nil {
		return apperror.NewInternal("failed to evict old sessions", err)
	}
	return nil
}
