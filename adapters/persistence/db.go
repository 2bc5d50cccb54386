package persistence

import (
	"context"
	"fmt"

	"github.com/darshil-dcis/career-copilot-api/internal/config"
	"github.com/darshil-dcis/career-copilot-api/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgresPool(cfg config.Config, log logger.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("do not create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	log.Info("Connect PostgreSQL successfully.")
	return pool, nil
}
