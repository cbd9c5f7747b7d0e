package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	pkgLog "assessment-planner/pkg/log"
)

type implRepository struct {
	pool *pgxpool.Pool
	l    pkgLog.Logger
}

// Connect opens a pgx pool against the given database URL and verifies it.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// New creates a Postgres-backed assessment repository.
func New(pool *pgxpool.Pool, l pkgLog.Logger) *implRepository {
	return &implRepository{pool: pool, l: l}
}
