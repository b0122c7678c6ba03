// Package repository persists finished simulation runs in PostgreSQL.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/config"
)

// DB wraps a pgx connection pool.
type DB struct {
	*pgxpool.Pool
	logger *zap.Logger
}

// NewDB opens a pool against cfg.URL and checks connectivity.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return &DB{Pool: pool, logger: logger}, nil
}

// Stats returns a snapshot of the pool's connection counters.
func (db *DB) Stats() *pgxpool.Stat {
	return db.Pool.Stat()
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                     UUID PRIMARY KEY,
	workers                INTEGER NOT NULL,
	simulations_per_worker INTEGER NOT NULL,
	seed                   BIGINT NOT NULL,
	games                  BIGINT NOT NULL,
	wins                   BIGINT NOT NULL,
	started_at             TIMESTAMPTZ NOT NULL,
	finished_at            TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS run_buckets (
	run_id  UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	outcome TEXT NOT NULL CHECK (outcome IN ('win', 'loss')),
	turns   INTEGER NOT NULL,
	games   BIGINT NOT NULL,
	PRIMARY KEY (run_id, outcome, turns)
);
`

// EnsureSchema creates the tables if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
