package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/montecarlo"
)

const (
	outcomeWin  = "win"
	outcomeLoss = "loss"
)

// RunRecord is a finished run with its histogram.
type RunRecord struct {
	ID                   uuid.UUID
	Workers              int
	SimulationsPerWorker int
	Seed                 int64
	StartedAt            time.Time
	FinishedAt           time.Time
	Histogram            *montecarlo.Histogram
}

// RunRepository stores and lists runs.
type RunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save writes the run row and one row per non-empty bucket in a single
// transaction.
func (r *RunRepository) Save(ctx context.Context, run RunRecord) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO runs (id, workers, simulations_per_worker, seed, games, wins, started_at, finished_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			run.ID, run.Workers, run.SimulationsPerWorker, run.Seed,
			int64(run.Histogram.Total()), int64(run.Histogram.WinCount()),
			run.StartedAt, run.FinishedAt,
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		rows := bucketRows(run.ID, run.Histogram)
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"run_buckets"},
			[]string{"run_id", "outcome", "turns", "games"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("insert buckets: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}

	r.db.logger.Debug("run saved", zap.String("run_id", run.ID.String()))
	return nil
}

// bucketRows flattens the non-empty buckets of hist into copy rows.
func bucketRows(id uuid.UUID, hist *montecarlo.Histogram) [][]any {
	var rows [][]any
	for turns, n := range hist.Wins {
		if n > 0 {
			rows = append(rows, []any{id, outcomeWin, int32(turns), int64(n)})
		}
	}
	for turns, n := range hist.Losses {
		if n > 0 {
			rows = append(rows, []any{id, outcomeLoss, int32(turns), int64(n)})
		}
	}
	return rows
}

// List returns the most recent runs, newest first, with their histograms.
func (r *RunRepository) List(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, workers, simulations_per_worker, seed, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (RunRecord, error) {
		var run RunRecord
		err := row.Scan(&run.ID, &run.Workers, &run.SimulationsPerWorker, &run.Seed, &run.StartedAt, &run.FinishedAt)
		run.Histogram = &montecarlo.Histogram{}
		return run, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan runs: %w", err)
	}

	for i := range runs {
		if err := r.loadBuckets(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *RunRepository) loadBuckets(ctx context.Context, run *RunRecord) error {
	rows, err := r.db.Query(ctx, `
		SELECT outcome, turns, games FROM run_buckets WHERE run_id = $1`, run.ID)
	if err != nil {
		return fmt.Errorf("load buckets for %s: %w", run.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			outcome string
			turns   int
			games   int64
		)
		if err := rows.Scan(&outcome, &turns, &games); err != nil {
			return fmt.Errorf("scan bucket: %w", err)
		}
		bucket := montecarlo.Histogram{}
		table := make([]uint64, turns+1)
		table[turns] = uint64(games)
		if outcome == outcomeWin {
			bucket.Wins = table
		} else {
			bucket.Losses = table
		}
		run.Histogram.Merge(bucket)
	}
	return rows.Err()
}
