package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/config"
	"github.com/magefree/goldfish-go/internal/deck"
	"github.com/magefree/goldfish-go/internal/game/goldfish"
	"github.com/magefree/goldfish-go/internal/game/policy"
	"github.com/magefree/goldfish-go/internal/montecarlo"
	"github.com/magefree/goldfish-go/internal/repository"
)

// ErrInvalidRequest wraps every rejected run request.
var ErrInvalidRequest = errors.New("invalid run request")

// RunStore persists finished runs.
type RunStore interface {
	Save(ctx context.Context, run repository.RunRecord) error
}

// RunRequest is what a client asks for. Zero fields fall back to the
// configured simulation defaults; a zero seed picks a time-based one.
type RunRequest struct {
	Workers              int   `json:"workers"`
	SimulationsPerWorker int   `json:"simulations_per_worker"`
	Seed                 int64 `json:"seed"`
	ProgressEvery        int   `json:"progress_every"`
}

// RunResult is a finished run.
type RunResult struct {
	RunID      uuid.UUID             `json:"run_id"`
	Seed       int64                 `json:"seed"`
	Workers    int                   `json:"workers"`
	Histogram  *montecarlo.Histogram `json:"histogram"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
}

// ProgressFunc observes a run in flight.
type ProgressFunc func(runID uuid.UUID, snapshot montecarlo.Histogram)

// Runner executes goldfish runs for the transports.
type Runner struct {
	defaults   config.SimulationConfig
	maxWorkers int
	store      RunStore
	game       montecarlo.GameFunc
	logger     *zap.Logger
	now        func() time.Time
}

// NewRunner builds a runner for the Duskmourn's Claim deck against the
// goldfish opponent. store may be nil.
func NewRunner(cfg *config.Config, store RunStore, logger *zap.Logger) *Runner {
	game := goldfish.Simulator(deck.Claim(), deck.Goldfish(),
		goldfish.WithMulligan(policy.Mulligan{Threshold: cfg.Simulation.MulliganThreshold}))
	return &Runner{
		defaults:   cfg.Simulation,
		maxWorkers: cfg.Server.MaxWorkers,
		store:      store,
		game:       game,
		logger:     logger,
		now:        time.Now,
	}
}

func (r *Runner) resolve(req RunRequest) (montecarlo.Config, error) {
	cfg := montecarlo.Config{
		Workers:              req.Workers,
		SimulationsPerWorker: req.SimulationsPerWorker,
		Seed:                 req.Seed,
		ProgressEvery:        req.ProgressEvery,
	}
	if cfg.Workers == 0 {
		cfg.Workers = r.defaults.Workers
	}
	if cfg.SimulationsPerWorker == 0 {
		cfg.SimulationsPerWorker = r.defaults.SimulationsPerWorker
	}
	if cfg.Seed == 0 {
		cfg.Seed = r.now().UnixNano()
	}
	if cfg.Workers > r.maxWorkers {
		return cfg, fmt.Errorf("%w: %d workers exceeds the limit of %d", ErrInvalidRequest, cfg.Workers, r.maxWorkers)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return cfg, nil
}

// Run executes req. progress, when non-nil, receives histogram snapshots
// from the calling goroutine.
func (r *Runner) Run(ctx context.Context, req RunRequest, progress ProgressFunc) (*RunResult, error) {
	cfg, err := r.resolve(req)
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	logger := r.logger.With(zap.String("run_id", runID.String()))

	var opts []montecarlo.Option
	if progress != nil {
		opts = append(opts, montecarlo.WithProgress(func(h montecarlo.Histogram) {
			progress(runID, h)
		}))
		if cfg.ProgressEvery == 0 {
			cfg.ProgressEvery = r.defaults.ProgressEvery
		}
	}

	started := r.now()
	hist, err := montecarlo.Run(ctx, cfg, r.game, logger, opts...)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		RunID:      runID,
		Seed:       cfg.Seed,
		Workers:    cfg.Workers,
		Histogram:  hist,
		StartedAt:  started,
		FinishedAt: r.now(),
	}

	if r.store != nil {
		record := repository.RunRecord{
			ID:                   runID,
			Workers:              cfg.Workers,
			SimulationsPerWorker: cfg.SimulationsPerWorker,
			Seed:                 cfg.Seed,
			StartedAt:            result.StartedAt,
			FinishedAt:           result.FinishedAt,
			Histogram:            hist,
		}
		if err := r.store.Save(ctx, record); err != nil {
			// A failed save does not fail the run.
			logger.Error("failed to save run", zap.Error(err))
		}
	}
	return result, nil
}
