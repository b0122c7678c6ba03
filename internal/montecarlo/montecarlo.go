// Package montecarlo runs many independent games concurrently and reduces
// their outcomes into win and loss histograms.
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid simulation config")
	// ErrWorkerFailed is returned when a worker panics or reports a
	// malformed outcome. No partial histogram accompanies it.
	ErrWorkerFailed = errors.New("simulation worker failed")
)

// Config sizes a run.
type Config struct {
	Workers              int
	SimulationsPerWorker int
	// Seed is mixed with the worker index to seed each worker's generator.
	Seed int64
	// ProgressEvery is the number of outcomes between progress reports;
	// zero disables them.
	ProgressEvery int
}

// Validate checks the config.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}
	if c.SimulationsPerWorker < 1 {
		return fmt.Errorf("%w: simulations per worker must be at least 1", ErrInvalidConfig)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress interval cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// Total is the number of games the config runs.
func (c Config) Total() int {
	return c.Workers * c.SimulationsPerWorker
}

// GameFunc plays one game with the given generator and returns its signed
// turn count: positive for a win, negative for a loss, never zero.
type GameFunc func(rng *rand.Rand) int

// ProgressFunc observes a snapshot of the histogram during a run.
type ProgressFunc func(snapshot Histogram)

type runOptions struct {
	progress ProgressFunc
}

// Option customizes Run.
type Option func(*runOptions)

// WithProgress registers an observer called from the aggregating goroutine
// every Config.ProgressEvery outcomes.
func WithProgress(fn ProgressFunc) Option {
	return func(o *runOptions) {
		o.progress = fn
	}
}

// WorkerSeed mixes the base seed with a worker index into a distinct,
// deterministic seed (splitmix64 finalizer).
func WorkerSeed(baseSeed int64, worker int) int64 {
	x := uint64(baseSeed) + uint64(worker) + 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Run plays cfg.Workers x cfg.SimulationsPerWorker games. Each worker owns
// its generator and sends outcomes to a single aggregator. The first worker
// failure, or cancellation of ctx, stops the run and returns an error with
// no histogram.
func Run(ctx context.Context, cfg Config, game GameFunc, logger *zap.Logger, opts ...Option) (*Histogram, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}

	started := time.Now()
	logger.Info("starting simulation run",
		zap.Int("workers", cfg.Workers),
		zap.Int("simulations_per_worker", cfg.SimulationsPerWorker),
		zap.Int64("seed", cfg.Seed),
	)

	group, gctx := errgroup.WithContext(ctx)
	outcomes := make(chan int, outcomeBufferSize(cfg.Workers))

	for w := 0; w < cfg.Workers; w++ {
		worker := w
		group.Go(func() error {
			return runWorker(gctx, worker, cfg, game, outcomes)
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- group.Wait()
		close(outcomes)
	}()

	hist := NewHistogram()
	var received int
	var recordErr error
	for outcome := range outcomes {
		if recordErr != nil {
			continue
		}
		if err := hist.Record(outcome); err != nil {
			recordErr = err
			continue
		}
		received++
		if ro.progress != nil && cfg.ProgressEvery > 0 && received%cfg.ProgressEvery == 0 {
			logger.Debug("simulation progress", zap.Int("completed", received), zap.Int("total", cfg.Total()))
			ro.progress(hist.Clone())
		}
	}

	if err := <-done; err != nil {
		logger.Error("simulation run failed", zap.Error(err), zap.Int("completed", received))
		return nil, err
	}
	if recordErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkerFailed, recordErr)
	}

	logger.Info("simulation run complete",
		zap.Uint64("wins", hist.WinCount()),
		zap.Uint64("losses", hist.LossCount()),
		zap.Duration("elapsed", time.Since(started)),
	)
	return hist, nil
}

// The outcome channel holds a few outcomes per worker, up to a fixed cap.
const (
	outcomeBufferPerWorker = 16
	maxOutcomeBuffer       = 1024
)

func outcomeBufferSize(workers int) int {
	return min(workers*outcomeBufferPerWorker, maxOutcomeBuffer)
}

func runWorker(ctx context.Context, worker int, cfg Config, game GameFunc, outcomes chan<- int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d panicked: %v", ErrWorkerFailed, worker, r)
		}
	}()

	rng := rand.New(rand.NewSource(WorkerSeed(cfg.Seed, worker)))
	for i := 0; i < cfg.SimulationsPerWorker; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome := game(rng)
		if outcome == 0 {
			return fmt.Errorf("%w: worker %d game %d: %w", ErrWorkerFailed, worker, i, ErrZeroOutcome)
		}
		select {
		case outcomes <- outcome:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
