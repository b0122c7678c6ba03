// Command goldfish runs the Monte Carlo simulation once and prints the win
// and loss histograms as CSV on stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/magefree/goldfish-go/internal/config"
	"github.com/magefree/goldfish-go/internal/deck"
	"github.com/magefree/goldfish-go/internal/game/goldfish"
	"github.com/magefree/goldfish-go/internal/game/policy"
	"github.com/magefree/goldfish-go/internal/montecarlo"
	"github.com/magefree/goldfish-go/internal/report"
)

var (
	configPath = flag.String("config", "", "path to configuration file (optional)")
	workers    = flag.Int("workers", 0, "number of workers (overrides config)")
	sims       = flag.Int("sims", 0, "simulations per worker (overrides config)")
	seed       = flag.Int64("seed", 0, "base seed; 0 uses the config value or the clock")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

func applyFlags(cfg *config.Config) {
	if *workers != 0 {
		cfg.Simulation.Workers = *workers
	}
	if *sims != 0 {
		cfg.Simulation.SimulationsPerWorker = *sims
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = time.Now().UnixNano()
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	game := goldfish.Simulator(deck.Claim(), deck.Goldfish(),
		goldfish.WithMulligan(policy.Mulligan{Threshold: cfg.Simulation.MulliganThreshold}))

	mcCfg := montecarlo.Config{
		Workers:              cfg.Simulation.Workers,
		SimulationsPerWorker: cfg.Simulation.SimulationsPerWorker,
		Seed:                 cfg.Simulation.Seed,
		ProgressEvery:        cfg.Simulation.ProgressEvery,
	}
	hist, err := montecarlo.Run(ctx, mcCfg, game, logger, montecarlo.WithProgress(func(h montecarlo.Histogram) {
		logger.Debug("progress", zap.Uint64("games", h.Total()), zap.Int("of", mcCfg.Total()))
	}))
	if err != nil {
		return err
	}

	if err := report.WriteCSV(os.Stdout, hist); err != nil {
		return err
	}
	logger.Info("simulation summary", report.Summarize(hist).Fields()...)
	return nil
}

// initLogger builds a logger writing to stderr so stdout stays pure CSV.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
