// Package config loads simulator settings from a YAML file, the environment
// and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// GOLDFISH_SIMULATION_WORKERS.
const EnvPrefix = "GOLDFISH"

// Config is the full application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

// SimulationConfig controls the Monte Carlo harness.
type SimulationConfig struct {
	Workers              int   `mapstructure:"workers"`
	SimulationsPerWorker int   `mapstructure:"simulations_per_worker"`
	Seed                 int64 `mapstructure:"seed"` // 0 picks a time-based seed
	MulliganThreshold    int   `mapstructure:"mulligan_threshold"`
	ProgressEvery        int   `mapstructure:"progress_every"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

type ServerConfig struct {
	GRPC       GRPCConfig      `mapstructure:"grpc"`
	WebSocket  WebSocketConfig `mapstructure:"websocket"`
	MaxWorkers int             `mapstructure:"max_workers"`
}

type GRPCConfig struct {
	Address string `mapstructure:"address"`
}

type WebSocketConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig points at the optional run store. An empty URL disables it.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// Enabled reports whether runs should be persisted.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.workers", 20)
	v.SetDefault("simulation.simulations_per_worker", 100_000)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.mulligan_threshold", 8)
	v.SetDefault("simulation.progress_every", 100_000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.grpc.address", ":50051")
	v.SetDefault("server.websocket.address", ":8081")
	v.SetDefault("server.max_workers", 64)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the YAML file at path on top of the defaults and applies
// environment overrides. An empty path, or a path that does not exist,
// yields defaults plus environment.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings the harness cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation.workers must be positive, got %d", c.Simulation.Workers)
	}
	if c.Simulation.SimulationsPerWorker <= 0 {
		return fmt.Errorf("simulation.simulations_per_worker must be positive, got %d", c.Simulation.SimulationsPerWorker)
	}
	if c.Simulation.ProgressEvery < 0 {
		return fmt.Errorf("simulation.progress_every must not be negative, got %d", c.Simulation.ProgressEvery)
	}
	if c.Server.MaxWorkers <= 0 {
		return fmt.Errorf("server.max_workers must be positive, got %d", c.Server.MaxWorkers)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
