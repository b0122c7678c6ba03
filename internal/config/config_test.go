package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Simulation.Workers)
	assert.Equal(t, 100_000, cfg.Simulation.SimulationsPerWorker)
	assert.Equal(t, int64(0), cfg.Simulation.Seed)
	assert.Equal(t, 8, cfg.Simulation.MulliganThreshold)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ":50051", cfg.Server.GRPC.Address)
	assert.Equal(t, ":8081", cfg.Server.WebSocket.Address)
	assert.Equal(t, 64, cfg.Server.MaxWorkers)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, int32(4), cfg.Database.MaxConns)

	assert.Equal(t, cfg, Default())
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
simulation:
  workers: 4
  seed: 99
logging:
  format: json
database:
  url: postgres://localhost/goldfish
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	assert.Equal(t, 100_000, cfg.Simulation.SimulationsPerWorker)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Database.Enabled())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Simulation.Workers)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("GOLDFISH_SIMULATION_WORKERS", "3")
	t.Setenv("GOLDFISH_SERVER_GRPC_ADDRESS", "127.0.0.1:9000")

	cfg, err := Load(writeFile(t, "simulation:\n  workers: 8\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Simulation.Workers)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.GRPC.Address)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero workers":  "simulation:\n  workers: 0\n",
		"negative sims": "simulation:\n  simulations_per_worker: -1\n",
		"bad format":    "logging:\n  format: xml\n",
		"no max":        "server:\n  max_workers: 0\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeFile(t, "simulation: [unclosed\n"))
	assert.Error(t, err)
}
