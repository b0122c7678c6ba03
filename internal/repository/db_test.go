package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDBStats(t *testing.T) {
	// Pools connect lazily, so an unreachable address is enough here.
	poolCfg, err := pgxpool.ParseConfig("postgres://goldfish@127.0.0.1:1/goldfish?sslmode=disable")
	require.NoError(t, err)
	poolCfg.MaxConns = 3

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	require.NoError(t, err)
	db := &DB{Pool: pool, logger: zaptest.NewLogger(t)}
	defer db.Close()

	stats := db.Stats()
	require.NotNil(t, stats)
	assert.Equal(t, int32(3), stats.MaxConns())
	assert.Equal(t, int32(0), stats.TotalConns())
	assert.Equal(t, int32(0), stats.IdleConns())
}
