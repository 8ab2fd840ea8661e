package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lazyPool returns a pool that never dials: MinConns is zero so no
// connection is attempted until Acquire.
func lazyPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	cfg, err := pgxpool.ParseConfig("postgres://u:p@127.0.0.1:1/db?sslmode=disable")
	require.NoError(t, err)
	cfg.MaxConns = 4
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPoolStatsCollector_Collect(t *testing.T) {
	c := NewPoolStatsCollector(lazyPool(t), "innovensky")

	assert.Equal(t, 7, testutil.CollectAndCount(c))
	assert.Equal(t, 7, testutil.CollectAndCount(c, "db_pool_max_connections", "db_pool_idle_connections",
		"db_pool_acquired_connections", "db_pool_total_connections", "db_pool_acquire_count_total",
		"db_pool_acquire_duration_seconds_total", "db_pool_empty_acquire_count_total"))
}

func TestPoolStatsCollector_MaxConnsValue(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, RegisterPoolMetrics(reg, lazyPool(t), "innovensky"))

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "db_pool_max_connections" {
			continue
		}
		require.Len(t, f.GetMetric(), 1)
		assert.Equal(t, float64(4), f.GetMetric()[0].GetGauge().GetValue())
		assert.Equal(t, "innovensky", f.GetMetric()[0].GetLabel()[0].GetValue())
		return
	}
	t.Fatal("db_pool_max_connections not gathered")
}

func TestRegisterPoolMetrics_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	pool := lazyPool(t)

	require.NoError(t, RegisterPoolMetrics(reg, pool, "innovensky"))
	assert.NoError(t, RegisterPoolMetrics(reg, pool, "innovensky"))
}
