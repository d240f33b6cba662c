package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAndRouteStats(t *testing.T) {
	_, client := setupRedis(t)
	m := NewMetrics(client)
	ctx := context.Background()

	require.NoError(t, m.RecordCall(ctx, "/", 200, 30))
	require.NoError(t, m.RecordCall(ctx, "/", 200, 10))
	require.NoError(t, m.RecordCall(ctx, "/", 500, 20))

	stats, err := m.GetRouteStats(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalCalls)
	assert.Equal(t, int64(2), stats.SuccessCalls)
	assert.Equal(t, int64(1), stats.ErrorCalls)
	assert.InDelta(t, 20.0, stats.AvgLatencyMs, 0.001)
	assert.Equal(t, 10.0, stats.MinLatencyMs)
	assert.Equal(t, 30.0, stats.MaxLatencyMs)
}

func TestMetrics_UnknownRoute(t *testing.T) {
	_, client := setupRedis(t)
	stats, err := NewMetrics(client).GetRouteStats(context.Background(), "/nothing")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalCalls)
}

func TestMetrics_OverallStats(t *testing.T) {
	_, client := setupRedis(t)
	m := NewMetrics(client)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.RecordServerStart(ctx))
	for i := 0; i < 3; i++ {
		require.NoError(t, m.RecordCall(ctx, "/movies/:id", 200, 5))
	}
	require.NoError(t, m.RecordCall(ctx, "/login", 401, 5))
	now = now.Add(90 * time.Second)

	stats, err := m.GetOverallStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalCalls)
	assert.Equal(t, int64(4), stats.TodayCalls)
	require.Len(t, stats.TopRoutes, 2)
	assert.Equal(t, "/movies/:id", stats.TopRoutes[0].Path)
	assert.InDelta(t, 25.0, stats.ErrorRate, 0.001)
	assert.Len(t, stats.DailyTrend, 7)
	assert.Equal(t, int64(90), stats.Uptime)
}

func TestMetrics_Reset(t *testing.T) {
	mr, client := setupRedis(t)
	m := NewMetrics(client)
	ctx := context.Background()

	require.NoError(t, m.RecordCall(ctx, "/", 200, 1))
	mr.Set("movieflix:storage:keep", "x")

	require.NoError(t, m.ResetMetrics(ctx))
	assert.Equal(t, []string{"movieflix:storage:keep"}, mr.Keys())
}
