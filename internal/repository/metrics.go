package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const metricsPrefix = "movieflix:metrics:"

// Metrics stores request metrics in Redis
type Metrics struct {
	client *redis.Client
	now    func() time.Time
}

// RouteStats represents statistics for a route
type RouteStats struct {
	Path         string  `json:"path"`
	TotalCalls   int64   `json:"total_calls"`
	SuccessCalls int64   `json:"success_calls"`
	ErrorCalls   int64   `json:"error_calls"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
	MaxLatencyMs float64 `json:"max_latency_ms"`
	MinLatencyMs float64 `json:"min_latency_ms"`
}

// DailyStats represents daily request statistics
type DailyStats struct {
	Date       string  `json:"date"`
	TotalCalls int64   `json:"total_calls"`
	AvgLatency float64 `json:"avg_latency"`
}

// OverallStats represents overall system statistics
type OverallStats struct {
	TotalCalls   int64        `json:"total_calls"`
	TodayCalls   int64        `json:"today_calls"`
	AvgLatencyMs float64      `json:"avg_latency_ms"`
	TopRoutes    []RouteStats `json:"top_routes"`
	DailyTrend   []DailyStats `json:"daily_trend"`
	ErrorRate    float64      `json:"error_rate"`
	Uptime       int64        `json:"uptime_seconds"`
}

// NewMetrics creates a new Metrics instance on a shared client
func NewMetrics(client *redis.Client) *Metrics {
	return &Metrics{client: client, now: time.Now}
}

func metricsKey(parts ...string) string {
	key := metricsPrefix
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}

// RecordCall records one handled request
func (m *Metrics) RecordCall(ctx context.Context, path string, statusCode int, latencyMs float64) error {
	now := m.now()
	today := now.Format("2006-01-02")
	hour := now.Format("2006-01-02-15")

	pathKey := metricsKey("path", path)

	// min/max 需要先读当前值
	current, err := m.client.HMGet(ctx, pathKey, "min_latency", "max_latency").Result()
	if err != nil {
		return err
	}

	pipe := m.client.Pipeline()

	pipe.HIncrBy(ctx, pathKey, "total", 1)
	pipe.HIncrByFloat(ctx, pathKey, "latency_sum", latencyMs)
	if minLatency, ok := parseStored(current[0]); !ok || latencyMs < minLatency {
		pipe.HSet(ctx, pathKey, "min_latency", latencyMs)
	}
	if maxLatency, ok := parseStored(current[1]); !ok || latencyMs > maxLatency {
		pipe.HSet(ctx, pathKey, "max_latency", latencyMs)
	}

	// Success/Error counts
	if statusCode >= 200 && statusCode < 400 {
		pipe.HIncrBy(ctx, pathKey, "success", 1)
	} else {
		pipe.HIncrBy(ctx, pathKey, "error", 1)
	}

	// Daily stats
	dailyKey := metricsKey("daily", today)
	pipe.HIncrBy(ctx, dailyKey, "total", 1)
	pipe.HIncrByFloat(ctx, dailyKey, "latency_sum", latencyMs)
	pipe.Expire(ctx, dailyKey, 30*24*time.Hour) // Keep 30 days

	// Hourly stats
	hourlyKey := metricsKey("hourly", hour)
	pipe.HIncrBy(ctx, hourlyKey, "total", 1)
	pipe.Expire(ctx, hourlyKey, 48*time.Hour) // Keep 48 hours

	// Global stats
	pipe.Incr(ctx, metricsKey("global", "total"))
	pipe.IncrByFloat(ctx, metricsKey("global", "latency_sum"), latencyMs)

	// Track all paths
	pipe.SAdd(ctx, metricsKey("paths"), path)

	_, err = pipe.Exec(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to record metrics")
	}
	return err
}

func parseStored(v interface{}) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// GetRouteStats gets statistics for a specific route
func (m *Metrics) GetRouteStats(ctx context.Context, path string) (*RouteStats, error) {
	result, err := m.client.HGetAll(ctx, metricsKey("path", path)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return &RouteStats{Path: path}, nil
	}

	total, _ := strconv.ParseInt(result["total"], 10, 64)
	success, _ := strconv.ParseInt(result["success"], 10, 64)
	errors, _ := strconv.ParseInt(result["error"], 10, 64)
	latencySum, _ := strconv.ParseFloat(result["latency_sum"], 64)
	minLatency, _ := strconv.ParseFloat(result["min_latency"], 64)
	maxLatency, _ := strconv.ParseFloat(result["max_latency"], 64)

	avgLatency := 0.0
	if total > 0 {
		avgLatency = latencySum / float64(total)
	}

	return &RouteStats{
		Path:         path,
		TotalCalls:   total,
		SuccessCalls: success,
		ErrorCalls:   errors,
		AvgLatencyMs: avgLatency,
		MaxLatencyMs: maxLatency,
		MinLatencyMs: minLatency,
	}, nil
}

// GetOverallStats gets overall system statistics
func (m *Metrics) GetOverallStats(ctx context.Context) (*OverallStats, error) {
	stats := &OverallStats{}

	total, _ := m.client.Get(ctx, metricsKey("global", "total")).Int64()
	latencySum, _ := m.client.Get(ctx, metricsKey("global", "latency_sum")).Float64()
	stats.TotalCalls = total

	if total > 0 {
		stats.AvgLatencyMs = latencySum / float64(total)
	}

	today := m.now().Format("2006-01-02")
	todayCalls, _ := m.client.HGet(ctx, metricsKey("daily", today), "total").Int64()
	stats.TodayCalls = todayCalls

	paths, err := m.client.SMembers(ctx, metricsKey("paths")).Result()
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}

	var allStats []RouteStats
	var totalErrors int64
	for _, path := range paths {
		routeStats, err := m.GetRouteStats(ctx, path)
		if err == nil && routeStats.TotalCalls > 0 {
			allStats = append(allStats, *routeStats)
			totalErrors += routeStats.ErrorCalls
		}
	}

	// Sort by total calls and get top 10
	sort.Slice(allStats, func(i, j int) bool {
		return allStats[i].TotalCalls > allStats[j].TotalCalls
	})
	if len(allStats) > 10 {
		stats.TopRoutes = allStats[:10]
	} else {
		stats.TopRoutes = allStats
	}

	if total > 0 {
		stats.ErrorRate = float64(totalErrors) / float64(total) * 100
	}

	stats.DailyTrend = m.getDailyTrend(ctx, 7)

	startTime, err := m.client.Get(ctx, metricsKey("server", "start_time")).Int64()
	if err == nil && startTime > 0 {
		stats.Uptime = m.now().Unix() - startTime
	}

	return stats, nil
}

// getDailyTrend gets daily statistics for the last N days
func (m *Metrics) getDailyTrend(ctx context.Context, days int) []DailyStats {
	var trend []DailyStats

	for i := days - 1; i >= 0; i-- {
		date := m.now().AddDate(0, 0, -i).Format("2006-01-02")

		result, err := m.client.HGetAll(ctx, metricsKey("daily", date)).Result()
		if err != nil {
			continue
		}

		total, _ := strconv.ParseInt(result["total"], 10, 64)
		latencySum, _ := strconv.ParseFloat(result["latency_sum"], 64)

		avgLatency := 0.0
		if total > 0 {
			avgLatency = latencySum / float64(total)
		}

		trend = append(trend, DailyStats{
			Date:       date,
			TotalCalls: total,
			AvgLatency: avgLatency,
		})
	}

	return trend
}

// RecordServerStart records server start time
func (m *Metrics) RecordServerStart(ctx context.Context) error {
	return m.client.Set(ctx, metricsKey("server", "start_time"), m.now().Unix(), 0).Err()
}

// ResetMetrics removes all metrics keys
func (m *Metrics) ResetMetrics(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := m.client.Scan(ctx, cursor, metricsPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := m.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
