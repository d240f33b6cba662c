package middleware

import (
	"context"
	"time"

	"movieflix/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CallRecorder stores per-route request metrics
type CallRecorder interface {
	RecordCall(ctx context.Context, path string, statusCode int, latencyMs float64) error
}

// Metrics returns a middleware that records request metrics per route
func Metrics(metrics CallRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			// 未匹配路由不单独统计，避免任意路径写入 Redis
			path = "unmatched"
		}

		latency := float64(time.Since(start).Microseconds()) / 1000
		status := c.Writer.Status()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := metrics.RecordCall(ctx, path, status, latency); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to record metrics")
		}
	}
}

var _ CallRecorder = (*repository.Metrics)(nil)
