package handler

import (
	"context"
	"net/http"

	"movieflix/internal/repository"

	"github.com/gin-gonic/gin"
)

// StatusSource reports the catalog backend configuration
type StatusSource interface {
	IsConfigured() bool
	KeyCount() int
}

// Analytics reads and resets request metrics
type Analytics interface {
	GetOverallStats(ctx context.Context) (*repository.OverallStats, error)
	GetRouteStats(ctx context.Context, path string) (*repository.RouteStats, error)
	ResetMetrics(ctx context.Context) error
}

// ViewCounter reports how many visitor views are live
type ViewCounter interface {
	Len() int
}

// AdminHandler handles admin-related endpoints
type AdminHandler struct {
	tmdb    StatusSource
	metrics Analytics
	views   ViewCounter
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(tmdb StatusSource, metrics Analytics, views ViewCounter) *AdminHandler {
	return &AdminHandler{
		tmdb:    tmdb,
		metrics: metrics,
		views:   views,
	}
}

// GetStatus returns service status
// GET /api/v1/status
func (h *AdminHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"tmdb_enabled": h.tmdb.IsConfigured(),
		"tmdb_keys":    h.tmdb.KeyCount(),
		"active_views": h.views.Len(),
	})
}

// GetAnalytics returns request analytics
// GET /api/v1/analytics
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	stats, err := h.metrics.GetOverallStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":  500,
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": stats,
	})
}

// GetEndpointStats returns stats for a specific route
// GET /api/v1/analytics/endpoint?path=/movies/:id
func (h *AdminHandler) GetEndpointStats(c *gin.Context) {
	path := c.Query("path")

	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  400,
			"error": "path parameter required",
		})
		return
	}

	stats, err := h.metrics.GetRouteStats(c.Request.Context(), path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":  500,
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": stats,
	})
}

// ResetAnalytics resets all analytics data
// DELETE /api/v1/analytics
func (h *AdminHandler) ResetAnalytics(c *gin.Context) {
	if err := h.metrics.ResetMetrics(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":  500,
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "all analytics data has been reset",
	})
}
