package handler

import (
	"net/http"
	"time"

	"movieflix/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Routes groups the handlers mounted on the router
type Routes struct {
	Browse       *BrowseHandler
	CatalogAPI   *CatalogAPIHandler
	Movies       *MovieHandler
	Auth         *AuthHandler
	Admin        *AdminHandler
	LoginLimiter *middleware.RateLimiter
	AdminAPIKey  string
}

// Register mounts every page and API route on r
func (rt Routes) Register(r *gin.Engine) {
	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	limit := rt.LoginLimiter.Middleware()

	// HTML pages
	r.GET("/", rt.Browse.Home)
	r.GET("/browse/category/:mode", rt.Browse.Category)
	r.GET("/browse/search", rt.Browse.Search)
	r.GET("/browse/page/:to", rt.Browse.Page)
	r.GET("/movies/:id", rt.Movies.Detail)
	r.GET("/login", rt.Auth.LoginPage)
	r.POST("/login", limit, rt.Auth.Login)
	r.GET("/logout", rt.Auth.Logout)
	r.GET("/management", Management)

	r.NoRoute(func(c *gin.Context) {
		renderError(c, http.StatusNotFound, "Page not found", "")
	})

	// API routes - 公开访问
	api := r.Group("/api/v1")
	api.Use(middleware.CORS())
	{
		api.GET("/status", rt.Admin.GetStatus)
		api.GET("/catalog", rt.CatalogAPI.GetCatalog)
		api.POST("/catalog/category", rt.CatalogAPI.SelectCategory)
		api.POST("/catalog/search", rt.CatalogAPI.Search)
		api.POST("/catalog/page", rt.CatalogAPI.ChangePage)
		api.GET("/movies/:id", rt.Movies.GetDetail)
		api.GET("/session", rt.Auth.GetSession)
		api.POST("/login", limit, rt.Auth.APILogin)
		api.POST("/logout", rt.Auth.APILogout)
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) }) // 预检请求由 CORS 中间件应答
	}

	// Admin routes - 需要认证（如果配置了 ADMIN_API_KEY）
	admin := r.Group("/api/v1")
	admin.Use(middleware.AdminAuth(rt.AdminAPIKey))
	{
		admin.GET("/analytics", rt.Admin.GetAnalytics)
		admin.GET("/analytics/endpoint", rt.Admin.GetEndpointStats)
		admin.DELETE("/analytics", rt.Admin.ResetAnalytics)
	}
}
