package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movieflix/internal/catalog"
	"movieflix/internal/config"
	"movieflix/internal/handler"
	"movieflix/internal/middleware"
	"movieflix/internal/repository"
	"movieflix/internal/service"
	"movieflix/internal/session"
	"movieflix/internal/view"
	"movieflix/pkg/httpclient"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	// Load configuration
	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("⚠️  Unknown LOG_LEVEL, using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().
		Str("port", cfg.Port).
		Str("mode", cfg.GinMode).
		Int("tmdb_keys", len(cfg.TMDBAPIKeys)).
		Msg("🚀 Starting movieflix")

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Redis: visitor storage + metrics
	rdb, err := repository.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	users := session.NewStore(rdb, cfg.StorageTTL)

	metrics := repository.NewMetrics(rdb)
	if err := metrics.RecordServerStart(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Failed to record server start")
	}
	log.Info().Msg("📊 Metrics enabled")

	// Initialize services
	httpClient := httpclient.NewClient(httpclient.Options{
		Timeout: cfg.TMDBTimeout,
		Retries: cfg.TMDBRetries,
	})
	tmdbService := service.NewTMDBService(httpClient, cfg.TMDBAPIKeys, cfg.TMDBBaseURL, cfg.TMDBLanguage)
	if tmdbService.IsConfigured() {
		log.Info().Int("keys", tmdbService.KeyCount()).Msg("🎬 TMDB service enabled (轮询模式)")
	} else {
		log.Warn().Msg("⚠️  TMDB_API_KEY not set, catalog pages will stay empty")
	}
	authService := service.NewAuthService(httpClient, cfg.LoginBackendURL)

	// Per-visitor listing views
	registry := catalog.NewRegistry(catalog.NewFetcher(tmdbService), catalog.ModeAll, cfg.ViewIdleTTL)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go registry.Run(sweepCtx, time.Minute)

	tmpl, err := view.Templates(cfg.TMDBImageBase)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	// Setup router
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery())
	r.Use(middleware.Visitor(users, cfg.SecureCookie))
	r.Use(middleware.Logging())
	r.Use(middleware.Metrics(metrics))

	handler.Routes{
		Browse:       handler.NewBrowseHandler(registry),
		CatalogAPI:   handler.NewCatalogAPIHandler(registry),
		Movies:       handler.NewMovieHandler(tmdbService),
		Auth:         handler.NewAuthHandler(authService, users),
		Admin:        handler.NewAdminHandler(tmdbService, metrics, registry),
		LoginLimiter: middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginBurst),
		AdminAPIKey:  cfg.AdminAPIKey,
	}.Register(r)

	// 日志输出认证状态
	if cfg.AdminAPIKey != "" {
		log.Info().Msg("🔐 Admin API authentication enabled")
	} else {
		log.Warn().Msg("⚠️  ADMIN_API_KEY not set, analytics endpoints are open")
	}

	// Create HTTP server with graceful shutdown support
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("🌐 Server listening")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down server...")
	stopSweep()

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("👋 Server exited")
}
