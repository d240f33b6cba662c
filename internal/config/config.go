package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all configuration for the service
type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	RedisURL string

	TMDBAPIKeys   []string // 支持多个 API Key 轮询
	TMDBBaseURL   string
	TMDBImageBase string
	TMDBLanguage  string
	TMDBTimeout   time.Duration
	TMDBRetries   int

	LoginBackendURL string
	LoginRateLimit  float64 // login POSTs per second per client IP, 0 disables
	LoginBurst      int

	StorageTTL   time.Duration // 0 = visitor storage never expires
	ViewIdleTTL  time.Duration
	SecureCookie bool
	AdminAPIKey  string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("📄 Loaded .env file")
	}

	// 支持多个 TMDB API Key，用逗号分隔
	tmdbKeys := []string{}
	if keyEnv := os.Getenv("TMDB_API_KEY"); keyEnv != "" {
		for _, k := range strings.Split(keyEnv, ",") {
			if trimmed := strings.TrimSpace(k); trimmed != "" {
				tmdbKeys = append(tmdbKeys, trimmed)
			}
		}
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		TMDBAPIKeys:     tmdbKeys,
		TMDBBaseURL:     getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBImageBase:   getEnv("TMDB_IMAGE_BASE", "https://image.tmdb.org/t/p"),
		TMDBLanguage:    getEnv("TMDB_LANGUAGE", "en-US"),
		TMDBTimeout:     getEnvDuration("TMDB_TIMEOUT", 10*time.Second),
		TMDBRetries:     getEnvInt("TMDB_RETRIES", 1),
		LoginBackendURL: getEnv("LOGIN_BACKEND_URL", "http://localhost:5000/login"),
		LoginRateLimit:  getEnvFloat("LOGIN_RATE_LIMIT", 5),
		LoginBurst:      getEnvInt("LOGIN_BURST", 10),
		StorageTTL:      getEnvDuration("STORAGE_TTL", 0),
		ViewIdleTTL:     getEnvDuration("VIEW_IDLE_TTL", 30*time.Minute),
		SecureCookie:    getEnvBool("SECURE_COOKIE", false),
		AdminAPIKey:     os.Getenv("ADMIN_API_KEY"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid integer, using default")
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid number, using default")
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
	}
	return defaultValue
}
