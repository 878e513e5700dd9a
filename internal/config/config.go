package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App   AppConfig
	Redis RedisConfig
	TMDB  TMDBConfig
	Cache CacheConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	AllowedOrigins []string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// =====================================================
// TMDB CONFIGURATION
// =====================================================

type TMDBConfig struct {
	APIKey         string        // Bearer token (v4 read access token)
	BaseURL        string        // https://api.themoviedb.org/3
	Timeout        time.Duration // timeout cho mỗi HTTP attempt
	MaxRetries     int           // số lần retry tối đa cho lỗi transient
	RetryBaseDelay time.Duration // delay ban đầu, nhân đôi mỗi lần retry
	RetryMaxDelay  time.Duration
	RateLimit      float64 // requests/second gửi tới TMDB
	RateBurst      int
	MaxConcurrency int // số credits lookup chạy song song trong một search
}

type CacheConfig struct {
	// MovieTTL: movie không bao giờ refresh nên TTL chỉ để giới hạn memory Redis
	MovieTTL time.Duration

	// SweepInterval: chu kỳ dọn entry hết hạn của in-memory fallback cache
	SweepInterval time.Duration
}

const defaultTMDBAPIKey = ""

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Movie Catalog API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},

		// ========================================
		// TMDB CONFIGURATION
		// ========================================
		TMDB: TMDBConfig{
			APIKey:         getEnv("TMDB_API_KEY", defaultTMDBAPIKey),
			BaseURL:        strings.TrimRight(getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
			Timeout:        getEnvDuration("TMDB_TIMEOUT", 10*time.Second),
			MaxRetries:     getEnvInt("TMDB_MAX_RETRIES", 3),
			RetryBaseDelay: getEnvDuration("TMDB_RETRY_BASE_DELAY", 500*time.Millisecond),
			RetryMaxDelay:  getEnvDuration("TMDB_RETRY_MAX_DELAY", 5*time.Second),
			RateLimit:      getEnvFloat("TMDB_RATE_LIMIT", 40),
			RateBurst:      getEnvInt("TMDB_RATE_BURST", 20),
			MaxConcurrency: getEnvInt("TMDB_MAX_CONCURRENCY", 8),
		},
		Cache: CacheConfig{
			MovieTTL:      getEnvDuration("MOVIE_CACHE_TTL", 24*time.Hour),
			SweepInterval: getEnvDuration("CACHE_SWEEP_INTERVAL", 5*time.Minute),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.TMDB.MaxRetries < 0 {
		return fmt.Errorf("TMDB_MAX_RETRIES must be >= 0")
	}
	if c.TMDB.MaxConcurrency < 1 {
		return fmt.Errorf("TMDB_MAX_CONCURRENCY must be >= 1")
	}
	if c.Cache.SweepInterval <= 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be > 0")
	}
	if c.TMDB.RateLimit <= 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must be > 0")
	}

	// Production environment phải có TMDB credential
	if c.App.Environment == "production" {
		if c.TMDB.APIKey == defaultTMDBAPIKey {
			return fmt.Errorf("TMDB_API_KEY must be set in production")
		}
		for _, origin := range c.App.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ALLOWED_ORIGINS must not be * in production")
			}
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList đọc danh sách phân tách bởi dấu phẩy
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
