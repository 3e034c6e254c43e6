package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	FrontendURL string
	JWTSecret   string
	// Persistence
	StoreDriver   string
	DBUrl         string
	RedisURL      string
	RedisPassword string
	// Mock AI collaborators
	AILatency        time.Duration
	FormTemplatePath string
	// Autofill sessions expire this long after their last save
	AutofillSessionTTL time.Duration
	// Rate Limiting Configuration
	RateLimitWindowSeconds int
	RateLimitThreshold     int
	// Feedback
	FeedbackLogToDB bool
}

// IsProduction reports whether APP_ENV is "production"
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// RateLimitWindow is RATE_LIMIT_WINDOW_SECONDS as a duration
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		// Persistence
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		DBUrl:         getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Mock AI collaborators
		AILatency:          time.Duration(getEnvInt("AI_LATENCY_MS", 1500)) * time.Millisecond,
		FormTemplatePath:   getEnv("FORM_TEMPLATE_PATH", ""),
		AutofillSessionTTL: time.Duration(getEnvInt("AUTOFILL_SESSION_TTL_HOURS", 24)) * time.Hour,
		// Rate Limiting Configuration
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitThreshold:     getEnvInt("RATE_LIMIT_THRESHOLD", 120),
		// Feedback
		FeedbackLogToDB: getEnvBool("FEEDBACK_LOG_TO_DB", true),
	}

	switch cfg.StoreDriver {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		log.Printf("WARNING: unknown STORE_DRIVER %q, falling back to memory", cfg.StoreDriver)
		cfg.StoreDriver = StoreMemory
	}

	if cfg.StoreDriver == StorePostgres && cfg.DBUrl == "" {
		log.Println("WARNING: STORE_DRIVER=postgres but DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is empty. All authenticated requests will be rejected.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
