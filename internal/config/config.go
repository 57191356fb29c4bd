package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort            string
	DatabaseDSN         string
	SessionSecret       string
	AdminPasswordHash   string
	AdminTTL            time.Duration // elevation window; <= 0 disables expiry
	DefaultCategoryID   uint
	DefaultCategoryName string
	RequireDescription  bool // whether category descriptions are mandatory
	CORSOrigins         string
	Env                 string
	LogLevel            string
}

func Load() *Config {
	// Best-effort .env loading; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:         getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=catalog port=5432 sslmode=disable"),
		SessionSecret:       getEnv("SESSION_SECRET", ""),
		AdminPasswordHash:   getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminTTL:            getEnvDuration("ADMIN_TTL", 60*time.Second),
		DefaultCategoryID:   getEnvUint("DEFAULT_CATEGORY_ID", 1),
		DefaultCategoryName: getEnv("DEFAULT_CATEGORY_NAME", "Uncategorized"),
		RequireDescription:  getEnvBool("REQUIRE_CATEGORY_DESCRIPTION", true),
		CORSOrigins:         getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		Env:                 getEnv("APP_ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	// The admin gate cannot function without these; refusing to start is
	// safer than silently allowing or denying every admin action.
	if cfg.AdminPasswordHash == "" {
		log.Fatal("[FATAL] ADMIN_PASSWORD_HASH is not set! The admin gate requires a bcrypt password hash.")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("[FATAL] SESSION_SECRET is not set! Elevation cookies cannot be signed without it.")
	}
	if len(cfg.SessionSecret) < 32 {
		log.Fatal("[FATAL] SESSION_SECRET must be at least 32 characters!")
	}
	if cfg.DefaultCategoryID == 0 {
		log.Fatal("[FATAL] DEFAULT_CATEGORY_ID must be a positive integer!")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("[FATAL] %s is not a valid duration: %v", key, err)
	}
	return d
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("[FATAL] %s is not a valid boolean: %v", key, err)
	}
	return b
}

func getEnvUint(key string, def uint) uint {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		log.Fatalf("[FATAL] %s is not a valid positive integer: %v", key, err)
	}
	return uint(n)
}
