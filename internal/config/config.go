package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DBUrl               string
	DBMaxConns          int
	DBMinConns          int
	JWTSecret           string
	AppEnv              string
	LogLevel            string
	LogFormat           string
	CORSAllowOrigins    string
	EnableCompression   bool
	MediaBackend        string
	SupabaseURL         string
	SupabaseBucket      string
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	RedisURL            string
	CatalogCacheTTL     time.Duration
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DBUrl:               getEnv("DB_URL", ""),
		DBMaxConns:          getEnvInt("DB_MAX_CONNS", 10),
		DBMinConns:          getEnvInt("DB_MIN_CONNS", 2),
		JWTSecret:           jwtSecret,
		AppEnv:              normalizeEnv(getEnv("APP_ENV", "production")),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		CORSAllowOrigins:    getEnv("CORS_ALLOW_ORIGINS", "*"),
		EnableCompression:   getEnvBool("ENABLE_COMPRESSION", true),
		MediaBackend:        getEnv("MEDIA_BACKEND", ""),
		SupabaseURL:         getEnv("SUPABASE_URL", ""),
		SupabaseBucket:      getEnv("SUPABASE_BUCKET", ""),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		CatalogCacheTTL:     getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}

// CacheEnabled reports whether catalog views should be cached in Redis.
// A zero TTL disables caching even when REDIS_URL is set.
func (c *Config) CacheEnabled() bool {
	return c != nil && c.RedisURL != "" && c.CatalogCacheTTL > 0
}
