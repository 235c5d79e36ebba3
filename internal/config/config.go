// Package config loads process configuration from environment variables.
// Everything the application needs is resolved once at startup and handed
// to constructors explicitly, there are no package-level singletons.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds every tunable the backend reads from the environment.
type Config struct {
	Port int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBConnStr  string
	UseConnStr bool

	JWTSecret string
	TokenTTL  time.Duration

	AllowOrigins []string

	// RateLimit is the per-client request budget per second on the auth
	// endpoints.
	RateLimit uint

	// Upload settings
	MaxFileSize   int64
	UploadDir     string
	StorageDriver string
	GCSBucket     string

	// Bootstrap admin credentials, both empty means no bootstrap.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads the environment into a Config, applying defaults where a
// variable is unset.
func Load() *Config {
	return &Config{
		Port: getEnvInt("PORT", 8080),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USERNAME", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_DATABASE", "jobboard"),
		DBConnStr:  os.Getenv("DB_CONNECTION_STR"),
		UseConnStr: getEnvBool("USE_CONNECTION_STR", false),

		JWTSecret: getEnv("SECRET_KEY", ""),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		AllowOrigins: splitNonEmpty(getEnv("ALLOW_ORIGIN", "*")),

		RateLimit: uint(getEnvInt("RATE_LIMIT_REQUESTS_PER_SECOND", 5)),

		MaxFileSize:   getEnvInt64("MAX_FILE_SIZE", 5<<20),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		StorageDriver: getEnv("STORAGE_DRIVER", "disk"),
		GCSBucket:     os.Getenv("GCS_BUCKET"),

		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %t", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func splitNonEmpty(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
