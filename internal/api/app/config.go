package app

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TokenSecret string        // Required: HMAC secret for session tokens
	TokenTTL    time.Duration // Session token lifetime (default: 24h)

	DatabaseFile string // Path to the SQLite database file (default: ./alpha.db)

	UploadDriver  string // Attachment storage driver: local, s3 (default: local)
	UploadDir     string // Local driver: directory for uploads (default: ./uploads)
	MaxUploadSize int64  // Attachment size cap in bytes (default: 10 MiB)

	S3Bucket    string // S3 driver: bucket name
	S3Region    string // S3 driver: region
	S3Endpoint  string // S3 driver: custom endpoint for MinIO-style deployments
	S3AccessKey string // S3 driver: static access key
	S3SecretKey string // S3 driver: static secret key

	CORSAllowedOrigins []string // Origins allowed to call the API from a browser

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

var ErrMissingTokenSecret = errors.New("TOKEN_SECRET must be set")

// LoadConfig reads configuration from the environment, with a .env file as
// fallback for local development.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		TokenSecret:         os.Getenv("TOKEN_SECRET"),
		TokenTTL:            getEnvDurationOrDefault("TOKEN_TTL", 24*time.Hour),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "alpha.db"),
		UploadDriver:        getEnvOrDefault("UPLOAD_DRIVER", "local"),
		UploadDir:           getEnvOrDefault("UPLOAD_DIR", "uploads"),
		MaxUploadSize:       getEnvInt64OrDefault("MAX_UPLOAD_SIZE", 10<<20),
		S3Bucket:            os.Getenv("S3_BUCKET"),
		S3Region:            os.Getenv("S3_REGION"),
		S3Endpoint:          os.Getenv("S3_ENDPOINT"),
		S3AccessKey:         os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:         os.Getenv("S3_SECRET_KEY"),
		CORSAllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate rejects configurations the application cannot safely run with.
// Tokens signed with an empty secret would be forgeable.
func (c Config) Validate() error {
	if c.TokenSecret == "" {
		return ErrMissingTokenSecret
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are taken as hours for compatibility with the old
	// JWT_EXPIRATION_HOURS setting.
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
