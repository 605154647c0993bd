package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds every runtime setting of the application.
type Config struct {
	ServerPort       int
	StorageBackend   string
	DatabaseURL      string
	ImplicitZeroBids bool
	AllowedOrigins   []string
	LogLevel         slog.Level
	Archive          ArchiveConfig
}

// ArchiveConfig describes the S3 compatible bucket completed games are copied
// to. Archiving is off when Bucket is empty.
type ArchiveConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	SweepInterval   time.Duration
}

// Enabled reports whether a bucket was configured.
func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_BACKEND")))
	if backend == "" {
		backend = StorageMemory
	}
	dbURL := os.Getenv("DATABASE_URL")
	switch backend {
	case StorageMemory:
	case StoragePostgres:
		if dbURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (want %s or %s)", backend, StorageMemory, StoragePostgres)
	}

	implicitZero, err := boolEnv("IMPLICIT_ZERO_BIDS", false)
	if err != nil {
		return nil, err
	}

	level, err := levelEnv("LOG_LEVEL", slog.LevelInfo)
	if err != nil {
		return nil, err
	}

	sweep, err := durationEnv("ARCHIVE_SWEEP_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	if sweep <= 0 {
		return nil, fmt.Errorf("ARCHIVE_SWEEP_INTERVAL must be positive, got %s", sweep)
	}

	region := os.Getenv("ARCHIVE_REGION")
	if region == "" {
		region = "auto"
	}

	cfg := &Config{
		ServerPort:       port,
		StorageBackend:   backend,
		DatabaseURL:      dbURL,
		ImplicitZeroBids: implicitZero,
		AllowedOrigins:   listEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:         level,
		Archive: ArchiveConfig{
			Endpoint:        os.Getenv("ARCHIVE_ENDPOINT"),
			Region:          region,
			AccessKeyID:     os.Getenv("ARCHIVE_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("ARCHIVE_SECRET_ACCESS_KEY"),
			Bucket:          os.Getenv("ARCHIVE_BUCKET"),
			PublicBaseURL:   os.Getenv("ARCHIVE_PUBLIC_BASE_URL"),
			SweepInterval:   sweep,
		},
	}
	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func levelEnv(key string, def slog.Level) (slog.Level, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return level, nil
}

func listEnv(key string, def []string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
