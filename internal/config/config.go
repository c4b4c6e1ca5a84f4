// Package config reads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"content-backend/internal/blocks"
	"content-backend/internal/logger"
	"content-backend/internal/serializer"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

type Config struct {
	Port           string
	DatabaseDriver string
	DatabaseURL    string
	UploadDir      string
	BaseURL        string
	AllowedOrigins []string

	LogLevel logger.LogLevel
	LogJSON  bool

	MediaPlacement blocks.MediaPlacement
	LeadingMedia   blocks.LeadingRepair
	SummaryLength  int
}

// Load reads the environment. Outside production a .env file is loaded first;
// production injects env vars through infra.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:           get("PORT", "8083"),
		DatabaseDriver: get("DATABASE_DRIVER", DriverPostgres),
		DatabaseURL:    get("DATABASE_URL", ""),
		UploadDir:      get("UPLOAD_DIR", "./uploads"),
		LogLevel:       logger.ParseLevel(get("LOG_LEVEL", string(logger.InfoLevel))),
		MediaPlacement: blocks.MediaPlacement(get("MEDIA_PLACEMENT", string(blocks.MediaAtEnd))),
		LeadingMedia:   blocks.LeadingRepair(get("LEADING_MEDIA_REPAIR", string(blocks.MoveMediaToEnd))),
		AllowedOrigins: splitList(get("ALLOWED_ORIGINS", "http://localhost:5173")),
	}
	cfg.BaseURL = get("BASE_URL", "http://localhost:"+cfg.Port)

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.DatabaseDriver != DriverPostgres && cfg.DatabaseDriver != DriverSQLite {
		return nil, fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.DatabaseDriver)
	}
	if !cfg.MediaPlacement.Valid() {
		return nil, fmt.Errorf("MEDIA_PLACEMENT must be %q or %q, got %q", blocks.MediaAtEnd, blocks.MediaAfterFirst, cfg.MediaPlacement)
	}
	if !cfg.LeadingMedia.Valid() {
		return nil, fmt.Errorf("LEADING_MEDIA_REPAIR must be %q or %q, got %q", blocks.MoveMediaToEnd, blocks.InsertPlaceholder, cfg.LeadingMedia)
	}

	var err error
	if cfg.LogJSON, err = parseBool(get("LOG_JSON", "false")); err != nil {
		return nil, fmt.Errorf("LOG_JSON: %w", err)
	}
	if cfg.SummaryLength, err = strconv.Atoi(get("SUMMARY_LENGTH", strconv.Itoa(serializer.DefaultSummaryLength))); err != nil {
		return nil, fmt.Errorf("SUMMARY_LENGTH: %w", err)
	}
	if cfg.SummaryLength < 1 {
		return nil, fmt.Errorf("SUMMARY_LENGTH must be positive, got %d", cfg.SummaryLength)
	}

	return cfg, nil
}

// MediaPolicy is the normalizer policy every store and save uses.
func (c *Config) MediaPolicy() blocks.Policy {
	return blocks.Policy{MissingMedia: c.MediaPlacement, LeadingMedia: c.LeadingMedia}
}

func (c *Config) Logger() logger.Logger {
	cfg := logger.DefaultConfig()
	cfg.Level = c.LogLevel
	cfg.JSON = c.LogJSON
	return logger.NewLogger(cfg)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(s string) (bool, error) {
	return strconv.ParseBool(strings.ToLower(s))
}
