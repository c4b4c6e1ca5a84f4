package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-backend/internal/blocks"
	"content-backend/internal/logger"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"DATABASE_URL": "postgres://localhost/content"}))
	require.NoError(t, err)

	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, "http://localhost:8083", cfg.BaseURL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, logger.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, 260, cfg.SummaryLength)
	assert.Equal(t, blocks.DefaultPolicy, cfg.MediaPolicy())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PORT":                 "9000",
		"DATABASE_DRIVER":      "sqlite",
		"DATABASE_URL":         "file:content.db",
		"BASE_URL":             "https://api.example.com",
		"ALLOWED_ORIGINS":      "https://a.example.com, https://b.example.com,",
		"LOG_LEVEL":            "debug",
		"LOG_JSON":             "TRUE",
		"MEDIA_PLACEMENT":      "after-first",
		"LEADING_MEDIA_REPAIR": "insert-placeholder",
		"SUMMARY_LENGTH":       "120",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, logger.DebugLevel, cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, 120, cfg.SummaryLength)
	assert.Equal(t, blocks.Policy{MissingMedia: blocks.MediaAfterFirst, LeadingMedia: blocks.InsertPlaceholder}, cfg.MediaPolicy())
}

func TestFromEnv_Errors(t *testing.T) {
	base := func(k, v string) map[string]string {
		m := map[string]string{"DATABASE_URL": "postgres://x"}
		m[k] = v
		return m
	}
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"missing database url", map[string]string{}},
		{"unknown driver", base("DATABASE_DRIVER", "mysql")},
		{"bad placement", base("MEDIA_PLACEMENT", "start")},
		{"bad repair", base("LEADING_MEDIA_REPAIR", "drop")},
		{"bad bool", base("LOG_JSON", "maybe")},
		{"bad summary", base("SUMMARY_LENGTH", "ten")},
		{"zero summary", base("SUMMARY_LENGTH", "0")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.vars))
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_MissingURLSentinel(t *testing.T) {
	_, err := FromEnv(env(nil))
	assert.ErrorIs(t, err, ErrMissingDatabaseURL)
}

func TestLoad_ReadsProcessEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file:test.db", cfg.DatabaseURL)
}
