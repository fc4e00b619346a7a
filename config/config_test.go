package config

import (
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func withEnv(t *testing.T, key, value string) {
	t.Helper()
	original, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, original)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "DATABASE_PATH", "PORT", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "LOG_LEVEL"} {
		withEnv(t, key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "maa_telecom.db", cfg.DatabasePath)
	assert.Equal(t, "gemini-3-flash-preview", cfg.GeminiModel)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiBaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	withEnv(t, "PORT", "9090")
	withEnv(t, "DATABASE_PATH", "/tmp/test_repairs.db")
	withEnv(t, "GEMINI_API_KEY", "secret")
	withEnv(t, "LOG_LEVEL", "debug")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/test_repairs.db", cfg.DatabasePath)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.Equal(t, log.DebugLevel, cfg.ParseLogLevel())
}

func TestParseLogLevel_InvalidDefaultsToInfo(t *testing.T) {
	cfg := &Config{LogLevel: "extremely-verbose"}
	assert.Equal(t, log.InfoLevel, cfg.ParseLogLevel())
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := &Config{GoEnv: "production"}
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsTest())
	assert.False(t, cfg.IsDevelopment())

	cfg.GoEnv = "test"
	assert.True(t, cfg.IsTest())

	cfg.GoEnv = "development"
	assert.True(t, cfg.IsDevelopment())
}
