package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.RunAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.DatabaseDSN)
	assert.Equal(t, 10*time.Second, cfg.DBConnectionTimeout)
	assert.Equal(t, "cmd/courseapi/migrations", cfg.MigrationsDir)
	assert.False(t, cfg.EnableVerboseErrorLogging)
}

func TestConfigEnvOnly(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":7000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_DSN", "host=localhost dbname=courses")
	t.Setenv("ENABLE_GLOBAL_ERROR_LOGGING", "true")

	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.RunAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "host=localhost dbname=courses", cfg.DatabaseDSN)
	assert.True(t, cfg.EnableVerboseErrorLogging)
}

func TestConfigInvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := New(WithDisableFlagsParsing(true))
	require.Error(t, err)
}

func TestConfigInvalidRunAddr(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "not an address")

	_, err := New(WithDisableFlagsParsing(true))
	require.Error(t, err)
}

func TestConfigPriorityFlagsOverEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":4000")
	t.Setenv("LOG_LEVEL", "debug")

	os.Args = []string{
		"testbin",
		"-a", ":6000",
	}

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":6000", cfg.RunAddr)
	assert.Equal(t, "debug", cfg.LogLevel) // untouched by flags, still from env
}
