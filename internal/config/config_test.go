package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "portal")
	t.Setenv("DB_PASS", "portal")
	t.Setenv("DB_NAME", "qaportal")
	t.Setenv("DB_SSLMODE", "disable")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "host=localhost port=5432 user=portal password=portal dbname=qaportal sslmode=disable", cfg.DB.DSN)
	assert.Equal(t, "test-secret", cfg.JWT.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiresIn)
	assert.Equal(t, 30*time.Second, cfg.Executor.RequestTimeout)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_EXPIRES_IN_MINUTES", "15")
	t.Setenv("EXECUTOR_TIMEOUT_MS", "2500")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiresIn)
	assert.Equal(t, 2500*time.Millisecond, cfg.Executor.RequestTimeout)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_RejectsBadDBPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PORT", "not-a-port")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_RejectsBadExecutorTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EXECUTOR_TIMEOUT_MS", "-1")

	_, err := LoadConfig()
	assert.Error(t, err)
}
