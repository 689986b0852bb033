package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora_backend/internal/platform/config"
)

const testSecret = "config-test-secret-0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PGSQL_URL", "postgres://localhost:5432/vendora_test")
	t.Setenv("JWT_SECRET", testSecret)
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsProduction)
	assert.Equal(t, "vendora-backend", cfg.JWTIssuer)
	assert.Equal(t, "vendora-clients", cfg.JWTAudience)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.Equal(t, "uploads", cfg.UploadsDir)
}

func TestLoadConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("PGSQL_URL", "")
	t.Setenv("JWT_SECRET", testSecret)

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PGSQL_URL")
}

func TestLoadConfig_ShortJWTSecret(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost:5432/vendora_test")
	t.Setenv("JWT_SECRET", "too-short")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_EXPIRY_DURATION", "not-a-duration")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_EXPIRY_DURATION")
}

func TestLoadConfig_RefreshMustOutliveAccess(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_EXPIRY_DURATION", "2h")
	t.Setenv("REFRESH_TOKEN_EXPIRY_DURATION", "1h")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_TOKEN_EXPIRY_DURATION")
}
