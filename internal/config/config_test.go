package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_FILE", "/tmp/session.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, SessionBackendFile, cfg.Session.Backend)
	assert.Equal(t, "library-ui", cfg.Session.KeyPrefix)
	assert.True(t, cfg.Session.PreemptiveExpiry)
}

func TestLoadTrimsBaseURLAndParsesFlags(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://catalog.example.com/api/")
	t.Setenv("SESSION_BACKEND", SessionBackendRedis)
	t.Setenv("SESSION_PREEMPTIVE_EXPIRY", "false")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://catalog.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.False(t, cfg.Session.PreemptiveExpiry)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "cookie")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_BACKEND")
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = Load()
	require.NoError(t, err)
}
