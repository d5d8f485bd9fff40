package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 10, cfg.App.PageSize)
	assert.Equal(t, "dev-only-secret", cfg.App.Secret)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "en", cfg.Locale.Default)
	assert.True(t, cfg.IsDev())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_SECRET", "s3cret")
	t.Setenv("BACKEND_BASE_URL", "https://lab.example/api")
	t.Setenv("SESSION_STORE", SessionStoreRedis)
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("PAGE_SIZE", "-4")
	t.Setenv("BACKEND_TIMEOUT", "garbage")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://lab.example/api", cfg.Backend.BaseURL)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 10, cfg.App.PageSize)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.False(t, cfg.IsDev())
}

func TestLoadConfig_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrMissingSecret)
}
