package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/interviews")
	t.Setenv("PORT", "")
	t.Setenv("WORKER_CONCURRENCY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 2, cfg.WorkerConcurrency)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.False(t, cfg.UseBrowser)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/interviews")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("USE_BROWSER", "true")
	t.Setenv("WORKER_CONCURRENCY", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, 5, cfg.WorkerConcurrency)
}

func TestLoadRejectsBadConcurrency(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/interviews")
	t.Setenv("WORKER_CONCURRENCY", "zero")

	_, err := Load()
	require.Error(t, err)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	require.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := cfg.HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, cfg.VerifyPassword("hunter2", hash))
	assert.False(t, cfg.VerifyPassword("hunter3", hash))
}

func TestPasswordCostBounds(t *testing.T) {
	t.Setenv("BCRYPT_COST", "9")
	_, err := NewPasswordConfig()
	require.Error(t, err)

	t.Setenv("BCRYPT_COST", "15")
	_, err = NewPasswordConfig()
	require.Error(t, err)
}
