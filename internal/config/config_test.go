package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFailsWithoutJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unit-test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "unit-test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "vehicle-marketplace", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 5*time.Minute, cfg.Redis.OwnershipCacheTTL())
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unit-test-secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("REDIS_OWNERSHIP_CACHE_TTL_SECONDS", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Minute, cfg.Redis.OwnershipCacheTTL())
}
