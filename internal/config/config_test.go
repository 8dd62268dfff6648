package config_test

import (
	"testing"
	"time"

	"github.com/dom/account-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "some-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, config.TokenModeSession, cfg.TokenMode)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "some-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL_SECONDS", "120")
	t.Setenv("AUTH_TOKEN_MODE", "jwt")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Minute, cfg.TokenTTL)
	assert.Equal(t, config.TokenModeJWT, cfg.TokenMode)
}

func TestLoad_RejectsUnknownTokenMode(t *testing.T) {
	t.Setenv("JWT_SECRET", "some-secret")
	t.Setenv("AUTH_TOKEN_MODE", "magic")

	_, err := config.Load()
	assert.Error(t, err)
}
