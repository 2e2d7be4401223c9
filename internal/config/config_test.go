package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, DefaultSkipPaths, cfg.Auth.SkipPaths)
}

func TestLoadExtendsSkipPaths(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_SKIP_PATHS", "/metrics, /debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.Auth.SkipPaths, "/metrics")
	assert.Contains(t, cfg.Auth.SkipPaths, "/debug")
	assert.Contains(t, cfg.Auth.SkipPaths, "/api/users/login")
}
