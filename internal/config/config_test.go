package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strangerchat/backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_SECRET", "ALLOWED_ORIGINS", "TOKEN_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, http://localhost:3000")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "30m0s", cfg.TokenTTL.String())
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestOriginAllowed(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.OriginAllowed("https://app.example.com"))
	assert.True(t, cfg.OriginAllowed(""), "non-browser clients send no origin")
	assert.False(t, cfg.OriginAllowed("https://evil.example.com"))
}

func TestOriginWildcard(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "*")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.OriginAllowed("https://anywhere.example.com"))
}
