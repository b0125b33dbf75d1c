package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meandevstar/atlas-backend/internal/config"
)

const testSecret = "test-secret-key-thats-long-enough-for-hmac"

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ATLAS_DATABASE_URL", "postgres://localhost:5432/atlas")
	t.Setenv("ATLAS_AUTH_JWT_SECRET", testSecret)
	t.Setenv("ATLAS_SERVER_PORT", "9090")
	t.Setenv("ATLAS_SERVER_FRONT_URL", "https://app.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel, "default applies")
	assert.Equal(t, "https://app.example.com", cfg.Server.FrontURL)
	assert.Equal(t, "postgres://localhost:5432/atlas", cfg.Database.URL)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 1440, cfg.Auth.EmailTokenLifetimeMinutes)
	assert.Equal(t, "geonames", cfg.Search.PoiIndex)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("ATLAS_DATABASE_URL", "postgres://localhost:5432/atlas")
	t.Setenv("ATLAS_AUTH_JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("ATLAS_DATABASE_URL", "postgres://localhost:5432/atlas")
	t.Setenv("ATLAS_AUTH_JWT_SECRET", "too-short")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadRejectsMissingDatabaseURL(t *testing.T) {
	t.Setenv("ATLAS_AUTH_JWT_SECRET", testSecret)

	_, err := config.Load()
	assert.Error(t, err)
}
