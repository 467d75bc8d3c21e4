package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("API_PREFIX", "api/v2/")
	t.Setenv("SERVER_URL", "https://hub.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api/v2", cfg.APIPrefix)
	assert.Equal(t, "https://hub.example.com", cfg.ServerURL)
	assert.Equal(t, 60*time.Minute, cfg.SessionTTL())
	assert.Equal(t, 24*time.Hour, cfg.InvitationTTL())
	assert.Contains(t, cfg.DatabaseURL, "postgres://")
	assert.False(t, cfg.MailEnabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadAllowedOriginsFromEnv(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	t.Run("production requires a real secret", func(t *testing.T) {
		cfg := &Config{
			Environment:          "production",
			JWTSecret:            defaultJWTSecret,
			DatabaseName:         "db",
			JWTExpirationMinutes: 60,
			InvitationTTLHours:   24,
		}
		err := validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("token windows must be positive", func(t *testing.T) {
		cfg := &Config{
			Environment:          "development",
			JWTSecret:            "secret",
			DatabaseName:         "db",
			JWTExpirationMinutes: 0,
			InvitationTTLHours:   24,
		}
		err := validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_EXPIRATION_MINUTES")
	})

	t.Run("valid config", func(t *testing.T) {
		cfg := &Config{
			Environment:          "production",
			JWTSecret:            "a-real-secret",
			DatabaseURL:          "postgres://x",
			JWTExpirationMinutes: 30,
			InvitationTTLHours:   24,
		}
		assert.NoError(t, validate(cfg))
	})
}
