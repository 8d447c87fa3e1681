package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/voicedesk?sslmode=disable")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 192*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 48*time.Hour, cfg.ResetTokenTTL)
	assert.True(t, cfg.RateLimitEnabled)
	assert.False(t, cfg.TelephonyEnabled())
}

func TestLoadMissingRequired(t *testing.T) {
	t.Run("database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("JWT_SECRET", "test-secret")
		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingDatabaseURL)
	})

	t.Run("jwt secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/db")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingJWTSecret)
	})
}

func TestLoadInvalidTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL", "not-a-number")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidTokenTTL)
}

func TestLoadTelephony(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
		t.Setenv("TWILIO_API_KEY", "SK456")
		t.Setenv("TWILIO_API_SECRET", "supersecret")
		t.Setenv("TWIML_APPLICATION_SID", "AP789")
		t.Setenv("TWILIO_CALLER_ID", "+15005550006")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.TelephonyEnabled())
		assert.Empty(t, cfg.TwilioChatServiceSID)
	})

	t.Run("partial is an error", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TWILIO_ACCOUNT_SID", "AC123")

		_, err := Load()
		assert.ErrorIs(t, err, ErrIncompleteTelephony)
	})
}
