package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vobe/voicedesk/application/port/outbound"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour, time.Hour)

	token, err := service.GenerateAccessToken(outbound.AccessTokenClaims{
		UserID: "user123",
		Email:  "alice@example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateAccessTokenFailures(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour, time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Hour, time.Hour)
		token, err := other.GenerateAccessToken(outbound.AccessTokenClaims{UserID: "user123"})
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, outbound.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTService("test-secret", -time.Minute, time.Hour)
		token, err := expired.GenerateAccessToken(outbound.AccessTokenClaims{UserID: "user123"})
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, outbound.ErrTokenExpired)
	})

	t.Run("reset token rejected as access token", func(t *testing.T) {
		token, err := service.GeneratePasswordResetToken("alice@example.com")
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, outbound.ErrInvalidToken)
	})
}

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour, 30*time.Minute)

	token, err := service.GeneratePasswordResetToken("alice@example.com")
	require.NoError(t, err)

	claims, err := service.ValidatePasswordResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt, 5*time.Second)
}

func TestPasswordResetTokensCarryUniqueIDs(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour, time.Hour)

	first, err := service.GeneratePasswordResetToken("alice@example.com")
	require.NoError(t, err)
	second, err := service.GeneratePasswordResetToken("alice@example.com")
	require.NoError(t, err)

	firstClaims, err := service.ValidatePasswordResetToken(first)
	require.NoError(t, err)
	secondClaims, err := service.ValidatePasswordResetToken(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestValidatePasswordResetTokenFailures(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour, time.Hour)

	t.Run("access token rejected", func(t *testing.T) {
		token, err := service.GenerateAccessToken(outbound.AccessTokenClaims{UserID: "user123"})
		require.NoError(t, err)

		_, err = service.ValidatePasswordResetToken(token)
		assert.ErrorIs(t, err, outbound.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTService("test-secret", time.Hour, -time.Minute)
		token, err := expired.GeneratePasswordResetToken("alice@example.com")
		require.NoError(t, err)

		_, err = service.ValidatePasswordResetToken(token)
		assert.ErrorIs(t, err, outbound.ErrTokenExpired)
	})
}
