package telephony

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseGrantToken(t *testing.T, signed, secret string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestIssueGrantTokenWithoutChat(t *testing.T) {
	service := NewGrantTokenService("AC123", "SK456", "supersecret", "AP789", "", time.Hour)

	signed, err := service.IssueGrantToken("bob")
	require.NoError(t, err)

	claims := parseGrantToken(t, signed, "supersecret")
	assert.Equal(t, "SK456", claims["iss"])
	assert.Equal(t, "AC123", claims["sub"])

	grants, ok := claims["grants"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "bob", grants["identity"])

	voice, ok := grants["voice"].(map[string]interface{})
	require.True(t, ok)
	incoming := voice["incoming"].(map[string]interface{})
	assert.Equal(t, true, incoming["allow"])
	outgoing := voice["outgoing"].(map[string]interface{})
	assert.Equal(t, "AP789", outgoing["application_sid"])

	_, hasVideo := grants["video"]
	assert.True(t, hasVideo)

	_, hasChat := grants["chat"]
	assert.False(t, hasChat, "chat grant must be absent without a chat service SID")
}

func TestIssueGrantTokenWithChat(t *testing.T) {
	service := NewGrantTokenService("AC123", "SK456", "supersecret", "AP789", "IS000", time.Hour)

	signed, err := service.IssueGrantToken("bob")
	require.NoError(t, err)

	claims := parseGrantToken(t, signed, "supersecret")
	grants := claims["grants"].(map[string]interface{})

	chat, ok := grants["chat"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "IS000", chat["service_sid"])
}

func TestIssueGrantTokenEmptyIdentity(t *testing.T) {
	service := NewGrantTokenService("AC123", "SK456", "supersecret", "AP789", "", time.Hour)

	_, err := service.IssueGrantToken("")
	assert.Error(t, err)
}
