package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vobe/voicedesk/application/port/inbound"
	"github.com/vobe/voicedesk/application/port/outbound"
	"github.com/vobe/voicedesk/infrastructure/service/logger"
	"github.com/vobe/voicedesk/infrastructure/service/session"
)

const testCallerID = "+15005550006"

func newVoiceFixture(issuer *mockGrantIssuer) (inbound.VoiceUseCase, outbound.IdentityStore) {
	store := session.NewMemoryStore()
	uc := NewVoiceUseCase(issuer, store, logger.NewNopLogger(), VoiceConfig{
		CallerID:           testCallerID,
		PendingIdentityTTL: time.Hour,
	})
	return uc, store
}

func TestIssueTokenRegistersIdentity(t *testing.T) {
	issuer := &mockGrantIssuer{}
	uc, store := newVoiceFixture(issuer)

	res, err := uc.IssueToken(context.Background(), inbound.VoiceTokenRequest{
		Identity:    "bob",
		CallerEmail: "bob@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", res.Identity)
	assert.Equal(t, "grant-token-for-bob", res.Token)
	assert.Equal(t, "bob", issuer.lastIdentity)

	identity, err := store.PendingIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bob", identity)
}

func TestIssueTokenDefaultsToCallerEmail(t *testing.T) {
	issuer := &mockGrantIssuer{}
	uc, _ := newVoiceFixture(issuer)

	res, err := uc.IssueToken(context.Background(), inbound.VoiceTokenRequest{
		CallerEmail: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", res.Identity)
}

func TestIssueTokenWithoutIdentity(t *testing.T) {
	issuer := &mockGrantIssuer{}
	uc, _ := newVoiceFixture(issuer)

	_, err := uc.IssueToken(context.Background(), inbound.VoiceTokenRequest{})
	assert.Error(t, err)
}

func TestRouteCallToServiceNumber(t *testing.T) {
	issuer := &mockGrantIssuer{}
	uc, _ := newVoiceFixture(issuer)

	_, err := uc.IssueToken(context.Background(), inbound.VoiceTokenRequest{Identity: "carol"})
	require.NoError(t, err)

	// Even with a phone field present, the To match wins.
	doc, err := uc.RouteCall(context.Background(), inbound.CallRequest{
		To:    testCallerID,
		Phone: "+1 555-0100",
	})
	require.NoError(t, err)
	assert.Contains(t, doc, "<Dial>")
	assert.Contains(t, doc, "<Client>carol</Client>")
}

func TestRouteCallToPhoneNumber(t *testing.T) {
	uc, _ := newVoiceFixture(&mockGrantIssuer{})

	doc, err := uc.RouteCall(context.Background(), inbound.CallRequest{
		Phone: "+1 555-0100",
	})
	require.NoError(t, err)
	assert.Contains(t, doc, `callerId="`+testCallerID+`"`)
	assert.Contains(t, doc, "<Number>+1 555-0100</Number>")
}

func TestRouteCallToClientName(t *testing.T) {
	uc, _ := newVoiceFixture(&mockGrantIssuer{})

	doc, err := uc.RouteCall(context.Background(), inbound.CallRequest{
		Phone: "alice",
	})
	require.NoError(t, err)
	assert.Contains(t, doc, `callerId="`+testCallerID+`"`)
	assert.Contains(t, doc, "<Client>alice</Client>")
}

func TestRouteCallWithoutTarget(t *testing.T) {
	uc, _ := newVoiceFixture(&mockGrantIssuer{})

	doc, err := uc.RouteCall(context.Background(), inbound.CallRequest{})
	require.NoError(t, err)
	assert.Contains(t, doc, "<Say>Thanks for calling!</Say>")
	assert.NotContains(t, doc, "<Dial")
}

func TestPhonePattern(t *testing.T) {
	valid := []string{"+1 555-0100", "5550100", "(555) 010-0000", "+44 20 7946 0958"}
	for _, v := range valid {
		assert.True(t, phonePattern.MatchString(v), v)
	}

	invalid := []string{"alice", "bob2", "+1 555-0100x", "a;drop"}
	for _, v := range invalid {
		assert.False(t, phonePattern.MatchString(v), v)
	}
}
