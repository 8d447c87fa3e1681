package outbound

import (
	"context"
	"time"
)

// IdentityStore keeps short-lived call-session state: the most recently
// registered caller identity (read when routing an inbound call to the
// service's public number) and the burn list of consumed reset-token IDs.
type IdentityStore interface {
	SetPendingIdentity(ctx context.Context, identity string, ttl time.Duration) error
	PendingIdentity(ctx context.Context) (string, error)
	MarkTokenUsed(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenUsed(ctx context.Context, tokenID string) (bool, error)
}
