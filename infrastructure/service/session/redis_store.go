package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vobe/voicedesk/application/port/outbound"
)

const (
	pendingIdentityKey = "call_session:pending_identity"
	usedTokenPrefix    = "reset_token:used:"
)

// redisStore keeps call-session state in Redis so concurrent requests see a
// consistent view and identities expire instead of lingering forever.
type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) outbound.IdentityStore {
	return &redisStore{client: client}
}

func (s *redisStore) SetPendingIdentity(ctx context.Context, identity string, ttl time.Duration) error {
	if err := s.client.Set(ctx, pendingIdentityKey, identity, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store pending identity: %w", err)
	}
	return nil
}

func (s *redisStore) PendingIdentity(ctx context.Context) (string, error) {
	identity, err := s.client.Get(ctx, pendingIdentityKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read pending identity: %w", err)
	}
	return identity, nil
}

func (s *redisStore) MarkTokenUsed(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing worth recording.
		return nil
	}
	if err := s.client.Set(ctx, usedTokenPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark token used: %w", err)
	}
	return nil
}

func (s *redisStore) IsTokenUsed(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.client.Get(ctx, usedTokenPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token usage: %w", err)
	}
	return true, nil
}
