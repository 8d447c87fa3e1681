package session

import (
	"context"
	"sync"
	"time"

	"github.com/vobe/voicedesk/application/port/outbound"
)

// memoryStore is the Redis-less fallback. Mutex-guarded so concurrent
// token requests and inbound calls do not race on the identity slot.
type memoryStore struct {
	mu         sync.Mutex
	identity   string
	identityAt time.Time
	ttl        time.Duration
	usedTokens map[string]time.Time
}

func NewMemoryStore() outbound.IdentityStore {
	return &memoryStore{
		usedTokens: make(map[string]time.Time),
	}
}

func (s *memoryStore) SetPendingIdentity(ctx context.Context, identity string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.identityAt = time.Now()
	s.ttl = ttl
	return nil
}

func (s *memoryStore) PendingIdentity(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == "" {
		return "", nil
	}
	if s.ttl > 0 && time.Since(s.identityAt) > s.ttl {
		s.identity = ""
		return "", nil
	}
	return s.identity, nil
}

func (s *memoryStore) MarkTokenUsed(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usedTokens[tokenID] = time.Now().Add(ttl)
	return nil
}

func (s *memoryStore) IsTokenUsed(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.usedTokens[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(s.usedTokens, tokenID)
		return false, nil
	}
	return true, nil
}
