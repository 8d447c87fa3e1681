package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePendingIdentity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	identity, err := store.PendingIdentity(ctx)
	require.NoError(t, err)
	assert.Empty(t, identity)

	require.NoError(t, store.SetPendingIdentity(ctx, "alice", time.Hour))

	identity, err = store.PendingIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity)

	// Last registration wins.
	require.NoError(t, store.SetPendingIdentity(ctx, "bob", time.Hour))
	identity, err = store.PendingIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", identity)
}

func TestMemoryStorePendingIdentityExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetPendingIdentity(ctx, "alice", time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	identity, err := store.PendingIdentity(ctx)
	require.NoError(t, err)
	assert.Empty(t, identity)
}

func TestMemoryStoreUsedTokens(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	used, err := store.IsTokenUsed(ctx, "tok1")
	require.NoError(t, err)
	assert.False(t, used)

	require.NoError(t, store.MarkTokenUsed(ctx, "tok1", time.Hour))

	used, err = store.IsTokenUsed(ctx, "tok1")
	require.NoError(t, err)
	assert.True(t, used)
}

func TestMemoryStoreUsedTokenExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.MarkTokenUsed(ctx, "tok1", time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	used, err := store.IsTokenUsed(ctx, "tok1")
	require.NoError(t, err)
	assert.False(t, used)
}

func TestMemoryStoreIgnoresExpiredTTL(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// A non-positive TTL means the token is already past its lifetime.
	require.NoError(t, store.MarkTokenUsed(ctx, "tok1", -time.Minute))

	used, err := store.IsTokenUsed(ctx, "tok1")
	require.NoError(t, err)
	assert.False(t, used)
}
