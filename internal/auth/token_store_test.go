package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryFlags struct {
	mu   sync.Mutex
	ttls map[string]time.Duration
	err  error
}

func newMemoryFlags() *memoryFlags {
	return &memoryFlags{ttls: map[string]time.Duration{}}
}

func (m *memoryFlags) Flag(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ttls[key] = ttl
	return nil
}

func (m *memoryFlags) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.ttls[key]
	return ok, nil
}

func TestTokenStore_RevokeAndCheck(t *testing.T) {
	kv := newMemoryFlags()
	store := NewTokenStore(kv)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.RevokeToken(ctx, "jti-1", 10*time.Minute))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 10*time.Minute, kv.ttls[revokedTokenKeyPrefix+"jti-1"])
}

func TestTokenStore_SkipsExpired(t *testing.T) {
	kv := newMemoryFlags()
	store := NewTokenStore(kv)

	require.NoError(t, store.RevokeToken(context.Background(), "jti-1", 0))
	assert.Empty(t, kv.ttls)
}

func TestTokenStore_FailsOpen(t *testing.T) {
	kv := newMemoryFlags()
	kv.err = errors.New("connection refused")
	store := NewTokenStore(kv)

	revoked, err := store.IsRevoked(context.Background(), "jti-1")
	assert.NoError(t, err)
	assert.False(t, revoked)
}
