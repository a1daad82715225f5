package auth

import (
	"context"
	"time"
)

const revokedTokenKeyPrefix = "revoked_token:"

// FlagStore holds expiring presence flags, as cache.Client does.
type FlagStore interface {
	Flag(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps the list of logged out token IDs in Redis.
type TokenStore struct {
	flags FlagStore
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(flags FlagStore) *TokenStore {
	return &TokenStore{flags: flags}
}

// RevokeToken marks a token ID as logged out until its natural expiry.
// Tokens that are already expired need no entry.
func (s *TokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.flags.Flag(ctx, revokedTokenKeyPrefix+tokenID, ttl)
}

// IsRevoked checks if a token ID was logged out.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	revoked, err := s.flags.Exists(ctx, revokedTokenKeyPrefix+tokenID)
	if err != nil {
		return false, nil // Not revoked if error (fail safe)
	}
	return revoked, nil
}
