package identity

import (
	"context"
	"time"

	"readerpeak-backend/pkg/cache"
)

const revokedTokenKeyPrefix = "session:revoked:"

// cacheTokenStore keeps the sign-out denylist in the cache layer.
// Entries expire on their own once the underlying token would have.
type cacheTokenStore struct {
	cache cache.Cache
}

func NewCacheTokenStore(c cache.Cache) TokenStore {
	return &cacheTokenStore{cache: c}
}

func (s *cacheTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, true, ttl)
}

func (s *cacheTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.Exists(ctx, revokedTokenKeyPrefix+tokenID)
}
