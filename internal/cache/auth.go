package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apihub/apihub/internal/model"
)

const (
	// authCachePrefix is the Redis key prefix for auth context cache.
	authCachePrefix = "auth:ctx:"
	// defaultAuthCacheTTL bounds how long a resolved identity is reused
	// without a fresh token lookup.
	defaultAuthCacheTTL = 5 * time.Minute
)

// cachedAuthContext represents a resolved identity stored in Redis.
type cachedAuthContext struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// GetAuthContext retrieves a cached auth context by cache key.
// Returns nil on cache miss; Redis errors and corrupted entries are treated
// as misses so the caller falls back to a store lookup.
func (c *Cache) GetAuthContext(ctx context.Context, cacheKey string) (*model.AuthContext, error) {
	key := authCachePrefix + cacheKey

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedAuthContext
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.AuthContext{
		UserID:   cached.UserID,
		Username: cached.Username,
	}, nil
}

// SetAuthContext caches a resolved identity.
func (c *Cache) SetAuthContext(ctx context.Context, cacheKey string, authCtx *model.AuthContext) error {
	key := authCachePrefix + cacheKey

	data, err := json.Marshal(cachedAuthContext{
		UserID:   authCtx.UserID,
		Username: authCtx.Username,
	})
	if err != nil {
		return fmt.Errorf("marshal auth context: %w", err)
	}

	return c.client.Set(ctx, key, data, defaultAuthCacheTTL).Err()
}
