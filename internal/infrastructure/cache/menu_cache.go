// Package cache implements the menu cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appnav "github.com/boardhub/backend/internal/application/navigation"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/boardhub/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisMenuCache implements navigation.MenuCache using Redis. Visible trees
// are cached per scope and viewer class under "menu:<tenant>:<type>:<class>"
// and dropped together when the scope mutates.
type RedisMenuCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// NewRedisMenuCache creates a Redis-backed menu cache and verifies the
// connection
func NewRedisMenuCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisMenuCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisMenuCache{
		client:     client,
		ownsClient: true,
		ttl:        ttl,
		logger:     logger,
	}, nil
}

// NewRedisMenuCacheWithClient creates a cache on an existing client. The
// caller retains ownership of the client and closes it.
func NewRedisMenuCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisMenuCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisMenuCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisMenuCache) key(scope tree.Scope, authenticated bool) string {
	class := "anon"
	if authenticated {
		class = "auth"
	}
	return fmt.Sprintf("menu:%s:%s", scope.String(), class)
}

// GetVisible returns the cached visible tree, with false on a miss
func (c *RedisMenuCache) GetVisible(ctx context.Context, scope tree.Scope, authenticated bool) ([]appnav.MenuTreeNode, bool, error) {
	cacheKey := c.key(scope, authenticated)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get menu from cache: %w", err)
	}

	var nodes []appnav.MenuTreeNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		// Drop the corrupted entry and treat as a miss
		_ = c.client.Del(ctx, cacheKey)
		return nil, false, fmt.Errorf("failed to unmarshal cached menu: %w", err)
	}

	c.logger.Debug("menu cache hit", zap.String("key", cacheKey))
	return nodes, true, nil
}

// SetVisible stores the visible tree with the configured TTL
func (c *RedisMenuCache) SetVisible(ctx context.Context, scope tree.Scope, authenticated bool, nodes []appnav.MenuTreeNode) error {
	data, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal menu: %w", err)
	}

	cacheKey := c.key(scope, authenticated)
	if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set menu in cache: %w", err)
	}

	c.logger.Debug("cached menu",
		zap.String("key", cacheKey),
		zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate drops both viewer classes for the scope
func (c *RedisMenuCache) Invalidate(ctx context.Context, scope tree.Scope) error {
	keys := []string{c.key(scope, true), c.key(scope, false)}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate menu cache: %w", err)
	}
	c.logger.Debug("invalidated menu cache", zap.String("scope", scope.String()))
	return nil
}

// Close releases the Redis client when this cache owns it
func (c *RedisMenuCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ appnav.MenuCache = (*RedisMenuCache)(nil)
