package view

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores rendered views under Key(scope, ...). Entries die with their
// TTL or when their scope is invalidated. Misses and errors look the same to
// the caller.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

type redisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) Cache {
	return &redisCache{rdb: rdb, ttl: ttl, logger: zap.L().Named("view.cache")}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("read view cache failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return b, true
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("write view cache failed", zap.String("key", key), zap.Error(err))
	}
}

type noCache struct{}

// NoCache never hits.
func NoCache() Cache { return noCache{} }

func (noCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noCache) Set(context.Context, string, []byte)         {}
