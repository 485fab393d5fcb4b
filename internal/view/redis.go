package view

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const scanBatch = 100

type redisInvalidator struct {
	rdb     *redis.Client
	timeout time.Duration
	logger  *zap.Logger
}

func NewRedisInvalidator(rdb *redis.Client) Invalidator {
	return &redisInvalidator{
		rdb:     rdb,
		timeout: 3 * time.Second,
		logger:  zap.L().Named("view.invalidator"),
	}
}

// Invalidate drops every cached key under the scope and announces the scope on
// Channel. It outlives a cancelled request ctx, bounded by its own timeout.
func (r *redisInvalidator) Invalidate(ctx context.Context, scope string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	pattern := KeyPrefix + scope + "*"
	var cursor uint64
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			r.logger.Warn("scan view keys failed", zap.String("scope", scope), zap.Error(err))
			break
		}
		if len(keys) > 0 {
			if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
				r.logger.Warn("delete view keys failed", zap.String("scope", scope), zap.Error(err))
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if err := r.rdb.Publish(ctx, Channel, scope).Err(); err != nil {
		r.logger.Warn("publish invalidation failed", zap.String("scope", scope), zap.Error(err))
	}
}
