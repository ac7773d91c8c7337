package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// lockTTL bounds how long a crashed generation can hold its lock.
const lockTTL = 30 * time.Second

// LockRedisClient defines the Redis operations the generation lock needs.
type LockRedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisGenerationLock enforces at most one in-flight prediction
// generation per match across all API instances.
type RedisGenerationLock struct {
	rdb    LockRedisClient
	logger *zap.SugaredLogger
}

func NewRedisGenerationLock(rdb LockRedisClient, logger *zap.Logger) *RedisGenerationLock {
	return &RedisGenerationLock{rdb: rdb, logger: logger.Sugar()}
}

func lockKey(matchID string) string {
	return "prediction_lock:" + matchID
}

func (l *RedisGenerationLock) Acquire(ctx context.Context, matchID string) (bool, error) {
	return l.rdb.SetNX(ctx, lockKey(matchID), 1, lockTTL).Result()
}

func (l *RedisGenerationLock) Release(ctx context.Context, matchID string) {
	if err := l.rdb.Del(ctx, lockKey(matchID)).Err(); err != nil {
		l.logger.Warnw("failed to release generation lock", "match", matchID, "error", err)
	}
}
