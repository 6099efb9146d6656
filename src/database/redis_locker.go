package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"

	"Backend-Schoolhub/src/logger"
)

const (
	lockTTL        = 30 * time.Second
	lockRetryEvery = 50 * time.Millisecond
	lockRetries    = 40
)

var ErrLockNotObtained = errors.New("could not obtain attendance lock")

// RedisLocker serializes decide-then-persist for one attendance key across API instances.
type RedisLocker struct {
	locker *redislock.Client
	log    *logrus.Entry
}

func NewRedisLocker(locker *redislock.Client) *RedisLocker {
	return &RedisLocker{locker: locker, log: logger.Module("redis-locker")}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := fmt.Sprintf("lock:attendance:%s", key)
	lock, err := l.locker.Obtain(ctx, lockKey, lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockRetryEvery), lockRetries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrLockNotObtained, key)
	}
	if err != nil {
		return nil, err
	}

	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.LogError(l.log, "Lock", "release", lockKey, err)
		}
	}, nil
}
