package reminder

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// SweepLock serializes sweeps across process instances. A sweep that
// cannot take the lock is skipped; the next tick tries again.
type SweepLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context)
}

// RedisLock is a SetNX lease. The TTL covers a stuck holder: if a sweep
// dies mid-run the lease expires and the next tick proceeds.
type RedisLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisLock(client *redis.Client, key string, ttl time.Duration) *RedisLock {
	return &RedisLock{client: client, key: key, ttl: ttl}
}

func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, time.Now().Unix(), l.ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (l *RedisLock) Release(ctx context.Context) {
	if err := l.client.Del(ctx, l.key).Err(); err != nil {
		logrus.Warnf("Failed to release sweep lock: %v", err)
	}
}

// NoopLock always grants the lock. Used for single-instance deployments
// without redis.
type NoopLock struct{}

func (NoopLock) Acquire(ctx context.Context) (bool, error) { return true, nil }
func (NoopLock) Release(ctx context.Context)               {}

// Locked wraps a job so it only runs while holding the lock. Lock errors
// are treated like a held lock: skip this tick, log, try next time.
func Locked(lock SweepLock, job func(ctx context.Context)) func(ctx context.Context) {
	return func(ctx context.Context) {
		ok, err := lock.Acquire(ctx)
		if err != nil {
			logrus.Warnf("Skipping sweep, lock unavailable: %v", err)
			return
		}
		if !ok {
			logrus.Info("Skipping sweep, another instance holds the lock")
			return
		}
		defer lock.Release(ctx)
		job(ctx)
	}
}
