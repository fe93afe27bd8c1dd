// Package throttle limits repeated failed logins using redis counters.
package throttle

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "hrm:login:"

// Limiter counts failures per key inside a fixed window. A nil Limiter
// allows everything.
type Limiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func New(rdb *redis.Client, max int, window time.Duration) *Limiter {
	if rdb == nil {
		return nil
	}
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &Limiter{rdb: rdb, max: max, window: window}
}

// Allowed reports whether key may attempt another login.
func (l *Limiter) Allowed(ctx context.Context, key string) (bool, error) {
	if l == nil {
		return true, nil
	}

	value, err := l.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "reading login counter")
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return true, nil
	}

	return n < l.max, nil
}

// Fail records a failed attempt. The window starts at the first failure.
func (l *Limiter) Fail(ctx context.Context, key string) error {
	if l == nil {
		return nil
	}

	n, err := l.rdb.Incr(ctx, keyPrefix+key).Result()
	if err != nil {
		return errors.Wrap(err, "counting failed login")
	}
	if n == 1 {
		return errors.Wrap(l.rdb.Expire(ctx, keyPrefix+key, l.window).Err(), "starting login window")
	}

	return nil
}

// Reset clears the counter after a successful login.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if l == nil {
		return nil
	}
	return errors.Wrap(l.rdb.Del(ctx, keyPrefix+key).Err(), "resetting login counter")
}

// RetryAfter is how long the current window still blocks key.
func (l *Limiter) RetryAfter(ctx context.Context, key string) time.Duration {
	if l == nil {
		return 0
	}
	ttl, err := l.rdb.TTL(ctx, keyPrefix+key).Result()
	if err != nil || ttl < 0 {
		return 0
	}
	return ttl
}
