package utils

import (
	"context" // Context for Redis operations
	"errors"  // Error inspection
	"strconv" // Counter parsing
	"time"    // Window durations

	"github.com/redis/go-redis/v9" // Redis client
)

// LoginThrottle counts failed logins per email in Redis and blocks after too many
type LoginThrottle struct {
	rdb         redis.Cmdable // Redis client
	maxAttempts int64         // Failures allowed within the window
	window      time.Duration // Lifetime of a failure counter
}

// NewLoginThrottle creates a throttle allowing maxAttempts failures per window
func NewLoginThrottle(rdb redis.Cmdable, maxAttempts int64, window time.Duration) *LoginThrottle {
	return &LoginThrottle{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

func throttleKey(email string) string {
	return "login:failures:" + email // Cache key per email
}

// Blocked reports whether email has exhausted its attempts and how long until it may retry
func (t *LoginThrottle) Blocked(ctx context.Context, email string) (bool, time.Duration, error) {
	val, err := t.rdb.Get(ctx, throttleKey(email)).Result() // Get counter from Redis
	if errors.Is(err, redis.Nil) {
		return false, 0, nil // No failures recorded
	} else if err != nil {
		return false, 0, err // Other Redis error
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, 0, err
	}
	if n < t.maxAttempts {
		return false, 0, nil
	}
	ttl, err := t.rdb.TTL(ctx, throttleKey(email)).Result() // Remaining lock time
	if err != nil {
		return true, t.window, err
	}
	if ttl < 0 {
		// Counter without expiry would lock the email forever
		if err := t.rdb.Expire(ctx, throttleKey(email), t.window).Err(); err != nil {
			return true, t.window, err
		}
		ttl = t.window
	}
	return true, ttl, nil
}

// RecordFailure increments the failure counter. The window starts with the first failure
// and is restored whenever the counter is found without an expiry.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	key := throttleKey(email)
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := t.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return err
	}
	if incr.Val() == 1 || ttl.Val() < 0 {
		return t.rdb.Expire(ctx, key, t.window).Err()
	}
	return nil
}

// Reset deletes the failure counter after a successful login
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	return t.rdb.Del(ctx, throttleKey(email)).Err() // Delete key from Redis
}
