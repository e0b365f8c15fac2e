// internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxLoginAttempts = 5
	loginWindow      = 15 * time.Minute
)

// Limiter tracks failed login attempts per (ip, identifier) in redis.
// It backs the server-side brute-force defense; the client-side lockout
// guard in pkg/client is advisory UX only.
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// CheckLoginAttempt records a login attempt and reports whether it is allowed.
func (r *Limiter) CheckLoginAttempt(ctx context.Context, ip, identifier string) (bool, int64, error) {
	key := loginKey(ip, identifier)

	// NX keeps the window fixed: the TTL is set with the first attempt, and
	// a counter key that somehow lost its TTL gets one again instead of
	// living forever. An EXPIRE failure fails the whole check so the caller
	// can fail open.
	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, loginWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to record login attempt: %w", err)
	}

	count := incr.Val()
	remaining := int64(maxLoginAttempts) - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= maxLoginAttempts, remaining, nil
}

// ResetLoginAttempts clears the attempt counter after a successful login.
func (r *Limiter) ResetLoginAttempts(ctx context.Context, ip, identifier string) error {
	return r.client.Del(ctx, loginKey(ip, identifier)).Err()
}

func loginKey(ip, identifier string) string {
	return fmt.Sprintf("ratelimit:login:%s:%s", ip, identifier)
}
