package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultThrottleTTL = time.Minute

// OTPThrottle rate-limits OTP email dispatch per address, backed by Redis.
// Key format: otp:throttle:<email>
type OTPThrottle struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOTPThrottle creates an OTPThrottle wrapping the given Redis client.
// If ttl <= 0, defaultThrottleTTL is used.
func NewOTPThrottle(client *redis.Client, ttl time.Duration) *OTPThrottle {
	if ttl <= 0 {
		ttl = defaultThrottleTTL
	}
	return &OTPThrottle{client: client, ttl: ttl}
}

// Allow reports whether an OTP may be sent to this address now.
func (t *OTPThrottle) Allow(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Exists(ctx, t.key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n == 0, nil
}

// Mark records a successful dispatch (expires after the throttle window).
func (t *OTPThrottle) Mark(ctx context.Context, email string) error {
	return t.client.Set(ctx, t.key(email), "1", t.ttl).Err()
}

func (t *OTPThrottle) key(email string) string {
	return "otp:throttle:" + email
}
