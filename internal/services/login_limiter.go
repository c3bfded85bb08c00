package services

import (
	"context"
	"fmt"

	"github.com/fxledger/backend/internal/config"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// LoginLimiter counts failed logins per email in Redis. Without Redis, or
// with a non-positive limit, every call is a no-op.
type LoginLimiter struct {
	redis  *redis.Client
	config config.LoginLimitConfig
}

func NewLoginLimiter(rdb *redis.Client, cfg config.LoginLimitConfig) *LoginLimiter {
	return &LoginLimiter{redis: rdb, config: cfg}
}

func (l *LoginLimiter) enabled() bool {
	return l.redis != nil && l.config.MaxAttempts > 0
}

func loginAttemptsKey(email string) string {
	return fmt.Sprintf("login:attempts:%s", email)
}

// Check fails once email has used up its attempts for the current window.
// A Redis failure lets the login through.
func (l *LoginLimiter) Check(ctx context.Context, email string) error {
	if !l.enabled() {
		return nil
	}

	count, err := l.redis.Get(ctx, loginAttemptsKey(email)).Int()
	if err != nil && err != redis.Nil {
		zap.L().Warn("Login limiter unavailable", zap.Error(err))
		return nil
	}

	if count >= l.config.MaxAttempts {
		return &Error{Kind: KindTooManyRequests, Message: "Too many failed login attempts, try again later"}
	}
	return nil
}

// Fail records one failed attempt and restarts the window.
func (l *LoginLimiter) Fail(ctx context.Context, email string) {
	if !l.enabled() {
		return
	}

	key := loginAttemptsKey(email)
	pipe := l.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		zap.L().Warn("Failed to record login attempt", zap.Error(err))
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if !l.enabled() {
		return
	}
	if err := l.redis.Del(ctx, loginAttemptsKey(email)).Err(); err != nil {
		zap.L().Warn("Failed to reset login attempts", zap.Error(err))
	}
}
