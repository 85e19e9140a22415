package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "librarysite:ratelimit"

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Config describes a Redis-backed fixed window.
type Config struct {
	Addr     string
	Password string
	Prefix   string
	Limit    int
	Window   time.Duration
	// FailOpen lets requests through when Redis is unreachable.
	FailOpen bool
}

// FixedWindowLimiter counts requests per key in fixed windows shared through Redis.
type FixedWindowLimiter struct {
	cfg    Config
	client *redis.Client
	now    func() time.Time
}

func NewRedisFixedWindowLimiter(cfg Config) (*FixedWindowLimiter, error) {
	if cfg.Limit <= 0 || cfg.Window < time.Millisecond {
		return nil, errors.New("rate limiter requires positive limit and window")
	}
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("rate limiter redis addr is required")
	}
	cfg.Prefix = strings.TrimSpace(cfg.Prefix)
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}
	return &FixedWindowLimiter{
		cfg: cfg,
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
		}),
		now: time.Now,
	}, nil
}

// Allow reports whether key is still within quota for the current window.
// Redis errors are returned alongside the FailOpen decision.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil {
		return false, errors.New("rate limiter is nil")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}
	windowMs := l.cfg.Window.Milliseconds()
	slot := l.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.cfg.Prefix, key, slot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return l.cfg.FailOpen, fmt.Errorf("rate limit %q: %w", key, err)
	}
	return count <= int64(l.cfg.Limit), nil
}

// RetryAfter is the time left in the current window.
func (l *FixedWindowLimiter) RetryAfter() time.Duration {
	windowMs := l.cfg.Window.Milliseconds()
	elapsed := l.now().UTC().UnixMilli() % windowMs
	return time.Duration(windowMs-elapsed) * time.Millisecond
}

func (l *FixedWindowLimiter) Close() error {
	if l == nil || l.client == nil {
		return nil
	}
	return l.client.Close()
}
