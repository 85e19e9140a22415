package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestLimiter(t *testing.T, addr string, limit int, failOpen bool) *FixedWindowLimiter {
	t.Helper()
	limiter, err := NewRedisFixedWindowLimiter(Config{
		Addr:     addr,
		Prefix:   "test:ratelimit",
		Limit:    limit,
		Window:   time.Minute,
		FailOpen: failOpen,
	})
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	// Pin the clock to the start of a window so the test never straddles two.
	limiter.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { _ = limiter.Close() })
	return limiter
}

func TestFixedWindowLimiterRedis(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter := newTestLimiter(t, redis.Addr(), 2, false)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, err := limiter.Allow(ctx, "ip-1"); err != nil || !ok {
			t.Fatalf("request %d should pass: ok=%v err=%v", i+1, ok, err)
		}
	}
	if ok, _ := limiter.Allow(ctx, "ip-1"); ok {
		t.Fatalf("third request should be blocked")
	}
	if ok, _ := limiter.Allow(ctx, "ip-2"); !ok {
		t.Fatalf("other keys have their own window")
	}
	if got := limiter.RetryAfter(); got != time.Minute {
		t.Fatalf("retry after = %v, want %v", got, time.Minute)
	}
}

func TestFixedWindowLimiterRedisFailure(t *testing.T) {
	redis := miniredis.RunT(t)
	closed := newTestLimiter(t, redis.Addr(), 1, false)
	open := newTestLimiter(t, redis.Addr(), 1, true)
	redis.Close()

	if ok, err := closed.Allow(context.Background(), "ip-1"); ok || err == nil {
		t.Fatalf("limiter should fail closed: ok=%v err=%v", ok, err)
	}
	if ok, err := open.Allow(context.Background(), "ip-1"); !ok || err == nil {
		t.Fatalf("limiter should fail open and report the error: ok=%v err=%v", ok, err)
	}
}

func TestFixedWindowLimiterValidatesConfig(t *testing.T) {
	if _, err := NewRedisFixedWindowLimiter(Config{Limit: 1, Window: time.Second}); err == nil {
		t.Fatalf("expected error for empty redis addr")
	}
	if _, err := NewRedisFixedWindowLimiter(Config{Addr: "localhost:6379", Window: time.Second}); err == nil {
		t.Fatalf("expected error for zero limit")
	}
}
