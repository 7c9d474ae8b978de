package cache

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis is an in-memory redisClient. failures makes the next n calls
// fail with a network error.
type fakeRedis struct {
	mu       sync.Mutex
	data     map[string]string
	ttls     map[string]time.Duration
	failures int
	calls    int
	closed   bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) fail() error {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	}
	return nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return redis.NewStringResult("", err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return redis.NewStatusResult("", err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newRedisCache(fake, "rm:")

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get on empty = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, ok := fake.data["rm:k"]; !ok {
		t.Error("Set should store under the prefixed key")
	}
	if fake.ttls["rm:k"] != time.Minute {
		t.Errorf("ttl = %v, want 1m", fake.ttls["rm:k"])
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "payload" {
		t.Errorf("Get = %q, %v, %v; want payload, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}

	if err := c.Close(); err != nil || !fake.closed {
		t.Errorf("Close = %v, closed %v", err, fake.closed)
	}
}

func TestRedisCacheRetriesNetworkErrors(t *testing.T) {
	defer setRetryDelay(time.Millisecond)()
	ctx := context.Background()
	fake := newFakeRedis()
	fake.failures = 2
	c := newRedisCache(fake, "")

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set should succeed on the third attempt: %v", err)
	}
	if fake.calls != 3 {
		t.Errorf("calls = %d, want 3", fake.calls)
	}

	fake.failures = 5
	fake.calls = 0
	_, _, err := c.Get(ctx, "k")
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get error = %v, want ErrNetwork", err)
	}
	if fake.calls != 3 {
		t.Errorf("calls = %d, want 3", fake.calls)
	}
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	for _, url := range []string{"", "http://localhost:6379"} {
		if _, err := NewRedisCache(RedisConfig{URL: url}); err == nil {
			t.Errorf("NewRedisCache(%q) should fail", url)
		}
	}
}
