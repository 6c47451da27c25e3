package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sareefinder/backend/internal/domain"
	"github.com/sareefinder/backend/internal/metrics"
)

func newTestMemoryCache(t *testing.T) *MemoryCache {
	t.Helper()
	cache := NewMemoryCache(time.Minute)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := newTestMemoryCache(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value []byte
		ttl   time.Duration
	}{
		{
			name:  "store and retrieve text",
			key:   "test-key-1",
			value: []byte("test-value"),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store and retrieve json",
			key:   "test-key-2",
			value: []byte(`{"responseText":"hi","recommendations":[]}`),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store with short TTL",
			key:   "test-key-3",
			value: []byte("expires-soon"),
			ttl:   1 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, tt.ttl); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			// For short TTL test, wait for expiration
			if tt.ttl < 10*time.Millisecond {
				time.Sleep(10 * time.Millisecond)
				_, err := cache.Get(ctx, tt.key)
				if !errors.Is(err, domain.ErrCacheMiss) {
					t.Errorf("Expected cache miss after expiration, got error = %v", err)
				}
				return
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != string(tt.value) {
				t.Errorf("Get() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestMemoryCache_StoresCopies(t *testing.T) {
	cache := newTestMemoryCache(t)
	ctx := context.Background()

	value := []byte("original")
	if err := cache.Set(ctx, "copy", value, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'X'

	got, err := cache.Get(ctx, "copy")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "original" {
		t.Errorf("Get() = %q, want %q", got, "original")
	}

	got[0] = 'Y'
	again, _ := cache.Get(ctx, "copy")
	if string(again) != "original" {
		t.Errorf("Get() after caller mutation = %q, want %q", again, "original")
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := newTestMemoryCache(t)

	_, err := cache.Get(context.Background(), "non-existent-key")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := newTestMemoryCache(t)
	ctx := context.Background()

	key := "delete-test"
	if err := cache.Set(ctx, key, []byte("value"), 1*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := cache.Get(ctx, key); err != nil {
		t.Fatalf("Get() before delete error = %v", err)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	_, err := cache.Get(ctx, key)
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after delete error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := newTestMemoryCache(t)
	ctx := context.Background()

	key := "exists-test"

	exists, err := cache.Exists(ctx, key)
	if err != nil {
		t.Errorf("Exists() error = %v", err)
	}
	if exists {
		t.Errorf("Exists() = true, want false for non-existent key")
	}

	if err := cache.Set(ctx, key, []byte("value"), 1*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	exists, err = cache.Exists(ctx, key)
	if err != nil {
		t.Errorf("Exists() error = %v", err)
	}
	if !exists {
		t.Errorf("Exists() = false, want true after setting value")
	}

	shortKey := "short-ttl"
	if err := cache.Set(ctx, shortKey, []byte("value"), 1*time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	exists, err = cache.Exists(ctx, shortKey)
	if err != nil {
		t.Errorf("Exists() error = %v", err)
	}
	if exists {
		t.Errorf("Exists() = true, want false after expiration")
	}
}

func TestMemoryCache_Purge(t *testing.T) {
	cache := newTestMemoryCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "live", []byte("1"), time.Hour)
	_ = cache.Set(ctx, "dead", []byte("2"), time.Millisecond)

	cache.purge(time.Now().Add(time.Second))

	if size := cache.Size(); size != 1 {
		t.Errorf("Size() = %d, want 1 after purge", size)
	}
	if ok, _ := cache.Exists(ctx, "live"); !ok {
		t.Errorf("live key removed by purge")
	}
}

func TestMemoryCache_SweepPublishesSize(t *testing.T) {
	cache := newTestMemoryCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "live", []byte("1"), time.Hour)
	_ = cache.Set(ctx, "also-live", []byte("2"), time.Hour)
	_ = cache.Set(ctx, "dead", []byte("3"), time.Millisecond)

	cache.sweep(time.Now().Add(time.Second))

	if got := testutil.ToFloat64(metrics.CacheEntries); got != 2 {
		t.Errorf("cache_entries = %v, want 2 after sweep", got)
	}

	cache.Clear()
	if got := testutil.ToFloat64(metrics.CacheEntries); got != 0 {
		t.Errorf("cache_entries = %v, want 0 after clear", got)
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := newTestMemoryCache(t)
	ctx := context.Background()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 for empty cache", size)
	}

	for i := 0; i < 5; i++ {
		key := string(rune('a' + i))
		if err := cache.Set(ctx, key, []byte{byte(i)}, 1*time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	if size := cache.Size(); size != 5 {
		t.Errorf("Size() = %d, want 5", size)
	}

	if err := cache.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if size := cache.Size(); size != 4 {
		t.Errorf("Size() = %d, want 4 after delete", size)
	}

	cache.Clear()
	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after clear", size)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestMemoryCache(t)
	ctx := context.Background()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := string(rune('a' + id))
			if err := cache.Set(ctx, key, []byte{byte(id)}, 1*time.Minute); err != nil {
				t.Errorf("Concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache(0)
	if err := cache.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
