package semrush

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheReturnsEntryWithinTTL(t *testing.T) {
	cache := NewCache(5 * time.Minute)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	envelope := &ResponseEnvelope{Data: "payload", StatusCode: 200}
	cache.Set("k", envelope)

	now = now.Add(4 * time.Minute)
	got, ok := cache.Get("k")
	require.True(t, ok)
	require.Same(t, envelope, got)
}

func TestCacheNeverReturnsExpiredEntry(t *testing.T) {
	cache := NewCache(time.Minute)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("k", &ResponseEnvelope{Data: "payload"})

	now = now.Add(time.Minute)
	_, ok := cache.Get("k")
	require.False(t, ok)
	require.Equal(t, 0, cache.Len())
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	cache := NewCache(time.Minute)
	_, ok := cache.Get("missing")
	require.False(t, ok)
}

func TestCacheDisabledWithNonPositiveTTL(t *testing.T) {
	cache := NewCache(0)
	cache.Set("k", &ResponseEnvelope{Data: "payload"})

	_, ok := cache.Get("k")
	require.False(t, ok)
}

func TestCachePrunesExpiredEntriesOnWrite(t *testing.T) {
	cache := NewCache(time.Minute)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("old", &ResponseEnvelope{Data: "old"})

	now = now.Add(2 * time.Minute)
	cache.Set("new", &ResponseEnvelope{Data: "new"})

	require.Equal(t, 1, cache.Len())
	_, ok := cache.Get("new")
	require.True(t, ok)
}
