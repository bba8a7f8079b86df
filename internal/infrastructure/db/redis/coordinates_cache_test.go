package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/pkg/retry"
)

func newTestCache(t *testing.T, ttl time.Duration) (*CoordinatesCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewCoordinatesCache(client, ttl), mr
}

func TestCoordinatesCache(t *testing.T) {
	want := domain.Coordinates{Latitude: 49.2827, Longitude: -123.1207}

	t.Run("miss", func(t *testing.T) {
		cache, _ := newTestCache(t, time.Minute)

		_, found, err := cache.Get(context.Background(), "1.2.3.4")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("set then get", func(t *testing.T) {
		cache, mr := newTestCache(t, time.Minute)

		require.NoError(t, cache.Set(context.Background(), "1.2.3.4", want))
		got, found, err := cache.Get(context.Background(), "1.2.3.4")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, got)
		assert.True(t, mr.Exists("geo:1.2.3.4"))
	})

	t.Run("entries expire", func(t *testing.T) {
		cache, mr := newTestCache(t, time.Minute)

		require.NoError(t, cache.Set(context.Background(), "1.2.3.4", want))
		mr.FastForward(2 * time.Minute)
		_, found, err := cache.Get(context.Background(), "1.2.3.4")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("default ttl", func(t *testing.T) {
		cache, mr := newTestCache(t, 0)

		require.NoError(t, cache.Set(context.Background(), "1.2.3.4", want))

		assert.Equal(t, defaultCacheTTL, mr.TTL("geo:1.2.3.4"))
	})

	t.Run("corrupt entry is an error", func(t *testing.T) {
		cache, mr := newTestCache(t, time.Minute)
		require.NoError(t, mr.Set("geo:1.2.3.4", "{not json"))

		_, found, err := cache.Get(context.Background(), "1.2.3.4")

		assert.Error(t, err)
		assert.False(t, found)
	})

	t.Run("server down is an error", func(t *testing.T) {
		cache, mr := newTestCache(t, time.Minute)
		mr.Close()

		_, _, err := cache.Get(context.Background(), "1.2.3.4")

		assert.Error(t, err)
	})
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), Config{
		Addr:    addr,
		Timeout: 100 * time.Millisecond,
		Retry:   retry.Options{MaxAttempts: 2, InitialInterval: time.Millisecond},
	}, zerolog.Nop())

	assert.Error(t, err)
}
