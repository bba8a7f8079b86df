package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

const defaultCacheTTL = time.Hour

// CoordinatesCache stores resolved coordinates per IP in Redis.
// Key format: geo:<ip>
type CoordinatesCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCoordinatesCache creates a cache wrapping the given Redis client.
// A default TTL is applied when none is provided.
func NewCoordinatesCache(client *redis.Client, ttl time.Duration) *CoordinatesCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CoordinatesCache{client: client, ttl: ttl}
}

// Get returns the cached coordinates for ip; found is false on a miss.
func (c *CoordinatesCache) Get(ctx context.Context, ip domain.IPAddress) (domain.Coordinates, bool, error) {
	raw, err := c.client.Get(ctx, c.key(ip)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geo cache get: %w", err)
	}

	var coords domain.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geo cache decode: %w", err)
	}
	return coords, true, nil
}

// Set caches coords for ip (expires after the configured TTL).
func (c *CoordinatesCache) Set(ctx context.Context, ip domain.IPAddress, coords domain.Coordinates) error {
	raw, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("geo cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(ip), raw, c.ttl).Err()
}

func (c *CoordinatesCache) key(ip domain.IPAddress) string {
	return fmt.Sprintf("geo:%s", ip)
}
