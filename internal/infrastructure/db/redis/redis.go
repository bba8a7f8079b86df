package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iss-spotter/iss-spotter/internal/pkg/retry"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
	Retry   retry.Options
}

// Connect initialises a Redis client and validates connectivity with a ping,
// retrying with exponential backoff while the server comes up.
// A default per-ping timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	err := retry.Do(ctx, cfg.Retry, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return client.Ping(pingCtx).Err()
	}, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("addr", cfg.Addr).Dur("retry_in", wait).Msg("redis not ready")
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
