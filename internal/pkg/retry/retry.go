// Package retry wraps cenkalti/backoff for startup dependencies that may come
// up after the service does (MongoDB, Redis).
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Options tunes the exponential backoff. Zero values select defaults.
type Options struct {
	MaxAttempts     uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

const (
	defaultMaxAttempts     = 5
	defaultInitialInterval = 200 * time.Millisecond
	defaultMaxInterval     = 5 * time.Second
)

// Do calls op until it succeeds, ctx is done, or MaxAttempts retries are spent.
// onRetry, if non-nil, is told about every failed attempt before the wait.
func Do(ctx context.Context, opts Options, op func(ctx context.Context) error, onRetry func(err error, wait time.Duration)) error {
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = defaultInitialInterval
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = defaultMaxInterval
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = opts.InitialInterval
	eb.MaxInterval = opts.MaxInterval
	eb.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(eb, opts.MaxAttempts-1), ctx)

	var notify backoff.Notify
	if onRetry != nil {
		notify = backoff.Notify(onRetry)
	}

	return backoff.RetryNotify(func() error { return op(ctx) }, b, notify)
}
