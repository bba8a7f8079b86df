// Package upstream contains the HTTP adapters for the three third-party
// services the pipeline depends on: the public IP echo service, the IP
// geolocation service and the ISS pass predictor.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// HTTPClient abstracts HTTP operations for dependency injection.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns an *http.Client with a per-call timeout.
// A default timeout is applied when none is provided.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// client performs the single GET every adapter needs and classifies
// transport failures.
type client struct {
	session HTTPClient
	log     zerolog.Logger
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (r *response) text() string {
	return strings.TrimSpace(string(r.body))
}

func newClient(session HTTPClient, log zerolog.Logger) client {
	if session == nil {
		session = NewHTTPClient(0)
	}
	return client{session: session, log: log}
}

func (c client) get(ctx context.Context, step domain.Step, url string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", step, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Step: step, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.NetworkError{Step: step, Err: fmt.Errorf("read body: %w", err)}
	}

	c.log.Trace().
		Str("step", string(step)).
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("upstream response")

	return &response{status: resp.StatusCode, body: body}, nil
}

func decode(step domain.Step, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &domain.MalformedResponseError{Step: step, Err: err}
	}
	return nil
}

// observe records latency and outcome of one upstream call. Use as
//
//	defer observe(domain.StepIP)(&err)
func observe(step domain.Step) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		var err error
		if errp != nil {
			err = *errp
		}
		outcome := "ok"
		if err != nil {
			outcome = domain.ErrorKind(err)
		}
		metrics.UpstreamRequestDuration.WithLabelValues(string(step)).Observe(time.Since(start).Seconds())
		metrics.UpstreamRequestsTotal.WithLabelValues(string(step), outcome).Inc()
	}
}

func trimBase(base string) string {
	return strings.TrimRight(base, "/")
}
