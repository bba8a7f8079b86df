package upstream

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

const DefaultIPServiceURL = "https://api.ipify.org"

type ipifyResponse struct {
	IP string `json:"ip"`
}

// IPify implements ports.IPResolver against an ipify-compatible service.
type IPify struct {
	client  client
	baseURL string
}

func NewIPify(baseURL string, session HTTPClient, log zerolog.Logger) *IPify {
	if baseURL == "" {
		baseURL = DefaultIPServiceURL
	}
	return &IPify{client: newClient(session, log), baseURL: trimBase(baseURL)}
}

// FetchIP asks the service for the caller's public address. Anything but a
// 200 is an UpstreamStatusError carrying the raw body.
func (s *IPify) FetchIP(ctx context.Context) (_ domain.IPAddress, err error) {
	defer observe(domain.StepIP)(&err)

	resp, err := s.client.get(ctx, domain.StepIP, s.baseURL+"/?format=json")
	if err != nil {
		return "", err
	}

	if resp.status != http.StatusOK {
		return "", &domain.UpstreamStatusError{
			Step:       domain.StepIP,
			StatusCode: resp.status,
			Body:       resp.text(),
		}
	}

	var body ipifyResponse
	if err := decode(domain.StepIP, resp.body, &body); err != nil {
		return "", err
	}
	// An empty ip would make ip-api geolocate this host instead. Only presence
	// is checked; the value itself is passed through as is.
	if body.IP == "" {
		return "", &domain.MalformedResponseError{Step: domain.StepIP, Err: errors.New("missing ip field")}
	}

	return domain.IPAddress(body.IP), nil
}
