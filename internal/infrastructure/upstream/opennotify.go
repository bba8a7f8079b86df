package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

const DefaultPassServiceURL = "http://api.open-notify.org"

const openNotifyFailure = "failure"

type openNotifyResponse struct {
	Message  string          `json:"message"`
	Reason   string          `json:"reason"`
	Response domain.PassList `json:"response"`
}

// OpenNotify implements ports.PassPredictor against the open-notify ISS pass API.
type OpenNotify struct {
	client  client
	baseURL string
	count   int
}

// NewOpenNotify returns a predictor. count is sent as the "n" parameter when
// positive; otherwise the service default applies.
func NewOpenNotify(baseURL string, count int, session HTTPClient, log zerolog.Logger) *OpenNotify {
	if baseURL == "" {
		baseURL = DefaultPassServiceURL
	}
	return &OpenNotify{client: newClient(session, log), baseURL: trimBase(baseURL), count: count}
}

// formatDegrees renders v with the fewest digits that round-trip.
func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *OpenNotify) endpoint(coords domain.Coordinates) string {
	q := url.Values{}
	q.Set("lat", formatDegrees(coords.Latitude))
	q.Set("lon", formatDegrees(coords.Longitude))
	if s.count > 0 {
		q.Set("n", strconv.Itoa(s.count))
	}
	return s.baseURL + "/iss-pass.json?" + q.Encode()
}

// FetchPasses returns upcoming passes over coords in service order. A body
// with message "failure" is an UpstreamLogicalError carrying the reason.
func (s *OpenNotify) FetchPasses(ctx context.Context, coords domain.Coordinates) (_ domain.PassList, err error) {
	defer observe(domain.StepPasses)(&err)

	resp, err := s.client.get(ctx, domain.StepPasses, s.endpoint(coords))
	if err != nil {
		return nil, err
	}

	var body openNotifyResponse
	decodeErr := decode(domain.StepPasses, resp.body, &body)

	if decodeErr == nil && body.Message == openNotifyFailure {
		return nil, &domain.UpstreamLogicalError{Step: domain.StepPasses, Message: body.Reason}
	}
	if !resp.ok() {
		return nil, &domain.UpstreamStatusError{
			Step:       domain.StepPasses,
			StatusCode: resp.status,
			Body:       resp.text(),
		}
	}
	if decodeErr != nil {
		return nil, decodeErr
	}

	if body.Response == nil {
		return domain.PassList{}, nil
	}
	return body.Response, nil
}
