package upstream

import (
	"context"
	"errors"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

const DefaultGeoServiceURL = "http://ip-api.com"

const ipAPIStatusFail = "fail"

type ipAPIResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// IPAPI implements ports.GeoResolver against an ip-api.com compatible service.
type IPAPI struct {
	client  client
	baseURL string
}

func NewIPAPI(baseURL string, session HTTPClient, log zerolog.Logger) *IPAPI {
	if baseURL == "" {
		baseURL = DefaultGeoServiceURL
	}
	return &IPAPI{client: newClient(session, log), baseURL: trimBase(baseURL)}
}

// FetchCoordinates geolocates ip. The service signals failures in the body
// with status "fail", which takes precedence over the HTTP status.
func (s *IPAPI) FetchCoordinates(ctx context.Context, ip domain.IPAddress) (_ domain.Coordinates, err error) {
	defer observe(domain.StepGeo)(&err)

	resp, err := s.client.get(ctx, domain.StepGeo, s.baseURL+"/json/"+url.PathEscape(string(ip)))
	if err != nil {
		return domain.Coordinates{}, err
	}

	var body ipAPIResponse
	decodeErr := decode(domain.StepGeo, resp.body, &body)

	if decodeErr == nil && body.Status == ipAPIStatusFail {
		return domain.Coordinates{}, &domain.UpstreamLogicalError{Step: domain.StepGeo, Message: body.Message}
	}
	if !resp.ok() {
		return domain.Coordinates{}, &domain.UpstreamStatusError{
			Step:       domain.StepGeo,
			StatusCode: resp.status,
			Body:       resp.text(),
		}
	}
	if decodeErr != nil {
		return domain.Coordinates{}, decodeErr
	}
	if body.Lat == nil || body.Lon == nil {
		return domain.Coordinates{}, &domain.MalformedResponseError{Step: domain.StepGeo, Err: errors.New("missing lat/lon")}
	}

	return domain.Coordinates{Latitude: *body.Lat, Longitude: *body.Lon}, nil
}
