package handler

import (
	"time"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

// --- Requests ---

type ipRequest struct {
	IP string `param:"ip" validate:"required,ip"`
}

// Coordinates arrive as strings so that "lat=abc" fails validation with a
// readable message instead of a bind error.
type coordinatesRequest struct {
	Lat string `query:"lat" validate:"required,latitude"`
	Lon string `query:"lon" validate:"required,longitude"`
}

type listLookupsRequest struct {
	Limit int `query:"limit" validate:"min=0"`
}

type getLookupRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

// --- Responses ---

type errorResponse struct {
	Error string `json:"error" example:"Status fail when fetching coordinates. Response: invalid query"`
}

type passResponse struct {
	RiseTime int64 `json:"risetime" example:"1700000000"`
	Duration int64 `json:"duration" example:"540"`
}

type passesResponse struct {
	Passes []passResponse `json:"passes"`
}

type coordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupResponse struct {
	ID          string               `json:"id"`
	Mode        string               `json:"mode"`
	State       string               `json:"state"`
	IP          string               `json:"ip,omitempty"`
	Coordinates *coordinatesResponse `json:"coordinates,omitempty"`
	Passes      []passResponse       `json:"passes,omitempty"`
	FailedStep  string               `json:"failed_step,omitempty"`
	Error       string               `json:"error,omitempty"`
	StartedAt   string               `json:"started_at"`
	FinishedAt  string               `json:"finished_at"`
	DurationMs  int64                `json:"duration_ms"`
}

type listLookupsResponse struct {
	Items []lookupResponse `json:"items"`
	Limit int              `json:"limit"`
}

// --- Mappers ---

func toPassResponses(passes domain.PassList) []passResponse {
	out := make([]passResponse, 0, len(passes))
	for _, p := range passes {
		out = append(out, passResponse{RiseTime: p.RiseTime, Duration: p.Duration})
	}
	return out
}

func toPassesResponse(passes domain.PassList) passesResponse {
	return passesResponse{Passes: toPassResponses(passes)}
}

func toLookupResponse(l *domain.Lookup) lookupResponse {
	resp := lookupResponse{
		ID:         l.ID,
		Mode:       string(l.Mode),
		State:      string(l.State),
		IP:         string(l.IP),
		FailedStep: string(l.FailedStep),
		Error:      l.Error,
		StartedAt:  l.StartedAt.UTC().Format(time.RFC3339Nano),
		FinishedAt: l.FinishedAt.UTC().Format(time.RFC3339Nano),
		DurationMs: l.Duration().Milliseconds(),
	}
	if l.Coordinates != nil {
		resp.Coordinates = &coordinatesResponse{
			Latitude:  l.Coordinates.Latitude,
			Longitude: l.Coordinates.Longitude,
		}
	}
	if len(l.Passes) > 0 {
		resp.Passes = toPassResponses(l.Passes)
	}
	return resp
}
