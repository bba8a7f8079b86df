package ports

import (
	"context"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

// IPResolver reports the caller's public IP address.
type IPResolver interface {
	FetchIP(ctx context.Context) (domain.IPAddress, error)
}

// GeoResolver maps an IP address to geographic coordinates.
type GeoResolver interface {
	FetchCoordinates(ctx context.Context, ip domain.IPAddress) (domain.Coordinates, error)
}

// PassPredictor returns upcoming ISS passes over a point, in the order the
// predictor reports them.
type PassPredictor interface {
	FetchPasses(ctx context.Context, coords domain.Coordinates) (domain.PassList, error)
}
