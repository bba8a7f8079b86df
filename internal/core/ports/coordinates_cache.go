package ports

import (
	"context"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

// CoordinatesCache stores resolved coordinates per IP.
// Get reports found=false on a miss; err is reserved for store failures.
type CoordinatesCache interface {
	Get(ctx context.Context, ip domain.IPAddress) (coords domain.Coordinates, found bool, err error)
	Set(ctx context.Context, ip domain.IPAddress, coords domain.Coordinates) error
}
