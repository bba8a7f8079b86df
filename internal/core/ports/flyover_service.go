package ports

import (
	"context"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

// FlyoverService runs the IP -> coordinates -> passes pipeline.
//
// Every method returns either a PassList or the first leaf failure unchanged,
// never both.
type FlyoverService interface {
	// NextPasses resolves the caller's own public IP and runs the full pipeline.
	NextPasses(ctx context.Context) (domain.PassList, error)
	// PassesForIP skips IP resolution.
	PassesForIP(ctx context.Context, ip domain.IPAddress) (domain.PassList, error)
	// PassesAt skips IP and coordinate resolution.
	PassesAt(ctx context.Context, coords domain.Coordinates) (domain.PassList, error)
}
