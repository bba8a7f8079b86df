package ports

import (
	"context"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

// LookupRecorder accepts finished lookups for asynchronous persistence.
// Record must not block the pipeline.
type LookupRecorder interface {
	Record(lookup domain.Lookup)
}

// LookupRepository persists the audit history of pipeline runs.
type LookupRepository interface {
	Insert(ctx context.Context, lookup *domain.Lookup) error
	FindByID(ctx context.Context, id string) (*domain.Lookup, error)
	// ListRecent returns up to limit lookups, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.Lookup, error)
}

// ListLookupsResult is returned by LookupService.ListLookups.
type ListLookupsResult struct {
	Items []*domain.Lookup
	Limit int
}

// LookupService exposes the recorded history.
type LookupService interface {
	GetLookup(ctx context.Context, id string) (*domain.Lookup, error)
	ListLookups(ctx context.Context, limit int) (*ListLookupsResult, error)
}
