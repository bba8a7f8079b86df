package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type LookupService struct {
	repo   ports.LookupRepository
	logger zerolog.Logger
}

func NewLookupService(repo ports.LookupRepository, logger zerolog.Logger) *LookupService {
	return &LookupService{repo: repo, logger: logger}
}

// GetLookup returns a single recorded run by id.
func (s *LookupService) GetLookup(ctx context.Context, id string) (*domain.Lookup, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lookup: %w", err)
	}
	return l, nil
}

// ListLookups returns the most recent runs. limit is clamped to [1, maxListLimit];
// zero or negative selects defaultListLimit.
func (s *LookupService) ListLookups(ctx context.Context, limit int) (*ports.ListLookupsResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list lookups: %w", err)
	}
	if items == nil {
		items = []*domain.Lookup{}
	}

	s.logger.Debug().Int("limit", limit).Int("count", len(items)).Msg("lookups listed")

	return &ports.ListLookupsResult{Items: items, Limit: limit}, nil
}
