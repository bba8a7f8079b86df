package upstream

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/core/ports"
	"github.com/iss-spotter/iss-spotter/internal/pkg/metrics"
)

// sharedLookupTimeout bounds a coalesced upstream call, which no single
// caller's context can cancel.
const sharedLookupTimeout = 30 * time.Second

// CachedGeoResolver wraps a GeoResolver with a coordinates cache.
// Only successful lookups are cached. Concurrent misses for the same IP share
// one upstream call. Cache failures are logged and never fail the lookup.
type CachedGeoResolver struct {
	next  ports.GeoResolver
	cache ports.CoordinatesCache
	group singleflight.Group
	log   zerolog.Logger
}

func NewCachedGeoResolver(next ports.GeoResolver, cache ports.CoordinatesCache, log zerolog.Logger) *CachedGeoResolver {
	return &CachedGeoResolver{next: next, cache: cache, log: log}
}

func (r *CachedGeoResolver) FetchCoordinates(ctx context.Context, ip domain.IPAddress) (domain.Coordinates, error) {
	coords, found, err := r.cache.Get(ctx, ip)
	switch {
	case err != nil:
		metrics.GeoCacheTotal.WithLabelValues("error").Inc()
		r.log.Warn().Err(err).Str("ip", string(ip)).Msg("geo cache read failed, resolving upstream")
	case found:
		metrics.GeoCacheTotal.WithLabelValues("hit").Inc()
		return coords, nil
	default:
		metrics.GeoCacheTotal.WithLabelValues("miss").Inc()
	}

	ch := r.group.DoChan(string(ip), func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()

		coords, err := r.next.FetchCoordinates(sharedCtx, ip)
		if err != nil {
			return nil, err
		}
		if setErr := r.cache.Set(sharedCtx, ip, coords); setErr != nil {
			r.log.Warn().Err(setErr).Str("ip", string(ip)).Msg("failed to cache coordinates")
		}
		return coords, nil
	})

	select {
	case <-ctx.Done():
		return domain.Coordinates{}, &domain.NetworkError{Step: domain.StepGeo, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return domain.Coordinates{}, res.Err
		}
		if res.Shared {
			r.log.Debug().Str("ip", string(ip)).Msg("coordinates lookup shared")
		}
		return res.Val.(domain.Coordinates), nil
	}
}
