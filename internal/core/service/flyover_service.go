package service

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/core/ports"
	"github.com/iss-spotter/iss-spotter/internal/pkg/metrics"
)

type flyoverService struct {
	ips      ports.IPResolver
	geo      ports.GeoResolver
	passes   ports.PassPredictor
	recorder ports.LookupRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewFlyoverService returns a FlyoverService implementation.
// recorder may be nil, in which case runs are not recorded.
func NewFlyoverService(
	ips ports.IPResolver,
	geo ports.GeoResolver,
	passes ports.PassPredictor,
	recorder ports.LookupRecorder,
	log zerolog.Logger,
) ports.FlyoverService {
	return &flyoverService{
		ips:      ips,
		geo:      geo,
		passes:   passes,
		recorder: recorder,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NextPasses runs the whole pipeline starting from the caller's public IP.
func (s *flyoverService) NextPasses(ctx context.Context) (domain.PassList, error) {
	return s.run(ctx, s.begin(domain.ModeSelf, domain.StateStart))
}

// PassesForIP enters the pipeline with the IP already known.
func (s *flyoverService) PassesForIP(ctx context.Context, ip domain.IPAddress) (domain.PassList, error) {
	l := s.begin(domain.ModeIP, domain.StateHaveIP)
	l.IP = ip
	return s.run(ctx, l)
}

// PassesAt enters the pipeline with the coordinates already known.
func (s *flyoverService) PassesAt(ctx context.Context, coords domain.Coordinates) (domain.PassList, error) {
	l := s.begin(domain.ModeCoordinates, domain.StateHaveCoords)
	l.Coordinates = &coords
	return s.run(ctx, l)
}

func (s *flyoverService) begin(mode domain.LookupMode, state domain.PipelineState) *domain.Lookup {
	return &domain.Lookup{
		ID:        uuid.NewString(),
		Mode:      mode,
		State:     state,
		StartedAt: s.now(),
	}
}

// run drives the lookup until it reaches a terminal state. The first failing
// step ends the run and its error is returned as is.
func (s *flyoverService) run(ctx context.Context, l *domain.Lookup) (domain.PassList, error) {
	defer s.finish(l)

	for !l.State.Terminal() {
		if err := s.step(ctx, l); err != nil {
			if failErr := l.Fail(err); failErr != nil {
				s.log.Error().Err(failErr).Str("lookup_id", l.ID).Str("state", string(l.State)).Msg("cannot mark lookup failed")
			}
			return nil, err
		}
	}
	return l.Passes, nil
}

func (s *flyoverService) step(ctx context.Context, l *domain.Lookup) error {
	switch l.State {
	case domain.StateStart:
		ip, err := s.ips.FetchIP(ctx)
		if err != nil {
			return err
		}
		l.IP = ip
		s.log.Debug().Str("lookup_id", l.ID).Str("ip", string(ip)).Msg("ip resolved")
		return l.Advance(domain.StateHaveIP)

	case domain.StateHaveIP:
		coords, err := s.geo.FetchCoordinates(ctx, l.IP)
		if err != nil {
			return err
		}
		l.Coordinates = &coords
		s.log.Debug().Str("lookup_id", l.ID).
			Float64("lat", coords.Latitude).
			Float64("lon", coords.Longitude).
			Msg("coordinates resolved")
		return l.Advance(domain.StateHaveCoords)

	case domain.StateHaveCoords:
		passes, err := s.passes.FetchPasses(ctx, *l.Coordinates)
		if err != nil {
			return err
		}
		l.Passes = passes
		return l.Advance(domain.StateHavePasses)
	}

	return domain.ErrInvalidTransition
}

func (s *flyoverService) finish(l *domain.Lookup) {
	l.FinishedAt = s.now()

	metrics.PipelineRunsTotal.WithLabelValues(string(l.Mode), string(l.State)).Inc()
	metrics.PipelineDuration.WithLabelValues(string(l.Mode)).Observe(l.Duration().Seconds())

	if l.State == domain.StateFailed {
		s.log.Warn().
			Str("lookup_id", l.ID).
			Str("mode", string(l.Mode)).
			Str("failed_step", string(l.FailedStep)).
			Str("error", l.Error).
			Msg("pipeline failed")
	} else {
		s.log.Info().
			Str("lookup_id", l.ID).
			Str("mode", string(l.Mode)).
			Int("passes", len(l.Passes)).
			Dur("took", l.Duration()).
			Msg("pipeline finished")
	}

	if s.recorder == nil {
		return
	}
	// The recorder outlives the request; hand it a copy the caller cannot mutate.
	rec := *l
	rec.Passes = slices.Clone(l.Passes)
	s.recorder.Record(rec)
}
