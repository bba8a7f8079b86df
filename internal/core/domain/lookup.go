package domain

import (
	"errors"
	"time"
)

// PipelineState represents how far a run of the pipeline has progressed.
type PipelineState string

const (
	StateStart      PipelineState = "start"
	StateHaveIP     PipelineState = "have_ip"
	StateHaveCoords PipelineState = "have_coords"
	StateHavePasses PipelineState = "have_passes"
	StateFailed     PipelineState = "failed"
)

// validTransitions defines the allowed state machine transitions.
// StateHavePasses and StateFailed are terminal.
var validTransitions = map[PipelineState][]PipelineState{
	StateStart:      {StateHaveIP, StateFailed},
	StateHaveIP:     {StateHaveCoords, StateFailed},
	StateHaveCoords: {StateHavePasses, StateFailed},
}

var ErrInvalidTransition = errors.New("invalid pipeline transition")

// CanTransitionTo reports whether a transition from current state to next is valid.
func (s PipelineState) CanTransitionTo(next PipelineState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s PipelineState) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// LookupMode records which entry point started a run.
type LookupMode string

const (
	ModeSelf        LookupMode = "self"
	ModeIP          LookupMode = "ip"
	ModeCoordinates LookupMode = "coordinates"
)

// Lookup is the audit record of one pipeline run.
type Lookup struct {
	ID          string        `json:"id" bson:"_id"`
	Mode        LookupMode    `json:"mode" bson:"mode"`
	State       PipelineState `json:"state" bson:"state"`
	IP          IPAddress     `json:"ip,omitempty" bson:"ip,omitempty"`
	Coordinates *Coordinates  `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	Passes      PassList      `json:"passes,omitempty" bson:"passes,omitempty"`
	FailedStep  Step          `json:"failed_step,omitempty" bson:"failed_step,omitempty"`
	Error       string        `json:"error,omitempty" bson:"error,omitempty"`
	StartedAt   time.Time     `json:"started_at" bson:"started_at"`
	FinishedAt  time.Time     `json:"finished_at" bson:"finished_at"`
}

// Advance moves the lookup to next, rejecting transitions the state machine
// does not allow.
func (l *Lookup) Advance(next PipelineState) error {
	if !l.State.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	l.State = next
	return nil
}

// Fail moves the lookup to StateFailed and records the cause.
func (l *Lookup) Fail(err error) error {
	if err := l.Advance(StateFailed); err != nil {
		return err
	}
	l.Error = err.Error()
	if step, ok := FailedStep(err); ok {
		l.FailedStep = step
	}
	return nil
}

// Duration is the wall time of the run; zero until it finishes.
func (l *Lookup) Duration() time.Duration {
	if l.FinishedAt.IsZero() {
		return 0
	}
	return l.FinishedAt.Sub(l.StartedAt)
}
