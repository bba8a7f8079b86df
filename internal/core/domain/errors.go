package domain

import (
	"errors"
	"fmt"
)

// Step identifies the pipeline stage that talked to an upstream.
type Step string

const (
	StepIP     Step = "ip"
	StepGeo    Step = "geo"
	StepPasses Step = "passes"
)

var stepSubjects = map[Step]string{
	StepIP:     "IP",
	StepGeo:    "coordinates",
	StepPasses: "fly over times",
}

func (s Step) subject() string {
	if v, ok := stepSubjects[s]; ok {
		return v
	}
	return string(s)
}

var ErrNetwork = errors.New("network error")
var ErrUpstreamStatus = errors.New("upstream returned unexpected status")
var ErrUpstreamLogical = errors.New("upstream reported failure")
var ErrMalformedResponse = errors.New("malformed upstream response")
var ErrLookupNotFound = errors.New("lookup not found")

// NetworkError is a transport-level failure: DNS, connect, timeout.
type NetworkError struct {
	Step Step
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error when fetching %s: %v", e.Step.subject(), e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// UpstreamStatusError is a non-success HTTP response.
type UpstreamStatusError struct {
	Step       Step
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("Status Code %d when fetching %s. Response: %s", e.StatusCode, e.Step.subject(), e.Body)
}

func (e *UpstreamStatusError) Is(target error) bool { return target == ErrUpstreamStatus }

// UpstreamLogicalError is a successful response whose body encodes a failure.
// Message is the text supplied by the service.
type UpstreamLogicalError struct {
	Step    Step
	Message string
}

func (e *UpstreamLogicalError) Error() string {
	return fmt.Sprintf("Status fail when fetching %s. Response: %s", e.Step.subject(), e.Message)
}

func (e *UpstreamLogicalError) Is(target error) bool { return target == ErrUpstreamLogical }

// MalformedResponseError is a body that could not be decoded.
type MalformedResponseError struct {
	Step Step
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response when fetching %s: %v", e.Step.subject(), e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// FailedStep reports which pipeline step produced err, if any.
func FailedStep(err error) (Step, bool) {
	var (
		ne *NetworkError
		se *UpstreamStatusError
		le *UpstreamLogicalError
		me *MalformedResponseError
	)
	switch {
	case errors.As(err, &ne):
		return ne.Step, true
	case errors.As(err, &se):
		return se.Step, true
	case errors.As(err, &le):
		return le.Step, true
	case errors.As(err, &me):
		return me.Step, true
	}
	return "", false
}

// ErrorKind returns a short label for err, suitable for metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrUpstreamStatus):
		return "upstream_status"
	case errors.Is(err, ErrUpstreamLogical):
		return "upstream_logical"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	default:
		return "other"
	}
}
