package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps pipeline and
// history errors to status codes and renders {"error": "<message>"}.
// Upstream failures keep their message verbatim; unexpected errors are logged
// and answered with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, validation, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logUpstream(log, c, err)
		return http.StatusGatewayTimeout, err.Error()
	case errors.Is(err, domain.ErrUpstreamLogical):
		logUpstream(log, c, err)
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrUpstreamStatus),
		errors.Is(err, domain.ErrNetwork),
		errors.Is(err, domain.ErrMalformedResponse):
		logUpstream(log, c, err)
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, domain.ErrLookupNotFound):
		return http.StatusNotFound, "lookup not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func logUpstream(log zerolog.Logger, c echo.Context, err error) {
	ev := log.Warn().
		Err(err).
		Str("kind", domain.ErrorKind(err)).
		Str("path", c.Path())
	if step, ok := domain.FailedStep(err); ok {
		ev = ev.Str("step", string(step))
	}
	ev.Msg("upstream failure")
}
