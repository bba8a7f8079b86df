package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "logical",
			err:      &domain.UpstreamLogicalError{Step: domain.StepGeo, Message: "invalid query"},
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "Status fail when fetching coordinates. Response: invalid query",
		},
		{
			name:     "status",
			err:      &domain.UpstreamStatusError{Step: domain.StepIP, StatusCode: 503, Body: "down"},
			wantCode: http.StatusBadGateway,
			wantMsg:  "Status Code 503 when fetching IP. Response: down",
		},
		{
			name:     "network",
			err:      &domain.NetworkError{Step: domain.StepPasses, Err: errors.New("connection refused")},
			wantCode: http.StatusBadGateway,
		},
		{
			name:     "malformed",
			err:      &domain.MalformedResponseError{Step: domain.StepPasses, Err: errors.New("unexpected EOF")},
			wantCode: http.StatusBadGateway,
		},
		{
			name:     "deadline",
			err:      &domain.NetworkError{Step: domain.StepIP, Err: context.DeadlineExceeded},
			wantCode: http.StatusGatewayTimeout,
		},
		{
			name:     "not found",
			err:      fmt.Errorf("get lookup: %w", domain.ErrLookupNotFound),
			wantCode: http.StatusNotFound,
			wantMsg:  "lookup not found",
		},
		{
			name:     "echo error",
			err:      echo.NewHTTPError(http.StatusBadRequest, "ip must be a valid IP address"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "ip must be a valid IP address",
		},
		{
			name:     "unexpected",
			err:      errors.New("mongo: connection pool closed"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			assert.Equal(t, tc.wantCode, rec.Code)
			msg := tc.wantMsg
			if msg == "" {
				msg = tc.err.Error()
			}
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, msg), rec.Body.String())
		})
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	assert.Equal(t, "done", rec.Body.String())
}
