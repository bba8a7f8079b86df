package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

type stubFlyoverService struct {
	passes domain.PassList
	err    error

	gotIP     domain.IPAddress
	gotCoords domain.Coordinates
	calls     int
}

func (s *stubFlyoverService) NextPasses(context.Context) (domain.PassList, error) {
	s.calls++
	return s.passes, s.err
}

func (s *stubFlyoverService) PassesForIP(_ context.Context, ip domain.IPAddress) (domain.PassList, error) {
	s.calls++
	s.gotIP = ip
	return s.passes, s.err
}

func (s *stubFlyoverService) PassesAt(_ context.Context, coords domain.Coordinates) (domain.PassList, error) {
	s.calls++
	s.gotCoords = coords
	return s.passes, s.err
}

func newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPassHandler_Next(t *testing.T) {
	stub := &stubFlyoverService{passes: domain.PassList{{RiseTime: 100, Duration: 50}}}
	h := NewPassHandler(stub)
	c, rec := newContext("/v1/passes")

	require.NoError(t, h.Next(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"passes":[{"risetime":100,"duration":50}]}`, rec.Body.String())
}

func TestPassHandler_Next_EmptyListIsArray(t *testing.T) {
	h := NewPassHandler(&stubFlyoverService{})
	c, rec := newContext("/v1/passes")

	require.NoError(t, h.Next(c))

	assert.JSONEq(t, `{"passes":[]}`, rec.Body.String())
}

func TestPassHandler_Next_ReturnsPipelineError(t *testing.T) {
	failure := &domain.UpstreamLogicalError{Step: domain.StepGeo, Message: "invalid query"}
	h := NewPassHandler(&stubFlyoverService{err: failure})
	c, _ := newContext("/v1/passes")

	err := h.Next(c)

	assert.Same(t, failure, err)
}

func TestPassHandler_ForIP(t *testing.T) {
	stub := &stubFlyoverService{passes: domain.PassList{{RiseTime: 1, Duration: 2}}}
	h := NewPassHandler(stub)
	c, rec := newContext("/v1/passes/ip/1.2.3.4")
	c.SetParamNames("ip")
	c.SetParamValues("1.2.3.4")

	require.NoError(t, h.ForIP(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.IPAddress("1.2.3.4"), stub.gotIP)
}

func TestPassHandler_ForIP_RejectsInvalidAddress(t *testing.T) {
	stub := &stubFlyoverService{}
	h := NewPassHandler(stub)
	c, _ := newContext("/v1/passes/ip/not-an-ip")
	c.SetParamNames("ip")
	c.SetParamValues("not-an-ip")

	err := h.ForIP(c)

	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, he.Message, "valid IP address")
	assert.Zero(t, stub.calls)
}

func TestPassHandler_At(t *testing.T) {
	stub := &stubFlyoverService{passes: domain.PassList{{RiseTime: 7, Duration: 8}}}
	h := NewPassHandler(stub)
	c, rec := newContext("/v1/passes/coordinates?lat=45.5&lon=-122.25")

	require.NoError(t, h.At(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Coordinates{Latitude: 45.5, Longitude: -122.25}, stub.gotCoords)
}

func TestPassHandler_At_Validation(t *testing.T) {
	cases := map[string]string{
		"missing lat":      "/v1/passes/coordinates?lon=10",
		"lat out of range": "/v1/passes/coordinates?lat=91&lon=10",
		"lon out of range": "/v1/passes/coordinates?lat=10&lon=181",
		"not a number":     "/v1/passes/coordinates?lat=abc&lon=10",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &stubFlyoverService{}
			h := NewPassHandler(stub)
			c, _ := newContext(target)

			err := h.At(c)

			var he *echo.HTTPError
			require.True(t, errors.As(err, &he))
			assert.Equal(t, http.StatusBadRequest, he.Code)
			assert.Zero(t, stub.calls)
		})
	}
}
