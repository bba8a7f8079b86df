package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iss-spotter/iss-spotter/internal/api/middleware"
	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/core/ports"
)

const testSecret = "router-secret"

type fakeFlyover struct {
	passes domain.PassList
	err    error
}

func (f fakeFlyover) NextPasses(context.Context) (domain.PassList, error) { return f.passes, f.err }

func (f fakeFlyover) PassesForIP(context.Context, domain.IPAddress) (domain.PassList, error) {
	return f.passes, f.err
}

func (f fakeFlyover) PassesAt(context.Context, domain.Coordinates) (domain.PassList, error) {
	return f.passes, f.err
}

type fakeLookups struct{}

func (fakeLookups) GetLookup(context.Context, string) (*domain.Lookup, error) {
	return nil, domain.ErrLookupNotFound
}

func (fakeLookups) ListLookups(context.Context, int) (*ports.ListLookupsResult, error) {
	return &ports.ListLookupsResult{Items: []*domain.Lookup{}, Limit: 20}, nil
}

func newTestRouter(flyover ports.FlyoverService, lookups ports.LookupService, secret string) http.Handler {
	return NewRouter(Deps{
		Flyover:   flyover,
		Lookups:   lookups,
		JWTSecret: secret,
		Logger:    zerolog.Nop(),
		Registry:  prometheus.NewRegistry(),
	})
}

func serve(h http.Handler, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	signed, err := middleware.SignToken(testSecret, "ops", role, time.Hour, time.Now())
	require.NoError(t, err)
	return signed
}

func TestRouter_Passes(t *testing.T) {
	r := newTestRouter(fakeFlyover{passes: domain.PassList{{RiseTime: 100, Duration: 50}}}, nil, "")

	for _, target := range []string{
		"/v1/passes",
		"/v1/passes/ip/1.2.3.4",
		"/v1/passes/coordinates?lat=1.5&lon=2.5",
	} {
		rec := serve(r, target, "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.JSONEq(t, `{"passes":[{"risetime":100,"duration":50}]}`, rec.Body.String(), target)
	}
}

func TestRouter_UpstreamFailureEnvelope(t *testing.T) {
	failure := &domain.UpstreamLogicalError{Step: domain.StepGeo, Message: "invalid query"}
	r := newTestRouter(fakeFlyover{err: failure}, nil, "")

	rec := serve(r, "/v1/passes", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid query")
}

func TestRouter_ValidationEnvelope(t *testing.T) {
	r := newTestRouter(fakeFlyover{}, nil, "")

	rec := serve(r, "/v1/passes/ip/999.1.1.1", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"ip must be a valid IP address"}`, rec.Body.String())
}

func TestRouter_HistoryRequiresAdmin(t *testing.T) {
	r := newTestRouter(fakeFlyover{}, fakeLookups{}, testSecret)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "/v1/lookups", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "/v1/lookups", bearer(t, domain.RoleViewer)).Code)

	rec := serve(r, "/v1/lookups", bearer(t, domain.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"limit":20}`, rec.Body.String())

	rec = serve(r, "/v1/lookups/0d6f1b7e-8a77-4b6f-9b0e-9d6bb1f4c0de", bearer(t, domain.RoleAdmin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"lookup not found"}`, rec.Body.String())
}

func TestRouter_HistoryDisabled(t *testing.T) {
	withoutSecret := newTestRouter(fakeFlyover{}, fakeLookups{}, "")
	withoutStore := newTestRouter(fakeFlyover{}, nil, testSecret)

	assert.Equal(t, http.StatusNotFound, serve(withoutSecret, "/v1/lookups", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(withoutStore, "/v1/lookups", bearer(t, domain.RoleAdmin)).Code)
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	r := newTestRouter(fakeFlyover{}, nil, "")

	assert.Equal(t, http.StatusOK, serve(r, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "/health/ready", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "/metrics", "").Code)

	rec := serve(r, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ISS Spotter API")
}
