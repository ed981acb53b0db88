package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/weather-guardians/internal/adapter/http"
	"github.com/couchcryptid/weather-guardians/internal/domain"
	"github.com/couchcryptid/weather-guardians/internal/forecast"
	"github.com/couchcryptid/weather-guardians/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(t *testing.T, readyErr error) (*httpadapter.Server, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := forecast.NewCachedService(forecast.NewService(time.UTC, logger, metrics), 16, metrics)
	return httpadapter.NewServer(":0", svc, &mockReadiness{err: readyErr}, metrics, logger), metrics
}

func get(t *testing.T, srv http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	assert.Equal(t, http.StatusOK, get(t, srv, "/healthz").Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	assert.Equal(t, http.StatusOK, get(t, srv, "/readyz").Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(t, fmt.Errorf("not ready yet"))
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/readyz").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestPredictionByDate(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/api/heat/2023-07-22")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "heat", body["domain"])
	assert.Equal(t, "2023-07-22", body["date"])
	assert.Equal(t, "severe", body["status"])
	assert.Equal(t, "Extreme Heat", body["condition"])
	assert.InDelta(t, 38.46070769091514, body["value"], 1e-9)
}

func TestPredictionEveryDomain(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	for _, d := range domain.Domains() {
		t.Run(string(d), func(t *testing.T) {
			rec := get(t, srv, "/api/"+string(d)+"/2024-07-15")
			require.Equal(t, http.StatusOK, rec.Code)

			var p domain.Prediction
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
			assert.Equal(t, d, p.Domain)
			assert.Equal(t, domain.MustDate(2024, 7, 15), p.Date)
		})
	}
}

func TestPredictionFutureParts(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	byParts := get(t, srv, "/api/precipitation/future/2024/3/10")
	byDate := get(t, srv, "/api/precipitation/2024-03-10")

	require.Equal(t, http.StatusOK, byParts.Code)
	assert.JSONEq(t, byDate.Body.String(), byParts.Body.String())

	p := decode[domain.Prediction](t, byParts)
	assert.InDelta(t, 0.79, p.Value, 1e-9)
	assert.Equal(t, domain.StatusElevated, p.Status)
}

func TestPredictionToday(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	srv, _ := newTestServer(t, nil)
	p := decode[domain.Prediction](t, get(t, srv, "/api/wind/today"))
	assert.Equal(t, domain.MustDate(2024, 1, 20), p.Date)
	assert.Equal(t, "Moderate breeze", p.Condition)
}

func TestComposite(t *testing.T) {
	srv, metrics := newTestServer(t, nil)

	rec := get(t, srv, "/api/composite/2023-01-11")
	require.Equal(t, http.StatusOK, rec.Code)

	var a domain.CompositeAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, 5, a.Score)
	assert.Equal(t, domain.OutcomeMixed, a.Outcome)
	assert.True(t, a.Flags.Cold)

	get(t, srv, "/api/composite/2023-01-11")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.AssessmentCache.WithLabelValues("hit")), 0)
}

func TestHealthAdvice(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(t, srv, "/api/health/respiratory/2024-07-15")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "AQI 121 (USG), Humidity 78%", body["summary"])
	assert.Equal(t, "elevated", body["risk_status"])
}

func TestHealthAdviceToday(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/api/health/cardiac/today")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-03-10", decode[map[string]any](t, rec)["date"])
}

func TestBadRequests(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		path string
		code int
	}{
		{"/api/heat/2023-02-29", http.StatusBadRequest},
		{"/api/heat/not-a-date", http.StatusBadRequest},
		{"/api/wind/future/2024/13/1", http.StatusBadRequest},
		{"/api/wind/future/2024/x/1", http.StatusBadRequest},
		{"/api/composite/2024-00-10", http.StatusBadRequest},
		{"/api/health/dermal/2024-07-15", http.StatusBadRequest},
		{"/api/health/cardiac/2024-02-30", http.StatusBadRequest},
		{"/api/snow/2024-07-15", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, srv, tt.path)
			assert.Equal(t, tt.code, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestRequestIDAndMetrics(t *testing.T) {
	srv, metrics := newTestServer(t, nil)

	rec := get(t, srv, "/api/heat/2024-07-15")
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/heat/2024-07-15", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "caller-supplied", rec.Header().Get("X-Request-ID"))

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.APIRequests.WithLabelValues("GET /api/{domain}/{date}", "200")), 0)
}
