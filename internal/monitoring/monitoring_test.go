package monitoring

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSignal(t *testing.T) {
	before := testutil.ToFloat64(signalsTotal.WithLabelValues("CALL"))

	RecordSignal("TESTSYM", "CALL", 67)

	assert.Equal(t, before+1, testutil.ToFloat64(signalsTotal.WithLabelValues("CALL")))
	assert.Equal(t, 67.0, testutil.ToFloat64(signalConfidence.WithLabelValues("TESTSYM")))
}

func TestRecordRunAndPrice(t *testing.T) {
	before := testutil.ToFloat64(runsTotal.WithLabelValues("csv"))

	RecordRun("csv", 0.25)
	UpdatePrice("TESTSYM", 119)

	assert.Equal(t, before+1, testutil.ToFloat64(runsTotal.WithLabelValues("csv")))
	assert.Equal(t, 119.0, testutil.ToFloat64(lastPrice.WithLabelValues("TESTSYM")))
}

func TestRecordError(t *testing.T) {
	before := testutil.ToFloat64(errorsTotal.WithLabelValues("INPUT"))
	RecordError("INPUT")
	assert.Equal(t, before+1, testutil.ToFloat64(errorsTotal.WithLabelValues("INPUT")))
}

func TestMetricsEndpoint(t *testing.T) {
	RecordSignal("TESTSYM", "PUT", 60)

	server := httptest.NewServer(NewServeMux(nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "analyzer_signals_total")
	assert.Contains(t, string(body), "analyzer_signal_confidence")
}

func TestHealthChecker(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	h := NewHealthChecker(time.Hour)
	h.now = func() time.Time { return now }
	h.startTime = now

	assert.Equal(t, "degraded", h.Status().Status, "no run yet")

	h.RecordSuccess("CALL")
	status := h.Status()
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "CALL", status.LastSignal)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, "degraded", h.Status().Status)

	h.RecordFailure(errors.New("exchange down"))
	status = h.Status()
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, []string{"exchange down"}, status.Errors)

	h.RecordSuccess("PUT")
	assert.Equal(t, "healthy", h.Status().Status)
}

func TestHealthCheckerBoundsErrors(t *testing.T) {
	h := NewHealthChecker(0)
	for i := 0; i < maxHealthErrors+5; i++ {
		h.RecordFailure(errors.New("boom"))
	}
	assert.Len(t, h.Status().Errors, maxHealthErrors)
}

func TestHealthEndpoint(t *testing.T) {
	h := NewHealthChecker(0)
	h.RecordSuccess("NEUTRAL")

	rec := httptest.NewRecorder()
	NewServeMux(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "NEUTRAL", status.LastSignal)

	h.RecordFailure(errors.New("bad input"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
