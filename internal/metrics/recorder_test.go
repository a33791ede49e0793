package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder_SafeToUse(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("discover", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncPostResult(ResultBuilt)
	r.IncBuildOutcome("success")
}

func TestPrometheusRecorder_CountsPostResults(t *testing.T) {
	pr := NewPrometheusRecorder(prom.NewRegistry())

	pr.IncPostResult(ResultBuilt)
	pr.IncPostResult(ResultBuilt)
	pr.IncPostResult(ResultSkipped)

	built := testutil.ToFloat64(pr.postResults.WithLabelValues(string(ResultBuilt)))
	require.Equal(t, 2.0, built)
	skipped := testutil.ToFloat64(pr.postResults.WithLabelValues(string(ResultSkipped)))
	require.Equal(t, 1.0, skipped)
}

func TestPrometheusRecorder_HandlerServesMetrics(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome("success")
	pr.ObserveBuildDuration(250 * time.Millisecond)
	pr.ObserveStageDuration("emit", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	pr.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "blogbuilder_build_outcomes_total")
	require.Contains(t, body, "blogbuilder_build_duration_seconds")
}
