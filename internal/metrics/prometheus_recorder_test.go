package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherValues(t *testing.T, reg *prom.Registry) map[string]float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	out := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetGauge() != nil:
				out[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				out[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration(StageWalk, 150*time.Millisecond)
	pr.ObserveStageDuration(StageMounts, 5*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(OutcomeWarning)
	pr.SetPages(12)
	pr.SetSections(40)
	pr.SetAssets(3)
	pr.AddWarnings(2)
	pr.AddWarnings(0)

	got := gatherValues(t, reg)
	assert.InDelta(t, 2, got["sitecontent_stage_duration_seconds"], 0)
	assert.InDelta(t, 1, got["sitecontent_build_duration_seconds"], 0)
	assert.InDelta(t, 1, got["sitecontent_build_outcomes_total"], 0)
	assert.InDelta(t, 12, got["sitecontent_pages"], 0)
	assert.InDelta(t, 40, got["sitecontent_sections"], 0)
	assert.InDelta(t, 3, got["sitecontent_assets"], 0)
	assert.InDelta(t, 2, got["sitecontent_warnings_total"], 0)
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.SetPages(1)
		pr.IncBuildOutcome(OutcomeFailed)
	})
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).SetPages(7)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "sitecontent_pages 7"))
}
