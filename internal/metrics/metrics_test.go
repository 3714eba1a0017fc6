package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveFetch("alphavantage", time.Now(), nil)
	m.ObserveFetch("alphavantage", time.Now(), errors.New("boom"))
	m.ObserveCache("hit")
	m.ObserveAnalysis("daily", time.Millisecond)
	m.ObserveSnapshot()
	m.ObserveNotification(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("alphavantage", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("alphavantage", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheTotal.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("daily")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotsRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsSent.WithLabelValues("ok")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch("x", time.Now(), nil)
		m.ObserveCache("miss")
		m.ObserveAnalysis("weekly", 0)
		m.ObserveSnapshot()
		m.ObserveNotification(errors.New("x"))
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveSnapshot()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "analyzer_snapshots_recorded_total 1")
}
