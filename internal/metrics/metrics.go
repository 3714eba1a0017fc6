package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the analyzer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	FetchTotal    *prometheus.CounterVec   // labels: source, result
	FetchDuration *prometheus.HistogramVec // labels: source
	CacheTotal    *prometheus.CounterVec   // labels: result (hit, miss, error)

	IndicatorComputeDur prometheus.Histogram
	AnalysesTotal       *prometheus.CounterVec // labels: interval

	SnapshotsRecorded prometheus.Counter
	NotificationsSent *prometheus.CounterVec // labels: result

	gatherer prometheus.Gatherer
}

// NewMetrics creates all metrics and registers them with reg. A
// *prometheus.Registry also serves as the gatherer for Handler; any other
// registerer falls back to the default gatherer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_fetch_total",
			Help: "Market data fetches by source and result",
		}, []string{"source", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "analyzer_fetch_duration_seconds",
			Help:    "Market data fetch latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		CacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_cache_lookups_total",
			Help: "Series cache lookups by result",
		}, []string{"result"}),

		IndicatorComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "analyzer_indicator_compute_duration_seconds",
			Help:    "Time to compute every indicator for one series",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_analyses_total",
			Help: "Completed analyses by interval",
		}, []string{"interval"}),

		SnapshotsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analyzer_snapshots_recorded_total",
			Help: "Analysis snapshots written to the recorder",
		}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_notifications_total",
			Help: "Telegram notifications by result",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.FetchTotal,
		m.FetchDuration,
		m.CacheTotal,
		m.IndicatorComputeDur,
		m.AnalysesTotal,
		m.SnapshotsRecorded,
		m.NotificationsSent,
	)

	m.gatherer = prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Handler serves the registered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveFetch records one upstream fetch.
func (m *Metrics) ObserveFetch(source string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.FetchTotal.WithLabelValues(source, result).Inc()
	m.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

// ObserveCache records a cache lookup result: "hit", "miss" or "error".
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheTotal.WithLabelValues(result).Inc()
}

// ObserveAnalysis records one completed analysis and its compute time.
func (m *Metrics) ObserveAnalysis(interval string, compute time.Duration) {
	if m == nil {
		return
	}
	m.IndicatorComputeDur.Observe(compute.Seconds())
	m.AnalysesTotal.WithLabelValues(interval).Inc()
}

// ObserveSnapshot records a persisted snapshot.
func (m *Metrics) ObserveSnapshot() {
	if m == nil {
		return
	}
	m.SnapshotsRecorded.Inc()
}

// ObserveNotification records a notification attempt.
func (m *Metrics) ObserveNotification(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.NotificationsSent.WithLabelValues("error").Inc()
		return
	}
	m.NotificationsSent.WithLabelValues("ok").Inc()
}
