package providers

import (
	"time"

	"csd/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncStatusPolls(outcome string)
	SetShowLive(live bool)
	IncReconciliations(outcome string)
	ObserveReconcileDuration(duration time.Duration)
	IncCommentSubmissions(outcome string)
	AddCommentFilesEvicted(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	statusPolls         *prometheus.CounterVec
	showLive            prometheus.Gauge
	reconciliations     *prometheus.CounterVec
	reconcileDuration   prometheus.Histogram
	commentSubmissions  *prometheus.CounterVec
	commentFilesEvicted prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncStatusPolls(outcome string) {
	m.statusPolls.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) SetShowLive(live bool) {
	if live {
		m.showLive.Set(1)
		return
	}
	m.showLive.Set(0)
}

func (m *MetricsProvider) IncReconciliations(outcome string) {
	m.reconciliations.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveReconcileDuration(duration time.Duration) {
	m.reconcileDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCommentSubmissions(outcome string) {
	m.commentSubmissions.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) AddCommentFilesEvicted(count int) {
	m.commentFilesEvicted.Add(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "csd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "csd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "csd_cache_hits_total",
			Help: "Total number of comment cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "csd_cache_misses_total",
			Help: "Total number of comment cache misses",
		}),

		statusPolls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "csd_status_polls_total",
			Help: "Stream status feed polls by outcome",
		}, []string{"outcome"}),

		showLive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "csd_show_live",
			Help: "1 when a show is live on the main mountpoint",
		}),

		reconciliations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "csd_schedule_reconciliations_total",
			Help: "Schedule reconciliations by outcome",
		}, []string{"outcome"}),

		reconcileDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "csd_schedule_reconcile_duration_seconds",
			Help:    "Duration of schedule reconciliations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		commentSubmissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "csd_comment_submissions_total",
			Help: "Comment submissions by outcome",
		}, []string{"outcome"}),

		commentFilesEvicted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "csd_comment_files_evicted_total",
			Help: "Comment files removed by the eviction sweep",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncStatusPolls(_ string)                          {}
func (n *noopMetrics) SetShowLive(_ bool)                               {}
func (n *noopMetrics) IncReconciliations(_ string)                      {}
func (n *noopMetrics) ObserveReconcileDuration(_ time.Duration)         {}
func (n *noopMetrics) IncCommentSubmissions(_ string)                   {}
func (n *noopMetrics) AddCommentFilesEvicted(_ int)                     {}
