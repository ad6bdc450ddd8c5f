package nlu

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder records the outcome of upstream analysis calls.
// Tests inject a fake; production uses NewPrometheusMetrics.
type MetricsRecorder interface {
	// RecordOutcome counts one call by outcome ("success" or a failure category).
	RecordOutcome(outcome string)

	// RecordDuration observes the wall time of one call, including failures.
	RecordDuration(duration time.Duration)
}

// PrometheusMetrics implements MetricsRecorder with Prometheus collectors.
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusMetrics
	prometheusMetricsOnce     sync.Once
)

func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		return promauto.NewHistogram(opts)
	}
	return h
}

// NewPrometheusMetrics returns the process-wide recorder, registering its
// collectors with the default registry on first use.
func NewPrometheusMetrics() *PrometheusMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusMetrics{
			requests: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "sentiment_analysis_requests_total",
				Help: "Total number of upstream sentiment analysis calls by outcome",
			}, []string{"outcome"}),
			duration: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "sentiment_analysis_duration_seconds",
				Help:    "Time taken by the upstream sentiment analysis call",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			}),
		}
	})
	return prometheusMetricsInstance
}

// RecordOutcome implements MetricsRecorder.
func (p *PrometheusMetrics) RecordOutcome(outcome string) {
	p.requests.WithLabelValues(outcome).Inc()
}

// RecordDuration implements MetricsRecorder.
func (p *PrometheusMetrics) RecordDuration(duration time.Duration) {
	p.duration.Observe(duration.Seconds())
}

type noopMetrics struct{}

func (noopMetrics) RecordOutcome(string)         {}
func (noopMetrics) RecordDuration(time.Duration) {}
