package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "s2t"

// Metrics holds every collector the service exports
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPLatency        *prometheus.HistogramVec
	VendorRequests     *prometheus.CounterVec
	VendorLatency      *prometheus.HistogramVec
	TranscriptOutcomes *prometheus.CounterVec
	AudioBytes         prometheus.Histogram
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		VendorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vendor",
			Name:      "requests_total",
			Help:      "Speech-to-text vendor calls by provider and result.",
		}, []string{"provider", "result"}),
		VendorLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "vendor",
			Name:      "request_duration_seconds",
			Help:      "Speech-to-text vendor call latency.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"provider"}),
		TranscriptOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_total",
			Help:      "Uploads by final transcript status.",
		}, []string{"status"}),
		AudioBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_audio_bytes",
			Help:      "Size of uploaded audio payloads.",
			Buckets:   prometheus.ExponentialBuckets(64*1024, 4, 8),
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPLatency,
		m.VendorRequests,
		m.VendorLatency,
		m.TranscriptOutcomes,
		m.AudioBytes,
	)

	return m
}

// NewNop returns collectors registered with a private registry. Useful in
// tests and tools that do not expose /metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
