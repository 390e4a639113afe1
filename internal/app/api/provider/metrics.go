package provider

import (
	"context"
	"time"

	"speech2text/internal/app/metrics"
)

type instrumented struct {
	next    Transcriber
	metrics *metrics.Metrics
}

// Instrument wraps t so that every call records vendor latency and result.
func Instrument(t Transcriber, m *metrics.Metrics) Transcriber {
	if m == nil {
		return t
	}
	return &instrumented{next: t, metrics: m}
}

func (i *instrumented) Name() string {
	return i.next.Name()
}

func (i *instrumented) Transcribe(ctx context.Context, req *TranscriptionRequest) (*TranscriptionResponse, error) {
	start := time.Now()
	resp, err := i.next.Transcribe(ctx, req)
	i.metrics.VendorLatency.WithLabelValues(i.next.Name()).Observe(time.Since(start).Seconds())

	result := "success"
	if err != nil {
		result = "error"
		if te, ok := err.(*TranscriptionError); ok && te.Code != "" {
			result = te.Code
		}
	}
	i.metrics.VendorRequests.WithLabelValues(i.next.Name(), result).Inc()

	return resp, err
}
