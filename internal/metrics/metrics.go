// Package metrics counts and times store use cases in a private Prometheus
// registry that can be dumped in text exposition format.
package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/hubkit/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns the registry and the store operation collectors.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hubkit_store_operations_total",
				Help: "Store use cases executed, by result",
			},
			[]string{"use_case", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hubkit_store_operation_duration_seconds",
				Help:    "Store use case duration in seconds, including simulated latency",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 13), // 1ms to ~4s
			},
			[]string{"use_case"},
		),
	}
	r.registry.MustRegister(r.operations, r.duration)
	return r
}

// Registry exposes the collectors, e.g. for testutil or an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveUseCase(_ context.Context, e store.UseCaseEvent) {
	result := "success"
	if !e.Success {
		result = "error"
	}
	r.operations.WithLabelValues(e.Name, result).Inc()
	r.duration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
}

// WriteTextfile writes the registry to path for a node-exporter textfile
// collector. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

var _ store.UseCaseObserver = (*Recorder)(nil)
