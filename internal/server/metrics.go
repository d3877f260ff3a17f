package server

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Prometheus collectors, scraped from /metrics.
var (
	projectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fmgo_projections_total",
			Help: "Projections computed, by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	requestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fmgo_request_errors_total",
			Help: "Failed API requests, by operation",
		},
		[]string{"operation"},
	)

	computeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fmgo_compute_duration_seconds",
			Help:    "Time spent computing, by operation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"operation"},
	)
)

// instruments are the OTel counterparts, exported over OTLP when configured.
type instruments struct {
	projections metric.Int64Counter
	duration    metric.Float64Histogram
	errors      metric.Int64Counter
	lastFinal   metric.Float64Gauge
}

func newInstruments() (*instruments, error) {
	meter := otel.Meter("fmgo/server")

	var (
		inst instruments
		err  error
	)

	inst.projections, err = meter.Int64Counter("fmgo.projections.total",
		metric.WithDescription("Total number of projections computed"),
		metric.WithUnit("{projection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating projection counter: %w", err)
	}

	inst.duration, err = meter.Float64Histogram("fmgo.compute.duration",
		metric.WithDescription("Duration of projection computations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 5, 10, 50, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	inst.errors, err = meter.Int64Counter("fmgo.errors.total",
		metric.WithDescription("Total number of failed API requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	inst.lastFinal, err = meter.Float64Gauge("fmgo.projection.final_amount",
		metric.WithDescription("Final balance of the last projection"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating final amount gauge: %w", err)
	}

	return &inst, nil
}
