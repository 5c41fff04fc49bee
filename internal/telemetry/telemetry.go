// Package telemetry centralizes the ambient logging, tracing, and metrics
// setup shared by every pipeline stage.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/clawome/clawome/pipeline"

var (
	once   sync.Once
	logger *zap.Logger
	tracer trace.Tracer

	extractionsTotal  *prometheus.CounterVec
	compressionRatio  prometheus.Histogram
	nodesBeforeAfter  *prometheus.HistogramVec
	toleratedFailures *prometheus.CounterVec
)

func init() {
	once.Do(setup)
}

func setup() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
	tracer = otel.Tracer(tracerName)

	extractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clawome",
		Name:      "extractions_total",
		Help:      "Number of Extract() calls, labeled by outcome.",
	}, []string{"outcome"})

	compressionRatio = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "clawome",
		Name:      "compression_ratio",
		Help:      "raw html size / rendered tree size for each extraction.",
		Buckets:   prometheus.DefBuckets,
	})

	nodesBeforeAfter = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clawome",
		Name:      "nodes",
		Help:      "Node counts at various pipeline stages.",
		Buckets:   prometheus.ExponentialBuckets(4, 2, 14),
	}, []string{"stage"})

	toleratedFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clawome",
		Name:      "tolerated_failures_total",
		Help:      "Tolerated failures, labeled by source; the agent loop records failed actions by action kind.",
	}, []string{"probe"})
}

// L returns the package logger.
func L() *zap.Logger { return logger }

// Tracer returns the package tracer for pipeline stage spans.
func Tracer() trace.Tracer { return tracer }

// RecordExtraction updates the extraction-outcome counter and, on success,
// the compression-ratio histogram and before/after node-count histograms.
func RecordExtraction(outcome string, ratio float64, before, after int) {
	extractionsTotal.WithLabelValues(outcome).Inc()
	if outcome != "success" {
		return
	}
	compressionRatio.Observe(ratio)
	nodesBeforeAfter.WithLabelValues("before_compress").Observe(float64(before))
	nodesBeforeAfter.WithLabelValues("after_compress").Observe(float64(after))
}

// RecordToleratedFailure increments the per-probe tolerated-failure counter.
func RecordToleratedFailure(probe string) {
	toleratedFailures.WithLabelValues(probe).Inc()
}
