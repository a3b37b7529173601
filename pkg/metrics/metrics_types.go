package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the analyzer and its loaders
type Registry struct {
	// Analysis Metrics
	AnalysesTotal          *prometheus.CounterVec
	AnalysisDuration       prometheus.Histogram
	ComponentVerdictsTotal *prometheus.CounterVec
	ComponentNodes         prometheus.Histogram
	WitnessSearchDuration  *prometheus.HistogramVec
	LastRunTimestamp       prometheus.Gauge
	LastRunComponents      prometheus.Gauge

	// Input Metrics
	InputNodesTotal     prometheus.Gauge
	InputEdgesTotal     prometheus.Gauge
	EdgesDroppedTotal   *prometheus.CounterVec
	DatasetLoadsTotal   *prometheus.CounterVec
	DatasetLoadDuration *prometheus.HistogramVec

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initAnalysisMetrics()
	r.initInputMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
