package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "planarity_analyses_total",
			Help: "Total number of analysis runs by overall outcome",
		},
		[]string{"outcome"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "planarity_analysis_duration_seconds",
			Help:    "Wall time of a full analysis run in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 1.0, 10.0, 60.0, 600.0},
		},
	)

	r.ComponentVerdictsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "planarity_component_verdicts_total",
			Help: "Total number of classified components by verdict",
		},
		[]string{"verdict"},
	)

	r.ComponentNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "planarity_component_nodes",
			Help:    "Number of nodes per classified component",
			Buckets: []float64{1, 2, 5, 6, 10, 20, 40, 80},
		},
	)

	r.WitnessSearchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planarity_witness_search_duration_seconds",
			Help:    "Duration of exhaustive witness searches in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0, 100.0},
		},
		[]string{"search"},
	)

	r.LastRunTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "planarity_last_run_timestamp_seconds",
			Help: "Unix time at which the last analysis run started",
		},
	)

	r.LastRunComponents = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "planarity_last_run_components",
			Help: "Number of connected components in the last analysis run",
		},
	)
}
