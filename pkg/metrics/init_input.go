package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initInputMetrics() {
	r.InputNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "planarity_input_nodes",
			Help: "Distinct settlements in the last analyzed graph",
		},
	)

	r.InputEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "planarity_input_edges",
			Help: "Distinct corridors in the last analyzed graph",
		},
	)

	r.EdgesDroppedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "planarity_edges_dropped_total",
			Help: "Input edges normalized away while building the graph",
		},
		[]string{"reason"},
	)

	r.DatasetLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "planarity_dataset_loads_total",
			Help: "Dataset loads by source kind and status",
		},
		[]string{"source", "status"},
	)

	r.DatasetLoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planarity_dataset_load_duration_seconds",
			Help:    "Dataset load duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"source"},
	)
}
