package metrics

import (
	"fmt"
	"time"

	"github.com/dd0wney/corridor-planarity/pkg/planarity"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry implements planarity.Recorder
var _ planarity.Recorder = (*Registry)(nil)

// RecordComponent records one classified component
func (r *Registry) RecordComponent(verdict planarity.Verdict, nodes int) {
	r.ComponentVerdictsTotal.WithLabelValues(verdict.Tag()).Inc()
	r.ComponentNodes.Observe(float64(nodes))
}

// RecordWitnessSearch records the duration of one witness search
func (r *Registry) RecordWitnessSearch(search string, d time.Duration) {
	r.WitnessSearchDuration.WithLabelValues(search).Observe(d.Seconds())
}

// RecordReport records the outcome of a finished analysis run
func (r *Registry) RecordReport(report *planarity.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	outcome := "nonplanar"
	if report.AllPossiblyPlanar {
		outcome = "possibly_planar"
	}
	r.AnalysesTotal.WithLabelValues(outcome).Inc()
	r.AnalysisDuration.Observe(report.Duration.Seconds())
	r.LastRunTimestamp.Set(float64(report.StartedAt.Unix()))
	r.LastRunComponents.Set(float64(len(report.Components)))

	r.InputNodesTotal.Set(float64(report.NodeCount))
	r.InputEdgesTotal.Set(float64(report.EdgeCount))
	r.EdgesDroppedTotal.WithLabelValues("unknown_endpoint").Add(float64(report.Build.UnknownEndpoint))
	r.EdgesDroppedTotal.WithLabelValues("self_loop").Add(float64(report.Build.SelfLoops))
	r.EdgesDroppedTotal.WithLabelValues("duplicate").Add(float64(report.Build.Duplicates))
}

// RecordDatasetLoad records a dataset load by source kind
func (r *Registry) RecordDatasetLoad(source string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.DatasetLoadsTotal.WithLabelValues(source, status).Inc()
	r.DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for collection by the node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
