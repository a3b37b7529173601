package planarity

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/corridor-planarity/pkg/logging"
	"github.com/dd0wney/corridor-planarity/pkg/parallel"
	"github.com/google/uuid"
)

// DefaultLargeComponentThreshold is the component size above which the
// exhaustive witness searches are logged as a capacity warning.
const DefaultLargeComponentThreshold = 40

// Witness search names used for timing
const (
	SearchK5  = "k5"
	SearchK33 = "k33"
)

// Recorder receives analysis telemetry. It keeps the analyzer independent of
// any particular metrics backend. Implementations must be safe for concurrent
// use when the analyzer runs with more than one worker.
type Recorder interface {
	RecordComponent(verdict Verdict, nodes int)
	RecordWitnessSearch(search string, d time.Duration)
	RecordReport(r *Report)
}

type nopRecorder struct{}

func (nopRecorder) RecordComponent(Verdict, int)               {}
func (nopRecorder) RecordWitnessSearch(string, time.Duration) {}
func (nopRecorder) RecordReport(*Report)                      {}

// Options configures an Analyzer
type Options struct {
	Workers                 int
	LargeComponentThreshold int
	Logger                  logging.Logger
	Recorder                Recorder
	RunID                   string
}

// Option mutates Options
type Option func(*Options)

// WithWorkers analyzes components on n goroutines. n <= 1 runs sequentially.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger; the default discards everything
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRecorder sets the telemetry sink
func WithRecorder(r Recorder) Option {
	return func(o *Options) {
		if r != nil {
			o.Recorder = r
		}
	}
}

// WithLargeComponentThreshold sets the size above which witness searches warn.
// Zero or less disables the warning.
func WithLargeComponentThreshold(n int) Option {
	return func(o *Options) { o.LargeComponentThreshold = n }
}

// WithRunID fixes the run identifier instead of generating one
func WithRunID(id string) Option {
	return func(o *Options) { o.RunID = id }
}

// Analyzer classifies every connected component of a graph
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates an analyzer with the given options
func NewAnalyzer(opts ...Option) *Analyzer {
	o := Options{
		Workers:                 1,
		LargeComponentThreshold: DefaultLargeComponentThreshold,
		Logger:                  logging.NewNopLogger(),
		Recorder:                nopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Analyzer{opts: o}
}

// Analyze builds the graph and classifies every component with default options
func Analyze(nodes []string, edges []Edge) *Report {
	return NewAnalyzer().Analyze(nodes, edges)
}

// Analyze builds the graph and classifies every component. It never fails.
func (a *Analyzer) Analyze(nodes []string, edges []Edge) *Report {
	report, _ := a.AnalyzeContext(context.Background(), nodes, edges)
	return report
}

// AnalyzeContext is Analyze with cancellation checked between components.
// A cancelled run returns ctx.Err() and no report.
func (a *Analyzer) AnalyzeContext(ctx context.Context, nodes []string, edges []Edge) (*Report, error) {
	g, stats := BuildGraph(nodes, edges)
	return a.AnalyzeGraph(ctx, g, stats)
}

// AnalyzeGraph classifies every component of an already built graph
func (a *Analyzer) AnalyzeGraph(ctx context.Context, g *Graph, stats BuildStats) (*Report, error) {
	started := time.Now()

	runID := a.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := a.opts.Logger.With(logging.RunID(runID))

	if stats.Dropped() > 0 || stats.DuplicateNodes > 0 {
		logger.Info("input normalized",
			logging.Int("unknown_endpoint", stats.UnknownEndpoint),
			logging.Int("self_loops", stats.SelfLoops),
			logging.Int("duplicate_edges", stats.Duplicates),
			logging.Int("duplicate_nodes", stats.DuplicateNodes),
		)
	}

	components := ConnectedComponents(g)
	results := make([]ComponentResult, len(components))
	done := make([]bool, len(components))

	classify := func(i int) {
		results[i] = a.classify(g, components[i], logger)
		done[i] = true
	}

	if a.opts.Workers > 1 && len(components) > 1 {
		err := parallel.ForEach(ctx, a.opts.Workers, len(components), classify,
			parallel.WithPanicHandler(func(r any) {
				logger.Error("component analysis panicked", logging.Any("panic", fmt.Sprint(r)))
			}))
		if err != nil {
			return nil, err
		}
	} else {
		for i := range components {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			classify(i)
		}
	}

	for i, ok := range done {
		if !ok {
			return nil, fmt.Errorf("component %d was not classified", i)
		}
	}

	report := &Report{
		RunID:             runID,
		NodeCount:         g.NodeCount(),
		EdgeCount:         g.EdgeCount(),
		Build:             stats,
		Components:        results,
		AllPossiblyPlanar: true,
		StartedAt:         started,
	}
	for _, r := range results {
		if r.Verdict != VerdictPossiblyPlanar {
			report.AllPossiblyPlanar = false
		}
	}
	report.Duration = time.Since(started)

	a.opts.Recorder.RecordReport(report)
	logger.Debug("analysis finished",
		logging.NodeCount(report.NodeCount),
		logging.EdgeCount(report.EdgeCount),
		logging.Int("components", len(results)),
		logging.Bool("all_possibly_planar", report.AllPossiblyPlanar),
		logging.Latency(report.Duration),
	)

	return report, nil
}

// ClassifyComponent runs singleton, bound, K5 and K3,3 checks in order and
// stops at the first violation.
func (a *Analyzer) ClassifyComponent(g *Graph, c Component) ComponentResult {
	return a.classify(g, c, a.opts.Logger)
}

func (a *Analyzer) classify(g *Graph, c Component, logger logging.Logger) ComponentResult {
	n := c.Size()
	result := ComponentResult{
		Index:     c.Index,
		NodeCount: n,
		EdgeCount: ComponentEdgeCount(g, c.Nodes),
		Nodes:     append([]int(nil), c.Nodes...),
		Members:   g.IDs(c.Nodes),
		Verdict:   VerdictPossiblyPlanar,
	}

	defer func() {
		a.opts.Recorder.RecordComponent(result.Verdict, n)
		logger.Debug("component classified",
			logging.ComponentIndex(c.Index),
			logging.NodeCount(n),
			logging.EdgeCount(result.EdgeCount),
			logging.Verdict(result.Verdict.Tag()),
		)
	}()

	if n == 1 {
		return result
	}

	if ExceedsPlanarBound(n, result.EdgeCount) {
		result.Verdict = VerdictBoundViolation
		return result
	}

	if a.opts.LargeComponentThreshold > 0 && n > a.opts.LargeComponentThreshold && n >= k5Size {
		logger.Warn("exhaustive witness search on large component",
			logging.ComponentIndex(c.Index),
			logging.NodeCount(n),
			logging.Int("k5_subsets", Binomial(n, k5Size)),
			logging.Int("k33_subsets", Binomial(n, k33Size)),
		)
	}

	start := time.Now()
	w := FindK5(g, c.Nodes)
	if n >= k5Size {
		a.opts.Recorder.RecordWitnessSearch(SearchK5, time.Since(start))
	}
	if w != nil {
		result.Verdict = VerdictK5
		result.Witness = w
		result.K5 = g.IDs(w.Nodes)
		return result
	}

	start = time.Now()
	w = FindK33(g, c.Nodes)
	if n >= k33Size {
		a.opts.Recorder.RecordWitnessSearch(SearchK33, time.Since(start))
	}
	if w != nil {
		result.Verdict = VerdictK33
		result.Witness = w
		result.K33A = g.IDs(w.A)
		result.K33B = g.IDs(w.B)
		return result
	}

	return result
}
