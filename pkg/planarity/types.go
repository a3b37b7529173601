package planarity

import (
	"fmt"
	"time"
)

// Verdict classifies a single connected component
type Verdict int

const (
	// VerdictPossiblyPlanar means no violation was found by the checks performed.
	// It is not a proof of planarity.
	VerdictPossiblyPlanar Verdict = iota
	// VerdictBoundViolation means the component has more than 3n-6 edges
	VerdictBoundViolation
	// VerdictK5 means five mutually adjacent nodes were found
	VerdictK5
	// VerdictK33 means two disjoint triples with all nine cross pairs adjacent were found
	VerdictK33
)

// String returns the human readable verdict tag
func (v Verdict) String() string {
	switch v {
	case VerdictPossiblyPlanar:
		return "possibly-planar"
	case VerdictBoundViolation:
		return "nonplanar (bound-violation)"
	case VerdictK5:
		return "nonplanar (K5 found)"
	case VerdictK33:
		return "nonplanar (K3,3 found)"
	default:
		return "unknown"
	}
}

// Tag returns the short machine tag used in JSON output and metric labels
func (v Verdict) Tag() string {
	switch v {
	case VerdictPossiblyPlanar:
		return "possibly-planar"
	case VerdictBoundViolation:
		return "bound-violation"
	case VerdictK5:
		return "k5"
	case VerdictK33:
		return "k33"
	default:
		return "unknown"
	}
}

// NonPlanar reports whether the verdict is a certified violation
func (v Verdict) NonPlanar() bool {
	return v == VerdictBoundViolation || v == VerdictK5 || v == VerdictK33
}

// ParseVerdict converts a short tag back to a Verdict
func ParseVerdict(s string) (Verdict, error) {
	switch s {
	case "possibly-planar":
		return VerdictPossiblyPlanar, nil
	case "bound-violation":
		return VerdictBoundViolation, nil
	case "k5", "K5":
		return VerdictK5, nil
	case "k33", "K33", "k3,3", "K3,3":
		return VerdictK33, nil
	default:
		return VerdictPossiblyPlanar, fmt.Errorf("unknown verdict tag %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.Tag()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (v *Verdict) UnmarshalText(text []byte) error {
	parsed, err := ParseVerdict(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// AllVerdicts lists every verdict in declaration order
func AllVerdicts() []Verdict {
	return []Verdict{VerdictPossiblyPlanar, VerdictBoundViolation, VerdictK5, VerdictK33}
}

// Edge is an unordered pair of node identifiers.
// Medium is carried for loaders and ignored by the analysis.
type Edge struct {
	From   string
	To     string
	Medium string
}

// BuildStats counts input that was normalized away while building the graph
type BuildStats struct {
	Edges           int // edges kept after normalization
	UnknownEndpoint int // edges referencing an identifier absent from the node list
	SelfLoops       int
	Duplicates      int // repeated unordered pairs merged into an existing edge
	DuplicateNodes  int // repeated identifiers in the node list (first occurrence kept)
}

// Dropped returns the number of input edges that did not become graph edges
func (s BuildStats) Dropped() int {
	return s.UnknownEndpoint + s.SelfLoops + s.Duplicates
}

// Component is a maximal connected node set, as sorted node indices
type Component struct {
	Index int
	Nodes []int
}

// Size returns the number of nodes in the component
func (c Component) Size() int {
	return len(c.Nodes)
}

// WitnessKind identifies the forbidden subgraph a witness exhibits
type WitnessKind int

const (
	WitnessK5 WitnessKind = iota + 1
	WitnessK33
)

func (k WitnessKind) String() string {
	switch k {
	case WitnessK5:
		return "K5"
	case WitnessK33:
		return "K3,3"
	default:
		return "unknown"
	}
}

// Witness is concrete evidence of a forbidden subgraph.
// For K5, Nodes holds five indices. For K3,3, A and B hold the two triples
// and Nodes their union in enumeration order.
type Witness struct {
	Kind  WitnessKind
	Nodes []int
	A     []int
	B     []int
}

// ComponentResult is the analysis outcome for one component
type ComponentResult struct {
	Index     int
	NodeCount int
	EdgeCount int
	Nodes     []int    // sorted node indices
	Members   []string // identifiers in index order
	Verdict   Verdict
	Witness   *Witness

	// Witness payloads as identifiers
	K5   []string
	K33A []string
	K33B []string
}

// Report aggregates the verdicts of one analysis run
type Report struct {
	RunID             string
	NodeCount         int
	EdgeCount         int
	Build             BuildStats
	Components        []ComponentResult
	AllPossiblyPlanar bool
	StartedAt         time.Time
	Duration          time.Duration
}

// ExitCode maps the overall outcome to a process exit status:
// 0 when no violation was found, 1 otherwise.
func (r *Report) ExitCode() int {
	if r.AllPossiblyPlanar {
		return 0
	}
	return 1
}

// Counts returns the number of components per verdict
func (r *Report) Counts() map[Verdict]int {
	counts := make(map[Verdict]int, len(AllVerdicts()))
	for _, c := range r.Components {
		counts[c.Verdict]++
	}
	return counts
}

// NonPlanar returns the components with a certified violation
func (r *Report) NonPlanar() []ComponentResult {
	out := make([]ComponentResult, 0)
	for _, c := range r.Components {
		if c.Verdict.NonPlanar() {
			out = append(out, c)
		}
	}
	return out
}
