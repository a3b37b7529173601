package planarity

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGraphInvariants checks the structural invariants of the builder and
// component finder on random graphs, including unknown endpoints, self-loops
// and repeated edges.
func TestGraphInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("adjacency is symmetric and loop-free", prop.ForAll(
		func(seed int64, density float64) bool {
			nodes, edges := randomInput(seed, 25, density)
			g, _ := BuildGraph(nodes, edges)
			for i := 0; i < g.NodeCount(); i++ {
				if g.Adjacent(i, i) {
					return false
				}
				for j := 0; j < g.NodeCount(); j++ {
					if g.Adjacent(i, j) != g.Adjacent(j, i) {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
		gen.Float64Range(0, 1),
	))

	properties.Property("components partition the node set", prop.ForAll(
		func(seed int64, density float64) bool {
			nodes, edges := randomInput(seed, 25, density)
			g, _ := BuildGraph(nodes, edges)

			seen := make(map[int]int)
			for _, c := range ConnectedComponents(g) {
				for _, v := range c.Nodes {
					seen[v]++
				}
			}
			if len(seen) != g.NodeCount() {
				return false
			}
			for _, count := range seen {
				if count != 1 {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.Float64Range(0, 0.3),
	))

	properties.Property("no edge crosses components", prop.ForAll(
		func(seed int64) bool {
			nodes, edges := randomInput(seed, 25, 0.1)
			g, _ := BuildGraph(nodes, edges)

			owner := make(map[int]int)
			for _, c := range ConnectedComponents(g) {
				for _, v := range c.Nodes {
					owner[v] = c.Index
				}
			}
			for _, p := range g.EdgePairs() {
				if owner[p[0]] != owner[p[1]] {
					return false
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.Property("repeating edges in any orientation is idempotent", prop.ForAll(
		func(seed int64, repeats int) bool {
			nodes, edges := randomInput(seed, 20, 0.3)
			once, _ := BuildGraph(nodes, edges)

			rng := rand.New(rand.NewSource(seed))
			noisy := make([]Edge, 0, len(edges)*(repeats+1))
			noisy = append(noisy, edges...)
			for r := 0; r < repeats; r++ {
				for _, e := range edges {
					if rng.Intn(2) == 0 {
						e.From, e.To = e.To, e.From
					}
					noisy = append(noisy, e)
				}
			}
			rng.Shuffle(len(noisy), func(i, j int) { noisy[i], noisy[j] = noisy[j], noisy[i] })
			many, _ := BuildGraph(nodes, noisy)

			return reflect.DeepEqual(once.EdgePairs(), many.EdgePairs())
		},
		gen.Int64(),
		gen.IntRange(1, 4),
	))

	properties.TestingRun(t)
}

// TestVerdictInvariants checks the per-component classification rules
func TestVerdictInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based verdict test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("bound violators never reach witness search", prop.ForAll(
		func(seed int64, density float64) bool {
			nodes, edges := randomInput(seed, 14, density)
			report := Analyze(nodes, edges)
			for _, c := range report.Components {
				exceeds := ExceedsPlanarBound(c.NodeCount, c.EdgeCount)
				if exceeds != (c.Verdict == VerdictBoundViolation) {
					return false
				}
				if exceeds && c.Witness != nil {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.Float64Range(0, 1),
	))

	properties.Property("reported witnesses verify", prop.ForAll(
		func(seed int64, density float64) bool {
			nodes, edges := randomInput(seed, 12, density)
			g, _ := BuildGraph(nodes, edges)
			analyzer := NewAnalyzer(WithRunID("prop"))
			for _, c := range ConnectedComponents(g) {
				r := analyzer.ClassifyComponent(g, c)
				switch r.Verdict {
				case VerdictK5, VerdictK33:
					if !VerifyWitness(g, r.Witness) {
						return false
					}
				default:
					if r.Witness != nil {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
		gen.Float64Range(0.2, 0.6),
	))

	properties.Property("singletons are possibly planar", prop.ForAll(
		func(seed int64) bool {
			nodes, edges := randomInput(seed, 12, 0.05)
			for _, c := range Analyze(nodes, edges).Components {
				if c.NodeCount == 1 && c.Verdict != VerdictPossiblyPlanar {
					return false
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.Property("overall outcome is the conjunction of component verdicts", prop.ForAll(
		func(seed int64, density float64) bool {
			nodes, edges := randomInput(seed, 14, density)
			report := Analyze(nodes, edges)
			all := true
			for _, c := range report.Components {
				all = all && c.Verdict == VerdictPossiblyPlanar
			}
			return report.AllPossiblyPlanar == all && (report.ExitCode() == 0) == all
		},
		gen.Int64(),
		gen.Float64Range(0, 0.6),
	))

	properties.TestingRun(t)
}
