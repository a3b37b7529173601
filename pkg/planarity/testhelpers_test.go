package planarity

import (
	"fmt"
	"math/rand"
	"testing"
)

// completeEdges returns every pair of ids as an edge
func completeEdges(ids ...string) []Edge {
	edges := make([]Edge, 0)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			edges = append(edges, Edge{From: ids[i], To: ids[j]})
		}
	}
	return edges
}

// bicliqueEdges returns every cross pair of a and b as an edge
func bicliqueEdges(a, b []string) []Edge {
	edges := make([]Edge, 0, len(a)*len(b))
	for _, u := range a {
		for _, v := range b {
			edges = append(edges, Edge{From: u, To: v})
		}
	}
	return edges
}

func withoutEdge(edges []Edge, from, to string) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if (e.From == from && e.To == to) || (e.From == to && e.To == from) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// randomInput builds a reproducible random node and edge list. Roughly one
// edge in ten references an unknown node and self-loops and repeats occur
// naturally.
func randomInput(seed int64, maxNodes int, density float64) ([]string, []Edge) {
	rng := rand.New(rand.NewSource(seed))
	n := 1 + rng.Intn(maxNodes)

	nodes := make([]string, n)
	for i := range nodes {
		nodes[i] = fmt.Sprintf("s%02d", i)
	}

	edges := make([]Edge, 0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if rng.Float64() < density/2 {
				edges = append(edges, Edge{From: nodes[i], To: nodes[j]})
			}
		}
	}
	for k := 0; k < n/10+1; k++ {
		edges = append(edges, Edge{From: nodes[rng.Intn(n)], To: "ghost"})
	}
	rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })

	return nodes, edges
}

func mustIndex(t *testing.T, g *Graph, id string) int {
	t.Helper()
	i, ok := g.Index(id)
	if !ok {
		t.Fatalf("node %q not in graph", id)
	}
	return i
}
