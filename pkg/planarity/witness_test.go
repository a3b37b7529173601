package planarity

import (
	"reflect"
	"testing"
)

func allIndices(g *Graph) []int {
	out := make([]int, g.NodeCount())
	for i := range out {
		out[i] = i
	}
	return out
}

func TestFindK5_CompleteGraph(t *testing.T) {
	g, _ := BuildGraph([]string{"A", "B", "C", "D", "E", "F"}, completeEdges("A", "B", "C", "D", "E", "F"))

	w := FindK5(g, allIndices(g))
	if w == nil {
		t.Fatal("Expected K5 witness in K6")
	}
	if w.Kind != WitnessK5 {
		t.Errorf("Kind = %v, want K5", w.Kind)
	}
	// First subset in lexicographic order
	if !reflect.DeepEqual(w.Nodes, []int{0, 1, 2, 3, 4}) {
		t.Errorf("Nodes = %v, want [0 1 2 3 4]", w.Nodes)
	}
	if !VerifyWitness(g, w) {
		t.Error("Witness failed verification")
	}
}

func TestFindK5_FirstInEnumerationOrder(t *testing.T) {
	// Clique on {1,2,3,4,5} plus node 0 attached to 1 only
	nodes := []string{"n0", "n1", "n2", "n3", "n4", "n5"}
	edges := append(completeEdges("n1", "n2", "n3", "n4", "n5"), Edge{From: "n0", To: "n1"})
	g, _ := BuildGraph(nodes, edges)

	w := FindK5(g, []int{5, 4, 3, 2, 1, 0})
	if w == nil {
		t.Fatal("Expected K5 witness")
	}
	if !reflect.DeepEqual(w.Nodes, []int{1, 2, 3, 4, 5}) {
		t.Errorf("Nodes = %v, want [1 2 3 4 5]", w.Nodes)
	}
}

func TestFindK5_MissingEdge(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E"}
	g, _ := BuildGraph(ids, withoutEdge(completeEdges(ids...), "A", "E"))

	if w := FindK5(g, allIndices(g)); w != nil {
		t.Errorf("Expected no K5 in K5 minus an edge, got %v", w.Nodes)
	}
}

func TestFindK5_TooSmall(t *testing.T) {
	ids := []string{"A", "B", "C", "D"}
	g, _ := BuildGraph(ids, completeEdges(ids...))

	if w := FindK5(g, allIndices(g)); w != nil {
		t.Error("Expected nil for fewer than five nodes")
	}
}

func TestFindK33_ExactBiclique(t *testing.T) {
	a := []string{"A1", "A2", "A3"}
	b := []string{"B1", "B2", "B3"}
	g, _ := BuildGraph(append(append([]string{}, a...), b...), bicliqueEdges(a, b))

	w := FindK33(g, allIndices(g))
	if w == nil {
		t.Fatal("Expected K3,3 witness")
	}
	if w.Kind != WitnessK33 {
		t.Errorf("Kind = %v, want K3,3", w.Kind)
	}
	if !reflect.DeepEqual(g.IDs(w.A), a) || !reflect.DeepEqual(g.IDs(w.B), b) {
		t.Errorf("Witness = (%v, %v), want (%v, %v)", g.IDs(w.A), g.IDs(w.B), a, b)
	}
	if !reflect.DeepEqual(w.Nodes, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("Nodes = %v", w.Nodes)
	}
	if !VerifyWitness(g, w) {
		t.Error("Witness failed verification")
	}
}

func TestFindK33_InterleavedSides(t *testing.T) {
	// Sides are {0,2,4} and {1,3,5}; the first split tried ({0,1,2}) fails
	ids := []string{"p0", "q1", "p2", "q3", "p4", "q5"}
	g, _ := BuildGraph(ids, bicliqueEdges([]string{"p0", "p2", "p4"}, []string{"q1", "q3", "q5"}))

	w := FindK33(g, allIndices(g))
	if w == nil {
		t.Fatal("Expected K3,3 witness")
	}
	if !reflect.DeepEqual(w.A, []int{0, 2, 4}) || !reflect.DeepEqual(w.B, []int{1, 3, 5}) {
		t.Errorf("Witness = (%v, %v), want ([0 2 4], [1 3 5])", w.A, w.B)
	}
}

func TestFindK33_IntraSideEdgesAllowed(t *testing.T) {
	a := []string{"A1", "A2", "A3"}
	b := []string{"B1", "B2", "B3"}
	edges := append(bicliqueEdges(a, b), Edge{From: "A1", To: "A2"}, Edge{From: "B2", To: "B3"})
	g, _ := BuildGraph(append(append([]string{}, a...), b...), edges)

	if w := FindK33(g, allIndices(g)); w == nil || !VerifyWitness(g, w) {
		t.Error("Expected a verified K3,3 witness with intra-side edges present")
	}
}

// TestFindK33_SubdivisionNotDetected documents that a subdivided K3,3 is missed
func TestFindK33_SubdivisionNotDetected(t *testing.T) {
	a := []string{"A1", "A2", "A3"}
	b := []string{"B1", "B2", "B3"}
	edges := withoutEdge(bicliqueEdges(a, b), "A1", "B1")
	edges = append(edges, Edge{From: "A1", To: "M"}, Edge{From: "M", To: "B1"})
	g, _ := BuildGraph([]string{"A1", "A2", "A3", "B1", "B2", "B3", "M"}, edges)

	if w := FindK33(g, allIndices(g)); w != nil {
		t.Errorf("Exact search should not find a subdivided K3,3, got %+v", w)
	}
}

func TestFindK33_TooSmall(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E"}
	g, _ := BuildGraph(ids, completeEdges(ids...))

	if w := FindK33(g, allIndices(g)); w != nil {
		t.Error("Expected nil for fewer than six nodes")
	}
}

func TestVerifyWitness_Rejects(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E", "F"}
	g, _ := BuildGraph(ids, withoutEdge(completeEdges(ids...), "A", "B"))

	tests := []struct {
		name string
		w    *Witness
	}{
		{"nil", nil},
		{"k5 missing pair", &Witness{Kind: WitnessK5, Nodes: []int{0, 1, 2, 3, 4}}},
		{"k5 wrong size", &Witness{Kind: WitnessK5, Nodes: []int{2, 3, 4, 5}}},
		{"k5 repeated node", &Witness{Kind: WitnessK5, Nodes: []int{2, 3, 4, 5, 5}}},
		{"k33 missing cross pair", &Witness{Kind: WitnessK33, A: []int{0, 2, 3}, B: []int{1, 4, 5}}},
		{"k33 overlapping sides", &Witness{Kind: WitnessK33, A: []int{2, 3, 4}, B: []int{4, 5, 0}}},
		{"unknown kind", &Witness{Nodes: []int{2, 3, 4, 5, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyWitness(g, tt.w) {
				t.Errorf("VerifyWitness(%+v) = true, want false", tt.w)
			}
		})
	}

	// A pair that does hold, for contrast
	if !VerifyWitness(g, &Witness{Kind: WitnessK5, Nodes: []int{1, 2, 3, 4, 5}}) {
		t.Error("Expected K5 on {B..F} to verify")
	}
}
