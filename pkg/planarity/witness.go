package planarity

import "sort"

const (
	k5Size  = 5
	k33Side = 3
	k33Size = 2 * k33Side
)

// FindK5 searches nodes for five mutually adjacent nodes.
// Five-subsets are enumerated lexicographically over the sorted nodes and the
// first complete one is returned; nil when there is none or len(nodes) < 5.
// Cost is O(C(n,5)); callers are expected to keep components small.
func FindK5(g *Graph, nodes []int) *Witness {
	if len(nodes) < k5Size {
		return nil
	}

	subset := FirstCombination(sortedCopy(nodes), k5Size, func(s []int) bool {
		return isClique(g, s)
	})
	if subset == nil {
		return nil
	}
	return &Witness{Kind: WitnessK5, Nodes: subset}
}

// FindK33 searches nodes for two disjoint triples A and B with all nine
// cross pairs adjacent. Edges inside A or inside B are not constrained.
//
// Six-subsets are enumerated lexicographically; each is split into every
// ordered (A, B) pair, A taking the lexicographic 3-subsets of the six
// positions and B the complement. Each unordered split is therefore seen
// twice, which does not affect the first match.
//
// Only an exact complete bipartite subgraph is detected. A subdivided K3,3
// is not, so a component reported possibly planar may still be non-planar.
func FindK33(g *Graph, nodes []int) *Witness {
	if len(nodes) < k33Size {
		return nil
	}

	var a, b []int
	subset := FirstCombination(sortedCopy(nodes), k33Size, func(six []int) bool {
		a, b = splitBiclique(g, six)
		return a != nil
	})
	if subset == nil {
		return nil
	}
	return &Witness{Kind: WitnessK33, Nodes: subset, A: a, B: b}
}

// splitBiclique returns the first (A, B) split of six nodes forming K3,3
func splitBiclique(g *Graph, six []int) ([]int, []int) {
	var a, b []int
	ForEachCombination(k33Size, k33Side, func(pos []int) bool {
		left := make([]int, 0, k33Side)
		right := make([]int, 0, k33Side)
		p := 0
		for i := 0; i < k33Size; i++ {
			if p < len(pos) && pos[p] == i {
				left = append(left, six[i])
				p++
			} else {
				right = append(right, six[i])
			}
		}
		if isBiclique(g, left, right) {
			a, b = left, right
			return false
		}
		return true
	})
	return a, b
}

// VerifyWitness re-checks every pair a witness requires against g:
// the 10 pairs of a K5 or the 9 cross pairs of a K3,3.
func VerifyWitness(g *Graph, w *Witness) bool {
	if w == nil {
		return false
	}
	switch w.Kind {
	case WitnessK5:
		return len(w.Nodes) == k5Size && distinct(w.Nodes) && isClique(g, w.Nodes)
	case WitnessK33:
		if len(w.A) != k33Side || len(w.B) != k33Side {
			return false
		}
		all := append(append([]int(nil), w.A...), w.B...)
		return distinct(all) && isBiclique(g, w.A, w.B)
	default:
		return false
	}
}

func isClique(g *Graph, nodes []int) bool {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if !g.Adjacent(nodes[i], nodes[j]) {
				return false
			}
		}
	}
	return true
}

func isBiclique(g *Graph, a, b []int) bool {
	for _, u := range a {
		for _, v := range b {
			if !g.Adjacent(u, v) {
				return false
			}
		}
	}
	return true
}

func distinct(nodes []int) bool {
	seen := make(map[int]bool, len(nodes))
	for _, v := range nodes {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func sortedCopy(nodes []int) []int {
	out := append([]int(nil), nodes...)
	sort.Ints(out)
	return out
}
