package planarity

// ComponentEdgeCount counts edges with both endpoints in nodes, each once
func ComponentEdgeCount(g *Graph, nodes []int) int {
	inside := make(map[int]bool, len(nodes))
	for _, v := range nodes {
		inside[v] = true
	}

	m := 0
	for _, u := range nodes {
		for _, v := range g.Neighbors(u) {
			if u < v && inside[v] {
				m++
			}
		}
	}
	return m
}

// PlanarEdgeBound returns 3n-6, the maximum edge count of a simple planar
// graph on n >= 3 nodes. It returns -1 for n < 3 where the bound does not apply.
func PlanarEdgeBound(n int) int {
	if n < 3 {
		return -1
	}
	return 3*n - 6
}

// ExceedsPlanarBound reports whether a component with n nodes and m edges
// violates m <= 3n-6. Components with fewer than three nodes are exempt.
func ExceedsPlanarBound(n, m int) bool {
	if n < 3 {
		return false
	}
	return m > PlanarEdgeBound(n)
}
