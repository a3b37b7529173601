package planarity

// Graph is a simple undirected graph over a fixed node list.
// It is built once per run and read-only afterwards.
type Graph struct {
	ids       []string
	index     map[string]int
	adj       [][]bool
	neighbors [][]int
	edges     int
}

// BuildGraph converts a node identifier list and an edge list into a
// deduplicated, loop-free, symmetric adjacency structure.
//
// Edges with an endpoint missing from the node list are dropped without
// error, as are self-loops; repeated unordered pairs collapse to one edge.
// Everything dropped is counted in the returned BuildStats.
func BuildGraph(nodes []string, edges []Edge) (*Graph, BuildStats) {
	var stats BuildStats

	g := &Graph{
		ids:   make([]string, 0, len(nodes)),
		index: make(map[string]int, len(nodes)),
	}
	for _, id := range nodes {
		if _, exists := g.index[id]; exists {
			stats.DuplicateNodes++
			continue
		}
		g.index[id] = len(g.ids)
		g.ids = append(g.ids, id)
	}

	n := len(g.ids)
	g.adj = make([][]bool, n)
	for i := range g.adj {
		g.adj[i] = make([]bool, n)
	}

	for _, e := range edges {
		from, okFrom := g.index[e.From]
		to, okTo := g.index[e.To]
		if !okFrom || !okTo {
			stats.UnknownEndpoint++
			continue
		}
		if from == to {
			stats.SelfLoops++
			continue
		}
		if g.adj[from][to] {
			stats.Duplicates++
			continue
		}
		g.adj[from][to] = true
		g.adj[to][from] = true
		g.edges++
	}
	stats.Edges = g.edges

	// Neighbour lists are derived from the matrix so their order does not
	// depend on the order edges were supplied in.
	g.neighbors = make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if g.adj[i][j] {
				g.neighbors[i] = append(g.neighbors[i], j)
			}
		}
	}

	return g, stats
}

// NodeCount returns the number of distinct nodes
func (g *Graph) NodeCount() int {
	return len(g.ids)
}

// EdgeCount returns the number of distinct undirected edges
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Adjacent reports whether nodes i and j share an edge.
// Out-of-range indices are never adjacent.
func (g *Graph) Adjacent(i, j int) bool {
	if i < 0 || j < 0 || i >= len(g.adj) || j >= len(g.adj) {
		return false
	}
	return g.adj[i][j]
}

// Neighbors returns the sorted neighbour indices of node i.
// The returned slice must not be modified.
func (g *Graph) Neighbors(i int) []int {
	if i < 0 || i >= len(g.neighbors) {
		return nil
	}
	return g.neighbors[i]
}

// Degree returns the number of neighbours of node i
func (g *Graph) Degree(i int) int {
	return len(g.Neighbors(i))
}

// ID returns the identifier of node i
func (g *Graph) ID(i int) string {
	return g.ids[i]
}

// IDs maps node indices to identifiers
func (g *Graph) IDs(indices []int) []string {
	out := make([]string, len(indices))
	for k, i := range indices {
		out[k] = g.ids[i]
	}
	return out
}

// Index returns the position of the node with the given identifier
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Nodes returns a copy of the node identifier list in index order
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)
	return out
}

// EdgePairs returns every edge once as an (i, j) index pair with i < j,
// in lexicographic order.
func (g *Graph) EdgePairs() [][2]int {
	pairs := make([][2]int, 0, g.edges)
	for i, ns := range g.neighbors {
		for _, j := range ns {
			if i < j {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
