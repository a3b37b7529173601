package planarity

import (
	"container/list"
	"sort"
)

// ConnectedComponents partitions the node set into maximal connected components.
// Components are ordered by their lowest node index and each component's node
// list is sorted ascending. Isolated nodes form one-node components.
func ConnectedComponents(g *Graph) []Component {
	n := g.NodeCount()
	visited := make([]bool, n)
	components := make([]Component, 0)

	// BFS from the lowest unvisited index
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		component := Component{
			Index: len(components),
			Nodes: make([]int, 0),
		}

		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			node, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			component.Nodes = append(component.Nodes, node)

			for _, next := range g.Neighbors(node) {
				if !visited[next] {
					visited[next] = true
					queue.PushBack(next)
				}
			}
		}

		sort.Ints(component.Nodes)
		components = append(components, component)
	}

	return components
}
