package pipeline

import "errors"

// ErrCyclicDependency is returned when the dependency relation cannot be
// topologically ordered.
var ErrCyclicDependency = errors.New("cyclic dependency detected")

// depGraph tracks the dependency relation between named tasks. Node and
// edge insertion order is preserved so the computed execution order is
// deterministic.
type depGraph struct {
	order    []string
	nodes    map[string]bool
	requires map[string][]string // node -> its prerequisites
	inDegree map[string]int      // node -> number of prerequisites
}

func newDepGraph() *depGraph {
	return &depGraph{
		nodes:    make(map[string]bool),
		requires: make(map[string][]string),
		inDegree: make(map[string]int),
	}
}

// addNode registers a node. Adding an existing node is a no-op.
func (g *depGraph) addNode(id string) {
	if !g.nodes[id] {
		g.nodes[id] = true
		g.order = append(g.order, id)
		g.inDegree[id] = 0
	}
}

// addEdge records that node depends on prereq. Both nodes are created if
// missing.
func (g *depGraph) addEdge(node, prereq string) {
	g.addNode(node)
	g.addNode(prereq)

	g.requires[node] = append(g.requires[node], prereq)
	g.inDegree[node]++
}

// topologicalSort returns the nodes in an order where every prerequisite
// precedes its dependents, using Kahn's algorithm. Nodes with no ordering
// constraint between them come out in insertion order. Returns
// ErrCyclicDependency if the relation contains a cycle.
func (g *depGraph) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(g.inDegree))
	for node, degree := range g.inDegree {
		inDegree[node] = degree
	}

	var queue []string
	for _, node := range g.order {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var result []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		// Release every node that was waiting on current.
		for _, node := range g.order {
			for _, prereq := range g.requires[node] {
				if prereq == current {
					inDegree[node]--
					if inDegree[node] == 0 {
						queue = append(queue, node)
					}
				}
			}
		}
	}

	if len(result) != len(g.order) {
		return nil, ErrCyclicDependency
	}

	return result, nil
}
