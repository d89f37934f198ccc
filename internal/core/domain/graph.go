// Package domain contains the core domain models and algorithms of the test engine.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// DependencyHolder is an object that knows the objects of its own family it depends on.
type DependencyHolder[T any] interface {
	ID() EID
	Dependencies() []T
}

// DependencyGraph is a directed graph over dependency holders.
// Nodes are kept in an arena in insertion order and edges reference nodes by index,
// so cycles and partially known nodes need no direct references between objects.
type DependencyGraph[T DependencyHolder[T]] struct {
	nodes  []T
	index  map[EID]int
	edges  [][]int
	walked []bool
}

// NewDependencyGraph creates a graph and adds the given items with all their
// transitive dependencies.
func NewDependencyGraph[T DependencyHolder[T]](items ...T) *DependencyGraph[T] {
	g := &DependencyGraph[T]{
		index: make(map[EID]int),
	}
	g.AddAll(items)
	return g
}

// AddAll adds every item with its transitive dependencies.
func (g *DependencyGraph[T]) AddAll(items []T) {
	for _, item := range items {
		g.AddDependency(item)
	}
}

// AddDependency adds an item and walks its dependencies.
// Dependencies that were not seen before become nodes themselves. Adding the
// same item again never duplicates edges.
func (g *DependencyGraph[T]) AddDependency(item T) {
	u := g.addNode(item, true)
	g.walk(u, item)
}

// Len returns the number of nodes.
func (g *DependencyGraph[T]) Len() int {
	return len(g.nodes)
}

// Nodes returns the nodes in insertion order.
func (g *DependencyGraph[T]) Nodes() []T {
	res := make([]T, len(g.nodes))
	copy(res, g.nodes)
	return res
}

// Sort returns all nodes so that every node comes before its dependencies.
// It fails with ErrCyclicDependency if the graph contains a cycle.
func (g *DependencyGraph[T]) Sort() ([]T, error) {
	return g.sort(false)
}

// SortIgnoreCycle returns all nodes so that every node comes before its
// dependencies, breaking cycles where the traversal first closes them.
// Nodes and edges are traversed in insertion order, which makes the break
// point deterministic.
func (g *DependencyGraph[T]) SortIgnoreCycle() []T {
	res, _ := g.sort(true)
	return res
}

func (g *DependencyGraph[T]) addNode(item T, replace bool) int {
	id := item.ID()
	if u, ok := g.index[id]; ok {
		if replace {
			g.nodes[u] = item
		}
		return u
	}
	u := len(g.nodes)
	g.index[id] = u
	g.nodes = append(g.nodes, item)
	g.edges = append(g.edges, nil)
	g.walked = append(g.walked, false)
	return u
}

func (g *DependencyGraph[T]) addEdge(from, to int) {
	for _, v := range g.edges[from] {
		if v == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], to)
}

func (g *DependencyGraph[T]) walk(u int, item T) {
	g.walked[u] = true
	for _, dep := range item.Dependencies() {
		v := g.addNode(dep, false)
		g.addEdge(u, v)
		if !g.walked[v] {
			g.walk(v, dep)
		}
	}
}

// sort runs a depth-first postorder traversal over the reversed graph, so a
// node is emitted only after everything that depends on it.
func (g *DependencyGraph[T]) sort(ignoreCycles bool) ([]T, error) {
	reversed := make([][]int, len(g.nodes))
	for u, targets := range g.edges {
		for _, v := range targets {
			reversed[v] = append(reversed[v], u)
		}
	}

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make([]int, len(g.nodes))
	res := make([]T, 0, len(g.nodes))
	var path []int

	var visit func(u int) error
	visit = func(u int) error {
		state[u] = visiting
		path = append(path, u)
		for _, v := range reversed[u] {
			switch state[v] {
			case visited:
				continue
			case visiting:
				if ignoreCycles {
					continue
				}
				return g.buildCycleError(path, v)
			}
			if err := visit(v); err != nil {
				return err
			}
		}
		state[u] = visited
		path = path[:len(path)-1]
		res = append(res, g.nodes[u])
		return nil
	}

	for u := range g.nodes {
		if state[u] != unvisited {
			continue
		}
		if err := visit(u); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// buildCycleError constructs an error with the cycle path as metadata.
// The path is reported in dependency direction.
func (g *DependencyGraph[T]) buildCycleError(path []int, closing int) error {
	start := 0
	for i, u := range path {
		if u == closing {
			start = i
			break
		}
	}
	names := make([]string, 0, len(path)-start+1)
	for i := len(path) - 1; i >= start; i-- {
		names = append(names, g.nodes[path[i]].ID().String())
	}
	names = append(names, g.nodes[path[len(path)-1]].ID().String())
	return zerr.With(zerr.Wrap(ErrCyclicDependency, "failed to sort dependencies"), "cycle", strings.Join(names, " -> "))
}
