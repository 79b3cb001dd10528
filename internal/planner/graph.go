package planner

import (
	"sort"
	"strings"

	"github.com/sourceplane/litetopo/internal/model"
)

// Graph is the dependency DAG of a topology. Each node maps to the ids it
// depends on.
type Graph struct {
	nodes map[string][]string
}

// NewGraph creates a graph from a node -> dependencies map
func NewGraph(nodes map[string][]string) *Graph {
	return &Graph{
		nodes: nodes,
	}
}

// sortedIDs returns node ids in lexical order so every walk is deterministic
func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CheckReferences fails when a node depends on an id that is not in the graph
func (g *Graph) CheckReferences() error {
	for _, id := range g.sortedIDs() {
		for _, dep := range g.nodes[id] {
			if dep == id {
				return model.Errorf(model.InvalidDependency, id, "%s depends on itself", id)
			}
			if _, ok := g.nodes[dep]; !ok {
				return model.Errorf(model.InvalidDependency, id, "%s depends on unknown node %s", id, dep)
			}
		}
	}
	return nil
}

// DetectCycles performs cycle detection on the dependency graph using DFS
func (g *Graph) DetectCycles() error {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make([]string, 0)

	for _, id := range g.sortedIDs() {
		if !visited[id] {
			if cycle := g.hasCycleDFS(id, visited, recStack, &path); cycle != nil {
				return model.Errorf(model.DependencyCycle, cycle[0],
					"cycle detected: %s", strings.Join(cycle, " -> "))
			}
		}
	}

	return nil
}

// hasCycleDFS performs DFS cycle detection from a given node and returns
// the cycle when one is found
func (g *Graph) hasCycleDFS(node string, visited, recStack map[string]bool, path *[]string) []string {
	visited[node] = true
	recStack[node] = true
	*path = append(*path, node)

	deps := append([]string{}, g.nodes[node]...)
	sort.Strings(deps)
	for _, dep := range deps {
		if !visited[dep] {
			if cycle := g.hasCycleDFS(dep, visited, recStack, path); cycle != nil {
				return cycle
			}
		} else if recStack[dep] {
			for i, n := range *path {
				if n == dep {
					cycle := append([]string{}, (*path)[i:]...)
					return append(cycle, dep)
				}
			}
		}
	}

	recStack[node] = false
	*path = (*path)[:len(*path)-1]
	return nil
}

// TopologicalSort orders nodes with Kahn's algorithm. Among ready nodes
// the lexically smallest goes first.
func (g *Graph) TopologicalSort() ([]string, error) {
	dependents, inDegree := g.reverse()

	queue := make([]string, 0)
	for _, id := range g.sortedIDs() {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		added := false
		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
				added = true
			}
		}
		if added {
			sort.Strings(queue)
		}
	}

	if len(sorted) != len(g.nodes) {
		return nil, model.Errorf(model.DependencyCycle, "", "failed to topologically sort: cycle detected")
	}

	return sorted, nil
}

// Levels groups nodes into waves; every node's dependencies sit in earlier
// waves, so nodes of one wave can be applied concurrently.
func (g *Graph) Levels() ([][]string, error) {
	dependents, inDegree := g.reverse()

	current := make([]string, 0)
	for _, id := range g.sortedIDs() {
		if inDegree[id] == 0 {
			current = append(current, id)
		}
	}

	levels := make([][]string, 0)
	seen := 0
	for len(current) > 0 {
		levels = append(levels, current)
		seen += len(current)

		next := make([]string, 0)
		for _, id := range current {
			for _, dependent := range dependents[id] {
				inDegree[dependent]--
				if inDegree[dependent] == 0 {
					next = append(next, dependent)
				}
			}
		}
		sort.Strings(next)
		current = next
	}

	if seen != len(g.nodes) {
		return nil, model.Errorf(model.DependencyCycle, "", "failed to compute waves: cycle detected")
	}
	return levels, nil
}

func (g *Graph) reverse() (map[string][]string, map[string]int) {
	dependents := make(map[string][]string, len(g.nodes))
	inDegree := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		inDegree[id] = 0
	}
	for _, id := range g.sortedIDs() {
		for _, dep := range uniq(g.nodes[id]) {
			dependents[dep] = append(dependents[dep], id)
			inDegree[id]++
		}
	}
	return dependents, inDegree
}

func uniq(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
