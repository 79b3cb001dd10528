package expand

import (
	"sort"

	"github.com/sourceplane/litetopo/internal/model"
)

// DependencyResolver answers dependency questions over a resolved topology.
// Role assignments take part as nodes named role/<name>.
type DependencyResolver struct {
	deps map[string][]string
}

// NewDependencyResolver creates a resolver over the nodes of a topology
func NewDependencyResolver(topo *model.Topology) *DependencyResolver {
	deps := make(map[string][]string, len(topo.Resources)+len(topo.RoleAssignments))
	for _, r := range topo.Resources {
		deps[r.ID] = r.DependsOn
	}
	for _, ra := range topo.RoleAssignments {
		deps[ra.NodeID()] = ra.DependsOn
	}
	return &DependencyResolver{deps: deps}
}

// NewPlanDependencyResolver creates a resolver over the nodes of a rendered plan
func NewPlanDependencyResolver(plan *model.Plan) *DependencyResolver {
	return &DependencyResolver{deps: plan.Nodes()}
}

// Has reports whether id is a node of the topology
func (dr *DependencyResolver) Has(id string) bool {
	_, ok := dr.deps[id]
	return ok
}

// GetDependencies returns the direct dependencies of a node
func (dr *DependencyResolver) GetDependencies(id string) []string {
	deps, exists := dr.deps[id]
	if !exists {
		return []string{}
	}
	out := append([]string{}, deps...)
	sort.Strings(out)
	return out
}

// GetDependents returns the nodes that depend directly on id
func (dr *DependencyResolver) GetDependents(id string) []string {
	dependents := make([]string, 0)

	for name, deps := range dr.deps {
		for _, dep := range deps {
			if dep == id {
				dependents = append(dependents, name)
				break
			}
		}
	}

	sort.Strings(dependents)
	return dependents
}

// GetTransitiveDependencies returns everything id needs, directly or not
func (dr *DependencyResolver) GetTransitiveDependencies(id string) map[string]bool {
	return dr.walk(id, dr.GetDependencies)
}

// GetTransitiveDependents returns everything that needs id, directly or not
func (dr *DependencyResolver) GetTransitiveDependents(id string) map[string]bool {
	return dr.walk(id, dr.GetDependents)
}

func (dr *DependencyResolver) walk(start string, next func(string) []string) map[string]bool {
	result := make(map[string]bool)
	visited := make(map[string]bool)

	var traverse func(string)
	traverse = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true

		for _, n := range next(name) {
			result[n] = true
			traverse(n)
		}
	}

	traverse(start)
	return result
}

// Closure returns the selected nodes plus everything they depend on, so a
// partial apply never creates a resource before its prerequisites.
func (dr *DependencyResolver) Closure(selected map[string]bool) map[string]bool {
	included := make(map[string]bool, len(selected))
	for id := range selected {
		included[id] = true
	}

	changed := true
	for changed {
		changed = false
		for id := range included {
			for _, dep := range dr.GetDependencies(id) {
				if !included[dep] {
					included[dep] = true
					changed = true
				}
			}
		}
	}

	return included
}

// Categorize splits the neighbourhood of the selected nodes into what they
// need and what needs them
func (dr *DependencyResolver) Categorize(selected map[string]bool) (
	dependencies map[string]bool,
	dependents map[string]bool,
) {
	dependencies = make(map[string]bool)
	dependents = make(map[string]bool)

	for id := range selected {
		for dep := range dr.GetTransitiveDependencies(id) {
			if !selected[dep] {
				dependencies[dep] = true
			}
		}
		for dept := range dr.GetTransitiveDependents(id) {
			if !selected[dept] {
				dependents[dept] = true
			}
		}
	}

	return
}
