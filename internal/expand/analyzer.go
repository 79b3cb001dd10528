package expand

import (
	"fmt"
	"sort"

	"github.com/sourceplane/litetopo/internal/model"
)

// TopologyAnalyzer summarises the resources of a resolved topology
type TopologyAnalyzer struct {
	topo     *model.Topology
	resolver *DependencyResolver
}

// NewTopologyAnalyzer creates an analyzer for a topology
func NewTopologyAnalyzer(topo *model.Topology) *TopologyAnalyzer {
	return &TopologyAnalyzer{
		topo:     topo,
		resolver: NewDependencyResolver(topo),
	}
}

// ResourceSummary is one resource with its graph neighbourhood
type ResourceSummary struct {
	ID           string
	Kind         model.ResourceKind
	Name         string
	Rule         string
	Wave         int
	Dependencies []string
	Dependents   []string
	Roles        []string
	Edges        []model.Edge
}

// GetResource returns the summary of a single resource
func (ta *TopologyAnalyzer) GetResource(id string) (*ResourceSummary, error) {
	r, ok := ta.topo.Resource(id)
	if !ok {
		return nil, fmt.Errorf("resource %q not found", id)
	}
	return ta.summarise(r), nil
}

// ListAll returns every resource summary in id order
func (ta *TopologyAnalyzer) ListAll() []*ResourceSummary {
	result := make([]*ResourceSummary, 0, len(ta.topo.Resources))
	for i := range ta.topo.Resources {
		result = append(result, ta.summarise(&ta.topo.Resources[i]))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Transitive returns the sorted transitive dependencies and dependents of
// the given nodes, leaving out the nodes themselves
func (ta *TopologyAnalyzer) Transitive(ids ...string) (deps, dependents []string) {
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	needs, neededBy := ta.resolver.Categorize(selected)
	return sortedKeys(needs), sortedKeys(neededBy)
}

func (ta *TopologyAnalyzer) summarise(r *model.ResourceSpec) *ResourceSummary {
	s := &ResourceSummary{
		ID:           r.ID,
		Kind:         r.Kind,
		Name:         r.Name,
		Rule:         r.Rule,
		Wave:         waveOf(ta.topo.Waves, r.ID),
		Dependencies: ta.resolver.GetDependencies(r.ID),
		Dependents:   ta.resolver.GetDependents(r.ID),
		Roles:        make([]string, 0),
		Edges:        make([]model.Edge, 0),
	}

	for _, ra := range ta.topo.RoleAssignments {
		if ra.Target == r.ID {
			s.Roles = append(s.Roles, fmt.Sprintf("%s <- %s", ra.Role, ra.Principal))
		}
	}
	sort.Strings(s.Roles)

	for _, e := range ta.topo.Edges {
		if e.From == r.ID || e.To == r.ID {
			s.Edges = append(s.Edges, e)
		}
	}
	return s
}

func waveOf(waves [][]string, id string) int {
	for i, wave := range waves {
		for _, n := range wave {
			if n == id {
				return i
			}
		}
	}
	return -1
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
