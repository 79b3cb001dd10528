package runner

import (
	"fmt"

	"github.com/sourceplane/litetopo/internal/expand"
	"github.com/sourceplane/litetopo/internal/model"
)

// Select narrows a plan to the given nodes and everything they depend on.
// Waves carried by the plan are kept in order, minus the nodes left out.
func Select(plan *model.Plan, ids []string) (*model.Plan, error) {
	if len(ids) == 0 {
		return plan, nil
	}

	resolver := expand.NewPlanDependencyResolver(plan)
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !resolver.Has(id) {
			return nil, fmt.Errorf("node %s not found in plan", id)
		}
		selected[id] = true
	}
	included := resolver.Closure(selected)

	out := *plan
	out.Resources = nil
	for _, res := range plan.Resources {
		if included[res.ID] {
			out.Resources = append(out.Resources, res)
		}
	}
	out.RoleAssignments = nil
	for _, ra := range plan.RoleAssignments {
		if included[ra.ID] {
			out.RoleAssignments = append(out.RoleAssignments, ra)
		}
	}

	out.Spec.Waves = nil
	for _, wave := range plan.Spec.Waves {
		kept := make([]string, 0, len(wave))
		for _, id := range wave {
			if included[id] {
				kept = append(kept, id)
			}
		}
		if len(kept) > 0 {
			out.Spec.Waves = append(out.Spec.Waves, kept)
		}
	}
	return &out, nil
}
