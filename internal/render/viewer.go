package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sourceplane/litetopo/internal/model"
)

const rule = "═══════════════════════════════════════════════════════════\n"

// PlanViewer provides human-readable visualization of a plan DAG
type PlanViewer struct {
	plan  *model.Plan
	nodes map[string]planNode
}

type planNode struct {
	label     string
	dependsOn []string
}

// NewPlanViewer creates a new plan viewer
func NewPlanViewer(plan *model.Plan) *PlanViewer {
	nodes := make(map[string]planNode, len(plan.Resources)+len(plan.RoleAssignments))
	for _, res := range plan.Resources {
		nodes[res.ID] = planNode{label: fmt.Sprintf("%s [%s] %s", res.ID, res.Kind, res.Name), dependsOn: res.DependsOn}
	}
	for _, ra := range plan.RoleAssignments {
		label := fmt.Sprintf("%s [%s] %s -> %s", ra.ID, ra.Role, ra.Principal, lastSegment(ra.Scope))
		if ra.External {
			label += " (external)"
		}
		nodes[ra.ID] = planNode{label: label, dependsOn: ra.DependsOn}
	}
	return &PlanViewer{plan: plan, nodes: nodes}
}

// ViewDAG returns the plan as a tree of waves
func (pv *PlanViewer) ViewDAG() string {
	waves := pv.plan.Spec.Waves
	if len(waves) == 0 {
		return "No resources in plan"
	}

	var sb strings.Builder
	for i, wave := range waves {
		isLastWave := i == len(waves)-1

		wavePrefix := "├─ "
		connector := "│  "
		if isLastWave {
			wavePrefix = "└─ "
			connector = "   "
		}
		sb.WriteString(fmt.Sprintf("%swave %d (%d nodes)\n", wavePrefix, i, len(wave)))

		for j, id := range wave {
			isLastNode := j == len(wave)-1
			nodePrefix := connector + "├─ "
			nodeConnector := connector + "│  "
			if isLastNode {
				nodePrefix = connector + "└─ "
				nodeConnector = connector + "   "
			}

			node := pv.nodes[id]
			sb.WriteString(nodePrefix + node.label + "\n")

			deps := append([]string{}, node.dependsOn...)
			sort.Strings(deps)
			for k, dep := range deps {
				depPrefix := nodeConnector + "├─ "
				if k == len(deps)-1 {
					depPrefix = nodeConnector + "└─ "
				}
				sb.WriteString(fmt.Sprintf("%s(depends on) %s\n", depPrefix, dep))
			}
		}
	}

	sb.WriteString(rule)
	sb.WriteString(fmt.Sprintf("Summary: %d resources, %d role assignments, %d references, %d waves\n",
		len(pv.plan.Resources), len(pv.plan.RoleAssignments), len(pv.plan.References), len(waves)))

	return sb.String()
}

// ViewResource shows one resource with its dependencies and typed edges
func (pv *PlanViewer) ViewResource(id string) string {
	var res *model.PlanResource
	for i := range pv.plan.Resources {
		if pv.plan.Resources[i].ID == id {
			res = &pv.plan.Resources[i]
			break
		}
	}
	if res == nil {
		return fmt.Sprintf("No resource found: %s", id)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s [%s]\n", res.ID, res.Kind))
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("Name:        %s\n", res.Name))
	sb.WriteString(fmt.Sprintf("Type:        %s@%s\n", res.Type, res.APIVersion))
	sb.WriteString(fmt.Sprintf("Resource ID: %s\n", res.ResourceID))
	if res.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:    %s\n", res.Location))
	}

	if len(res.DependsOn) > 0 {
		sb.WriteString("Dependencies:\n")
		for _, dep := range res.DependsOn {
			sb.WriteString(fmt.Sprintf("  %s\n", dep))
		}
	}

	edges := make([]string, 0)
	for _, e := range pv.plan.Edges {
		if e.From == id || e.To == id {
			edges = append(edges, formatEdge(e))
		}
	}
	if len(edges) > 0 {
		sb.WriteString("Edges:\n")
		for _, e := range edges {
			sb.WriteString(fmt.Sprintf("  %s\n", e))
		}
	}

	return sb.String()
}

// ViewEdges lists the typed edges grouped by kind
func (pv *PlanViewer) ViewEdges() string {
	if len(pv.plan.Edges) == 0 {
		return "No edges in plan"
	}

	byKind := make(map[model.EdgeKind][]model.Edge)
	for _, e := range pv.plan.Edges {
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}
	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	var sb strings.Builder
	sb.WriteString("Edges\n")
	sb.WriteString(rule + "\n")
	for _, k := range kinds {
		edges := byKind[model.EdgeKind(k)]
		sb.WriteString(fmt.Sprintf("%s (%d)\n", k, len(edges)))
		for i, e := range edges {
			prefix := "├─ "
			if i == len(edges)-1 {
				prefix = "└─ "
			}
			sb.WriteString(prefix + formatEdge(e) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ViewOutputs lists the outputs in key order
func (pv *PlanViewer) ViewOutputs() string {
	keys := make([]string, 0, len(pv.plan.Outputs))
	for k := range pv.plan.Outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		v := pv.plan.Outputs[k]
		if len(v) > 80 {
			v = v[:77] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s=%s\n", k, v))
	}
	return sb.String()
}

func formatEdge(e model.Edge) string {
	if e.Label != "" {
		return fmt.Sprintf("%s -> %s (%s)", e.From, e.To, e.Label)
	}
	return fmt.Sprintf("%s -> %s", e.From, e.To)
}

func lastSegment(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
