package render

import (
	"strings"
	"testing"

	"github.com/sourceplane/litetopo/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestViewDAG(t *testing.T) {
	plan := resolvePlan(t, func(c *model.DeploymentConfig) { c.EnablePrivateNetworking = true })
	view := NewPlanViewer(plan).ViewDAG()

	assert.True(t, strings.HasPrefix(view, "├─ wave 0 ("))
	assert.Contains(t, view, "└─ wave ")
	assert.Contains(t, view, "(depends on) storage")
	assert.Contains(t, view, "Summary: ")

	assert.Equal(t, "No resources in plan", NewPlanViewer(&model.Plan{}).ViewDAG())
}

func TestViewResource(t *testing.T) {
	plan := resolvePlan(t, func(c *model.DeploymentConfig) { c.EnablePrivateNetworking = true })
	pv := NewPlanViewer(plan)

	view := pv.ViewResource("storage")
	assert.Contains(t, view, "storage [StorageAccount]")
	assert.Contains(t, view, "Type:        Microsoft.Storage/storageAccounts@")
	assert.Contains(t, view, "storage -> pep-storage")

	assert.Equal(t, "No resource found: ghost", pv.ViewResource("ghost"))
}

func TestViewEdgesAndOutputs(t *testing.T) {
	plan := &model.Plan{
		Edges: []model.Edge{
			{From: "storage", To: "pep-storage", Kind: model.EdgePrivateEndpoint},
			{From: "identity", To: "storage", Kind: model.EdgeRoleAssignment, Label: "Storage Blob Data Contributor"},
		},
		Outputs: map[string]string{
			"B": strings.Repeat("x", 100),
			"A": "short",
		},
	}
	pv := NewPlanViewer(plan)

	edges := pv.ViewEdges()
	assert.Less(t, strings.Index(edges, "privateEndpoint (1)"), strings.Index(edges, "roleAssignment (1)"))
	assert.Contains(t, edges, "└─ identity -> storage (Storage Blob Data Contributor)")
	assert.Equal(t, "No edges in plan", NewPlanViewer(&model.Plan{}).ViewEdges())

	outputs := pv.ViewOutputs()
	lines := strings.Split(strings.TrimSpace(outputs), "\n")
	assert.Equal(t, "A=short", lines[0])
	assert.Equal(t, "B="+strings.Repeat("x", 77)+"...", lines[1])
}
