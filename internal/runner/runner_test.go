package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sourceplane/litetopo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *model.Plan {
	return &model.Plan{
		Resources: []model.PlanResource{
			{ID: "identity", Type: "Microsoft.ManagedIdentity/userAssignedIdentities", Name: "id-x", DependsOn: []string{}},
			{ID: "storage", Type: "Microsoft.Storage/storageAccounts", Name: "stx", DependsOn: []string{}},
			{ID: "blob", Type: "Microsoft.Storage/storageAccounts/blobServices/containers", Name: "images", DependsOn: []string{"storage"}},
			{ID: "web-app", Type: "Microsoft.Web/sites", Name: "app-x", DependsOn: []string{"identity", "blob"}},
		},
		RoleAssignments: []model.PlanRoleAssignment{
			{ID: "role/r1", Name: "r1", Role: "Storage Blob Data Contributor", Scope: "/s/storage", DependsOn: []string{"identity", "storage"}},
		},
	}
}

func TestWavesRecomputed(t *testing.T) {
	waves, err := Waves(testPlan())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"identity", "storage"}, {"blob", "role/r1"}, {"web-app"}}, waves)

	plan := testPlan()
	plan.Spec.Waves = [][]string{{"identity", "storage", "blob", "role/r1", "web-app"}}
	waves, err = Waves(plan)
	require.NoError(t, err)
	assert.Len(t, waves, 1, "waves carried by the plan win")
}

func TestWavesRejectBrokenGraphs(t *testing.T) {
	plan := testPlan()
	plan.Resources[0].DependsOn = []string{"web-app"}
	_, err := Waves(plan)
	assert.ErrorIs(t, err, model.ErrDependencyCycle)

	plan = testPlan()
	plan.Resources[0].DependsOn = []string{"nowhere"}
	_, err = Waves(plan)
	assert.ErrorIs(t, err, model.ErrInvalidDependency)
}

func TestRunAppliesWavesInOrder(t *testing.T) {
	var out bytes.Buffer
	p := &DryRunProvisioner{}

	require.NoError(t, NewRunner(p, &out, 4).Run(context.Background(), testPlan()))

	applied := p.Applied()
	require.Len(t, applied, 5)
	position := make(map[string]int)
	for i, id := range applied {
		position[id] = i
	}
	for _, node := range testPlan().Resources {
		for _, dep := range node.DependsOn {
			assert.Less(t, position[dep], position[node.ID])
		}
	}
	assert.Less(t, position["storage"], position["role/r1"])

	assert.Contains(t, out.String(), "→ Wave 0 (2 nodes)")
	assert.Contains(t, out.String(), "→ Wave 2 (1 nodes)")
	assert.Contains(t, out.String(), "role/r1 (Storage Blob Data Contributor on /s/storage)")
}

type failingProvisioner struct {
	mu      sync.Mutex
	fail    string
	applied []string
}

func (p *failingProvisioner) Apply(ctx context.Context, node Node) error {
	if node.ID == p.fail {
		return errors.New("quota exceeded")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applied = append(p.applied, node.ID)
	return nil
}

func TestRunStopsAtFailedWave(t *testing.T) {
	p := &failingProvisioner{fail: "blob"}

	err := NewRunner(p, &bytes.Buffer{}, 1).Run(context.Background(), testPlan())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wave 1: node blob failed: quota exceeded")
	assert.NotContains(t, p.applied, "web-app")
}

func TestRunRejectsUnknownWaveNode(t *testing.T) {
	plan := testPlan()
	plan.Spec.Waves = [][]string{{"identity"}, {"ghost"}}
	p := &DryRunProvisioner{}

	err := NewRunner(p, &bytes.Buffer{}, 2).Run(context.Background(), plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node ghost")
	assert.Empty(t, p.Applied(), "nothing runs when a wave is invalid")

	assert.Error(t, NewRunner(p, &bytes.Buffer{}, 2).Run(context.Background(), nil))
}

func TestRunRejectsIncompleteWaves(t *testing.T) {
	tests := []struct {
		name    string
		waves   [][]string
		wantErr string
	}{
		{"missing node", [][]string{{"identity", "storage"}, {"blob", "role/r1"}}, "node web-app is not scheduled in any wave"},
		{"scheduled twice", [][]string{{"identity", "storage"}, {"blob", "role/r1", "storage"}, {"web-app"}}, "node storage is scheduled in waves 0 and 1"},
		{"dependency too late", [][]string{{"identity", "storage", "blob"}, {"role/r1", "web-app"}}, "node blob in wave 0 depends on storage in wave 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := testPlan()
			plan.Spec.Waves = tt.waves
			p := &DryRunProvisioner{}

			err := NewRunner(p, &bytes.Buffer{}, 2).Run(context.Background(), plan)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, p.Applied())
		})
	}
}

func TestSelectKeepsDependencies(t *testing.T) {
	plan := testPlan()
	plan.Spec.Waves = [][]string{{"identity", "storage"}, {"blob", "role/r1"}, {"web-app"}}

	selected, err := Select(plan, []string{"blob"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"storage"}, {"blob"}}, selected.Spec.Waves)
	assert.Empty(t, selected.RoleAssignments)
	assert.Len(t, plan.Resources, 4, "the input plan is left alone")

	p := &DryRunProvisioner{}
	require.NoError(t, NewRunner(p, &bytes.Buffer{}, 2).Run(context.Background(), selected))
	assert.Equal(t, []string{"storage", "blob"}, p.Applied())

	selected, err = Select(plan, []string{"role/r1"})
	require.NoError(t, err)
	assert.Len(t, selected.Resources, 2)
	assert.Len(t, selected.RoleAssignments, 1)

	same, err := Select(plan, nil)
	require.NoError(t, err)
	assert.Same(t, plan, same)

	_, err = Select(plan, []string{"ghost"})
	assert.EqualError(t, err, "node ghost not found in plan")
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRunner(&DryRunProvisioner{}, &bytes.Buffer{}, 2).Run(ctx, testPlan())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunnerMinimumParallelism(t *testing.T) {
	assert.Equal(t, 1, NewRunner(&DryRunProvisioner{}, &bytes.Buffer{}, 0).Parallel)
}

func TestDeploymentName(t *testing.T) {
	a := DeploymentName("storage", "/subscriptions/s/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/st")
	b := DeploymentName("storage", "/subscriptions/s/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/st")
	c := DeploymentName("storage", "/subscriptions/s/resourceGroups/rg2/providers/Microsoft.Storage/storageAccounts/st")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "litetopo-"))
	assert.LessOrEqual(t, len(a), 64)
}

func TestARMProvisionerRejectsEmptyNode(t *testing.T) {
	p := NewARMProvisioner(nil, nil)
	err := p.Apply(context.Background(), Node{ID: "x"})
	assert.EqualError(t, err, "node x is empty")
}
