package expand

import (
	"testing"

	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, modify func(*model.DeploymentConfig)) *Context {
	t.Helper()
	cfg := model.DeploymentConfig{
		EnvironmentName:   "docgen-dev",
		SolutionName:      "docgen",
		SubscriptionID:    "00000000-1111-2222-3333-444444444444",
		ResourceGroupName: "rg-docgen-dev",
		Location:          "eastus",
	}
	if modify != nil {
		modify(&cfg)
	}
	normalized, err := normalize.NormalizeConfig(cfg)
	require.NoError(t, err)
	ctx, err := NewContext(normalized)
	require.NoError(t, err)
	return ctx
}

func specByID(t *testing.T, res *Result, id string) model.ResourceSpec {
	t.Helper()
	for _, r := range res.Resources {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("resource %s not contributed", id)
	return model.ResourceSpec{}
}

func TestExpandPublicDefaults(t *testing.T) {
	res, err := NewExpander(newTestContext(t, nil)).Expand()
	require.NoError(t, err)

	assert.Equal(t, []string{"core", "ai-local", "rbac"}, res.Rules)

	for i := 1; i < len(res.Resources); i++ {
		assert.Less(t, res.Resources[i-1].ID, res.Resources[i].ID)
	}

	storage := specByID(t, res, IDStorage)
	assert.Equal(t, "core", storage.Rule)
	assert.Equal(t, "Microsoft.Storage/storageAccounts", storage.Type)
	assert.Equal(t, "Standard_LRS", storage.SKU)

	project := specByID(t, res, IDAIProject)
	assert.Equal(t, "ai-local", project.Rule)
	assert.Equal(t, []string{IDAIServices}, project.DependsOn)
}

func TestExpandSerializesModelDeployments(t *testing.T) {
	res, err := NewExpander(newTestContext(t, nil)).Expand()
	require.NoError(t, err)

	assert.Equal(t, []string{IDAIServices}, specByID(t, res, IDGPTDeployment).DependsOn)
	assert.Equal(t, []string{IDAIServices, IDGPTDeployment}, specByID(t, res, IDEmbeddingDeployment).DependsOn)
	assert.Equal(t, []string{IDAIServices, IDEmbeddingDeployment}, specByID(t, res, IDImageDeployment).DependsOn)
}

func TestExpandScalabilityTiers(t *testing.T) {
	ctx := newTestContext(t, func(c *model.DeploymentConfig) { c.EnableScalability = true })
	res, err := NewExpander(ctx).Expand()
	require.NoError(t, err)

	plan := specByID(t, res, IDAppServicePlan)
	assert.Equal(t, "P1v3", plan.SKU)
	assert.Equal(t, 3, plan.Capacity)
	assert.Equal(t, "standard", specByID(t, res, IDSearch).SKU)
}

func TestExpandRedundancy(t *testing.T) {
	ctx := newTestContext(t, func(c *model.DeploymentConfig) { c.EnableRedundancy = true })
	assert.Equal(t, "westus", ctx.Secondary)

	res, err := NewExpander(ctx).Expand()
	require.NoError(t, err)

	assert.Equal(t, "westus", specByID(t, res, IDStorage).SecondaryLocation)
	assert.Equal(t, "westus", specByID(t, res, IDCosmos).SecondaryLocation)
	assert.Equal(t, model.CosmosProvisioned, specByID(t, res, IDCosmos).SKU)
	assert.Equal(t, "Standard_GZRS", specByID(t, res, IDStorage).SKU)
}

func TestBuilderRejectsDuplicates(t *testing.T) {
	b := newBuilder(newTestContext(t, nil))
	_, err := b.AddResource(model.ResourceSpec{ID: "x", Kind: model.KindManagedIdentity})
	require.NoError(t, err)
	_, err = b.AddResource(model.ResourceSpec{ID: "x", Kind: model.KindManagedIdentity})
	assert.Error(t, err)

	b.AddRoleAssignment(model.RoleAssignment{Name: "same", Role: "a"})
	b.AddRoleAssignment(model.RoleAssignment{Name: "same", Role: "b"})
	res := b.result()
	require.Len(t, res.RoleAssignments, 1)
	assert.Equal(t, "a", res.RoleAssignments[0].Role)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name       string
		cfg        model.DeploymentConfig
		serverless bool
		monitored  bool
		access     string
	}{
		{"defaults", model.DeploymentConfig{}, true, false, model.PublicAccessEnabled},
		{"redundant", model.DeploymentConfig{EnableRedundancy: true}, false, false, model.PublicAccessEnabled},
		{"explicit serverless", model.DeploymentConfig{CosmosCapacityMode: model.CosmosServerless, EnableRedundancy: true}, true, false, model.PublicAccessEnabled},
		{"monitoring", model.DeploymentConfig{EnableMonitoring: true}, true, true, model.PublicAccessEnabled},
		{"existing workspace", model.DeploymentConfig{ExistingLogAnalyticsWorkspaceID: "/x"}, true, true, model.PublicAccessEnabled},
		{"private", model.DeploymentConfig{EnablePrivateNetworking: true}, true, false, model.PublicAccessDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.serverless, CosmosServerless(&tt.cfg))
			assert.Equal(t, tt.monitored, Monitored(&tt.cfg))
			assert.Equal(t, tt.access, PublicNetworkAccess(&tt.cfg))
			assert.NotEqual(t, LocalAI(&tt.cfg), ReusedAI(&tt.cfg))
		})
	}
}

func TestTiers(t *testing.T) {
	base := Tiers(&model.DeploymentConfig{})
	assert.Equal(t, "B3", base.PlanSKU)
	assert.Equal(t, 1, base.SearchReplicas)
	assert.Equal(t, 30, base.LogRetentionDays)

	both := Tiers(&model.DeploymentConfig{EnableScalability: true, EnableRedundancy: true})
	assert.Equal(t, "P1v3", both.PlanSKU)
	assert.Equal(t, 3, both.SearchReplicas)
	assert.Equal(t, "Standard_GZRS", both.StorageSKU)
	assert.Equal(t, 365, both.LogRetentionDays)
}
