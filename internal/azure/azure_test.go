package azure

import (
	"testing"

	"github.com/sourceplane/litetopo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectID = "/subscriptions/aaaaaaaa-0000-0000-0000-000000000001/resourceGroups/rg-shared-ai/providers/Microsoft.CognitiveServices/accounts/aif-shared/projects/proj-docs"

func TestParseFoundryProjectID(t *testing.T) {
	project, err := ParseFoundryProjectID(projectID)
	require.NoError(t, err)

	assert.Equal(t, "aaaaaaaa-0000-0000-0000-000000000001", project.SubscriptionID)
	assert.Equal(t, "rg-shared-ai", project.ResourceGroupName)
	assert.Equal(t, "aif-shared", project.AccountName)
	assert.Equal(t, "proj-docs", project.ProjectName)
	assert.Equal(t,
		"/subscriptions/aaaaaaaa-0000-0000-0000-000000000001/resourceGroups/rg-shared-ai/providers/Microsoft.CognitiveServices/accounts/aif-shared",
		project.AccountResourceID())
}

func TestParseFoundryProjectIDRejects(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"machine learning workspace", "/subscriptions/s/resourceGroups/rg/providers/Microsoft.MachineLearningServices/workspaces/hub"},
		{"account without project", "/subscriptions/s/resourceGroups/rg/providers/Microsoft.CognitiveServices/accounts/aif-shared"},
		{"not a resource id", "aif-shared/proj-docs"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFoundryProjectID(tt.id)
			require.Error(t, err)
			assert.ErrorIs(t, err, &model.ResolveError{Kind: model.InvalidResourceReference, Field: "existingAiProjectResourceId"})
		})
	}
}

func TestParseWorkspaceID(t *testing.T) {
	ws, err := ParseWorkspaceID("/subscriptions/s/resourceGroups/rg-monitor/providers/Microsoft.OperationalInsights/workspaces/log-shared")
	require.NoError(t, err)
	assert.Equal(t, "rg-monitor", ws.ResourceGroupName)
	assert.Equal(t, "log-shared", ws.Name)

	_, err = ParseWorkspaceID(projectID)
	assert.ErrorIs(t, err, model.ErrInvalidResourceReference)
}

func TestResourceRID(t *testing.T) {
	assert.Equal(t,
		"/subscriptions/s/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/stdocs/blobServices/default/containers/product-images",
		ResourceRID("s", "rg", "Microsoft.Storage/storageAccounts/blobServices/containers", "stdocs", "default", "product-images"))
	assert.Equal(t,
		"/subscriptions/s/resourceGroups/rg/providers/Microsoft.KeyVault/vaults/kv-docs",
		ResourceRID("s", "rg", "Microsoft.KeyVault/vaults", "kv-docs"))
	assert.Equal(t,
		"/subscriptions/s/providers/Microsoft.Authorization/roleDefinitions/7f951dba-4ed6-4b3f-9bc3-5bda0b8b0f72",
		RoleDefinitionRID("s", RoleAcrPull.ID))
}

func TestPairedRegion(t *testing.T) {
	tests := []struct {
		location string
		want     string
		ok       bool
	}{
		{"eastus", "westus", true},
		{"westus", "eastus", true},
		{"swedencentral", "swedensouth", true},
		{"westus3", "eastus", true},
		{"atlantis", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			got, ok := PairedRegion(tt.location)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	regions := PairedRegions()
	assert.Contains(t, regions, "eastus")
	assert.IsNonDecreasing(t, regions)
}

func TestLookupCloud(t *testing.T) {
	public, err := LookupCloud(model.CloudPublic)
	require.NoError(t, err)
	assert.Contains(t, public.ResourceManagerEndpoint(), "https://management.azure.com")
	assert.Equal(t, "search.windows.net", public.Search)
	assert.NotEmpty(t, public.AIFoundry)

	gov, err := LookupCloud(model.CloudUSGovernment)
	require.NoError(t, err)
	assert.Contains(t, gov.ResourceManagerEndpoint(), "https://management.usgovcloudapi.net")
	assert.Empty(t, gov.AIFoundry)

	_, err = LookupCloud("AzureMoon")
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestPrivateLinkZone(t *testing.T) {
	assert.Equal(t, "privatelink.blob.core.windows.net", PrivateLinkZone("blob.core.windows.net"))
	assert.Empty(t, PrivateLinkZone(""))
}
