package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRG = "/subscriptions/00000000-1111-2222-3333-444444444444/resourceGroups/rg-docgen-dev"

func resolvePlan(t *testing.T, modify func(*model.DeploymentConfig)) *model.Plan {
	t.Helper()
	cfg := model.DeploymentConfig{
		EnvironmentName:   "docgen-dev",
		SolutionName:      "docgen",
		SubscriptionID:    "00000000-1111-2222-3333-444444444444",
		ResourceGroupName: "rg-docgen-dev",
		Location:          "eastus",
		PrincipalID:       "99999999-8888-7777-6666-555555555555",
	}
	if modify != nil {
		modify(&cfg)
	}
	topo, err := planner.Resolve(cfg)
	require.NoError(t, err)
	return NewRenderer().RenderPlan(model.Metadata{Name: "docgen-dev", Description: "test"}, topo)
}

func TestRenderPlan(t *testing.T) {
	plan := resolvePlan(t, nil)

	assert.Equal(t, PlanAPIVersion, plan.APIVersion)
	assert.Equal(t, PlanKind, plan.Kind)
	assert.Equal(t, "eastus", plan.Spec.Location)
	assert.Equal(t, "rg-docgen-dev", plan.Spec.ResourceGroup)
	assert.NotEmpty(t, plan.Spec.Waves)

	for _, ra := range plan.RoleAssignments {
		assert.True(t, strings.HasPrefix(ra.ID, "role/"))
		assert.Equal(t, "role/"+ra.Name, ra.ID)
		assert.NotNil(t, ra.DependsOn)
	}
	for _, r := range plan.Resources {
		assert.NotNil(t, r.DependsOn, r.ID)
	}

	dump := NewRenderer().DebugDump(plan)
	assert.Contains(t, dump, "Plan: docgen-dev (test)")
	assert.Contains(t, dump, "Resource: storage")
}

func TestWriteAndLoadPlan(t *testing.T) {
	plan := resolvePlan(t, nil)
	r := NewRenderer()

	for _, name := range []string{"topology.json", "nested/topology.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, r.WritePlan(plan, path))

			loaded, err := LoadPlan(path)
			require.NoError(t, err)
			assert.Equal(t, plan.Spec, loaded.Spec)
			assert.Equal(t, plan.Outputs, loaded.Outputs)
			assert.Equal(t, plan.Nodes(), loaded.Nodes())
		})
	}

	_, err := LoadPlan(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestTemplateName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{testRG + "/providers/Microsoft.Storage/storageAccounts/stdocgen", "stdocgen"},
		{testRG + "/providers/Microsoft.Storage/storageAccounts/stdocgen/blobServices/default/containers/product-images", "stdocgen/default/product-images"},
		{testRG + "/providers/Microsoft.DocumentDB/databaseAccounts/cosno/sqlDatabases/db/containers/products", "cosno/db/products"},
		{testRG + "/providers/Microsoft.Network/privateDnsZones/privatelink.blob.core.windows.net", "privatelink.blob.core.windows.net"},
	}
	for _, tt := range tests {
		got, err := TemplateName(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := TemplateName("not-an-id")
	assert.Error(t, err)
}

func TestScope(t *testing.T) {
	sub, rg, err := Scope(testRG + "/providers/Microsoft.Search/searchServices/srch")
	require.NoError(t, err)
	assert.Equal(t, "00000000-1111-2222-3333-444444444444", sub)
	assert.Equal(t, "rg-docgen-dev", rg)

	_, _, err = Scope("/subscriptions/00000000-1111-2222-3333-444444444444")
	assert.Error(t, err)
}

func TestRenderTemplate(t *testing.T) {
	plan := resolvePlan(t, nil)

	tmpl, err := RenderTemplate(plan)
	require.NoError(t, err)
	assert.Equal(t, TemplateSchema, tmpl.Schema)
	assert.Len(t, tmpl.Resources, len(plan.Resources)+len(plan.RoleAssignments))

	ids := make(map[string]bool)
	for _, r := range plan.Resources {
		ids[r.ResourceID] = true
	}
	for _, ra := range plan.RoleAssignments {
		ids[RoleAssignmentResourceID(ra)] = true
	}
	for _, body := range tmpl.Resources {
		assert.NotEmpty(t, body["type"])
		assert.NotEmpty(t, body["apiVersion"])
		assert.NotEmpty(t, body["name"])
		for _, dep := range body["dependsOn"].([]string) {
			assert.True(t, ids[dep], "dependsOn %s is not a template resource", dep)
		}
	}

	out, ok := tmpl.Outputs["AZURE_LOCATION"]
	require.True(t, ok)
	assert.Equal(t, TemplateOutput{Type: "string", Value: "eastus"}, out)
}

func TestRenderTemplateDiagnosticSettings(t *testing.T) {
	plan := resolvePlan(t, func(c *model.DeploymentConfig) { c.EnableMonitoring = true })

	edges := 0
	for _, e := range plan.Edges {
		if e.Kind == model.EdgeDiagnostics {
			edges++
		}
	}
	require.NotZero(t, edges)

	tmpl, err := RenderTemplate(plan)
	require.NoError(t, err)

	settings := 0
	for _, body := range tmpl.Resources {
		if body["type"] != "Microsoft.Insights/diagnosticSettings" {
			continue
		}
		settings++
		scope, ok := body["scope"].(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(scope, testRG+"/providers/"), scope)
		assert.NotContains(t, body["name"], "/")
		assert.Contains(t, body["dependsOn"], scope)
	}
	assert.Equal(t, edges, settings)
}

func TestRenderTemplateSkipsExternalAssignments(t *testing.T) {
	plan := resolvePlan(t, func(c *model.DeploymentConfig) {
		c.ExistingAIProjectResourceID = "/subscriptions/aaaaaaaa-0000-0000-0000-000000000001/resourceGroups/rg-shared-ai/providers/Microsoft.CognitiveServices/accounts/aif-shared/projects/proj-docs"
	})

	external := 0
	for _, ra := range plan.RoleAssignments {
		if ra.External {
			external++
		}
	}
	require.NotZero(t, external)

	tmpl, err := RenderTemplate(plan)
	require.NoError(t, err)
	assert.Len(t, tmpl.Resources, len(plan.Resources)+len(plan.RoleAssignments)-external)
}

func TestRoleAssignmentBody(t *testing.T) {
	cosmos := testRG + "/providers/Microsoft.DocumentDB/databaseAccounts/cosno-docgen"

	body, err := RoleAssignmentBody(model.PlanRoleAssignment{ID: "role/a", Name: "a", Scope: cosmos, DataPlane: true})
	require.NoError(t, err)
	assert.Equal(t, sqlRoleType, body["type"])
	assert.Equal(t, "cosno-docgen/a", body["name"])
	assert.NotContains(t, body, "scope")

	body, err = RoleAssignmentBody(model.PlanRoleAssignment{ID: "role/b", Name: "b", Scope: cosmos})
	require.NoError(t, err)
	assert.Equal(t, rbacType, body["type"])
	assert.Equal(t, "b", body["name"])
	assert.Equal(t, cosmos, body["scope"])
}

func TestEscapeLiteral(t *testing.T) {
	assert.Equal(t, "plain", escapeLiteral("plain"))
	assert.Equal(t, "[[not an expression]", escapeLiteral("[not an expression]"))
}

func TestDotenv(t *testing.T) {
	content, err := RenderDotenv(map[string]string{"B": "two words", "A": "1"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(content, "\n"))
	assert.Less(t, strings.Index(content, "A="), strings.Index(content, "B="))

	path := filepath.Join(t.TempDir(), ".azure", "docgen-dev", ".env")
	require.NoError(t, WriteDotenv(map[string]string{"AZURE_LOCATION": "eastus", "KEEP": "old"}, path))
	require.NoError(t, WriteDotenv(map[string]string{"AZURE_LOCATION": "westus"}, path))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "westus", env["AZURE_LOCATION"])
	assert.Equal(t, "old", env["KEEP"])

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
