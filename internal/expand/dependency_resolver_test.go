package expand

import (
	"testing"

	"github.com/sourceplane/litetopo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTopology() *model.Topology {
	return &model.Topology{
		Resources: []model.ResourceSpec{
			{ID: "identity", Kind: model.KindManagedIdentity, Name: "id-x", Rule: "core", DependsOn: []string{}},
			{ID: "storage", Kind: model.KindStorageAccount, Name: "stx", Rule: "core", DependsOn: []string{}},
			{ID: "blob", Kind: model.KindBlobContainer, Name: "images", Rule: "core", DependsOn: []string{"storage"}},
			{ID: "web-app", Kind: model.KindWebApp, Name: "app-x", Rule: "core", DependsOn: []string{"identity", "blob"}},
		},
		RoleAssignments: []model.RoleAssignment{
			{Name: "r1", Role: "Storage Blob Data Contributor", Target: "storage", Principal: "identity", DependsOn: []string{"identity", "storage"}},
		},
		Edges: []model.Edge{
			{From: "identity", To: "storage", Kind: model.EdgeRoleAssignment, Label: "Storage Blob Data Contributor"},
		},
		Waves: [][]string{{"identity", "storage"}, {"blob", "role/r1"}, {"web-app"}},
	}
}

func TestDependencyResolverDirect(t *testing.T) {
	dr := NewDependencyResolver(sampleTopology())

	assert.True(t, dr.Has("role/r1"))
	assert.False(t, dr.Has("r1"))
	assert.Equal(t, []string{"blob", "identity"}, dr.GetDependencies("web-app"))
	assert.Equal(t, []string{}, dr.GetDependencies("missing"))
	assert.Equal(t, []string{"blob", "role/r1"}, dr.GetDependents("storage"))
	assert.Empty(t, dr.GetDependents("web-app"))
}

func TestDependencyResolverTransitive(t *testing.T) {
	dr := NewDependencyResolver(sampleTopology())

	assert.Equal(t, map[string]bool{"identity": true, "blob": true, "storage": true}, dr.GetTransitiveDependencies("web-app"))
	assert.Equal(t, map[string]bool{"blob": true, "role/r1": true, "web-app": true}, dr.GetTransitiveDependents("storage"))
	assert.Empty(t, dr.GetTransitiveDependencies("identity"))
}

func TestDependencyResolverClosure(t *testing.T) {
	dr := NewDependencyResolver(sampleTopology())

	closure := dr.Closure(map[string]bool{"blob": true})
	assert.Equal(t, map[string]bool{"blob": true, "storage": true}, closure)

	closure = dr.Closure(map[string]bool{"web-app": true, "role/r1": true})
	assert.Len(t, closure, 5)
}

func TestDependencyResolverCategorize(t *testing.T) {
	dr := NewDependencyResolver(sampleTopology())

	deps, dependents := dr.Categorize(map[string]bool{"blob": true})
	assert.Equal(t, map[string]bool{"storage": true}, deps)
	assert.Equal(t, map[string]bool{"web-app": true}, dependents)
}

func TestTopologyAnalyzer(t *testing.T) {
	ta := NewTopologyAnalyzer(sampleTopology())

	all := ta.ListAll()
	require.Len(t, all, 4)
	assert.Equal(t, "blob", all[0].ID)
	assert.Equal(t, "web-app", all[3].ID)

	s, err := ta.GetResource("storage")
	require.NoError(t, err)
	assert.Equal(t, model.KindStorageAccount, s.Kind)
	assert.Equal(t, 0, s.Wave)
	assert.Equal(t, []string{"blob", "role/r1"}, s.Dependents)
	assert.Equal(t, []string{"Storage Blob Data Contributor <- identity"}, s.Roles)
	require.Len(t, s.Edges, 1)
	assert.Equal(t, model.EdgeRoleAssignment, s.Edges[0].Kind)

	web, err := ta.GetResource("web-app")
	require.NoError(t, err)
	assert.Equal(t, 2, web.Wave)

	_, err = ta.GetResource("nope")
	assert.Error(t, err)

	deps, dependents := ta.Transitive("blob")
	assert.Equal(t, []string{"storage"}, deps)
	assert.Equal(t, []string{"web-app"}, dependents)

	deps, dependents = ta.Transitive("blob", "identity")
	assert.Equal(t, []string{"storage"}, deps)
	assert.Equal(t, []string{"role/r1", "web-app"}, dependents)
}
