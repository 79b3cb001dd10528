package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveErrorMessage(t *testing.T) {
	err := Errorf(InvalidConfiguration, "location", "%q is not an Azure region name", "moon")
	assert.Equal(t, `InvalidConfiguration (location): "moon" is not an Azure region name`, err.Error())

	wrapped := &ResolveError{Kind: InvalidResourceReference, Message: "failed to parse resource ID", Err: errors.New("bad id")}
	assert.Equal(t, "InvalidResourceReference: failed to parse resource ID: bad id", wrapped.Error())
}

func TestResolveErrorIs(t *testing.T) {
	err := fmt.Errorf("rule core: %w", Errorf(NameDerivationOverflow, "KeyVault", "too long"))

	assert.ErrorIs(t, err, ErrNameDerivationOverflow)
	assert.ErrorIs(t, err, &ResolveError{Kind: NameDerivationOverflow, Field: "KeyVault"})
	assert.NotErrorIs(t, err, &ResolveError{Kind: NameDerivationOverflow, Field: "StorageAccount"})
	assert.NotErrorIs(t, err, ErrInvalidConfiguration)
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("outer: %w", Errorf(DependencyCycle, "a", "cycle")))
	require.True(t, ok)
	assert.Equal(t, DependencyCycle, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestRoleAssignmentNodeID(t *testing.T) {
	ra := RoleAssignment{Name: "0b4c2f0e-0000-5000-8000-000000000000"}
	assert.Equal(t, "role/0b4c2f0e-0000-5000-8000-000000000000", ra.NodeID())
}

func TestPlanNodes(t *testing.T) {
	plan := &Plan{
		Resources: []PlanResource{
			{ID: "storage", DependsOn: []string{}},
			{ID: "blob", DependsOn: []string{"storage"}},
		},
		RoleAssignments: []PlanRoleAssignment{
			{ID: "role/x", DependsOn: []string{"storage"}},
		},
	}

	nodes := plan.Nodes()
	assert.Len(t, nodes, 3)
	assert.Equal(t, []string{"storage"}, nodes["blob"])
	assert.Equal(t, []string{"storage"}, nodes["role/x"])
}

func TestKindsSortedAndDescribed(t *testing.T) {
	kinds := Kinds()
	require.NotEmpty(t, kinds)
	for i, k := range kinds {
		if i > 0 {
			assert.Less(t, string(kinds[i-1]), string(k))
		}
		info := k.Info()
		assert.NotEmpty(t, info.Type, "kind %s has no ARM type", k)
		assert.NotEmpty(t, info.APIVersion, "kind %s has no api version", k)
	}
}
