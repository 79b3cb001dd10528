package planner

import (
	"testing"

	"github.com/sourceplane/litetopo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphTopologicalSort(t *testing.T) {
	g := NewGraph(map[string][]string{
		"web-app":   {"plan", "identity"},
		"plan":      {},
		"identity":  {},
		"storage":   {},
		"blob":      {"storage"},
		"role/blob": {"storage", "identity"},
	})

	require.NoError(t, g.CheckReferences())
	require.NoError(t, g.DetectCycles())

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"identity", "plan", "storage", "blob", "role/blob", "web-app"}, order)

	levels, err := g.Levels()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"identity", "plan", "storage"},
		{"blob", "role/blob", "web-app"},
	}, levels)
}

func TestGraphDuplicateDependencies(t *testing.T) {
	g := NewGraph(map[string][]string{
		"a": {},
		"b": {"a", "a"},
	})

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestGraphDetectCycles(t *testing.T) {
	g := NewGraph(map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
		"d": {},
	})

	err := g.DetectCycles()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDependencyCycle)
	assert.Contains(t, err.Error(), "a -> b -> c -> a")

	_, err = g.TopologicalSort()
	assert.ErrorIs(t, err, model.ErrDependencyCycle)

	_, err = g.Levels()
	assert.ErrorIs(t, err, model.ErrDependencyCycle)
}

func TestGraphCheckReferences(t *testing.T) {
	tests := []struct {
		name  string
		nodes map[string][]string
	}{
		{"unknown dependency", map[string][]string{"a": {"missing"}}},
		{"self dependency", map[string][]string{"a": {"a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewGraph(tt.nodes).CheckReferences()
			require.Error(t, err)
			assert.ErrorIs(t, err, &model.ResolveError{Kind: model.InvalidDependency, Field: "a"})
		})
	}
}
