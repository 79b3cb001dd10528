package planner

import (
	"io"
	"log/slog"

	"github.com/sourceplane/litetopo/internal/expand"
	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/normalize"
)

// Resolver turns a deployment config into a topology
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a resolver that logs its decisions to logger
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		logger: logger,
	}
}

// Resolve is NewResolver(nil).Resolve
func Resolve(cfg model.DeploymentConfig) (*model.Topology, error) {
	return NewResolver(nil).Resolve(cfg)
}

// Resolve computes the topology for cfg. It has no side effects: equal
// configs always give equal topologies.
func (r *Resolver) Resolve(cfg model.DeploymentConfig) (*model.Topology, error) {
	normalized, err := normalize.NormalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx, err := expand.NewContext(normalized)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("context ready",
		"suffix", ctx.Suffix,
		"cloud", ctx.Cloud.Name,
		"secondary", ctx.Secondary,
		"reuseProject", ctx.Project != nil,
		"reuseWorkspace", ctx.Workspace != nil)

	result, err := expand.NewExpander(ctx).Expand()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("rules evaluated",
		"fired", result.Rules,
		"resources", len(result.Resources),
		"references", len(result.References),
		"roleAssignments", len(result.RoleAssignments))

	topo := &model.Topology{
		SolutionSuffix:  ctx.Suffix,
		Config:          normalized,
		Resources:       result.Resources,
		References:      result.References,
		RoleAssignments: result.RoleAssignments,
		Edges:           result.Edges,
		Rules:           result.Rules,
	}

	graph := NewGraph(Nodes(topo))
	if err := graph.CheckReferences(); err != nil {
		return nil, err
	}
	if err := graph.DetectCycles(); err != nil {
		return nil, err
	}
	order, err := graph.TopologicalSort()
	if err != nil {
		return nil, err
	}
	waves, err := graph.Levels()
	if err != nil {
		return nil, err
	}
	topo.Order = order
	topo.Waves = waves
	r.logger.Debug("graph ordered", "nodes", len(order), "waves", len(waves))

	outputs, err := buildOutputs(ctx, topo)
	if err != nil {
		return nil, err
	}
	topo.Outputs = outputs

	return topo, nil
}

// Nodes returns the dependency map of every local resource and role
// assignment in a topology
func Nodes(topo *model.Topology) map[string][]string {
	nodes := make(map[string][]string, len(topo.Resources)+len(topo.RoleAssignments))
	for _, res := range topo.Resources {
		nodes[res.ID] = res.DependsOn
	}
	for _, ra := range topo.RoleAssignments {
		nodes[ra.NodeID()] = ra.DependsOn
	}
	return nodes
}
