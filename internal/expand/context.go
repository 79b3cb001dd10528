package expand

import (
	"github.com/sourceplane/litetopo/internal/azure"
	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/naming"
)

// Context is everything the inclusion rules may look at. It is computed once
// per resolution and never modified afterwards.
type Context struct {
	Config model.DeploymentConfig
	Suffix string
	Names  naming.Names
	Cloud  azure.Cloud
	// Secondary is the paired region; set only under redundancy.
	Secondary string
	Project   *azure.FoundryProject
	Workspace *azure.Workspace
}

// NewContext parses references, checks capability and region constraints
// and derives names. cfg must already be normalized.
func NewContext(cfg model.DeploymentConfig) (*Context, error) {
	ctx := &Context{Config: cfg}

	if cfg.ExistingAIProjectResourceID != "" {
		project, err := azure.ParseFoundryProjectID(cfg.ExistingAIProjectResourceID)
		if err != nil {
			return nil, err
		}
		ctx.Project = project
	}
	if cfg.ExistingLogAnalyticsWorkspaceID != "" {
		ws, err := azure.ParseWorkspaceID(cfg.ExistingLogAnalyticsWorkspaceID)
		if err != nil {
			return nil, err
		}
		ctx.Workspace = ws
	}

	if Redundant(&cfg) && cfg.CosmosCapacityMode == model.CosmosServerless {
		return nil, model.Errorf(model.ConflictingCapabilityRequest, "cosmosCapacityMode",
			"serverless Cosmos DB accounts cannot replicate to a second region; use provisioned capacity or disable redundancy")
	}

	if Redundant(&cfg) {
		pair, ok := azure.PairedRegion(cfg.Location)
		if !ok {
			return nil, model.Errorf(model.UnsupportedRegionForRedundancy, "location",
				"region %q has no paired region", cfg.Location)
		}
		if cfg.SecondaryLocation != "" && cfg.SecondaryLocation != pair {
			return nil, model.Errorf(model.UnsupportedRegionForRedundancy, "secondaryLocation",
				"region %q is not paired with %q (expected %q)", cfg.SecondaryLocation, cfg.Location, pair)
		}
		ctx.Secondary = pair
	}

	c, err := azure.LookupCloud(cfg.Cloud)
	if err != nil {
		return nil, err
	}
	ctx.Cloud = c

	suffix, err := naming.SolutionSuffix(cfg.SubscriptionID, cfg.ResourceGroupName, cfg.SolutionName)
	if err != nil {
		return nil, err
	}
	names, err := naming.DeriveAll(suffix)
	if err != nil {
		return nil, err
	}
	ctx.Suffix = suffix
	ctx.Names = names

	return ctx, nil
}

// ResourceID returns the id of a resource in the deployment's resource group
func (c *Context) ResourceID(kind model.ResourceKind, names ...string) string {
	return azure.ResourceRID(c.Config.SubscriptionID, c.Config.ResourceGroupName, kind.Info().Type, names...)
}
