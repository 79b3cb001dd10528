package expand

import (
	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/naming"
)

// Symbolic ids of the resources a topology may contain
const (
	IDIdentity            = "identity"
	IDKeyVault            = "key-vault"
	IDStorage             = "storage"
	IDProductImages       = "blob-product-images"
	IDGeneratedImages     = "blob-generated-images"
	IDSearch              = "search"
	IDCosmos              = "cosmos"
	IDCosmosDatabase      = "cosmos-database"
	IDCosmosConversations = "cosmos-conversations"
	IDCosmosProducts      = "cosmos-products"
	IDAIServices          = "ai-services"
	IDAIProject           = "ai-project"
	IDGPTDeployment       = "model-gpt"
	IDEmbeddingDeployment = "model-embedding"
	IDImageDeployment     = "model-image"
	IDLogAnalytics        = "log-analytics"
	IDAppInsights         = "app-insights"
	IDContainerRegistry   = "container-registry"
	IDAppServicePlan      = "app-service-plan"
	IDWebApp              = "web-app"
	IDBackend             = "backend"
	IDVirtualNetwork      = "vnet"
	IDTelemetry           = "telemetry"
	IDDeployingPrincipal  = "principal"
)

// DiagnosticsPrefix prefixes the id of the diagnostic setting of a resource
const DiagnosticsPrefix = "diag-"

// Application data names
const (
	CosmosDatabaseName           = "content_generation_db"
	CosmosConversationsName      = "conversations"
	CosmosProductsName           = "products"
	ProductImagesContainerName   = "product-images"
	GeneratedImagesContainerName = "generated-images"
	SearchProductsIndex          = "products"
	SearchImageIndex             = "product-images"
)

// Rule is one row of the inclusion table
type Rule struct {
	Name        string
	Description string
	When        func(*model.DeploymentConfig) bool
	Contribute  func(*Context, *Builder) error
}

func always(*model.DeploymentConfig) bool { return true }

// DefaultRules returns the inclusion rules in evaluation order. Later rules
// may attach to resources contributed by earlier ones.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "core",
			Description: "identity, key vault, storage, search, cosmos, registry and the app hosting",
			When:        always,
			Contribute:  contributeCore,
		},
		{
			Name:        "ai-local",
			Description: "AI services account, project and model deployments",
			When:        LocalAI,
			Contribute:  contributeLocalAI,
		},
		{
			Name:        "ai-reference",
			Description: "references to an existing AI Foundry project",
			When:        ReusedAI,
			Contribute:  contributeAIReference,
		},
		{
			Name:        "monitoring-workspace",
			Description: "Log Analytics workspace",
			When:        CreatesWorkspace,
			Contribute:  contributeWorkspace,
		},
		{
			Name:        "monitoring-existing-workspace",
			Description: "reference to an existing Log Analytics workspace",
			When:        ReusedWorkspace,
			Contribute:  contributeWorkspaceReference,
		},
		{
			Name:        "monitoring-insights",
			Description: "Application Insights bound to the workspace",
			When:        Monitored,
			Contribute:  contributeInsights,
		},
		{
			Name:        "private-networking",
			Description: "virtual network, private endpoints and private DNS",
			When:        PrivateNetworking,
			Contribute:  contributePrivateNetworking,
		},
		{
			Name:        "telemetry",
			Description: "usage attribution deployment",
			When:        Telemetry,
			Contribute:  contributeTelemetry,
		},
		{
			Name:        "rbac",
			Description: "role assignments between identities and data resources",
			When:        always,
			Contribute:  contributeRoleAssignments,
		},
		{
			Name:        "diagnostics",
			Description: "diagnostic settings towards the workspace",
			When:        Monitored,
			Contribute:  contributeDiagnostics,
		},
	}
}

func contributeCore(ctx *Context, b *Builder) error {
	builders := []func(*Context) ([]model.ResourceSpec, error){
		identitySpecs,
		keyVaultSpecs,
		storageSpecs,
		searchSpecs,
		cosmosSpecs,
		registrySpecs,
		hostingSpecs,
	}
	for _, build := range builders {
		specs, err := build(ctx)
		if err != nil {
			return err
		}
		for _, spec := range specs {
			if _, err := b.AddResource(spec); err != nil {
				return err
			}
		}
	}
	return nil
}

func contributeLocalAI(ctx *Context, b *Builder) error {
	specs, err := aiSpecs(ctx)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if _, err := b.AddResource(spec); err != nil {
			return err
		}
	}
	return nil
}

func contributeAIReference(ctx *Context, b *Builder) error {
	p := ctx.Project
	b.AddReference(model.ExternalReference{
		ID:             IDAIServices,
		Kind:           model.KindAIServices,
		SubscriptionID: p.SubscriptionID,
		ResourceGroup:  p.ResourceGroupName,
		Name:           p.AccountName,
		ResourceID:     p.AccountResourceID(),
	})
	b.AddReference(model.ExternalReference{
		ID:             IDAIProject,
		Kind:           model.KindAIProject,
		SubscriptionID: p.SubscriptionID,
		ResourceGroup:  p.ResourceGroupName,
		Name:           p.ProjectName,
		ParentName:     p.AccountName,
		ResourceID:     p.ResourceID,
	})
	return nil
}

func contributeWorkspace(ctx *Context, b *Builder) error {
	_, err := b.AddResource(workspaceSpec(ctx))
	return err
}

func contributeWorkspaceReference(ctx *Context, b *Builder) error {
	ws := ctx.Workspace
	b.AddReference(model.ExternalReference{
		ID:             IDLogAnalytics,
		Kind:           model.KindLogAnalytics,
		SubscriptionID: ws.SubscriptionID,
		ResourceGroup:  ws.ResourceGroupName,
		Name:           ws.Name,
		ResourceID:     ws.ResourceID,
	})
	return nil
}

func contributeInsights(ctx *Context, b *Builder) error {
	sinkID, local := workspaceSink(ctx, b)
	spec := insightsSpec(ctx, sinkID)
	if local {
		spec.DependsOn = append(spec.DependsOn, IDLogAnalytics)
	}
	_, err := b.AddResource(spec)
	return err
}

func contributeTelemetry(ctx *Context, b *Builder) error {
	_, err := b.AddResource(telemetrySpec(ctx))
	return err
}

// contributeDiagnostics routes every diagnosable local resource to the
// workspace through a diagnostic setting of its own
func contributeDiagnostics(ctx *Context, b *Builder) error {
	sinkID, local := workspaceSink(ctx, b)
	if sinkID == "" {
		return nil
	}
	for _, id := range b.ResourceIDs() {
		r, _ := b.Resource(id)
		if id == IDLogAnalytics || !r.Kind.Info().Diagnosable {
			continue
		}
		spec, err := diagnosticSettingsSpec(r, sinkID)
		if err != nil {
			return err
		}
		if local {
			spec.DependsOn = append(spec.DependsOn, IDLogAnalytics)
		}
		if _, err := b.AddResource(spec); err != nil {
			return err
		}
		b.AddEdge(model.Edge{From: id, To: IDLogAnalytics, Kind: model.EdgeDiagnostics})
	}
	return nil
}

// workspaceSink returns the resource id diagnostics flow into and whether
// the workspace is created by this deployment
func workspaceSink(ctx *Context, b *Builder) (string, bool) {
	if ws, ok := b.Resource(IDLogAnalytics); ok {
		return ws.ResourceID, true
	}
	if ref, ok := b.Reference(IDLogAnalytics); ok {
		return ref.ResourceID, false
	}
	return "", false
}

// DiagnosticsID is the id of the diagnostic setting attached to resource id
func DiagnosticsID(id string) string {
	return DiagnosticsPrefix + id
}

// diagnosticSettingsSpec builds the extension resource sending the logs and
// metrics of target to the workspace sinkID.
func diagnosticSettingsSpec(target *model.ResourceSpec, sinkID string) (model.ResourceSpec, error) {
	name := DiagnosticsPrefix + target.Name
	if err := naming.Check(model.KindDiagnosticSettings, name); err != nil {
		return model.ResourceSpec{}, err
	}
	props := map[string]any{
		"workspaceId": sinkID,
		"metrics":     []any{map[string]any{"category": "AllMetrics", "enabled": true}},
	}
	// App Service plans only emit metrics
	if target.Kind != model.KindAppServicePlan {
		props["logs"] = []any{map[string]any{"categoryGroup": "allLogs", "enabled": true}}
	}
	return model.ResourceSpec{
		ID:         DiagnosticsID(target.ID),
		Kind:       model.KindDiagnosticSettings,
		Name:       name,
		ResourceID: target.ResourceID + "/providers/" + model.KindDiagnosticSettings.Info().Type + "/" + name,
		DependsOn:  []string{target.ID},
		Properties: map[string]any{"properties": props},
	}, nil
}
