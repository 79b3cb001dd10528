package expand

import "github.com/sourceplane/litetopo/internal/model"

// The decision table. Each predicate reads the config only, never another
// predicate's outcome, so any combination of flags is decided row by row.

// LocalAI is true when the AI services account and project are created here
func LocalAI(c *model.DeploymentConfig) bool {
	return !c.ReusesAIProject()
}

// ReusedAI is true when an existing Foundry project is referenced
func ReusedAI(c *model.DeploymentConfig) bool {
	return c.ReusesAIProject()
}

// CreatesWorkspace is true when a new Log Analytics workspace is needed
func CreatesWorkspace(c *model.DeploymentConfig) bool {
	return c.EnableMonitoring && c.ExistingLogAnalyticsWorkspaceID == ""
}

// ReusedWorkspace is true when diagnostics go to an existing workspace
func ReusedWorkspace(c *model.DeploymentConfig) bool {
	return c.ExistingLogAnalyticsWorkspaceID != ""
}

// Monitored is true when a diagnostics sink exists
func Monitored(c *model.DeploymentConfig) bool {
	return CreatesWorkspace(c) || ReusedWorkspace(c)
}

// PrivateNetworking is true when data-plane resources are reachable only
// through private endpoints
func PrivateNetworking(c *model.DeploymentConfig) bool {
	return c.EnablePrivateNetworking
}

// Redundant is true when stateful resources replicate to the paired region
func Redundant(c *model.DeploymentConfig) bool {
	return c.EnableRedundancy
}

// Scalable is true when compute and search run on the higher tier
func Scalable(c *model.DeploymentConfig) bool {
	return c.EnableScalability
}

// Telemetry is true when the usage-attribution deployment is emitted
func Telemetry(c *model.DeploymentConfig) bool {
	return c.EnableTelemetry
}

// DeployingPrincipal is true when the deploying user gets data roles
func DeployingPrincipal(c *model.DeploymentConfig) bool {
	return c.PrincipalID != ""
}

// CosmosServerless is true when Cosmos DB runs in serverless capacity mode.
// Empty capacity mode means serverless unless redundancy is on.
func CosmosServerless(c *model.DeploymentConfig) bool {
	switch c.CosmosCapacityMode {
	case model.CosmosServerless:
		return true
	case model.CosmosProvisioned:
		return false
	default:
		return !Redundant(c)
	}
}

// PublicNetworkAccess is the access mode of every data-plane resource
func PublicNetworkAccess(c *model.DeploymentConfig) string {
	if PrivateNetworking(c) {
		return model.PublicAccessDisabled
	}
	return model.PublicAccessEnabled
}

// Tier values derived from the predicates
type Tier struct {
	PlanSKU          string
	PlanCapacity     int
	SearchSKU        string
	SearchReplicas   int
	StorageSKU       string
	ContainerCPU     float64
	ContainerMemory  float64
	RegistrySKU      string
	LogRetentionDays int
}

// Tiers computes SKU and capacity choices for the config
func Tiers(c *model.DeploymentConfig) Tier {
	t := Tier{
		PlanSKU:          "B3",
		PlanCapacity:     1,
		SearchSKU:        "basic",
		SearchReplicas:   1,
		StorageSKU:       "Standard_LRS",
		ContainerCPU:     1,
		ContainerMemory:  2,
		RegistrySKU:      "Basic",
		LogRetentionDays: 30,
	}
	if Scalable(c) {
		t.PlanSKU = "P1v3"
		t.PlanCapacity = 3
		t.SearchSKU = "standard"
		t.SearchReplicas = 2
		t.ContainerCPU = 2
		t.ContainerMemory = 4
		t.RegistrySKU = "Standard"
	}
	if Redundant(c) {
		t.SearchReplicas = 3
		t.StorageSKU = "Standard_GZRS"
		t.LogRetentionDays = 365
	}
	return t
}
