package model

import "sort"

// ResourceKind identifies the Azure resource family a ResourceSpec belongs to
type ResourceKind string

const (
	KindManagedIdentity    ResourceKind = "ManagedIdentity"
	KindKeyVault           ResourceKind = "KeyVault"
	KindStorageAccount     ResourceKind = "StorageAccount"
	KindBlobContainer      ResourceKind = "BlobContainer"
	KindSearchService      ResourceKind = "SearchService"
	KindCosmosAccount      ResourceKind = "CosmosAccount"
	KindCosmosDatabase     ResourceKind = "CosmosDatabase"
	KindCosmosContainer    ResourceKind = "CosmosContainer"
	KindAIServices         ResourceKind = "AIServices"
	KindAIProject          ResourceKind = "AIProject"
	KindAIModelDeployment  ResourceKind = "AIModelDeployment"
	KindLogAnalytics       ResourceKind = "LogAnalyticsWorkspace"
	KindAppInsights        ResourceKind = "ApplicationInsights"
	KindContainerRegistry  ResourceKind = "ContainerRegistry"
	KindAppServicePlan     ResourceKind = "AppServicePlan"
	KindWebApp             ResourceKind = "WebApp"
	KindContainerInstance  ResourceKind = "ContainerInstance"
	KindVirtualNetwork     ResourceKind = "VirtualNetwork"
	KindPrivateEndpoint    ResourceKind = "PrivateEndpoint"
	KindPrivateDNSZone     ResourceKind = "PrivateDNSZone"
	KindPrivateDNSZoneLink ResourceKind = "PrivateDNSZoneLink"
	KindDNSZoneGroup       ResourceKind = "PrivateDNSZoneGroup"
	KindDiagnosticSettings ResourceKind = "DiagnosticSettings"
	KindTelemetry          ResourceKind = "Telemetry"
)

// KindInfo is the static description of a resource kind.
type KindInfo struct {
	Type       string
	APIVersion string
	// DataPlane kinds hold application data and get a private endpoint
	// when private networking is on.
	DataPlane bool
	// Diagnosable kinds accept diagnostic settings.
	Diagnosable bool
	// Stateful kinds replicate to the paired region under redundancy.
	Stateful bool
}

var kinds = map[ResourceKind]KindInfo{
	KindManagedIdentity:    {Type: "Microsoft.ManagedIdentity/userAssignedIdentities", APIVersion: "2023-01-31"},
	KindKeyVault:           {Type: "Microsoft.KeyVault/vaults", APIVersion: "2023-07-01", DataPlane: true, Diagnosable: true},
	KindStorageAccount:     {Type: "Microsoft.Storage/storageAccounts", APIVersion: "2023-05-01", DataPlane: true, Diagnosable: true, Stateful: true},
	KindBlobContainer:      {Type: "Microsoft.Storage/storageAccounts/blobServices/containers", APIVersion: "2023-05-01"},
	KindSearchService:      {Type: "Microsoft.Search/searchServices", APIVersion: "2023-11-01", DataPlane: true, Diagnosable: true, Stateful: true},
	KindCosmosAccount:      {Type: "Microsoft.DocumentDB/databaseAccounts", APIVersion: "2024-05-15", DataPlane: true, Diagnosable: true, Stateful: true},
	KindCosmosDatabase:     {Type: "Microsoft.DocumentDB/databaseAccounts/sqlDatabases", APIVersion: "2024-05-15"},
	KindCosmosContainer:    {Type: "Microsoft.DocumentDB/databaseAccounts/sqlDatabases/containers", APIVersion: "2024-05-15"},
	KindAIServices:         {Type: "Microsoft.CognitiveServices/accounts", APIVersion: "2025-04-01-preview", DataPlane: true, Diagnosable: true},
	KindAIProject:          {Type: "Microsoft.CognitiveServices/accounts/projects", APIVersion: "2025-04-01-preview"},
	KindAIModelDeployment:  {Type: "Microsoft.CognitiveServices/accounts/deployments", APIVersion: "2025-04-01-preview"},
	KindLogAnalytics:       {Type: "Microsoft.OperationalInsights/workspaces", APIVersion: "2023-09-01", Stateful: true},
	KindAppInsights:        {Type: "Microsoft.Insights/components", APIVersion: "2020-02-02"},
	KindContainerRegistry:  {Type: "Microsoft.ContainerRegistry/registries", APIVersion: "2023-07-01", Diagnosable: true},
	KindAppServicePlan:     {Type: "Microsoft.Web/serverfarms", APIVersion: "2023-12-01", Diagnosable: true},
	KindWebApp:             {Type: "Microsoft.Web/sites", APIVersion: "2023-12-01", Diagnosable: true},
	KindContainerInstance:  {Type: "Microsoft.ContainerInstance/containerGroups", APIVersion: "2023-05-01", Diagnosable: true},
	KindVirtualNetwork:     {Type: "Microsoft.Network/virtualNetworks", APIVersion: "2024-01-01", Diagnosable: true},
	KindPrivateEndpoint:    {Type: "Microsoft.Network/privateEndpoints", APIVersion: "2024-01-01"},
	KindPrivateDNSZone:     {Type: "Microsoft.Network/privateDnsZones", APIVersion: "2020-06-01"},
	KindPrivateDNSZoneLink: {Type: "Microsoft.Network/privateDnsZones/virtualNetworkLinks", APIVersion: "2020-06-01"},
	KindDNSZoneGroup:       {Type: "Microsoft.Network/privateEndpoints/privateDnsZoneGroups", APIVersion: "2024-01-01"},
	KindDiagnosticSettings: {Type: "Microsoft.Insights/diagnosticSettings", APIVersion: "2021-05-01-preview"},
	KindTelemetry:          {Type: "Microsoft.Resources/deployments", APIVersion: "2022-09-01"},
}

// Info returns the static description of the kind.
func (k ResourceKind) Info() KindInfo {
	return kinds[k]
}

// Kinds returns every known kind in name order
func Kinds() []ResourceKind {
	out := make([]ResourceKind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Public network access values
const (
	PublicAccessEnabled  = "Enabled"
	PublicAccessDisabled = "Disabled"
)

// ResourceSpec is one resource the provisioning engine must create
type ResourceSpec struct {
	ID                  string            `yaml:"id" json:"id"`
	Kind                ResourceKind      `yaml:"kind" json:"kind"`
	Type                string            `yaml:"type" json:"type"`
	APIVersion          string            `yaml:"apiVersion" json:"apiVersion"`
	Name                string            `yaml:"name" json:"name"`
	ResourceID          string            `yaml:"resourceId" json:"resourceId"`
	Location            string            `yaml:"location,omitempty" json:"location,omitempty"`
	SecondaryLocation   string            `yaml:"secondaryLocation,omitempty" json:"secondaryLocation,omitempty"`
	SKU                 string            `yaml:"sku,omitempty" json:"sku,omitempty"`
	Capacity            int               `yaml:"capacity,omitempty" json:"capacity,omitempty"`
	PublicNetworkAccess string            `yaml:"publicNetworkAccess,omitempty" json:"publicNetworkAccess,omitempty"`
	DependsOn           []string          `yaml:"dependsOn,omitempty" json:"dependsOn,omitempty"`
	Tags                map[string]string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Rule                string            `yaml:"rule" json:"rule"`
	// Properties is the ARM request body, usually an Azure SDK model.
	Properties any `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// ExternalReference points at a resource owned by another deployment.
type ExternalReference struct {
	ID             string       `yaml:"id" json:"id"`
	Kind           ResourceKind `yaml:"kind" json:"kind"`
	SubscriptionID string       `yaml:"subscriptionId" json:"subscriptionId"`
	ResourceGroup  string       `yaml:"resourceGroup" json:"resourceGroup"`
	Name           string       `yaml:"name" json:"name"`
	ParentName     string       `yaml:"parentName,omitempty" json:"parentName,omitempty"`
	ResourceID     string       `yaml:"resourceId" json:"resourceId"`
	Rule           string       `yaml:"rule" json:"rule"`
}

// Principal types for role assignments
const (
	PrincipalServicePrincipal = "ServicePrincipal"
	PrincipalUser             = "User"
)

// RoleAssignment grants a principal a built-in role on a target resource.
type RoleAssignment struct {
	Name             string `yaml:"name" json:"name"`
	Role             string `yaml:"role" json:"role"`
	RoleDefinitionID string `yaml:"roleDefinitionId" json:"roleDefinitionId"`
	Scope            string `yaml:"scope" json:"scope"`
	Target           string `yaml:"target" json:"target"`
	Principal        string `yaml:"principal" json:"principal"`
	PrincipalID      string `yaml:"principalId" json:"principalId"`
	PrincipalType    string `yaml:"principalType" json:"principalType"`
	// External is set when Scope lies outside the deployment's resource group.
	External bool `yaml:"external,omitempty" json:"external,omitempty"`
	// DataPlane assignments are Cosmos DB SQL role assignments, not ARM RBAC.
	DataPlane  bool     `yaml:"dataPlane,omitempty" json:"dataPlane,omitempty"`
	DependsOn  []string `yaml:"dependsOn,omitempty" json:"dependsOn,omitempty"`
	Properties any      `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// NodeID is the id of the assignment inside the dependency graph
func (r RoleAssignment) NodeID() string {
	return "role/" + r.Name
}

// EdgeKind classifies a typed edge between two topology nodes
type EdgeKind string

const (
	EdgePrivateEndpoint EdgeKind = "privateEndpoint"
	EdgeDiagnostics     EdgeKind = "diagnostics"
	EdgeRoleAssignment  EdgeKind = "roleAssignment"
)

// Edge connects two nodes (local ids or reference ids)
type Edge struct {
	From string   `yaml:"from" json:"from"`
	To   string   `yaml:"to" json:"to"`
	Kind EdgeKind `yaml:"kind" json:"kind"`
	// Label carries the role name for role-assignment edges.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
}

// Topology is the resolved, immutable result of one resolution.
type Topology struct {
	SolutionSuffix  string              `yaml:"solutionSuffix" json:"solutionSuffix"`
	Config          DeploymentConfig    `yaml:"config" json:"config"`
	Resources       []ResourceSpec      `yaml:"resources" json:"resources"`
	References      []ExternalReference `yaml:"references,omitempty" json:"references,omitempty"`
	RoleAssignments []RoleAssignment    `yaml:"roleAssignments" json:"roleAssignments"`
	Edges           []Edge              `yaml:"edges" json:"edges"`
	Outputs         map[string]string   `yaml:"outputs" json:"outputs"`
	Rules           []string            `yaml:"rules" json:"rules"`
	Order           []string            `yaml:"order" json:"order"`
	Waves           [][]string          `yaml:"waves" json:"waves"`
}

// Resource looks up a local resource by symbolic id
func (t *Topology) Resource(id string) (*ResourceSpec, bool) {
	for i := range t.Resources {
		if t.Resources[i].ID == id {
			return &t.Resources[i], true
		}
	}
	return nil, false
}

// Reference looks up an external reference by symbolic id
func (t *Topology) Reference(id string) (*ExternalReference, bool) {
	for i := range t.References {
		if t.References[i].ID == id {
			return &t.References[i], true
		}
	}
	return nil, false
}

// ResourcesOfKind returns local resources of the given kind in id order
func (t *Topology) ResourcesOfKind(kind ResourceKind) []ResourceSpec {
	out := make([]ResourceSpec, 0)
	for _, r := range t.Resources {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// EdgesOfKind returns the typed edges of one kind
func (t *Topology) EdgesOfKind(kind EdgeKind) []Edge {
	out := make([]Edge, 0)
	for _, e := range t.Edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
