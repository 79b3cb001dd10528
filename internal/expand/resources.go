package expand

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cosmos/armcosmos/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/search/armsearch"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/naming"
)

// Container images pushed to the registry by the build
const (
	FrontendImage = "content-gen-app"
	BackendImage  = "content-gen-api"
	BackendPort   = 8000
	FrontendPort  = 3000
)

func (c *Context) spec(id string, kind model.ResourceKind, properties any, dependsOn ...string) model.ResourceSpec {
	name := c.Names[kind]
	return model.ResourceSpec{
		ID:         id,
		Kind:       kind,
		Name:       name,
		ResourceID: c.ResourceID(kind, name),
		Location:   c.Config.Location,
		DependsOn:  dependsOn,
		Properties: properties,
	}
}

// child builds a spec for a resource nested under a parent; the name is
// given explicitly and checked against the kind's naming rule.
func (c *Context) child(id string, kind model.ResourceKind, name string, parents []string, properties any, dependsOn ...string) (model.ResourceSpec, error) {
	if err := naming.Check(kind, name); err != nil {
		return model.ResourceSpec{}, err
	}
	segments := append(append([]string{}, parents...), name)
	return model.ResourceSpec{
		ID:         id,
		Kind:       kind,
		Name:       name,
		ResourceID: c.ResourceID(kind, segments...),
		DependsOn:  dependsOn,
		Properties: properties,
	}, nil
}

func (c *Context) tagPtrs() map[string]*string {
	out := make(map[string]*string, len(c.Config.Tags))
	for k, v := range c.Config.Tags {
		out[k] = to.Ptr(v)
	}
	return out
}

func (c *Context) private() bool {
	return PrivateNetworking(&c.Config)
}

func identitySpecs(c *Context) ([]model.ResourceSpec, error) {
	props := &armmsi.Identity{
		Location: to.Ptr(c.Config.Location),
		Tags:     c.tagPtrs(),
	}
	return []model.ResourceSpec{c.spec(IDIdentity, model.KindManagedIdentity, props)}, nil
}

func keyVaultSpecs(c *Context) ([]model.ResourceSpec, error) {
	tenant := c.Config.TenantID
	if tenant == "" {
		tenant = "[subscription().tenantId]"
	}
	defaultAction := armkeyvault.NetworkRuleActionAllow
	if c.private() {
		defaultAction = armkeyvault.NetworkRuleActionDeny
	}
	props := &armkeyvault.VaultCreateOrUpdateParameters{
		Location: to.Ptr(c.Config.Location),
		Tags:     c.tagPtrs(),
		Properties: &armkeyvault.VaultProperties{
			TenantID: to.Ptr(tenant),
			SKU: &armkeyvault.SKU{
				Family: to.Ptr(armkeyvault.SKUFamilyA),
				Name:   to.Ptr(armkeyvault.SKUNameStandard),
			},
			CreateMode:                to.Ptr(armkeyvault.CreateModeDefault),
			EnableRbacAuthorization:   to.Ptr(true),
			EnableSoftDelete:          to.Ptr(true),
			SoftDeleteRetentionInDays: to.Ptr[int32](7),
			PublicNetworkAccess:       to.Ptr(PublicNetworkAccess(&c.Config)),
			NetworkACLs: &armkeyvault.NetworkRuleSet{
				Bypass:        to.Ptr(armkeyvault.NetworkRuleBypassOptionsAzureServices),
				DefaultAction: to.Ptr(defaultAction),
			},
		},
	}
	// ARM rejects an explicit false once purge protection was enabled
	if c.Config.EnablePurgeProtection {
		props.Properties.EnablePurgeProtection = to.Ptr(true)
	}

	spec := c.spec(IDKeyVault, model.KindKeyVault, props)
	spec.SKU = string(armkeyvault.SKUNameStandard)
	spec.PublicNetworkAccess = PublicNetworkAccess(&c.Config)
	return []model.ResourceSpec{spec}, nil
}

func storageSpecs(c *Context) ([]model.ResourceSpec, error) {
	tier := Tiers(&c.Config)
	access := armstorage.PublicNetworkAccessEnabled
	defaultAction := armstorage.DefaultActionAllow
	if c.private() {
		access = armstorage.PublicNetworkAccessDisabled
		defaultAction = armstorage.DefaultActionDeny
	}

	props := &armstorage.AccountCreateParameters{
		Kind:     to.Ptr(armstorage.KindStorageV2),
		Location: to.Ptr(c.Config.Location),
		Tags:     c.tagPtrs(),
		SKU:      &armstorage.SKU{Name: to.Ptr(armstorage.SKUName(tier.StorageSKU))},
		Properties: &armstorage.AccountPropertiesCreateParameters{
			AccessTier:            to.Ptr(armstorage.AccessTierHot),
			AllowBlobPublicAccess: to.Ptr(false),
			AllowSharedKeyAccess:  to.Ptr(false),
			MinimumTLSVersion:     to.Ptr(armstorage.MinimumTLSVersionTLS12),
			PublicNetworkAccess:   to.Ptr(access),
			NetworkRuleSet: &armstorage.NetworkRuleSet{
				Bypass:        to.Ptr(armstorage.BypassAzureServices),
				DefaultAction: to.Ptr(defaultAction),
			},
		},
	}
	account := c.spec(IDStorage, model.KindStorageAccount, props)
	account.SKU = tier.StorageSKU
	account.PublicNetworkAccess = PublicNetworkAccess(&c.Config)
	if Redundant(&c.Config) {
		account.SecondaryLocation = c.Secondary
	}

	specs := []model.ResourceSpec{account}
	containers := []struct{ id, name string }{
		{IDProductImages, ProductImagesContainerName},
		{IDGeneratedImages, GeneratedImagesContainerName},
	}
	for _, bc := range containers {
		body := &armstorage.BlobContainer{
			ContainerProperties: &armstorage.ContainerProperties{
				PublicAccess: to.Ptr(armstorage.PublicAccessNone),
			},
		}
		spec, err := c.child(bc.id, model.KindBlobContainer, bc.name,
			[]string{account.Name, "default"}, body, IDStorage)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func searchSpecs(c *Context) ([]model.ResourceSpec, error) {
	tier := Tiers(&c.Config)
	access := armsearch.PublicNetworkAccessEnabled
	if c.private() {
		access = armsearch.PublicNetworkAccessDisabled
	}
	props := &armsearch.Service{
		Location: to.Ptr(c.Config.Location),
		Tags:     c.tagPtrs(),
		SKU:      &armsearch.SKU{Name: to.Ptr(armsearch.SKUName(tier.SearchSKU))},
		Identity: &armsearch.Identity{Type: to.Ptr(armsearch.IdentityTypeSystemAssigned)},
		Properties: &armsearch.ServiceProperties{
			ReplicaCount:        to.Ptr(int32(tier.SearchReplicas)),
			PartitionCount:      to.Ptr[int32](1),
			HostingMode:         to.Ptr(armsearch.HostingModeDefault),
			PublicNetworkAccess: to.Ptr(access),
			SemanticSearch:      to.Ptr(armsearch.SearchSemanticSearchFree),
		},
	}
	spec := c.spec(IDSearch, model.KindSearchService, props)
	spec.SKU = tier.SearchSKU
	spec.Capacity = tier.SearchReplicas
	spec.PublicNetworkAccess = PublicNetworkAccess(&c.Config)
	return []model.ResourceSpec{spec}, nil
}

func cosmosSpecs(c *Context) ([]model.ResourceSpec, error) {
	redundant := Redundant(&c.Config)
	serverless := CosmosServerless(&c.Config)

	access := armcosmos.PublicNetworkAccessEnabled
	if c.private() {
		access = armcosmos.PublicNetworkAccessDisabled
	}

	locations := []*armcosmos.Location{{
		LocationName:     to.Ptr(c.Config.Location),
		FailoverPriority: to.Ptr[int32](0),
		IsZoneRedundant:  to.Ptr(redundant),
	}}
	if redundant {
		locations = append(locations, &armcosmos.Location{
			LocationName:     to.Ptr(c.Secondary),
			FailoverPriority: to.Ptr[int32](1),
			IsZoneRedundant:  to.Ptr(false),
		})
	}

	accountProps := &armcosmos.DatabaseAccountCreateUpdateProperties{
		DatabaseAccountOfferType: to.Ptr("Standard"),
		Locations:                locations,
		ConsistencyPolicy: &armcosmos.ConsistencyPolicy{
			DefaultConsistencyLevel: to.Ptr(armcosmos.DefaultConsistencyLevelSession),
		},
		EnableAutomaticFailover: to.Ptr(redundant),
		DisableLocalAuth:        to.Ptr(true),
		PublicNetworkAccess:     to.Ptr(access),
		MinimalTLSVersion:       to.Ptr(armcosmos.MinimalTLSVersionTls12),
	}
	if serverless {
		accountProps.Capabilities = []*armcosmos.Capability{{Name: to.Ptr("EnableServerless")}}
	}

	account := c.spec(IDCosmos, model.KindCosmosAccount, &armcosmos.DatabaseAccountCreateUpdateParameters{
		Kind:       to.Ptr(armcosmos.DatabaseAccountKindGlobalDocumentDB),
		Location:   to.Ptr(c.Config.Location),
		Tags:       c.tagPtrs(),
		Properties: accountProps,
	})
	account.PublicNetworkAccess = PublicNetworkAccess(&c.Config)
	if redundant {
		account.SecondaryLocation = c.Secondary
	}
	if serverless {
		account.SKU = model.CosmosServerless
	} else {
		account.SKU = model.CosmosProvisioned
	}

	dbProps := &armcosmos.SQLDatabaseCreateUpdateProperties{
		Resource: &armcosmos.SQLDatabaseResource{ID: to.Ptr(CosmosDatabaseName)},
	}
	if !serverless {
		dbProps.Options = &armcosmos.CreateUpdateOptions{
			AutoscaleSettings: &armcosmos.AutoscaleSettings{MaxThroughput: to.Ptr[int32](1000)},
		}
	}
	database, err := c.child(IDCosmosDatabase, model.KindCosmosDatabase, CosmosDatabaseName,
		[]string{account.Name}, &armcosmos.SQLDatabaseCreateUpdateParameters{Properties: dbProps}, IDCosmos)
	if err != nil {
		return nil, err
	}

	specs := []model.ResourceSpec{account, database}
	containers := []struct{ id, name, partitionKey string }{
		{IDCosmosConversations, CosmosConversationsName, "/userId"},
		{IDCosmosProducts, CosmosProductsName, "/category"},
	}
	for _, cc := range containers {
		body := &armcosmos.SQLContainerCreateUpdateParameters{
			Properties: &armcosmos.SQLContainerCreateUpdateProperties{
				Resource: &armcosmos.SQLContainerResource{
					ID: to.Ptr(cc.name),
					PartitionKey: &armcosmos.ContainerPartitionKey{
						Paths: []*string{to.Ptr(cc.partitionKey)},
						Kind:  to.Ptr(armcosmos.PartitionKindHash),
					},
				},
			},
		}
		spec, err := c.child(cc.id, model.KindCosmosContainer, cc.name,
			[]string{account.Name, CosmosDatabaseName}, body, IDCosmosDatabase)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func registrySpecs(c *Context) ([]model.ResourceSpec, error) {
	tier := Tiers(&c.Config)
	props := &armcontainerregistry.Registry{
		Location: to.Ptr(c.Config.Location),
		Tags:     c.tagPtrs(),
		SKU:      &armcontainerregistry.SKU{Name: to.Ptr(armcontainerregistry.SKUName(tier.RegistrySKU))},
		Properties: &armcontainerregistry.RegistryProperties{
			AdminUserEnabled:    to.Ptr(false),
			PublicNetworkAccess: to.Ptr(armcontainerregistry.PublicNetworkAccessEnabled),
		},
	}
	spec := c.spec(IDContainerRegistry, model.KindContainerRegistry, props)
	spec.SKU = tier.RegistrySKU
	return []model.ResourceSpec{spec}, nil
}

// RegistryHost is the login server of the container registry
func (c *Context) RegistryHost() string {
	return fmt.Sprintf("%s.%s", c.Names[model.KindContainerRegistry], c.Cloud.Registry)
}

// identityPrincipalExpr resolves the user-assigned identity's principal id at deploy time
func (c *Context) identityPrincipalExpr() string {
	return fmt.Sprintf("[reference('%s', '%s').principalId]",
		c.ResourceID(model.KindManagedIdentity, c.Names[model.KindManagedIdentity]),
		model.KindManagedIdentity.Info().APIVersion)
}

func (c *Context) identityClientExpr() string {
	return fmt.Sprintf("[reference('%s', '%s').clientId]",
		c.ResourceID(model.KindManagedIdentity, c.Names[model.KindManagedIdentity]),
		model.KindManagedIdentity.Info().APIVersion)
}

// subnetID returns the id of a subnet of the deployment's virtual network
func (c *Context) subnetID(subnet string) string {
	return c.ResourceID(model.KindVirtualNetwork, c.Names[model.KindVirtualNetwork]) + "/subnets/" + subnet
}

func hostingSpecs(c *Context) ([]model.ResourceSpec, error) {
	tier := Tiers(&c.Config)
	private := c.private()
	identityID := c.ResourceID(model.KindManagedIdentity, c.Names[model.KindManagedIdentity])

	plan := c.spec(IDAppServicePlan, model.KindAppServicePlan, &armappservice.Plan{
		Kind:     to.Ptr("linux"),
		Location: to.Ptr(c.Config.Location),
		Tags:     c.tagPtrs(),
		SKU: &armappservice.SKUDescription{
			Name:     to.Ptr(tier.PlanSKU),
			Capacity: to.Ptr(int32(tier.PlanCapacity)),
		},
		Properties: &armappservice.PlanProperties{Reserved: to.Ptr(true)},
	})
	plan.SKU = tier.PlanSKU
	plan.Capacity = tier.PlanCapacity

	siteConfig := &armappservice.SiteConfig{
		LinuxFxVersion:             to.Ptr(fmt.Sprintf("DOCKER|%s/%s:%s", c.RegistryHost(), FrontendImage, c.Config.ImageTag)),
		AlwaysOn:                   to.Ptr(true),
		AcrUseManagedIdentityCreds: to.Ptr(true),
		AcrUserManagedIdentityID:   to.Ptr(c.identityClientExpr()),
		VnetRouteAllEnabled:        to.Ptr(private),
		AppSettings: []*armappservice.NameValuePair{
			{Name: to.Ptr("WEBSITES_PORT"), Value: to.Ptr(fmt.Sprint(FrontendPort))},
			{Name: to.Ptr("AZURE_CLIENT_ID"), Value: to.Ptr(c.identityClientExpr())},
			{Name: to.Ptr("BACKEND_URL"), Value: to.Ptr(c.backendURL())},
		},
	}
	siteProps := &armappservice.SiteProperties{
		ServerFarmID: to.Ptr(plan.ResourceID),
		HTTPSOnly:    to.Ptr(true),
		SiteConfig:   siteConfig,
	}
	webDeps := []string{IDAppServicePlan, IDIdentity, IDContainerRegistry}
	if private {
		siteProps.VirtualNetworkSubnetID = to.Ptr(c.subnetID(SubnetWeb))
		webDeps = append(webDeps, IDVirtualNetwork)
	}
	web := c.spec(IDWebApp, model.KindWebApp, &armappservice.Site{
		Kind:     to.Ptr("app,linux,container"),
		Location: to.Ptr(c.Config.Location),
		Tags:     c.tagPtrs(),
		Identity: &armappservice.ManagedServiceIdentity{
			Type:                   to.Ptr(armappservice.ManagedServiceIdentityTypeUserAssigned),
			UserAssignedIdentities: map[string]*armappservice.UserAssignedIdentity{identityID: {}},
		},
		Properties: siteProps,
	}, webDeps...)

	backend := c.spec(IDBackend, model.KindContainerInstance, c.containerGroup(tier, identityID),
		IDIdentity, IDContainerRegistry)
	if private {
		backend.DependsOn = append(backend.DependsOn, IDVirtualNetwork)
	}

	return []model.ResourceSpec{plan, web, backend}, nil
}

// backendURL is the address the frontend calls the API on
func (c *Context) backendURL() string {
	if fqdn := c.BackendFQDN(); fqdn != "" {
		return fmt.Sprintf("http://%s:%d", fqdn, BackendPort)
	}
	return fmt.Sprintf("http://%s:%d", c.Names[model.KindContainerInstance], BackendPort)
}

// BackendFQDN is the public DNS name of the container instance. It is empty
// when the instance sits in a private subnet or the cloud has no public suffix.
func (c *Context) BackendFQDN() string {
	if c.private() || c.Cloud.Containers == "" {
		return ""
	}
	return fmt.Sprintf("%s.%s.%s", c.Names[model.KindContainerInstance], c.Config.Location, c.Cloud.Containers)
}

func (c *Context) containerGroup(tier Tier, identityID string) map[string]any {
	env := []map[string]any{
		{"name": "AZURE_CLIENT_ID", "value": c.identityClientExpr()},
		{"name": "AZURE_COSMOSDB_DATABASE", "value": CosmosDatabaseName},
		{"name": "AZURE_BLOB_PRODUCT_IMAGES_CONTAINER", "value": ProductImagesContainerName},
	}
	container := map[string]any{
		"name": "backend",
		"properties": map[string]any{
			"image":                fmt.Sprintf("%s/%s:%s", c.RegistryHost(), BackendImage, c.Config.ImageTag),
			"ports":                []map[string]any{{"port": BackendPort, "protocol": "TCP"}},
			"environmentVariables": env,
			"resources": map[string]any{
				"requests": map[string]any{"cpu": tier.ContainerCPU, "memoryInGB": tier.ContainerMemory},
			},
		},
	}

	ip := map[string]any{
		"type":  "Public",
		"ports": []map[string]any{{"port": BackendPort, "protocol": "TCP"}},
	}
	props := map[string]any{
		"osType":        "Linux",
		"sku":           "Standard",
		"restartPolicy": "Always",
		"containers":    []map[string]any{container},
		"imageRegistryCredentials": []map[string]any{
			{"server": c.RegistryHost(), "identity": identityID},
		},
		"ipAddress": ip,
	}
	if c.private() {
		ip["type"] = "Private"
		props["subnetIds"] = []map[string]any{{"id": c.subnetID(SubnetBackend)}}
	} else {
		ip["dnsNameLabel"] = c.Names[model.KindContainerInstance]
	}

	return map[string]any{
		"location": c.Config.Location,
		"tags":     c.Config.Tags,
		"identity": map[string]any{
			"type":                   "UserAssigned",
			"userAssignedIdentities": map[string]any{identityID: map[string]any{}},
		},
		"properties": props,
	}
}

func aiSpecs(c *Context) ([]model.ResourceSpec, error) {
	cfg := &c.Config
	account := c.spec(IDAIServices, model.KindAIServices, &armcognitiveservices.Account{
		Kind:     to.Ptr("AIServices"),
		Location: to.Ptr(cfg.AIServiceLocation),
		Tags:     c.tagPtrs(),
		SKU:      &armcognitiveservices.SKU{Name: to.Ptr("S0")},
		Identity: &armcognitiveservices.Identity{
			Type: to.Ptr(armcognitiveservices.ResourceIdentityTypeSystemAssigned),
		},
		Properties: &armcognitiveservices.AccountProperties{
			CustomSubDomainName: to.Ptr(c.Names[model.KindAIServices]),
			PublicNetworkAccess: to.Ptr(cognitiveAccess(cfg)),
			DisableLocalAuth:    to.Ptr(true),
		},
	})
	account.Location = cfg.AIServiceLocation
	account.SKU = "S0"
	account.PublicNetworkAccess = PublicNetworkAccess(cfg)

	projectName := c.Names[model.KindAIProject]
	project, err := c.child(IDAIProject, model.KindAIProject, projectName, []string{account.Name}, map[string]any{
		"location": cfg.AIServiceLocation,
		"identity": map[string]any{"type": "SystemAssigned"},
		"properties": map[string]any{
			"displayName": projectName,
			"description": "Content generation project",
		},
	}, IDAIServices)
	if err != nil {
		return nil, err
	}
	project.Location = cfg.AIServiceLocation

	type modelDeployment struct {
		id, name, version, sku string
		capacity               int
	}
	deployments := []modelDeployment{
		{IDGPTDeployment, cfg.GPTModelName, cfg.GPTModelVersion, cfg.DeploymentType, cfg.GPTDeploymentCapacity},
		{IDEmbeddingDeployment, cfg.EmbeddingModel, cfg.EmbeddingModelVersion, cfg.DeploymentType, cfg.EmbeddingCapacity},
	}
	if cfg.ImageModelEnabled() {
		deployments = append(deployments, modelDeployment{IDImageDeployment, cfg.ImageModelName, cfg.ImageModelVersion, "GlobalStandard", cfg.ImageModelCapacity})
	}

	specs := []model.ResourceSpec{account, project}
	// deployments on one account are serialized; ARM rejects concurrent writes
	previous := IDAIServices
	for _, d := range deployments {
		body := &armcognitiveservices.Deployment{
			SKU: &armcognitiveservices.SKU{
				Name:     to.Ptr(d.sku),
				Capacity: to.Ptr(int32(d.capacity)),
			},
			Properties: &armcognitiveservices.DeploymentProperties{
				Model: &armcognitiveservices.DeploymentModel{
					Format:  to.Ptr("OpenAI"),
					Name:    to.Ptr(d.name),
					Version: to.Ptr(d.version),
				},
			},
		}
		spec, err := c.child(d.id, model.KindAIModelDeployment, d.name, []string{account.Name}, body, IDAIServices, previous)
		if err != nil {
			return nil, err
		}
		spec.SKU = d.sku
		spec.Capacity = d.capacity
		specs = append(specs, spec)
		previous = d.id
	}
	for i := range specs[2:] {
		specs[2+i].DependsOn = dedupe(specs[2+i].DependsOn)
	}
	return specs, nil
}

func cognitiveAccess(cfg *model.DeploymentConfig) armcognitiveservices.PublicNetworkAccess {
	if PrivateNetworking(cfg) {
		return armcognitiveservices.PublicNetworkAccessDisabled
	}
	return armcognitiveservices.PublicNetworkAccessEnabled
}

func workspaceSpec(c *Context) model.ResourceSpec {
	tier := Tiers(&c.Config)
	props := map[string]any{
		"sku":             map[string]any{"name": "PerGB2018"},
		"retentionInDays": tier.LogRetentionDays,
	}
	if Redundant(&c.Config) {
		props["replication"] = map[string]any{"enabled": true, "location": c.Secondary}
	}
	spec := c.spec(IDLogAnalytics, model.KindLogAnalytics, map[string]any{
		"location":   c.Config.Location,
		"tags":       c.Config.Tags,
		"properties": props,
	})
	spec.SKU = "PerGB2018"
	if Redundant(&c.Config) {
		spec.SecondaryLocation = c.Secondary
	}
	return spec
}

func insightsSpec(c *Context, workspaceID string) model.ResourceSpec {
	return c.spec(IDAppInsights, model.KindAppInsights, map[string]any{
		"kind":     "web",
		"location": c.Config.Location,
		"tags":     c.Config.Tags,
		"properties": map[string]any{
			"Application_Type":    "web",
			"WorkspaceResourceId": workspaceID,
			"DisableLocalAuth":    true,
		},
	})
}

func telemetrySpec(c *Context) model.ResourceSpec {
	props := &armresources.Deployment{
		Properties: &armresources.DeploymentProperties{
			Mode: to.Ptr(armresources.DeploymentModeIncremental),
			Template: map[string]any{
				"$schema":        "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#",
				"contentVersion": "1.0.0.0",
				"resources":      []any{},
				"outputs": map[string]any{
					"telemetry": map[string]any{"type": "String", "value": "For more information, see https://aka.ms/avm/TelemetryInfo"},
				},
			},
		},
	}
	spec := c.spec(IDTelemetry, model.KindTelemetry, props)
	spec.Location = ""
	return spec
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
