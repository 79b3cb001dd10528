package azure

// Role is a built-in role definition
type Role struct {
	Name string
	ID   string
	// DataPlane roles are Cosmos DB SQL role definitions scoped to the account.
	DataPlane bool
}

// Built-in roles granted by the topology
var (
	RoleCognitiveServicesOpenAIUser  = Role{Name: "Cognitive Services OpenAI User", ID: "5e0bd9bd-7b93-4f28-af87-19fc36ad61bd"}
	RoleCognitiveServicesUser        = Role{Name: "Cognitive Services User", ID: "a97b65f3-24c7-4388-baec-2e87135dc908"}
	RoleAzureAIUser                  = Role{Name: "Azure AI User", ID: "53ca6127-db72-4b80-b1b0-d745d6d5456d"}
	RoleSearchIndexDataReader        = Role{Name: "Search Index Data Reader", ID: "1407120a-92aa-4202-b7e9-c0e197c71c8f"}
	RoleSearchIndexDataContributor   = Role{Name: "Search Index Data Contributor", ID: "8ebe5a00-799e-43f5-93ac-243d3dce84a7"}
	RoleSearchServiceContributor     = Role{Name: "Search Service Contributor", ID: "7ca78c08-252a-4471-8644-bb5ff32d4ba0"}
	RoleStorageBlobDataContributor   = Role{Name: "Storage Blob Data Contributor", ID: "ba92f5b4-2d11-453d-a403-e96b0029c9fe"}
	RoleStorageBlobDataReader        = Role{Name: "Storage Blob Data Reader", ID: "2a2b9908-6ea1-4ae2-8e65-a410df84e7d1"}
	RoleKeyVaultSecretsUser          = Role{Name: "Key Vault Secrets User", ID: "4633458b-17de-408a-b874-0445c86b69e6"}
	RoleAcrPull                      = Role{Name: "AcrPull", ID: "7f951dba-4ed6-4b3f-9bc3-5bda0b8b0f72"}
	RoleMonitoringMetricsPublisher   = Role{Name: "Monitoring Metrics Publisher", ID: "3913510d-42f4-4e42-8a64-420c390055eb"}
	RoleCosmosBuiltInDataContributor = Role{Name: "Cosmos DB Built-in Data Contributor", ID: "00000000-0000-0000-0000-000000000002", DataPlane: true}
)
