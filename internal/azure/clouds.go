package azure

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/sourceplane/litetopo/internal/model"
)

// Cloud carries the endpoint suffixes that differ between Azure clouds.
// An empty suffix means the cloud has no such public endpoint.
type Cloud struct {
	Name          string
	Configuration cloud.Configuration
	Storage       string
	Search        string
	Cosmos        string
	Cognitive     string
	OpenAI        string
	AIFoundry     string
	KeyVault      string
	KeyVaultDNS   string
	Registry      string
	WebApps       string
	Containers    string
}

var clouds = map[string]Cloud{
	model.CloudPublic: {
		Name:          model.CloudPublic,
		Configuration: cloud.AzurePublic,
		Storage:       "core.windows.net",
		Search:        "search.windows.net",
		Cosmos:        "documents.azure.com",
		Cognitive:     "cognitiveservices.azure.com",
		OpenAI:        "openai.azure.com",
		AIFoundry:     "services.ai.azure.com",
		KeyVault:      "vault.azure.net",
		KeyVaultDNS:   "vaultcore.azure.net",
		Registry:      "azurecr.io",
		WebApps:       "azurewebsites.net",
		Containers:    "azurecontainer.io",
	},
	model.CloudUSGovernment: {
		Name:          model.CloudUSGovernment,
		Configuration: cloud.AzureGovernment,
		Storage:       "core.usgovcloudapi.net",
		Search:        "search.azure.us",
		Cosmos:        "documents.azure.us",
		Cognitive:     "cognitiveservices.azure.us",
		OpenAI:        "openai.azure.us",
		KeyVault:      "vault.usgovcloudapi.net",
		KeyVaultDNS:   "vaultcore.usgovcloudapi.net",
		Registry:      "azurecr.us",
		WebApps:       "azurewebsites.us",
	},
	model.CloudChina: {
		Name:          model.CloudChina,
		Configuration: cloud.AzureChina,
		Storage:       "core.chinacloudapi.cn",
		Search:        "search.azure.cn",
		Cosmos:        "documents.azure.cn",
		Cognitive:     "cognitiveservices.azure.cn",
		OpenAI:        "openai.azure.cn",
		KeyVault:      "vault.azure.cn",
		KeyVaultDNS:   "vaultcore.azure.cn",
		Registry:      "azurecr.cn",
		WebApps:       "chinacloudsites.cn",
	},
}

// LookupCloud returns the endpoint table for a cloud name
func LookupCloud(name string) (Cloud, error) {
	c, ok := clouds[name]
	if !ok {
		return Cloud{}, model.Errorf(model.InvalidConfiguration, "cloud", "unknown cloud %q", name)
	}
	return c, nil
}

// ResourceManagerEndpoint is the ARM endpoint of the cloud
func (c Cloud) ResourceManagerEndpoint() string {
	if svc, ok := c.Configuration.Services[cloud.ResourceManager]; ok {
		return svc.Endpoint
	}
	return ""
}

// PrivateLinkZone returns the privatelink DNS zone for a service suffix
func PrivateLinkZone(suffix string) string {
	if suffix == "" {
		return ""
	}
	return fmt.Sprintf("privatelink.%s", suffix)
}
