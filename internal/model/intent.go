package model

// Deployment is the top-level document describing one accelerator deployment
type Deployment struct {
	APIVersion string           `yaml:"apiVersion" json:"apiVersion"`
	Kind       string           `yaml:"kind" json:"kind"`
	Metadata   Metadata         `yaml:"metadata" json:"metadata"`
	Spec       DeploymentConfig `yaml:"spec" json:"spec"`
}

// Metadata holds standard object metadata
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// DeploymentConfig is the single input to topology resolution.
type DeploymentConfig struct {
	SolutionName      string `yaml:"solutionName,omitempty" json:"solutionName,omitempty" validate:"required,min=3,max=15"`
	EnvironmentName   string `yaml:"environmentName,omitempty" json:"environmentName,omitempty" validate:"required,envname"`
	SubscriptionID    string `yaml:"subscriptionId,omitempty" json:"subscriptionId,omitempty" validate:"required"`
	ResourceGroupName string `yaml:"resourceGroupName,omitempty" json:"resourceGroupName,omitempty" validate:"required,max=90"`
	TenantID          string `yaml:"tenantId,omitempty" json:"tenantId,omitempty"`
	PrincipalID       string `yaml:"principalId,omitempty" json:"principalId,omitempty"`
	PrincipalType     string `yaml:"principalType,omitempty" json:"principalType,omitempty" validate:"omitempty,oneof=User ServicePrincipal Group"`

	Location          string `yaml:"location,omitempty" json:"location,omitempty" validate:"required,azlocation"`
	SecondaryLocation string `yaml:"secondaryLocation,omitempty" json:"secondaryLocation,omitempty" validate:"omitempty,azlocation"`
	AIServiceLocation string `yaml:"aiServiceLocation,omitempty" json:"aiServiceLocation,omitempty" validate:"omitempty,azlocation"`
	Cloud             string `yaml:"cloud,omitempty" json:"cloud,omitempty" validate:"oneof=AzureCloud AzureUSGovernment AzureChinaCloud"`

	ExistingAIProjectResourceID     string `yaml:"existingAiProjectResourceId,omitempty" json:"existingAiProjectResourceId,omitempty"`
	ExistingLogAnalyticsWorkspaceID string `yaml:"existingLogAnalyticsWorkspaceId,omitempty" json:"existingLogAnalyticsWorkspaceId,omitempty"`

	EnableMonitoring        bool `yaml:"enableMonitoring,omitempty" json:"enableMonitoring,omitempty"`
	EnableScalability       bool `yaml:"enableScalability,omitempty" json:"enableScalability,omitempty"`
	EnableRedundancy        bool `yaml:"enableRedundancy,omitempty" json:"enableRedundancy,omitempty"`
	EnablePrivateNetworking bool `yaml:"enablePrivateNetworking,omitempty" json:"enablePrivateNetworking,omitempty"`
	EnableTelemetry         bool `yaml:"enableTelemetry,omitempty" json:"enableTelemetry,omitempty"`
	EnablePurgeProtection   bool `yaml:"enablePurgeProtection,omitempty" json:"enablePurgeProtection,omitempty"`

	// CosmosCapacityMode is serverless or provisioned; empty picks serverless
	// unless redundancy is requested.
	CosmosCapacityMode string `yaml:"cosmosCapacityMode,omitempty" json:"cosmosCapacityMode,omitempty" validate:"omitempty,oneof=serverless provisioned"`

	GPTModelName          string `yaml:"gptModelName,omitempty" json:"gptModelName,omitempty" validate:"required"`
	GPTModelVersion       string `yaml:"gptModelVersion,omitempty" json:"gptModelVersion,omitempty"`
	GPTDeploymentCapacity int    `yaml:"gptDeploymentCapacity,omitempty" json:"gptDeploymentCapacity,omitempty" validate:"gte=1"`
	EmbeddingModel        string `yaml:"embeddingModel,omitempty" json:"embeddingModel,omitempty" validate:"required"`
	EmbeddingModelVersion string `yaml:"embeddingModelVersion,omitempty" json:"embeddingModelVersion,omitempty"`
	EmbeddingCapacity     int    `yaml:"embeddingCapacity,omitempty" json:"embeddingCapacity,omitempty" validate:"gte=1"`
	ImageModelName        string `yaml:"imageModelName,omitempty" json:"imageModelName,omitempty"`
	ImageModelVersion     string `yaml:"imageModelVersion,omitempty" json:"imageModelVersion,omitempty"`
	ImageModelCapacity    int    `yaml:"imageModelCapacity,omitempty" json:"imageModelCapacity,omitempty" validate:"gte=1"`
	DeploymentType        string `yaml:"deploymentType,omitempty" json:"deploymentType,omitempty" validate:"oneof=Standard GlobalStandard DataZoneStandard"`

	AzureOpenAIAPIVersion  string `yaml:"azureOpenAIApiVersion,omitempty" json:"azureOpenAIApiVersion,omitempty"`
	AzureAIAgentAPIVersion string `yaml:"azureAiAgentApiVersion,omitempty" json:"azureAiAgentApiVersion,omitempty"`
	ImageTag               string `yaml:"imageTag,omitempty" json:"imageTag,omitempty"`

	Tags map[string]string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// ReusesAIProject reports whether the AI project is taken from an existing deployment.
func (c *DeploymentConfig) ReusesAIProject() bool {
	return c.ExistingAIProjectResourceID != ""
}

// ImageModelEnabled is false when the image model was switched off with "none".
func (c *DeploymentConfig) ImageModelEnabled() bool {
	return c.ImageModelName != "" && c.ImageModelName != ImageModelDisabled
}

// ImageModelDisabled is the canonical value that turns the image model off.
const ImageModelDisabled = "none"

// Cloud names accepted in DeploymentConfig.Cloud
const (
	CloudPublic       = "AzureCloud"
	CloudUSGovernment = "AzureUSGovernment"
	CloudChina        = "AzureChinaCloud"
)

// Cosmos capacity modes
const (
	CosmosServerless  = "serverless"
	CosmosProvisioned = "provisioned"
)
