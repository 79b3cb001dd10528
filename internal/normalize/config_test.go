package normalize

import (
	"testing"

	"github.com/sourceplane/litetopo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() model.DeploymentConfig {
	return model.DeploymentConfig{
		EnvironmentName:   "docgen-dev",
		SubscriptionID:    "00000000-1111-2222-3333-444444444444",
		ResourceGroupName: "rg-docgen-dev",
		Location:          "eastus",
	}
}

func TestNormalizeConfigDefaults(t *testing.T) {
	cfg, err := NormalizeConfig(baseConfig())
	require.NoError(t, err)

	assert.Equal(t, "docgendev", cfg.SolutionName)
	assert.Equal(t, model.CloudPublic, cfg.Cloud)
	assert.Equal(t, "eastus", cfg.AIServiceLocation)
	assert.Equal(t, DefaultGPTModelName, cfg.GPTModelName)
	assert.Equal(t, DefaultGPTModelVersion, cfg.GPTModelVersion)
	assert.Equal(t, DefaultGPTDeploymentCapacity, cfg.GPTDeploymentCapacity)
	assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
	assert.Equal(t, DefaultEmbeddingCapacity, cfg.EmbeddingCapacity)
	assert.Equal(t, DefaultImageModelName, cfg.ImageModelName)
	assert.Equal(t, DefaultDeploymentType, cfg.DeploymentType)
	assert.Equal(t, DefaultAzureOpenAIAPIVersion, cfg.AzureOpenAIAPIVersion)
	assert.Equal(t, DefaultAzureAIAgentAPIVersion, cfg.AzureAIAgentAPIVersion)
	assert.Equal(t, DefaultImageTag, cfg.ImageTag)
	assert.Equal(t, map[string]string{EnvNameTagKey: "docgen-dev"}, cfg.Tags)
}

func TestNormalizeConfigIdempotent(t *testing.T) {
	in := baseConfig()
	in.Location = " East US "
	in.Cloud = "public"
	in.PrincipalID = "11111111-2222-3333-4444-555555555555"
	in.Tags = map[string]string{"owner": "docs"}

	once, err := NormalizeConfig(in)
	require.NoError(t, err)
	twice, err := NormalizeConfig(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, "eastus", once.Location)
	assert.Equal(t, model.PrincipalUser, once.PrincipalType)
	assert.Equal(t, "docs", once.Tags["owner"])
}

func TestNormalizeConfigDoesNotModifyInput(t *testing.T) {
	in := baseConfig()
	in.Tags = map[string]string{"owner": "docs"}

	_, err := NormalizeConfig(in)
	require.NoError(t, err)

	assert.Empty(t, in.SolutionName)
	assert.Equal(t, map[string]string{"owner": "docs"}, in.Tags)
}

func TestNormalizeConfigImageModel(t *testing.T) {
	for _, value := range []string{"none", "None", "disabled"} {
		t.Run(value, func(t *testing.T) {
			in := baseConfig()
			in.ImageModelName = value

			cfg, err := NormalizeConfig(in)
			require.NoError(t, err)
			assert.Equal(t, model.ImageModelDisabled, cfg.ImageModelName)
			assert.False(t, cfg.ImageModelEnabled())
		})
	}
}

func TestNormalizeConfigCloudAliases(t *testing.T) {
	tests := map[string]string{
		"":                  model.CloudPublic,
		"AzureCloud":        model.CloudPublic,
		"usgovernment":      model.CloudUSGovernment,
		"AzureUSGovernment": model.CloudUSGovernment,
		"china":             model.CloudChina,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Cloud = in

			out, err := NormalizeConfig(cfg)
			require.NoError(t, err)
			assert.Equal(t, want, out.Cloud)
		})
	}
}

func TestNormalizeConfigRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*model.DeploymentConfig)
		field  string
	}{
		{"missing environment", func(c *model.DeploymentConfig) {
			c.EnvironmentName = ""
			c.SolutionName = "docgen"
		}, "environmentName"},
		{"missing subscription", func(c *model.DeploymentConfig) { c.SubscriptionID = "" }, "subscriptionId"},
		{"missing location", func(c *model.DeploymentConfig) { c.Location = "" }, "location"},
		{"bad location", func(c *model.DeploymentConfig) { c.Location = "east-us!" }, "location"},
		{"solution name too short", func(c *model.DeploymentConfig) { c.SolutionName = "ab" }, "solutionName"},
		{"solution name too long", func(c *model.DeploymentConfig) { c.SolutionName = "abcdefghijklmnop" }, "solutionName"},
		{"unknown cloud", func(c *model.DeploymentConfig) { c.Cloud = "AzureMoon" }, "cloud"},
		{"unknown deployment type", func(c *model.DeploymentConfig) { c.DeploymentType = "Premium" }, "deploymentType"},
		{"negative capacity", func(c *model.DeploymentConfig) { c.GPTDeploymentCapacity = -5 }, "gptDeploymentCapacity"},
		{"unknown cosmos mode", func(c *model.DeploymentConfig) { c.CosmosCapacityMode = "burst" }, "cosmosCapacityMode"},
		{"unknown principal type", func(c *model.DeploymentConfig) {
			c.PrincipalID = "id"
			c.PrincipalType = "Robot"
		}, "principalType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.modify(&cfg)

			_, err := NormalizeConfig(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, &model.ResolveError{Kind: model.InvalidConfiguration, Field: tt.field})
		})
	}
}
