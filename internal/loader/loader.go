package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/drone/envsubst"
	"github.com/joho/godotenv"
	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/schema"
	"gopkg.in/yaml.v3"
)

// LoadDeployment loads a deployment YAML file and checks it against the
// deployment schema
func LoadDeployment(path string, validator *schema.Validator) (*model.Deployment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment file: %w", err)
	}

	if validator != nil {
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse deployment YAML: %w", err)
		}
		if err := validator.ValidateDeployment(raw); err != nil {
			return nil, fmt.Errorf("deployment %s failed schema validation: %w", path, err)
		}
	}

	var deployment model.Deployment
	if err := yaml.Unmarshal(data, &deployment); err != nil {
		return nil, fmt.Errorf("failed to parse deployment YAML: %w", err)
	}

	return &deployment, nil
}

// LoadEnvFile reads an azd environment file
func LoadEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return env, nil
}

type armParameters struct {
	Parameters map[string]struct {
		Value interface{} `json:"value"`
	} `json:"parameters"`
}

// LoadParameters reads an ARM parameters file. ${VAR} and ${VAR=default}
// references are substituted from env first and the process environment second.
func LoadParameters(path string, env map[string]string) (model.DeploymentConfig, error) {
	var cfg model.DeploymentConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read parameters file: %w", err)
	}

	expanded, err := envsubst.Eval(string(data), lookup(env))
	if err != nil {
		return cfg, fmt.Errorf("failed to substitute parameters: %w", err)
	}

	var params armParameters
	if err := json.Unmarshal([]byte(expanded), &params); err != nil {
		return cfg, fmt.Errorf("failed to parse parameters JSON: %w", err)
	}

	names := make([]string, 0, len(params.Parameters))
	for name := range params.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := name
		if alias, ok := parameterAliases[name]; ok {
			field = alias
		}
		if err := setField(&cfg, field, params.Parameters[name].Value); err != nil {
			return cfg, fmt.Errorf("parameter %s: %w", name, err)
		}
	}
	return cfg, nil
}

// ConfigFromEnv maps azd environment variables onto a config
func ConfigFromEnv(env map[string]string) (model.DeploymentConfig, error) {
	var cfg model.DeploymentConfig

	keys := make([]string, 0, len(envAliases))
	for key := range envAliases {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, ok := env[key]
		if !ok {
			continue
		}
		if err := setField(&cfg, envAliases[key], value); err != nil {
			return cfg, fmt.Errorf("env %s: %w", key, err)
		}
	}
	return cfg, nil
}

// Merge layers configs left to right; non-empty values of a later layer
// override earlier ones. A later false never clears an earlier true.
func Merge(layers ...model.DeploymentConfig) (model.DeploymentConfig, error) {
	var merged model.DeploymentConfig
	for i, layer := range layers {
		if err := mergo.Merge(&merged, layer, mergo.WithOverride); err != nil {
			return merged, fmt.Errorf("failed to merge config layer %d: %w", i, err)
		}
	}
	return merged, nil
}

func lookup(env map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := env[key]; ok {
			return v
		}
		return os.Getenv(key)
	}
}

// parameterAliases maps ARM parameter names that differ from the config's
// json keys
var parameterAliases = map[string]string{
	"azureAiServiceLocation":           "aiServiceLocation",
	"azureExistingAIProjectResourceId": "existingAiProjectResourceId",
	"gptModelCapacity":                 "gptDeploymentCapacity",
	"gptModelDeploymentType":           "deploymentType",
	"embeddingDeploymentCapacity":      "embeddingCapacity",
	"embeddingModelName":               "embeddingModel",
	"imageModelChoice":                 "imageModelName",
	"imageModelDeploymentCapacity":     "imageModelCapacity",
	"azureOpenaiAPIVersion":            "azureOpenAIApiVersion",
	"backendContainerImageTag":         "imageTag",
	"enableTelemetryDeployment":        "enableTelemetry",
}

// envAliases maps azd environment variables to config json keys
var envAliases = map[string]string{
	"AZURE_ENV_NAME":                        "environmentName",
	"AZURE_SOLUTION_NAME":                   "solutionName",
	"AZURE_LOCATION":                        "location",
	"AZURE_SECONDARY_LOCATION":              "secondaryLocation",
	"AZURE_SUBSCRIPTION_ID":                 "subscriptionId",
	"AZURE_RESOURCE_GROUP":                  "resourceGroupName",
	"AZURE_TENANT_ID":                       "tenantId",
	"AZURE_PRINCIPAL_ID":                    "principalId",
	"AZURE_PRINCIPAL_TYPE":                  "principalType",
	"AZURE_ENV_AI_SERVICE_LOCATION":         "aiServiceLocation",
	"AZURE_EXISTING_AI_PROJECT_RESOURCE_ID": "existingAiProjectResourceId",
	"AZURE_ENV_LOG_ANALYTICS_WORKSPACE_ID":  "existingLogAnalyticsWorkspaceId",
	"AZURE_ENV_CLOUD":                       "cloud",
	"AZURE_ENV_ENABLE_MONITORING":           "enableMonitoring",
	"AZURE_ENV_ENABLE_SCALABILITY":          "enableScalability",
	"AZURE_ENV_ENABLE_REDUNDANCY":           "enableRedundancy",
	"AZURE_ENV_ENABLE_PRIVATE_NETWORKING":   "enablePrivateNetworking",
	"AZURE_ENV_ENABLE_TELEMETRY":            "enableTelemetry",
	"AZURE_ENV_ENABLE_PURGE_PROTECTION":     "enablePurgeProtection",
	"AZURE_ENV_COSMOS_CAPACITY_MODE":        "cosmosCapacityMode",
	"AZURE_ENV_GPT_MODEL_NAME":              "gptModelName",
	"AZURE_ENV_GPT_MODEL_VERSION":           "gptModelVersion",
	"AZURE_ENV_GPT_MODEL_CAPACITY":          "gptDeploymentCapacity",
	"AZURE_ENV_EMBEDDING_MODEL_NAME":        "embeddingModel",
	"AZURE_ENV_EMBEDDING_MODEL_VERSION":     "embeddingModelVersion",
	"AZURE_ENV_EMBEDDING_MODEL_CAPACITY":    "embeddingCapacity",
	"AZURE_ENV_IMAGE_MODEL_NAME":            "imageModelName",
	"AZURE_ENV_IMAGE_MODEL_VERSION":         "imageModelVersion",
	"AZURE_ENV_IMAGE_MODEL_CAPACITY":        "imageModelCapacity",
	"AZURE_ENV_MODEL_DEPLOYMENT_TYPE":       "deploymentType",
	"AZURE_ENV_OPENAI_API_VERSION":          "azureOpenAIApiVersion",
	"AZURE_ENV_AI_AGENT_API_VERSION":        "azureAiAgentApiVersion",
	"AZURE_ENV_IMAGETAG":                    "imageTag",
}

// setField assigns value to the config field whose json key is name.
// Unknown names and empty values are ignored.
func setField(cfg *model.DeploymentConfig, name string, value interface{}) error {
	if value == nil {
		return nil
	}

	field, ok := fieldByJSONName(reflect.ValueOf(cfg).Elem(), name)
	if !ok {
		return nil
	}

	if field.Kind() == reflect.Map {
		tags, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("expected an object, got %T", value)
		}
		out := make(map[string]string, len(tags))
		for k, v := range tags {
			out[k] = fmt.Sprint(v)
		}
		field.Set(reflect.ValueOf(out))
		return nil
	}

	text := strings.TrimSpace(fmt.Sprint(value))
	if text == "" {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(text)
	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("invalid boolean %q: %w", text, err)
		}
		field.SetBool(b)
	case reflect.Int:
		// JSON numbers decode as float64
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || f != float64(int(f)) {
			return fmt.Errorf("invalid integer %q", text)
		}
		field.SetInt(int64(f))
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

func fieldByJSONName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
