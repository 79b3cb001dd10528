package normalize

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/naming"
)

// Defaults applied to empty fields
const (
	DefaultCloud                  = model.CloudPublic
	DefaultGPTModelName           = "gpt-4.1"
	DefaultGPTModelVersion        = "2025-04-14"
	DefaultGPTDeploymentCapacity  = 150
	DefaultEmbeddingModel         = "text-embedding-3-small"
	DefaultEmbeddingModelVersion  = "1"
	DefaultEmbeddingCapacity      = 80
	DefaultImageModelName         = "gpt-image-1"
	DefaultImageModelVersion      = "2025-04-15"
	DefaultImageModelCapacity     = 1
	DefaultDeploymentType         = "GlobalStandard"
	DefaultAzureOpenAIAPIVersion  = "2025-01-01-preview"
	DefaultAzureAIAgentAPIVersion = "2025-05-01"
	DefaultImageTag               = "latest"

	maxSolutionNameLength = 15
)

// EnvNameTagKey is the tag azd uses to find resources of an environment
const EnvNameTagKey = "azd-env-name"

var (
	envNameRegex  = regexp.MustCompile(`^[a-zA-Z0-9-\(\)_\.]{1,64}$`)
	locationRegex = regexp.MustCompile(`^[a-z0-9]+$`)

	validateOnce sync.Once
	validate     *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("envname", func(fl validator.FieldLevel) bool {
			return envNameRegex.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("azlocation", func(fl validator.FieldLevel) bool {
			return locationRegex.MatchString(fl.Field().String())
		})
	})
	return validate
}

// NormalizeConfig returns a canonical copy of cfg with defaults applied and
// validates it. The input is not modified. Normalizing twice is a no-op.
func NormalizeConfig(cfg model.DeploymentConfig) (model.DeploymentConfig, error) {
	out := cfg

	out.EnvironmentName = strings.TrimSpace(out.EnvironmentName)
	out.SolutionName = strings.ToLower(strings.TrimSpace(out.SolutionName))
	if out.SolutionName == "" {
		out.SolutionName = defaultSolutionName(out.EnvironmentName)
	}
	out.SubscriptionID = strings.TrimSpace(out.SubscriptionID)
	out.ResourceGroupName = strings.TrimSpace(out.ResourceGroupName)
	out.TenantID = strings.TrimSpace(out.TenantID)
	out.PrincipalID = strings.TrimSpace(out.PrincipalID)
	if out.PrincipalID != "" && out.PrincipalType == "" {
		out.PrincipalType = model.PrincipalUser
	}

	out.Location = canonicalLocation(out.Location)
	out.SecondaryLocation = canonicalLocation(out.SecondaryLocation)
	out.AIServiceLocation = canonicalLocation(out.AIServiceLocation)
	if out.AIServiceLocation == "" {
		out.AIServiceLocation = out.Location
	}

	out.Cloud = canonicalCloud(out.Cloud)
	out.ExistingAIProjectResourceID = strings.TrimSpace(out.ExistingAIProjectResourceID)
	out.ExistingLogAnalyticsWorkspaceID = strings.TrimSpace(out.ExistingLogAnalyticsWorkspaceID)
	out.CosmosCapacityMode = strings.ToLower(strings.TrimSpace(out.CosmosCapacityMode))

	setDefault(&out.GPTModelName, DefaultGPTModelName)
	setDefault(&out.GPTModelVersion, DefaultGPTModelVersion)
	setDefaultInt(&out.GPTDeploymentCapacity, DefaultGPTDeploymentCapacity)
	setDefault(&out.EmbeddingModel, DefaultEmbeddingModel)
	setDefault(&out.EmbeddingModelVersion, DefaultEmbeddingModelVersion)
	setDefaultInt(&out.EmbeddingCapacity, DefaultEmbeddingCapacity)
	switch strings.ToLower(strings.TrimSpace(out.ImageModelName)) {
	case "":
		out.ImageModelName = DefaultImageModelName
	case "none", "disabled":
		out.ImageModelName = model.ImageModelDisabled
	}
	setDefault(&out.ImageModelVersion, DefaultImageModelVersion)
	setDefaultInt(&out.ImageModelCapacity, DefaultImageModelCapacity)
	setDefault(&out.DeploymentType, DefaultDeploymentType)
	setDefault(&out.AzureOpenAIAPIVersion, DefaultAzureOpenAIAPIVersion)
	setDefault(&out.AzureAIAgentAPIVersion, DefaultAzureAIAgentAPIVersion)
	setDefault(&out.ImageTag, DefaultImageTag)

	tags := make(map[string]string, len(cfg.Tags)+1)
	for k, v := range cfg.Tags {
		tags[k] = v
	}
	if out.EnvironmentName != "" {
		tags[EnvNameTagKey] = out.EnvironmentName
	}
	out.Tags = tags

	if err := Validate(out); err != nil {
		return model.DeploymentConfig{}, err
	}
	return out, nil
}

// Validate checks the struct rules of an already normalized config.
func Validate(cfg model.DeploymentConfig) error {
	err := configValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &model.ResolveError{
			Kind:    model.InvalidConfiguration,
			Field:   fe.Field(),
			Message: describe(fe),
		}
	}
	return &model.ResolveError{Kind: model.InvalidConfiguration, Message: "failed to validate config", Err: err}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "azlocation":
		return fmt.Sprintf("%q is not an Azure region name", fe.Value())
	case "envname":
		return fmt.Sprintf("%q is not a valid environment name", fe.Value())
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}

func defaultSolutionName(envName string) string {
	name := naming.Sanitize(envName)
	if len(name) > maxSolutionNameLength {
		name = name[:maxSolutionNameLength]
	}
	return name
}

func canonicalLocation(loc string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(loc), " ", ""))
}

func canonicalCloud(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "azurecloud", "public", "azurepubliccloud":
		return model.CloudPublic
	case "azureusgovernment", "usgovernment", "azureusgovernmentcloud":
		return model.CloudUSGovernment
	case "azurechinacloud", "china":
		return model.CloudChina
	default:
		return name
	}
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

func setDefaultInt(field *int, value int) {
	if *field == 0 {
		*field = value
	}
}
