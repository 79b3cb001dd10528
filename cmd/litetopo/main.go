package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/sourceplane/litetopo/internal/loader"
	"github.com/sourceplane/litetopo/internal/logging"
	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/planner"
	"github.com/sourceplane/litetopo/internal/schema"
)

var logger = logging.Discard()

func setupLogger() {
	logger = logging.New(logging.Config{Debug: debugMode})
	slog.SetDefault(logger)
}

// features maps --enable/--disable names onto config switches
var features = map[string]func(*model.DeploymentConfig, bool){
	"monitoring":         func(c *model.DeploymentConfig, v bool) { c.EnableMonitoring = v },
	"scalability":        func(c *model.DeploymentConfig, v bool) { c.EnableScalability = v },
	"redundancy":         func(c *model.DeploymentConfig, v bool) { c.EnableRedundancy = v },
	"private-networking": func(c *model.DeploymentConfig, v bool) { c.EnablePrivateNetworking = v },
	"telemetry":          func(c *model.DeploymentConfig, v bool) { c.EnableTelemetry = v },
	"purge-protection":   func(c *model.DeploymentConfig, v bool) { c.EnablePurgeProtection = v },
}

func featureNames() string {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func applyFeatures(cfg *model.DeploymentConfig) error {
	for _, set := range []struct {
		names []string
		value bool
	}{{enableFeatures, true}, {disableFeatures, false}} {
		for _, name := range set.names {
			apply, ok := features[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return fmt.Errorf("unknown feature %q (known: %s)", name, featureNames())
			}
			apply(cfg, set.value)
		}
	}
	return nil
}

// loadValidator returns the built-in schemas unless --schemas points
// elsewhere
func loadValidator() (*schema.Validator, error) {
	var (
		validator *schema.Validator
		err       error
	)
	if schemasDir != "" {
		logger.Debug("loading schemas from directory", "dir", schemasDir)
		validator, err = schema.NewValidatorFromDir(schemasDir)
	} else {
		validator, err = schema.NewValidator()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schemas: %w", err)
	}
	return validator, nil
}

// loadConfig layers the deployment file, the parameters file and the env
// file, in that order, then applies --enable and --disable.
func loadConfig() (model.Metadata, model.DeploymentConfig, error) {
	var (
		metadata model.Metadata
		layers   []model.DeploymentConfig
		env      map[string]string
	)

	if envFile != "" {
		fmt.Println("□ Loading environment...")
		var err error
		env, err = loader.LoadEnvFile(envFile)
		if err != nil {
			return metadata, model.DeploymentConfig{}, err
		}
	}

	if _, err := os.Stat(deploymentFile); err == nil || rootCmd.PersistentFlags().Changed("deployment") {
		fmt.Println("□ Loading deployment...")
		validator, err := loadValidator()
		if err != nil {
			return metadata, model.DeploymentConfig{}, err
		}
		deployment, err := loader.LoadDeployment(deploymentFile, validator)
		if err != nil {
			return metadata, model.DeploymentConfig{}, fmt.Errorf("failed to load deployment: %w", err)
		}
		metadata = deployment.Metadata
		layers = append(layers, deployment.Spec)
	}

	if parametersFile != "" {
		fmt.Println("□ Loading parameters...")
		params, err := loader.LoadParameters(parametersFile, env)
		if err != nil {
			return metadata, model.DeploymentConfig{}, fmt.Errorf("failed to load parameters: %w", err)
		}
		layers = append(layers, params)
	}

	if env != nil {
		fromEnv, err := loader.ConfigFromEnv(env)
		if err != nil {
			return metadata, model.DeploymentConfig{}, err
		}
		layers = append(layers, fromEnv)
	}

	if len(layers) == 0 {
		return metadata, model.DeploymentConfig{}, fmt.Errorf("no configuration given: pass --deployment, --parameters or --env-file")
	}

	cfg, err := loader.Merge(layers...)
	if err != nil {
		return metadata, cfg, err
	}
	if err := applyFeatures(&cfg); err != nil {
		return metadata, cfg, err
	}

	if metadata.Name == "" {
		metadata.Name = cfg.EnvironmentName
	}
	return metadata, cfg, nil
}

func resolveTopology() (model.Metadata, *model.Topology, error) {
	metadata, cfg, err := loadConfig()
	if err != nil {
		return metadata, nil, err
	}

	fmt.Println("□ Resolving topology...")
	topo, err := resolveTopologyFrom(cfg)
	return metadata, topo, err
}

func resolveTopologyFrom(cfg model.DeploymentConfig) (*model.Topology, error) {
	topo, err := planner.NewResolver(logger).Resolve(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve topology: %w", err)
	}
	return topo, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if kind, ok := model.KindOf(err); ok {
			logger.Error("resolution rejected", "kind", kind)
		}
		os.Exit(1)
	}
}
