package main

import (
	"fmt"

	"github.com/sourceplane/litetopo/internal/normalize"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the deployment configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateConfig()
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)
}

func validateConfig() error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Println("✓ Configuration loaded")

	fmt.Println("□ Normalizing configuration...")
	if _, err := normalize.NormalizeConfig(cfg); err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	fmt.Println("□ Resolving topology...")
	if _, err := resolveTopologyFrom(cfg); err != nil {
		return err
	}

	fmt.Println("✓ All validation passed")
	return nil
}
