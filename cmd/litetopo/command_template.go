package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sourceplane/litetopo/internal/render"
	"github.com/spf13/cobra"
)

var templateOutFile string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Export the topology as an ARM deployment template",
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportTemplate()
	},
}

func registerTemplateCommand(root *cobra.Command) {
	root.AddCommand(templateCmd)

	templateCmd.Flags().StringVarP(&templateOutFile, "output", "o", "azuredeploy.json", "Output template path")
}

func exportTemplate() error {
	metadata, topo, err := resolveTopology()
	if err != nil {
		return err
	}

	fmt.Println("□ Rendering template...")
	plan := render.NewRenderer().RenderPlan(metadata, topo)
	tmpl, err := render.RenderTemplate(plan)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}
	if err := os.WriteFile(templateOutFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write template to %s: %w", templateOutFile, err)
	}

	skipped := 0
	for _, ra := range plan.RoleAssignments {
		if ra.External {
			skipped++
		}
	}
	fmt.Printf("✓ Template with %d resources saved to: %s\n", len(tmpl.Resources), templateOutFile)
	if skipped > 0 {
		fmt.Printf("  %d role assignments outside the resource group were left out; apply them with 'litetopo run'\n", skipped)
	}
	return nil
}
