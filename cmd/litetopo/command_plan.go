package main

import (
	"fmt"
	"strings"

	"github.com/sourceplane/litetopo/internal/render"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Resolve the topology and write the plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return generatePlan()
	},
}

func registerPlanCommand(root *cobra.Command) {
	root.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&outputFile, "output", "o", "topology.json", "Output plan file path (.json or .yaml)")
	planCmd.Flags().StringVarP(&viewPlan, "view", "v", "", "View plan (dag/edges/outputs/resource=ID)")
}

func generatePlan() error {
	metadata, topo, err := resolveTopology()
	if err != nil {
		return err
	}

	fmt.Println("□ Rendering plan...")
	renderer := render.NewRenderer()
	plan := renderer.RenderPlan(metadata, topo)

	validator, err := loadValidator()
	if err != nil {
		return err
	}
	if err := validator.ValidatePlan(plan); err != nil {
		return fmt.Errorf("rendered plan failed schema validation: %w", err)
	}

	if debugMode {
		fmt.Println("\n" + renderer.DebugDump(plan))
	}

	if err := renderer.WritePlan(plan, outputFile); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	fmt.Printf("✓ Plan generated with %d resources and %d role assignments in %d waves\n",
		len(plan.Resources), len(plan.RoleAssignments), len(plan.Spec.Waves))
	fmt.Printf("✓ Saved to: %s\n", outputFile)

	if viewPlan != "" {
		viewer := render.NewPlanViewer(plan)
		var output string

		switch {
		case viewPlan == "edges":
			output = viewer.ViewEdges()
		case viewPlan == "outputs":
			output = viewer.ViewOutputs()
		case strings.HasPrefix(viewPlan, "resource="):
			output = viewer.ViewResource(strings.TrimPrefix(viewPlan, "resource="))
		default:
			output = viewer.ViewDAG()
		}

		fmt.Println("\n" + output)
	}

	return nil
}
