package main

import (
	"fmt"

	"github.com/sourceplane/litetopo/internal/planner"
	"github.com/sourceplane/litetopo/internal/render"
	"github.com/spf13/cobra"
)

var envOutFile string

var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "Print the application settings of the topology",
	Long:  "Print the environment variables the application reads, in dotenv format. Use --env-out to merge them into an azd environment file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printOutputs()
	},
}

func registerOutputsCommand(root *cobra.Command) {
	root.AddCommand(outputsCmd)

	outputsCmd.Flags().StringVar(&envOutFile, "env-out", "", "Write outputs to this dotenv file")
}

func printOutputs() error {
	_, topo, err := resolveTopology()
	if err != nil {
		return err
	}

	if envOutFile != "" {
		if err := render.WriteDotenv(topo.Outputs, envOutFile); err != nil {
			return err
		}
		fmt.Printf("✓ %d outputs written to: %s\n", len(topo.Outputs), envOutFile)
		return nil
	}

	content, err := render.RenderDotenv(topo.Outputs)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s", content)
	fmt.Printf("✓ %d outputs (%d in catalog)\n", len(topo.Outputs), len(planner.OutputKeys()))
	return nil
}
