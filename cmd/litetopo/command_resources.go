package main

import (
	"fmt"
	"strings"

	"github.com/sourceplane/litetopo/internal/expand"
	"github.com/spf13/cobra"
)

var resourcesCmd = &cobra.Command{
	Use:     "resources [resource-id...]",
	Aliases: []string{"resource"},
	Short:   "List and analyze resolved resources",
	Long:    "List every resource of the topology. Use 'litetopo resources <id>...' for details and what the selection needs or is needed by.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listResources(args)
	},
}

func registerResourcesCommand(root *cobra.Command) {
	root.AddCommand(resourcesCmd)

	resourcesCmd.Flags().BoolVarP(&longFormat, "long", "l", false, "Show detailed information")
}

func listResources(args []string) error {
	_, topo, err := resolveTopology()
	if err != nil {
		return err
	}

	analyzer := expand.NewTopologyAnalyzer(topo)

	if len(args) > 0 {
		for _, id := range args {
			summary, err := analyzer.GetResource(id)
			if err != nil {
				return fmt.Errorf("failed to get resource: %w", err)
			}
			printResourceDetails(summary)
		}
		deps, dependents := analyzer.Transitive(args...)
		fmt.Printf("\nSelection: %s\n", strings.Join(args, ", "))
		fmt.Printf("  Needs:     %s\n", joinOrNone(deps))
		fmt.Printf("  Needed by: %s\n", joinOrNone(dependents))
		return nil
	}

	resources := analyzer.ListAll()
	if len(resources) == 0 {
		fmt.Println("No resources found")
		return nil
	}

	fmt.Println("\nResources:")
	for _, r := range resources {
		if longFormat {
			printResourceDetails(r)
		} else {
			fmt.Printf("  %s (kind: %s, name: %s, wave: %d)\n", r.ID, r.Kind, r.Name, r.Wave)
		}
	}

	if len(topo.References) > 0 {
		fmt.Println("\nReferences:")
		for _, ref := range topo.References {
			fmt.Printf("  %s (kind: %s, resource group: %s)\n", ref.ID, ref.Kind, ref.ResourceGroup)
		}
	}

	if !longFormat {
		fmt.Println("\nRun 'litetopo resources <id>' for detailed information")
	}

	return nil
}

func printResourceDetails(r *expand.ResourceSummary) {
	fmt.Printf("\n[Resource] %s\n", r.ID)
	fmt.Printf("  Kind:  %s\n", r.Kind)
	fmt.Printf("  Name:  %s\n", r.Name)
	fmt.Printf("  Rule:  %s\n", r.Rule)
	fmt.Printf("  Wave:  %d\n", r.Wave)

	if len(r.Dependencies) > 0 {
		fmt.Printf("  Dependencies: %s\n", strings.Join(r.Dependencies, ", "))
	}
	if len(r.Dependents) > 0 {
		fmt.Printf("  Dependents:   %s\n", strings.Join(r.Dependents, ", "))
	}
	if len(r.Roles) > 0 {
		fmt.Printf("  Roles (%d):\n", len(r.Roles))
		for _, role := range r.Roles {
			fmt.Printf("    %s\n", role)
		}
	}
	for _, e := range r.Edges {
		fmt.Printf("  Edge [%s] %s -> %s %s\n", e.Kind, e.From, e.To, e.Label)
	}
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
