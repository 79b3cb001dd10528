package main

import (
	"fmt"
	"sort"

	"github.com/sourceplane/litetopo/internal/expand"
	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/normalize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show the normalized config and the decisions derived from it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return debugConfig()
	},
}

func registerDebugCommand(root *cobra.Command) {
	root.AddCommand(debugCmd)
}

func debugConfig() error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("□ Normalizing...")
	normalized, err := normalize.NormalizeConfig(cfg)
	if err != nil {
		return err
	}
	ctx, err := expand.NewContext(normalized)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Printf("\nConfig:\n%s\n", data)

	fmt.Printf("Suffix: %s\n", ctx.Suffix)
	fmt.Printf("Cloud: %s\n", ctx.Cloud.Name)
	if ctx.Secondary != "" {
		fmt.Printf("Secondary location: %s\n", ctx.Secondary)
	}
	if ctx.Project != nil {
		fmt.Printf("AI project: %s/%s (subscription %s, resource group %s)\n",
			ctx.Project.AccountName, ctx.Project.ProjectName, ctx.Project.SubscriptionID, ctx.Project.ResourceGroupName)
	}
	if ctx.Workspace != nil {
		fmt.Printf("Log Analytics workspace: %s (resource group %s)\n", ctx.Workspace.Name, ctx.Workspace.ResourceGroupName)
	}

	fmt.Println("\nPredicates:")
	for _, p := range []struct {
		name  string
		value bool
	}{
		{"localAI", expand.LocalAI(&normalized)},
		{"reusedAI", expand.ReusedAI(&normalized)},
		{"createsWorkspace", expand.CreatesWorkspace(&normalized)},
		{"reusedWorkspace", expand.ReusedWorkspace(&normalized)},
		{"monitored", expand.Monitored(&normalized)},
		{"privateNetworking", expand.PrivateNetworking(&normalized)},
		{"redundant", expand.Redundant(&normalized)},
		{"scalable", expand.Scalable(&normalized)},
		{"telemetry", expand.Telemetry(&normalized)},
		{"deployingPrincipal", expand.DeployingPrincipal(&normalized)},
		{"cosmosServerless", expand.CosmosServerless(&normalized)},
	} {
		fmt.Printf("  - %-20s %v\n", p.name, p.value)
	}

	tier := expand.Tiers(&normalized)
	fmt.Printf("\nTier: %+v\n", tier)

	fmt.Println("\nRules:")
	for _, rule := range expand.DefaultRules() {
		fmt.Printf("  - %-32s fires=%v\n", rule.Name, rule.When(&normalized))
	}

	fmt.Println("\nNames:")
	kinds := make([]model.ResourceKind, 0, len(ctx.Names))
	for kind := range ctx.Names {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		fmt.Printf("  - %-24s %s\n", kind, ctx.Names[kind])
	}

	return nil
}
