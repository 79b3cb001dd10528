package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/sourceplane/litetopo/internal/azure"
	"github.com/sourceplane/litetopo/internal/model"
	"github.com/sourceplane/litetopo/internal/render"
	"github.com/sourceplane/litetopo/internal/runner"
	"github.com/spf13/cobra"
)

var (
	runPlanFile string
	runExecute  bool
	runParallel int
	runOnly     []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply a resolved plan",
	Long:  "Apply the resources and role assignments of a plan file wave by wave, similar to an apply phase.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan()
	},
}

func registerRunCommand(root *cobra.Command) {
	root.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runPlanFile, "plan", "p", "topology.json", "Path to plan file (json or yaml)")
	runCmd.Flags().BoolVarP(&runExecute, "execute", "x", false, "Deploy to Azure (default is dry-run)")
	runCmd.Flags().IntVar(&runParallel, "parallel", 4, "Nodes applied concurrently within a wave")
	runCmd.Flags().StringSliceVar(&runOnly, "only", nil, "Apply only these nodes and their dependencies")
}

func runPlan() error {
	plan, err := render.LoadPlan(runPlanFile)
	if err != nil {
		return err
	}
	if len(plan.Resources) == 0 {
		return fmt.Errorf("plan contains no resources")
	}
	if len(runOnly) > 0 {
		plan, err = runner.Select(plan, runOnly)
		if err != nil {
			return fmt.Errorf("failed to select nodes: %w", err)
		}
		fmt.Printf("□ Applying %d of the plan's nodes\n", len(plan.Resources)+len(plan.RoleAssignments))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var provisioner runner.Provisioner
	if runExecute {
		provisioner, err = armProvisioner(plan)
		if err != nil {
			return err
		}
	} else {
		fmt.Println("□ Dry-run mode enabled. Use --execute to deploy.")
		provisioner = &runner.DryRunProvisioner{}
	}

	r := runner.NewRunner(provisioner, os.Stdout, runParallel)
	if err := r.Run(ctx, plan); err != nil {
		return err
	}

	if runExecute {
		fmt.Println("✓ Run complete")
	} else {
		fmt.Println("✓ Dry-run complete")
	}
	return nil
}

func armProvisioner(plan *model.Plan) (*runner.ARMProvisioner, error) {
	cloudName := plan.Spec.Cloud
	if cloudName == "" {
		cloudName = model.CloudPublic
	}
	c, err := azure.LookupCloud(cloudName)
	if err != nil {
		return nil, err
	}

	clientOptions := azcore.ClientOptions{Cloud: c.Configuration}
	credential, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		ClientOptions: clientOptions,
		TenantID:      os.Getenv("AZURE_TENANT_ID"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	logger.Debug("deploying with default credential", "cloud", c.Name)
	return runner.NewARMProvisioner(credential, &arm.ClientOptions{ClientOptions: clientOptions}), nil
}
