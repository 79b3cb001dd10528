package main

import "github.com/spf13/cobra"

var (
	deploymentFile  string
	parametersFile  string
	envFile         string
	schemasDir      string
	outputFile      string
	debugMode       bool
	viewPlan        string
	longFormat      bool
	enableFeatures  []string
	disableFeatures []string
)

var rootCmd = &cobra.Command{
	Use:   "litetopo",
	Short: "Topology resolver: deployment config → resource DAG",
	Long:  "litetopo resolves a content generation deployment config into a deterministic Azure resource topology, its role assignments and the application settings it exposes",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deploymentFile, "deployment", "i", "deployment.yaml", "Deployment file path")
	rootCmd.PersistentFlags().StringVar(&parametersFile, "parameters", "", "ARM parameters file (main.parameters.json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "azd environment file (.azure/<env>/.env)")
	rootCmd.PersistentFlags().StringSliceVar(&enableFeatures, "enable", nil, "Features to turn on (monitoring, scalability, redundancy, private-networking, telemetry, purge-protection)")
	rootCmd.PersistentFlags().StringSliceVar(&disableFeatures, "disable", nil, "Features to turn off, applied after every other layer")
	rootCmd.PersistentFlags().StringVar(&schemasDir, "schemas", "", "Directory of schema files to use instead of the built-in ones")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	registerPlanCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerDebugCommand(rootCmd)
	registerResourcesCommand(rootCmd)
	registerOutputsCommand(rootCmd)
	registerTemplateCommand(rootCmd)
	registerRunCommand(rootCmd)
}
