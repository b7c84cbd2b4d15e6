package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	deploySilent  bool
	deployVerbose bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploys SmartMonitoring on this system",
	RunE:  runDeploy,
}

func init() {
	deployCmd.Flags().BoolVarP(&deploySilent, "silent", "s", false,
		"run in silent mode, writing all output to the log file")
	deployCmd.Flags().BoolVarP(&deployVerbose, "verbose", "v", false, "prints more information")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	if err := setupLogging(deployVerbose, deploySilent); err != nil {
		return err
	}
	defer logFinish()
	logStart("deploying SmartMonitoring proxy application")

	ctx := context.Background()
	ctrl, err := newController(ctx)
	if err != nil {
		exitWithError(1, err)
		return err
	}

	if deployErr := ctrl.Deploy(ctx); deployErr != nil {
		exitWithError(1, deployErr)
		return deployErr
	}
	return nil
}
