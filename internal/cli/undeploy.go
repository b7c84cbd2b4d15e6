package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	undeploySilent  bool
	undeployVerbose bool
)

var undeployCmd = &cobra.Command{
	Use:   "undeploy",
	Short: "Removes the SmartMonitoring deployment from this system",
	RunE:  runUndeploy,
}

func init() {
	undeployCmd.Flags().BoolVarP(&undeploySilent, "silent", "s", false,
		"run in silent mode, writing all output to the log file")
	undeployCmd.Flags().BoolVarP(&undeployVerbose, "verbose", "v", false, "prints more information")
}

func runUndeploy(cmd *cobra.Command, args []string) error {
	if err := setupLogging(undeployVerbose, undeploySilent); err != nil {
		return err
	}
	defer logFinish()
	logStart("removing SmartMonitoring proxy application")

	ctx := context.Background()
	ctrl, err := newController(ctx)
	if err != nil {
		exitWithError(1, err)
		return err
	}

	if undeployErr := ctrl.Undeploy(ctx); undeployErr != nil {
		exitWithError(1, undeployErr)
		return undeployErr
	}
	return nil
}
