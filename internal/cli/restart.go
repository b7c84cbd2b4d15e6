package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	restartSilent  bool
	restartVerbose bool
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restarts all containers of the current deployment",
	RunE:  runRestart,
}

func init() {
	restartCmd.Flags().BoolVarP(&restartSilent, "silent", "s", false,
		"run in silent mode, writing all output to the log file")
	restartCmd.Flags().BoolVarP(&restartVerbose, "verbose", "v", false, "prints more information")
}

func runRestart(cmd *cobra.Command, args []string) error {
	if err := setupLogging(restartVerbose, restartSilent); err != nil {
		return err
	}
	defer logFinish()
	logStart("restarting all containers of deployment")

	ctx := context.Background()
	ctrl, err := newController(ctx)
	if err != nil {
		exitWithError(1, err)
		return err
	}

	if restartErr := ctrl.Restart(ctx); restartErr != nil {
		exitWithError(1, restartErr)
		return restartErr
	}
	return nil
}
