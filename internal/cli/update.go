package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	updateSilent  bool
	updateVerbose bool
	updateForce   bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Checks if a newer SmartMonitoring deployment is available and updates it if so",
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().BoolVarP(&updateSilent, "silent", "s", false,
		"run in silent mode, writing all output to the log file")
	updateCmd.Flags().BoolVarP(&updateVerbose, "verbose", "v", false, "prints more information")
	updateCmd.Flags().BoolVarP(&updateForce, "force", "f", false,
		"applies the remote manifest even if it is not newer than the installed one")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if err := setupLogging(updateVerbose, updateSilent); err != nil {
		return err
	}
	defer logFinish()
	logStart("updating SmartMonitoring application")

	ctx := context.Background()
	ctrl, err := newController(ctx)
	if err != nil {
		exitWithError(1, err)
		return err
	}

	if updateErr := ctrl.Update(ctx, updateForce); updateErr != nil {
		exitWithError(1, updateErr)
		return updateErr
	}
	return nil
}
