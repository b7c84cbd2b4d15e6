package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/noahnc/smartmonitoring-cli/internal/controller"
	"github.com/noahnc/smartmonitoring-cli/internal/ui"
)

var (
	applyConfigSilent  bool
	applyConfigVerbose bool
)

var applyConfigCmd = &cobra.Command{
	Use:   "apply-config",
	Short: "Validates the local config file and applies it if valid",
	RunE:  runApplyConfig,
}

func init() {
	applyConfigCmd.Flags().BoolVarP(&applyConfigVerbose, "verbose", "v", false, "prints more information")
	applyConfigCmd.Flags().BoolVarP(&applyConfigSilent, "silent", "s", false,
		"auto-confirm every change instead of prompting interactively")
}

func runApplyConfig(cmd *cobra.Command, args []string) error {
	if err := setupLogging(applyConfigVerbose, applyConfigSilent); err != nil {
		return err
	}
	defer logFinish()
	logStart("applying local configuration file")

	ctx := context.Background()
	ctrl, err := newController(ctx)
	if err != nil {
		exitWithError(1, err)
		return err
	}

	result, applyErr := ctrl.ApplyConfig(ctx, confirmChanges)
	if applyErr != nil {
		exitWithError(1, applyErr)
		return applyErr
	}

	if result.Identical {
		ui.Success("no changes found in local config, nothing to apply")
		return nil
	}
	if !result.Applied {
		ui.Warning("applying new configuration skipped")
	} else {
		ui.Success("new configuration successfully applied")
	}
	return nil
}

// confirmChanges prints every detected change and prompts for confirmation,
// matching print_and_confirm_changes. In --silent mode it auto-confirms
// without prompting, since there is no console attached to answer it.
func confirmChanges(changes []controller.Change) bool {
	ui.Println(ui.Bold("the following changes were detected in the local config:"))
	for _, change := range changes {
		ui.Println("  " + change.String())
	}
	if applyConfigSilent {
		return true
	}
	return ui.Confirm("apply these changes?", true)
}
