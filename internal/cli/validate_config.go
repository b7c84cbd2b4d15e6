package cli

import (
	"github.com/spf13/cobra"

	"github.com/noahnc/smartmonitoring-cli/internal/ui"
)

var validateConfigVerbose bool

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validates the local config for errors in the syntax",
	RunE:  runValidateConfig,
}

func init() {
	validateConfigCmd.Flags().BoolVarP(&validateConfigVerbose, "verbose", "v", false, "prints more information")
}

func runValidateConfig(cmd *cobra.Command, args []string) error {
	if validateConfigVerbose {
		if err := setupLogging(true, false); err != nil {
			return err
		}
		defer logFinish()
		logStart("validating config and manifest")
	}

	ctrl := newValidateOnlyController()
	if _, _, err := ctrl.ValidateConfig(); err != nil {
		exitWithError(1, err)
		return err
	}

	ui.Success("local config is valid")
	return nil
}
