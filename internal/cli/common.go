package cli

import (
	"context"
	"os"

	"github.com/noahnc/smartmonitoring-cli/internal/controller"
	"github.com/noahnc/smartmonitoring-cli/internal/runtime"
	"github.com/noahnc/smartmonitoring-cli/internal/ui"
	"github.com/noahnc/smartmonitoring-cli/internal/util"
	"github.com/noahnc/smartmonitoring-cli/internal/version"
)

// setupLogging wires the util logger according to a command's --verbose
// and --silent flags, matching MainLogic.setup_logging: silent mode
// writes everything to the log file instead of the console and puts the
// ui package in quiet mode; verbose puts it in verbose mode, which expands
// error causes.
func setupLogging(verbose, silent bool) error {
	verbosity := ui.VerbosityNormal
	if silent {
		verbosity = ui.VerbosityQuiet
	} else if verbose {
		verbosity = ui.VerbosityVerbose
	}
	ui.Configure(ui.Config{Verbosity: verbosity})
	return util.Configure(verbose, silent, logFilePath())
}

// newController builds a Controller with a live runtime adapter, for
// commands that mutate the deployment (deploy, undeploy, restart, update,
// apply-config). ctx bounds the Docker connection attempt.
func newController(ctx context.Context) (*controller.Controller, error) {
	logger := util.Slog()

	adapter, err := runtime.Connect(ctx, logger)
	if err != nil {
		return nil, err
	}

	paths := controller.Paths{ConfigFile: configFilePath(), VarDir: varDir}
	return controller.New(paths, version.Version, adapter, logger), nil
}

// newValidateOnlyController builds a Controller with no runtime adapter,
// for validate-config and status (which degrades gracefully without one).
func newValidateOnlyController() *controller.Controller {
	paths := controller.Paths{ConfigFile: configFilePath(), VarDir: varDir}
	return controller.New(paths, version.Version, nil, util.Slog())
}

// exitWithError prints err and exits with the given code, matching
// cli.py's exit_with_error.
func exitWithError(code int, err error) {
	util.Error("exiting with error code %d: %v", code, err)
	ui.PrintError(err)
	os.Exit(code)
}

func logStart(message string) {
	util.Info(message)
}

func logFinish() {
	util.Info("command finished")
}
