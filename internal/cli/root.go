// Package cli implements the command-line interface for the smartmonitoring
// deployment agent.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/noahnc/smartmonitoring-cli/internal/ui"
	"github.com/noahnc/smartmonitoring-cli/internal/util"
	"github.com/noahnc/smartmonitoring-cli/internal/version"
)

const (
	configFileName = "smartmonitoring_config.yaml"
	logFileName    = "smartmonitoring.log"
)

// paths resolved once at startup, mirroring MainLogic's three fixed
// directories: /etc/smartmonitoring, /var/smartmonitoring and
// /var/log/smartmonitoring on Linux, a workspace-relative layout elsewhere
// so the CLI is runnable during development on a non-Linux machine.
var (
	configDir string
	varDir    string
	logDir    string
)

func init() {
	if runtime.GOOS == "linux" {
		configDir = "/etc/smartmonitoring"
		varDir = "/var/smartmonitoring"
		logDir = "/var/log/smartmonitoring"
		return
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	configDir = filepath.Join(wd, "config_files")
	varDir = filepath.Join(wd, "temp")
	logDir = filepath.Join(wd, "logs")

	// The Linux paths are expected to already exist (created by the
	// package installer); the dev-mode fallback has to make its own,
	// matching create_folder_if_not_exists in the original.
	_ = util.EnsureDir(varDir, 0o755)
	_ = util.EnsureDir(logDir, 0o755)
}

func configFilePath() string {
	return filepath.Join(configDir, configFileName)
}

func logFilePath() string {
	return filepath.Join(logDir, logFileName)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "smartmonitoring",
	Short: "Deploys and manages the SmartMonitoring proxy application",
	Long: `smartmonitoring deploys, updates and manages the SmartMonitoring proxy
stack on a single Docker host: it pulls images, mints per-deployment
secrets, composes container configuration from a remote manifest and the
host's local config file, and reconciles the running containers against
what it believes is installed.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return requireRoot()
	},
}

// requireRoot mirrors the original's check in cli.main(): on Linux, the
// agent mutates files under /etc and /var and talks to the Docker socket,
// both of which normally require root.
func requireRoot() error {
	if runtime.GOOS != "linux" {
		return nil
	}
	if os.Geteuid() != 0 {
		return fmt.Errorf("you need to have root privileges to run this command")
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err)
		return err
	}
	return nil
}

func init() {
	rootCmd.SetOut(ui.NewCobraOutWriter())
	rootCmd.SetErr(ui.NewCobraErrWriter())

	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(undeployCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(applyConfigCmd)
	rootCmd.AddCommand(validateConfigCmd)
	rootCmd.AddCommand(statusCmd)
}
