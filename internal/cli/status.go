package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noahnc/smartmonitoring-cli/internal/ui"
	"github.com/noahnc/smartmonitoring-cli/internal/version"
)

var (
	statusVerbose    bool
	statusBannerOnly bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows a status report with important metrics",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusVerbose, "verbose", "v", false, "prints more information")
	statusCmd.Flags().BoolVar(&statusBannerOnly, "banner-version", false,
		"prints only the agent's own build version, for a shell login banner")
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusBannerOnly {
		ui.Println(version.Version)
		return nil
	}

	ctrl := newValidateOnlyController()

	report, err := ctrl.Status(context.Background())
	if err != nil {
		exitWithError(1, err)
		return err
	}

	if !report.Deployed {
		ui.Println("SmartMonitoring is not deployed on this host")
		return nil
	}

	ui.Println(ui.FormatLabel("Status", report.Status.Status))
	ui.Println(ui.FormatLabel("Update channel", report.Status.UpdateChannel))
	ui.Println(ui.FormatLabel("Package version", report.Status.PackageVersion))
	ui.Println(ui.FormatLabel("Agent version", report.Status.AgentVersion))
	ui.Println(ui.FormatLabel("Last update", report.Status.LastUpdate))
	if report.Status.ErrorMsg != "" {
		ui.Println(ui.FormatLabel("Error", report.Status.ErrorMsg))
	}

	if len(report.Containers) == 0 {
		return nil
	}

	headers := []string{"Container", "Status", "CPU %", "Mem (MB)"}
	rows := make([][]string, 0, len(report.Containers))
	for _, c := range report.Containers {
		if !c.Found {
			rows = append(rows, []string{c.Name, ui.StateColor("error"), "-", "-"})
			continue
		}
		rows = append(rows, []string{
			c.Name,
			ui.StateColor(c.Status),
			fmt.Sprintf("%.1f", c.CPUPercent),
			fmt.Sprintf("%.1f", c.MemUsageMB),
		})
	}
	return ui.RenderTable(headers, rows)
}
