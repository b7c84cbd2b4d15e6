package controller

import (
	"context"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
	"github.com/noahnc/smartmonitoring-cli/internal/runtime"
	"github.com/noahnc/smartmonitoring-cli/internal/state"
)

// StatusReport is everything the CLI's status command renders: the
// persisted deployment status plus live per-container runtime stats, if a
// stack is installed and the runtime is reachable.
type StatusReport struct {
	Deployed   bool
	Status     *state.Status
	Containers []runtime.ContainerStats
}

// Status assembles the current deployment status for display, matching
// print_status's data gathering (rendering itself is the CLI's job).
func (c *Controller) Status(ctx context.Context) (*StatusReport, *smerrors.SmartMonitoringError) {
	if !c.store.IsDeployed() {
		return &StatusReport{Deployed: false}, nil
	}

	status, err := c.store.LoadStatus()
	if err != nil {
		return nil, err
	}

	report := &StatusReport{Deployed: true, Status: status}

	if c.adapter == nil {
		return report, nil
	}

	stack, err := c.store.LoadInstalledStack()
	if err != nil {
		return nil, err
	}
	for _, container := range stack.Manifest.Containers {
		stats, statErr := c.adapter.Stats(ctx, container.Name, container.Image)
		if statErr != nil {
			c.logger.Warn("failed to read container stats", "container", container.Name, "error", statErr)
			continue
		}
		report.Containers = append(report.Containers, *stats)
	}

	return report, nil
}
