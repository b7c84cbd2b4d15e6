package controller

import (
	"context"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// Restart restarts every container of the current deployment, matching
// restart_application.
func (c *Controller) Restart(ctx context.Context) *smerrors.SmartMonitoringError {
	if err := c.requireAdapter(); err != nil {
		return err
	}
	if err := c.checkPreconditions(ctx, "restart skipped"); err != nil {
		return err
	}
	defer c.store.ReleaseLock()

	c.logger.Info("restarting smartmonitoring deployment")
	stack, err := c.store.LoadInstalledStack()
	if err != nil {
		return err
	}

	if err := c.adapter.RestartAll(ctx, stack.Manifest.Containers); err != nil {
		return err
	}

	c.logger.Info("all containers restarted successfully")
	return nil
}
