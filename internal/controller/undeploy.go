package controller

import (
	"context"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// Undeploy removes the currently installed stack: every managed container,
// the private network, and the persisted state files, matching
// remove_application.
func (c *Controller) Undeploy(ctx context.Context) *smerrors.SmartMonitoringError {
	if err := c.requireAdapter(); err != nil {
		return err
	}
	if err := c.checkPreconditions(ctx, "removal skipped"); err != nil {
		return err
	}
	defer c.store.ReleaseLock()

	c.logger.Info("removing smartmonitoring deployment from local docker host")
	stack, err := c.store.LoadInstalledStack()
	if err != nil {
		return err
	}

	if err := c.uninstallApplication(ctx, &stack.Manifest); err != nil {
		return err
	}
	if err := c.adapter.RemoveNetwork(ctx); err != nil {
		return err
	}
	c.pruneQuietly(ctx)
	if err := c.store.RemoveVarData(); err != nil {
		return err
	}

	c.logger.Info("smartmonitoring application successfully removed")
	return nil
}
