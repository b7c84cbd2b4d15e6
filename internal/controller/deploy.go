package controller

import (
	"context"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
	"github.com/noahnc/smartmonitoring-cli/internal/state"
)

// Deploy creates the initial deployment: it is a no-op if one already
// exists, and requires internet connectivity to reach the manifest URL,
// matching deploy_application exactly.
func (c *Controller) Deploy(ctx context.Context) *smerrors.SmartMonitoringError {
	if err := c.requireAdapter(); err != nil {
		return err
	}

	if c.store.IsDeployed() {
		c.logger.Warn("smartmonitoring is already deployed, deployment skipped")
		return nil
	}
	if err := c.store.AcquireLock(); err != nil {
		return err
	}
	defer c.store.ReleaseLock()
	if !c.checkInternetConnection(ctx) {
		return smerrors.ConfigValidation("no internet connection, deployment skipped")
	}

	c.logger.Info("performing smartmonitoring deployment to local docker host")
	c.logger.Info("retrieving local configuration and update manifest")
	cfg, err := c.loadLocalConfig()
	if err != nil {
		return err
	}
	manifestDoc, err := c.fetchManifest(cfg)
	if err != nil {
		return err
	}

	if err := c.store.SaveStatus(state.StatusDeploying, cfg.UpdateChannel, manifestDoc.PackageVersion, ""); err != nil {
		return err
	}

	if err := c.ValidateConfigAgainstManifest(cfg, manifestDoc, true); err != nil {
		c.store.SaveStatus(state.StatusDeploymentError, "", "", err.Error())
		return err
	}
	if err := c.adapter.PullAll(ctx, manifestDoc.Containers); err != nil {
		c.store.SaveStatus(state.StatusDeploymentError, "", "", err.Error())
		return err
	}
	if err := c.adapter.EnsureNetwork(ctx); err != nil {
		c.store.SaveStatus(state.StatusDeploymentError, "", "", err.Error())
		return err
	}
	if err := c.installApplication(ctx, cfg, manifestDoc); err != nil {
		c.store.SaveStatus(state.StatusDeploymentError, "", "", err.Error())
		return err
	}

	if err := c.store.SaveInstalledStack(installedStack(cfg, manifestDoc)); err != nil {
		return err
	}
	if err := c.store.SaveStatus(state.StatusDeployed, cfg.UpdateChannel, manifestDoc.PackageVersion, ""); err != nil {
		return err
	}

	c.logger.Info("smartmonitoring application successfully deployed")
	return nil
}
