package controller

import (
	"context"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
	"github.com/noahnc/smartmonitoring-cli/internal/manifest"
	"github.com/noahnc/smartmonitoring-cli/internal/resolver"
	"github.com/noahnc/smartmonitoring-cli/internal/state"
)

// installApplication mints the manifest's dynamic secrets, resolves and
// creates every container, then starts them all — the same order as
// install_application.
func (c *Controller) installApplication(ctx context.Context, cfg *manifest.LocalConfig, manifestDoc *manifest.UpdateManifest) *smerrors.SmartMonitoringError {
	dynamicSecrets, err := c.mint.Mint(manifestDoc.DynamicSecrets)
	if err != nil {
		return err
	}

	for _, container := range manifestDoc.Containers {
		resolved, err := resolver.Resolve(cfg, container, dynamicSecrets)
		if err != nil {
			return err
		}
		c.logger.Info("deploying container", "container", container.Name, "image", container.Image)
		if err := c.adapter.Create(ctx, container, resolved, manifestDoc.PackageVersion); err != nil {
			return err
		}
	}

	return c.adapter.StartAll(ctx, manifestDoc.Containers)
}

// uninstallApplication removes every container the manifest describes.
func (c *Controller) uninstallApplication(ctx context.Context, manifestDoc *manifest.UpdateManifest) *smerrors.SmartMonitoringError {
	c.logger.Info("decommissioning currently running containers")
	return c.adapter.RemoveAll(ctx, manifestDoc.Containers)
}

// replaceDeployment validates the new config/manifest pair, pulls images,
// tears down the currently running containers and brings up the new ones.
// On any container-create failure it rolls back to the previous config and
// manifest, matching replace_deployment/__perform_fallback exactly.
func (c *Controller) replaceDeployment(ctx context.Context, currentCfg, newCfg *manifest.LocalConfig, currentManifest, newManifest *manifest.UpdateManifest) (bool, *smerrors.SmartMonitoringError) {
	if err := c.ValidateConfigAgainstManifest(newCfg, newManifest, true); err != nil {
		return false, err
	}

	if err := c.store.SaveStatus(state.StatusDeploying, newCfg.UpdateChannel, newManifest.PackageVersion, ""); err != nil {
		return false, err
	}

	if err := c.adapter.PullAll(ctx, newManifest.Containers); err != nil {
		c.store.SaveStatus(state.StatusDeploymentError, "", "", err.Error())
		c.pruneQuietly(ctx)
		return false, err
	}

	c.logger.Info("removing old containers")
	if err := c.uninstallApplication(ctx, currentManifest); err != nil {
		return false, err
	}

	c.logger.Info("creating new containers")
	if err := c.installApplication(ctx, newCfg, newManifest); err != nil {
		if fallbackErr := c.performFallback(ctx, currentCfg, currentManifest, newManifest, err); fallbackErr != nil {
			return false, fallbackErr
		}
		return false, nil
	}

	if err := c.store.SaveInstalledStack(installedStack(newCfg, newManifest)); err != nil {
		return false, err
	}
	if err := c.store.SaveStatus(state.StatusDeployed, newCfg.UpdateChannel, newManifest.PackageVersion, ""); err != nil {
		return false, err
	}

	c.logger.Info("performing cleanup")
	c.pruneQuietly(ctx)
	c.logger.Info("containers successfully deployed")
	return true, nil
}

// performFallback removes whatever the failed install managed to create
// (the new manifest's containers, some of which may never have been
// created) and recreates the previous deployment, recording DeploymentError.
func (c *Controller) performFallback(ctx context.Context, currentCfg *manifest.LocalConfig, currentManifest, newManifest *manifest.UpdateManifest, cause *smerrors.SmartMonitoringError) *smerrors.SmartMonitoringError {
	c.logger.Error("error while deploying new containers", "error", cause)
	c.logger.Info("performing fallback to previous version")

	if err := c.uninstallApplication(ctx, newManifest); err != nil {
		return err
	}
	c.logger.Info("creating old containers")
	if err := c.installApplication(ctx, currentCfg, currentManifest); err != nil {
		return err
	}

	if err := c.store.SaveStatus(state.StatusDeploymentError, "", "", cause.Error()); err != nil {
		return err
	}
	c.logger.Info("performing cleanup")
	c.pruneQuietly(ctx)
	c.logger.Info("old containers successfully recreated")
	return nil
}

func (c *Controller) pruneQuietly(ctx context.Context) {
	if _, err := c.adapter.Prune(ctx); err != nil {
		c.logger.Warn("cleanup after deployment failed", "error", err)
	}
}

func installedStack(cfg *manifest.LocalConfig, manifestDoc *manifest.UpdateManifest) state.InstalledStack {
	return state.InstalledStack{Config: *cfg, Manifest: *manifestDoc}
}
