package controller

import (
	"context"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// ApplyConfigResult reports what ApplyConfig found and, if a confirmation
// function rejected it, that no change was applied.
type ApplyConfigResult struct {
	Identical bool
	Changes   []Change
	Applied   bool
}

// ApplyConfig re-reads the local config file, validates it against the
// currently installed manifest, diffs it against the installed config, and
// — if confirm accepts the changes — replaces the deployment with the new
// config. confirm is only called when changes are found; pass a function
// that always returns true for the CLI's --silent mode. Matches
// validate_and_apply_config.
func (c *Controller) ApplyConfig(ctx context.Context, confirm func([]Change) bool) (*ApplyConfigResult, *smerrors.SmartMonitoringError) {
	if err := c.requireAdapter(); err != nil {
		return nil, err
	}
	if err := c.checkPreconditions(ctx, "applying new configuration skipped"); err != nil {
		return nil, err
	}
	defer c.store.ReleaseLock()

	stack, err := c.store.LoadInstalledStack()
	if err != nil {
		return nil, err
	}
	currentCfg := stack.Config
	installedManifest := stack.Manifest

	c.logger.Info("validating new local configuration")
	newCfg, err := c.loadLocalConfig()
	if err != nil {
		return nil, err
	}
	if err := c.ValidateConfigAgainstManifest(newCfg, &installedManifest, true); err != nil {
		return nil, err
	}
	c.logger.Info("config file is valid")

	changes, diffErr := diffLocalConfig(&currentCfg, newCfg)
	if diffErr != nil {
		return nil, smerrors.Internal("failed to compare local configs", diffErr)
	}
	if len(changes) == 0 {
		c.logger.Warn("no changes found in local config, nothing to apply")
		return &ApplyConfigResult{Identical: true}, nil
	}

	if confirm != nil && !confirm(changes) {
		c.logger.Info("applying new configuration skipped")
		return &ApplyConfigResult{Changes: changes, Applied: false}, nil
	}

	c.logger.Info("applying new local configuration")
	ok, replaceErr := c.replaceDeployment(ctx, newCfg, newCfg, &installedManifest, &installedManifest)
	if replaceErr != nil {
		return nil, replaceErr
	}
	return &ApplyConfigResult{Changes: changes, Applied: ok}, nil
}
