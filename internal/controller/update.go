package controller

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// Update fetches the manifest for the currently configured channel and, if
// it carries a newer package_version than the installed one (or force is
// set), replaces the deployment with it. Matches update_application.
func (c *Controller) Update(ctx context.Context, force bool) *smerrors.SmartMonitoringError {
	if err := c.requireAdapter(); err != nil {
		return err
	}
	if err := c.checkPreconditions(ctx, "update skipped"); err != nil {
		return err
	}
	defer c.store.ReleaseLock()
	if !c.checkInternetConnection(ctx) {
		return smerrors.ConfigValidation("no internet connection, update skipped")
	}

	c.logger.Info("retrieving local configuration and update manifest")
	stack, err := c.store.LoadInstalledStack()
	if err != nil {
		return err
	}
	cfg := stack.Config
	currentManifest := stack.Manifest

	newManifest, err := c.fetchManifest(&cfg)
	if err != nil {
		return err
	}

	newer, cmpErr := isNewerVersion(currentManifest.PackageVersion, newManifest.PackageVersion)
	if cmpErr != nil {
		return smerrors.ManifestValidation(cmpErr.Error())
	}

	if !force && !newer {
		c.logger.Warn("no newer smartmonitoring deployment is available, update skipped")
		return nil
	}

	c.logger.Info("updating smartmonitoring deployment",
		"from", currentManifest.PackageVersion, "to", newManifest.PackageVersion)

	ok, replaceErr := c.replaceDeployment(ctx, &cfg, &cfg, &currentManifest, newManifest)
	if replaceErr != nil {
		return replaceErr
	}
	if ok {
		c.logger.Info("smartmonitoring deployment successfully updated", "version", newManifest.PackageVersion)
	}
	return nil
}

// isNewerVersion reports whether newVersion is strictly greater than
// currentVersion under semantic versioning, matching __check_version_is_newer.
func isNewerVersion(currentVersion, newVersion string) (bool, error) {
	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return false, fmt.Errorf("invalid current version %q: %w", currentVersion, err)
	}
	next, err := semver.NewVersion(newVersion)
	if err != nil {
		return false, fmt.Errorf("invalid manifest version %q: %w", newVersion, err)
	}
	return current.LessThan(next), nil
}
