package controller

import (
	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
	"github.com/noahnc/smartmonitoring-cli/internal/manifest"
	"github.com/noahnc/smartmonitoring-cli/internal/resolver"
)

// ValidateConfigAgainstManifest composes every container's env vars (and,
// if checkFiles is set, its bind mounts) to verify cfg satisfies what
// manifestDoc requires. This is the same check deploy and apply-config run
// before mutating anything, exposed standalone for validate-config.
func (c *Controller) ValidateConfigAgainstManifest(cfg *manifest.LocalConfig, manifestDoc *manifest.UpdateManifest, checkFiles bool) *smerrors.SmartMonitoringError {
	dynamicSecrets, err := c.mint.Mint(manifestDoc.DynamicSecrets)
	if err != nil {
		return err
	}

	for _, container := range manifestDoc.Containers {
		if checkFiles {
			if _, err := resolver.Resolve(cfg, container, dynamicSecrets); err != nil {
				return err
			}
			continue
		}
		if _, err := resolver.ResolveEnvOnly(cfg, container, dynamicSecrets); err != nil {
			return err
		}
	}
	return nil
}

// ValidateConfig loads the local config file and the remote manifest and
// validates one against the other, without touching the runtime. It
// implements the CLI's validate-config command.
func (c *Controller) ValidateConfig() (*manifest.LocalConfig, *manifest.UpdateManifest, *smerrors.SmartMonitoringError) {
	cfg, err := c.loadLocalConfig()
	if err != nil {
		return nil, nil, err
	}

	manifestDoc, err := c.fetchManifest(cfg)
	if err != nil {
		return cfg, nil, err
	}

	if err := c.ValidateConfigAgainstManifest(cfg, manifestDoc, false); err != nil {
		return cfg, manifestDoc, err
	}
	return cfg, manifestDoc, nil
}
