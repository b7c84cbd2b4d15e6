package runtime

import (
	"context"

	dockernetwork "github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// NetworkName is the private bridge network all managed containers are
// attached to, so they can reach each other without being reachable from
// the host's other networks.
const NetworkName = "smartmonitoring_cli"

// EnsureNetwork creates the private bridge network if it doesn't already
// exist. Idempotent.
func (a *Adapter) EnsureNetwork(ctx context.Context) *smerrors.SmartMonitoringError {
	_, err := a.cli.NetworkInspect(ctx, NetworkName, dockernetwork.InspectOptions{})
	if err == nil {
		a.logger.Debug("private bridge network already exists", "network", NetworkName)
		return nil
	}
	if !client.IsErrNotFound(err) {
		return smerrors.RuntimeUnavailable(err)
	}

	_, err = a.cli.NetworkCreate(ctx, NetworkName, dockernetwork.CreateOptions{
		Driver:   "bridge",
		Internal: true,
	})
	if err != nil {
		return smerrors.RuntimeUnavailable(err)
	}
	a.logger.Info("private bridge network created", "network", NetworkName)
	return nil
}

// RemoveNetwork removes the private bridge network. Idempotent.
func (a *Adapter) RemoveNetwork(ctx context.Context) *smerrors.SmartMonitoringError {
	err := a.cli.NetworkRemove(ctx, NetworkName)
	if err != nil {
		if client.IsErrNotFound(err) {
			a.logger.Debug("private bridge network not found, skipping removal", "network", NetworkName)
			return nil
		}
		return smerrors.RuntimeUnavailable(err)
	}
	a.logger.Info("private bridge network removed", "network", NetworkName)
	return nil
}

// connectToNetwork attaches containerID to the private bridge network.
func (a *Adapter) connectToNetwork(ctx context.Context, containerID string) error {
	return a.cli.NetworkConnect(ctx, NetworkName, containerID, nil)
}
