package runtime

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
	"github.com/noahnc/smartmonitoring-cli/internal/manifest"
	"github.com/noahnc/smartmonitoring-cli/internal/resolver"
	"github.com/noahnc/smartmonitoring-cli/internal/state"
	"github.com/noahnc/smartmonitoring-cli/internal/util"
)

// ListManagedContainerNames returns the names of every container currently
// tagged with this agent's managed-container label, running or not, so the
// controller can reconcile the runtime's actual state against the
// installed stack before each operation.
func (a *Adapter) ListManagedContainerNames(ctx context.Context) ([]string, *smerrors.SmartMonitoringError) {
	filterArgs := filters.NewArgs()
	filterArgs.Add("label", state.LabelManaged+"=true")

	containers, err := a.cli.ContainerList(ctx, container.ListOptions{All: true, Filters: filterArgs})
	if err != nil {
		return nil, smerrors.RuntimeUnavailable(err)
	}

	names := make([]string, 0, len(containers))
	for _, c := range containers {
		if name, ok := c.Labels[state.LabelContainerName]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// PullAll pulls every container's image, collecting failures rather than
// stopping at the first one, so a single bad tag doesn't hide a second.
func (a *Adapter) PullAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError {
	var missing []string
	for _, c := range containers {
		exists, err := a.imageExists(ctx, c.Image)
		if err != nil {
			return smerrors.RuntimeUnavailable(err)
		}
		if exists {
			continue
		}

		a.logger.Info("pulling image", "image", c.Image)
		if err := a.pullImage(ctx, c.Image); err != nil {
			a.logger.Error("failed to pull image", "image", c.Image, "error", err)
			missing = append(missing, c.Image)
		}
	}

	if len(missing) > 0 {
		return smerrors.ImagesUnavailable(missing)
	}
	return nil
}

// Create removes any existing container with the same name, then creates
// and starts a fresh one with the resolved env/mounts/ports, attached to
// the private network, matching the original's remove-then-create order.
func (a *Adapter) Create(ctx context.Context, spec manifest.ContainerSpec, resolved *resolver.Resolved, packageVersion string) *smerrors.SmartMonitoringError {
	if err := a.Remove(ctx, spec.Name); err != nil {
		return err
	}

	hostConfig := &container.HostConfig{
		Mounts:        composeMounts(resolved.Mounts),
		PortBindings:  composePortBindings(spec.Ports),
		Privileged:    spec.Privileged,
		RestartPolicy: container.RestartPolicy{Name: container.RestartPolicyMode("unless-stopped")},
		LogConfig: container.LogConfig{
			Type:   "json-file",
			Config: map[string]string{"max-size": "500m"},
		},
	}

	cfg := &container.Config{
		Image:        spec.Image,
		Hostname:     spec.Hostname,
		Env:          envSlice(resolved.Env),
		Labels:       state.ManagedLabels(spec.Name, packageVersion),
		ExposedPorts: composeExposedPorts(spec.Ports),
	}

	resp, err := a.cli.ContainerCreate(ctx, cfg, hostConfig, nil, nil, spec.Name)
	if err != nil {
		return smerrors.ContainerCreate(spec.Name, err)
	}

	if err := a.connectToNetwork(ctx, resp.ID); err != nil {
		return smerrors.ContainerCreate(spec.Name, err)
	}

	if err := a.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return smerrors.ContainerCreate(spec.Name, err)
	}

	return nil
}

// Start starts an existing, stopped container.
func (a *Adapter) Start(ctx context.Context, name string) *smerrors.SmartMonitoringError {
	if err := a.cli.ContainerStart(ctx, name, container.StartOptions{}); err != nil {
		return smerrors.RuntimeUnavailable(err)
	}
	return nil
}

// Stop stops a running container, tolerating it already being stopped.
func (a *Adapter) Stop(ctx context.Context, name string) *smerrors.SmartMonitoringError {
	if err := a.cli.ContainerStop(ctx, name, container.StopOptions{}); err != nil {
		if client.IsErrNotFound(err) {
			return nil
		}
		return smerrors.RuntimeUnavailable(err)
	}
	return nil
}

// Restart stops and starts a container in one call.
func (a *Adapter) Restart(ctx context.Context, name string) *smerrors.SmartMonitoringError {
	if err := a.cli.ContainerRestart(ctx, name, container.StopOptions{}); err != nil {
		return smerrors.RuntimeUnavailable(err)
	}
	return nil
}

// Remove force-removes a container by name. Missing containers are not
// an error, matching the original's NotFound-catch idiom.
func (a *Adapter) Remove(ctx context.Context, name string) *smerrors.SmartMonitoringError {
	err := a.cli.ContainerRemove(ctx, name, container.RemoveOptions{Force: true})
	if err != nil {
		if client.IsErrNotFound(err) {
			a.logger.Debug("skipping removal, container does not exist", "container", name)
			return nil
		}
		return smerrors.RuntimeUnavailable(err)
	}
	return nil
}

// StartAll starts every container in the list, in order.
func (a *Adapter) StartAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError {
	for _, c := range containers {
		if err := a.Start(ctx, c.Name); err != nil {
			return err
		}
	}
	return nil
}

// StopAll stops every container in the list.
func (a *Adapter) StopAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError {
	for _, c := range containers {
		if err := a.Stop(ctx, c.Name); err != nil {
			return err
		}
	}
	return nil
}

// RestartAll restarts every container in the list.
func (a *Adapter) RestartAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError {
	for _, c := range containers {
		if err := a.Restart(ctx, c.Name); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll stops then removes every container in the list.
func (a *Adapter) RemoveAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError {
	if err := a.StopAll(ctx, containers); err != nil {
		return err
	}
	for _, c := range containers {
		if err := a.Remove(ctx, c.Name); err != nil {
			return err
		}
	}
	return nil
}

func composeMounts(files []manifest.MappedFile) []mount.Mount {
	if len(files) == 0 {
		return nil
	}
	mounts := make([]mount.Mount, 0, len(files))
	for _, f := range files {
		mounts = append(mounts, mount.Mount{
			Type:   mount.TypeBind,
			Source: f.HostPath,
			Target: f.ContainerPath,
		})
	}
	return mounts
}

func composeExposedPorts(ports []manifest.Port) nat.PortSet {
	if len(ports) == 0 {
		return nil
	}
	set := make(nat.PortSet, len(ports))
	for _, p := range ports {
		set[nat.Port(fmt.Sprintf("%d/%s", p.ContainerPort, p.Protocol))] = struct{}{}
	}
	return set
}

func composePortBindings(ports []manifest.Port) nat.PortMap {
	if len(ports) == 0 {
		return nil
	}
	bindings := make(nat.PortMap, len(ports))
	for _, p := range ports {
		key := nat.Port(fmt.Sprintf("%d/%s", p.ContainerPort, p.Protocol))
		bindings[key] = []nat.PortBinding{{HostPort: fmt.Sprintf("%d", p.HostPort)}}
	}
	return bindings
}

func envSlice(env map[string]string) []string {
	return util.EnvMapToSlice(env)
}
