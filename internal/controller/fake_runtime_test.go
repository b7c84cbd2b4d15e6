package controller

import (
	"context"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
	"github.com/noahnc/smartmonitoring-cli/internal/manifest"
	"github.com/noahnc/smartmonitoring-cli/internal/resolver"
	"github.com/noahnc/smartmonitoring-cli/internal/runtime"
)

// fakeRuntime is a Runtime test double recording operations it was asked
// to perform, with injectable failures for each one.
type fakeRuntime struct {
	created []string
	removed []string
	started bool
	pruned  bool

	// live tracks the container names this fake considers currently
	// present, so ListManagedContainerNames reflects Create/RemoveAll calls
	// the way the real runtime's label-filtered list would.
	live map[string]bool

	pullErr    *smerrors.SmartMonitoringError
	createErr  map[string]*smerrors.SmartMonitoringError
	networkErr *smerrors.SmartMonitoringError
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		createErr: map[string]*smerrors.SmartMonitoringError{},
		live:      map[string]bool{},
	}
}

func (f *fakeRuntime) PullAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError {
	return f.pullErr
}

func (f *fakeRuntime) Create(ctx context.Context, spec manifest.ContainerSpec, resolved *resolver.Resolved, packageVersion string) *smerrors.SmartMonitoringError {
	if err, ok := f.createErr[spec.Name]; ok && err != nil {
		return err
	}
	f.created = append(f.created, spec.Name)
	f.live[spec.Name] = true
	return nil
}

func (f *fakeRuntime) StartAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError {
	f.started = true
	return nil
}

func (f *fakeRuntime) RestartAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError {
	return nil
}

func (f *fakeRuntime) RemoveAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError {
	for _, c := range containers {
		f.removed = append(f.removed, c.Name)
		delete(f.live, c.Name)
	}
	return nil
}

func (f *fakeRuntime) ListManagedContainerNames(ctx context.Context) ([]string, *smerrors.SmartMonitoringError) {
	names := make([]string, 0, len(f.live))
	for name := range f.live {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeRuntime) EnsureNetwork(ctx context.Context) *smerrors.SmartMonitoringError {
	return f.networkErr
}

func (f *fakeRuntime) RemoveNetwork(ctx context.Context) *smerrors.SmartMonitoringError {
	return nil
}

func (f *fakeRuntime) Prune(ctx context.Context) (*runtime.PruneResult, *smerrors.SmartMonitoringError) {
	f.pruned = true
	return &runtime.PruneResult{}, nil
}

func (f *fakeRuntime) Stats(ctx context.Context, name, image string) (*runtime.ContainerStats, *smerrors.SmartMonitoringError) {
	return &runtime.ContainerStats{Name: name, Image: image, Found: true, Status: "running"}, nil
}
