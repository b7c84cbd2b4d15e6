// Package controller implements the DeploymentController: the component
// that wires the manifest, resolver, secrets, state and runtime packages
// together into the deploy/undeploy/restart/apply-config/update operations.
package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
	"github.com/noahnc/smartmonitoring-cli/internal/manifest"
	"github.com/noahnc/smartmonitoring-cli/internal/resolver"
	"github.com/noahnc/smartmonitoring-cli/internal/runtime"
	"github.com/noahnc/smartmonitoring-cli/internal/secrets"
	"github.com/noahnc/smartmonitoring-cli/internal/state"
)

// Runtime is the subset of *runtime.Adapter the controller depends on.
// Accepting an interface rather than the concrete type lets tests exercise
// the controller's orchestration logic against a fake runtime.
type Runtime interface {
	PullAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError
	Create(ctx context.Context, spec manifest.ContainerSpec, resolved *resolver.Resolved, packageVersion string) *smerrors.SmartMonitoringError
	StartAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError
	RestartAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError
	RemoveAll(ctx context.Context, containers []manifest.ContainerSpec) *smerrors.SmartMonitoringError
	EnsureNetwork(ctx context.Context) *smerrors.SmartMonitoringError
	RemoveNetwork(ctx context.Context) *smerrors.SmartMonitoringError
	Prune(ctx context.Context) (*runtime.PruneResult, *smerrors.SmartMonitoringError)
	Stats(ctx context.Context, name, image string) (*runtime.ContainerStats, *smerrors.SmartMonitoringError)
	ListManagedContainerNames(ctx context.Context) ([]string, *smerrors.SmartMonitoringError)
}

// ConnectivityCheckURLs is tried in order until one succeeds, matching the
// original's google/bing/yahoo fallback chain.
var ConnectivityCheckURLs = []string{
	"https://www.google.com",
	"https://www.bing.com",
	"https://www.yahoo.com",
}

// connectivityTimeout bounds each reachability probe.
const connectivityTimeout = 4 * time.Second

// Paths collects the filesystem locations the controller reads and writes,
// mirroring MainLogic's three fixed directories.
type Paths struct {
	ConfigFile string
	VarDir     string
}

// Controller is the DeploymentController: it owns the local config file
// path, the persisted state store, the secret minter and the runtime
// adapter, and exposes one method per CLI operation.
type Controller struct {
	paths   Paths
	store   *state.Store
	mint    *secrets.Mint
	adapter Runtime
	logger  *slog.Logger

	httpClient *http.Client
}

// New creates a Controller. adapter may be nil for operations that never
// touch the runtime (e.g. validate-config); operations that need it will
// fail with a clear error if so. Pass a literal nil, not a nil
// *runtime.Adapter variable, or the Runtime interface will be non-nil.
func New(paths Paths, agentVersion string, adapter Runtime, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		paths:      paths,
		store:      state.NewStore(paths.VarDir, agentVersion),
		mint:       secrets.NewMint(logger),
		adapter:    adapter,
		logger:     logger,
		httpClient: &http.Client{Timeout: connectivityTimeout},
	}
}

// IsDeployed reports whether a stack is currently installed.
func (c *Controller) IsDeployed() bool {
	return c.store.IsDeployed()
}

// checkPreconditions mirrors __check_preconditions: an operation that
// mutates the deployment requires an existing stack and no deployment
// already in flight. It additionally reconciles the runtime's actual
// container set against the installed stack before every operation — the
// spec calls for this explicitly, where the original only rechecked the
// status file.
//
// On success the caller holds the deployment lock and must release it
// (via c.store.ReleaseLock, typically deferred) once the operation
// finishes, win or lose.
func (c *Controller) checkPreconditions(ctx context.Context, action string) *smerrors.SmartMonitoringError {
	if !c.store.IsDeployed() {
		return smerrors.ConfigValidation("smartmonitoring is not deployed, " + action)
	}
	if err := c.store.AcquireLock(); err != nil {
		return err
	}
	if c.adapter != nil {
		if err := c.reconcile(ctx); err != nil {
			c.store.ReleaseLock()
			return err
		}
	}
	return nil
}

// reconcile compares the set of containers actually present on the host
// (by agent label) against InstalledStack.Manifest.Containers. A mismatch
// means the runtime has drifted from what this agent believes is deployed
// — e.g. a container was removed manually, or a previous run crashed
// mid-deployment — so the operation is refused and the status is marked
// DeploymentError rather than proceeding against stale assumptions.
func (c *Controller) reconcile(ctx context.Context) *smerrors.SmartMonitoringError {
	stack, err := c.store.LoadInstalledStack()
	if err != nil {
		return err
	}

	actualNames, err := c.adapter.ListManagedContainerNames(ctx)
	if err != nil {
		return err
	}

	expected := make(map[string]bool, len(stack.Manifest.Containers))
	for _, container := range stack.Manifest.Containers {
		expected[container.Name] = true
	}
	actual := make(map[string]bool, len(actualNames))
	for _, name := range actualNames {
		actual[name] = true
	}

	mismatched := len(expected) != len(actual)
	if !mismatched {
		for name := range expected {
			if !actual[name] {
				mismatched = true
				break
			}
		}
	}
	if !mismatched {
		return nil
	}

	mismatchErr := smerrors.ConfigValidation(
		"the running containers on this host do not match the installed stack; manual intervention is required")
	c.store.SaveStatus(state.StatusDeploymentError, "", "", mismatchErr.Error())
	return mismatchErr
}

// checkInternetConnection tries each of ConnectivityCheckURLs in turn,
// matching the original's best-effort reachability probe used to skip
// deploy/update when the host is offline.
func (c *Controller) checkInternetConnection(ctx context.Context) bool {
	for _, url := range ConnectivityCheckURLs {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			continue
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Debug("connectivity check failed", "url", url, "error", err)
			continue
		}
		resp.Body.Close()
		c.logger.Debug("connectivity check succeeded", "url", url)
		return true
	}
	return false
}

// loadLocalConfig reads and validates the host's local config file.
func (c *Controller) loadLocalConfig() (*manifest.LocalConfig, *smerrors.SmartMonitoringError) {
	return manifest.LoadLocalConfig(c.paths.ConfigFile)
}

// fetchManifest retrieves the update manifest for cfg's channel.
func (c *Controller) fetchManifest(cfg *manifest.LocalConfig) (*manifest.UpdateManifest, *smerrors.SmartMonitoringError) {
	return manifest.FetchUpdateManifest(cfg.UpdateManifestURL, cfg.UpdateChannel)
}

// requireAdapter returns an error if the runtime adapter was never wired,
// so operations fail clearly instead of panicking on a nil pointer.
func (c *Controller) requireAdapter() *smerrors.SmartMonitoringError {
	if c.adapter == nil {
		return smerrors.Internal("controller has no runtime adapter configured", nil)
	}
	return nil
}
