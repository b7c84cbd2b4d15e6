// Package runtime is the RuntimeAdapter: the only component that talks to
// the Docker Engine API. It pulls images, manages the private network,
// and creates/starts/stops/removes the containers the controller asks for.
package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/docker/docker/client"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// connectRetries and connectBackoff match the original's retry loop
// exactly: three attempts, ten seconds apart, before giving up.
const (
	connectRetries = 3
	connectBackoff = 10 * time.Second
)

// Adapter wraps the Docker Engine API client with the operations the
// deployment controller needs.
type Adapter struct {
	cli    *client.Client
	logger *slog.Logger
}

// Connect establishes a Docker Engine API connection, retrying on failure.
func Connect(ctx context.Context, logger *slog.Logger) (*Adapter, *smerrors.SmartMonitoringError) {
	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error
	for attempt := 1; attempt <= connectRetries; attempt++ {
		cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if err == nil {
			if _, pingErr := cli.Ping(ctx); pingErr == nil {
				return &Adapter{cli: cli, logger: logger}, nil
			} else {
				lastErr = pingErr
				cli.Close()
			}
		} else {
			lastErr = err
		}

		logger.Warn("failed to connect to the container runtime", "attempt", attempt, "error", lastErr)
		if attempt < connectRetries {
			time.Sleep(connectBackoff)
		}
	}

	return nil, smerrors.RuntimeUnavailable(lastErr)
}

// Close releases the underlying Docker client connection.
func (a *Adapter) Close() error {
	return a.cli.Close()
}
