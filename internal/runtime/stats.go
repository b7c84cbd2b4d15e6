package runtime

import (
	"context"
	"encoding/json"

	"github.com/docker/docker/api/types/container"
	dockerclient "github.com/docker/docker/client"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// ContainerStats reports the status dashboard's per-container metrics.
type ContainerStats struct {
	Name        string
	Status      string
	Image       string
	MemUsageMB  float64
	CPUPercent  float64
	Found       bool
}

// Stats returns runtime statistics for name. A missing container is
// reported with Found=false and Status "Not found" rather than an error,
// so the status command can still list a container the manifest expects.
func (a *Adapter) Stats(ctx context.Context, name, image string) (*ContainerStats, *smerrors.SmartMonitoringError) {
	info, err := a.cli.ContainerInspect(ctx, name)
	if err != nil {
		if dockerclient.IsErrNotFound(err) {
			return &ContainerStats{Name: name, Status: "Not found", Image: "-", Found: false}, nil
		}
		return nil, smerrors.RuntimeUnavailable(err)
	}

	result := &ContainerStats{
		Name:   name,
		Status: info.State.Status,
		Image:  image,
		Found:  true,
	}

	resp, err := a.cli.ContainerStatsOneShot(ctx, name)
	if err != nil {
		return result, nil
	}
	defer resp.Body.Close()

	var raw container.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return result, nil
	}

	result.MemUsageMB = float64(raw.MemoryStats.Usage) / 1024 / 1024
	result.CPUPercent = calculateCPUUsage(raw)
	return result, nil
}

// calculateCPUUsage implements the original's exact formula: the delta in
// total container CPU time over the delta in total system CPU time,
// scaled by the number of online CPUs.
func calculateCPUUsage(stats container.StatsResponse) float64 {
	usageDelta := float64(stats.CPUStats.CPUUsage.TotalUsage) - float64(stats.PreCPUStats.CPUUsage.TotalUsage)
	systemDelta := float64(stats.CPUStats.SystemUsage) - float64(stats.PreCPUStats.SystemUsage)
	if systemDelta <= 0 {
		return 0
	}
	onlineCPUs := float64(stats.CPUStats.OnlineCPUs)
	if onlineCPUs == 0 {
		onlineCPUs = 1
	}
	percentage := (usageDelta / systemDelta) * onlineCPUs * 100
	return roundTo2(percentage)
}

func roundTo2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
