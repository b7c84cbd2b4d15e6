package runtime

import (
	"context"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// PruneResult reports what a Prune call cleaned up.
type PruneResult struct {
	ImagesRemoved  int
	SpaceReclaimed int64
}

// Prune removes dangling (untagged) images left behind by a pull or
// replace, then unused volumes, the same cleanup the controller runs after
// every deployment mutation. A failed volume prune is logged, not returned.
func (a *Adapter) Prune(ctx context.Context) (*PruneResult, *smerrors.SmartMonitoringError) {
	result := &PruneResult{}

	filterArgs := filters.NewArgs()
	filterArgs.Add("dangling", "true")

	images, err := a.cli.ImageList(ctx, image.ListOptions{All: true, Filters: filterArgs})
	if err != nil {
		return nil, smerrors.RuntimeUnavailable(err)
	}

	for _, img := range images {
		if _, err := a.cli.ImageRemove(ctx, img.ID, image.RemoveOptions{PruneChildren: true}); err != nil {
			a.logger.Debug("skipping image, still in use", "image", img.ID, "error", err)
			continue
		}
		result.ImagesRemoved++
		result.SpaceReclaimed += img.Size
	}

	if report, err := a.cli.VolumesPrune(ctx, filters.NewArgs()); err != nil {
		a.logger.Debug("skipping volume prune", "error", err)
	} else {
		result.SpaceReclaimed += int64(report.SpaceReclaimed)
	}

	return result, nil
}
