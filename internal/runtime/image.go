package runtime

import (
	"context"
	"io"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

// imageExists checks if an image is already present locally, so PullAll
// only pulls what's missing.
func (a *Adapter) imageExists(ctx context.Context, imageRef string) (bool, error) {
	_, _, err := a.cli.ImageInspectWithRaw(ctx, imageRef)
	if err != nil {
		if client.IsErrNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// pullImage pulls imageRef from its registry, discarding the progress
// stream — the controller logs a single before/after line per image.
func (a *Adapter) pullImage(ctx context.Context, imageRef string) error {
	reader, err := a.cli.ImagePull(ctx, imageRef, image.PullOptions{})
	if err != nil {
		return err
	}
	defer reader.Close()
	_, err = io.Copy(io.Discard, reader)
	return err
}
