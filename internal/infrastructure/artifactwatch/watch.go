package artifactwatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// UntilModified returns a context canceled as soon as one of the model artifacts
// is written, created, removed or renamed. context.Cause tells which file changed.
//
// Loaded models are never swapped in place; callers shut down on cancellation and
// let the supervisor start a fresh process on the new artifacts.
func UntilModified(ctx context.Context, paths ...string) (context.Context, func(), error) {
	cctx, cancel := context.WithCancelCause(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return nil, nil, err
	}

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			w.Close()
			cancel(err)
			return nil, nil, fmt.Errorf("watch %s: %w", p, err)
		}
	}

	go func() {
		defer w.Close()

		for {
			select {
			case <-cctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op == fsnotify.Chmod {
					continue
				}
				cancel(fmt.Errorf("%s is updated (%s)", event.Name, event.Op.String()))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				cancel(fmt.Errorf("artifact watch failed: %w", err))
			}
		}
	}()

	return cctx, func() { cancel(nil) }, nil
}
