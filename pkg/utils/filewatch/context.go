package filewatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// UntilModifyContext derives a context which is canceled as soon as any of
// the given files changes on disk (written, created, removed or renamed).
//
// It returns the derived context, a cancel function releasing the watcher,
// and an error when the watch cannot be established. On error, both the
// context and the cancel function are nil.
func UntilModifyContext(ctx context.Context, files ...string) (context.Context, func(), error) {
	cctx, cancel := context.WithCancelCause(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return nil, nil, err
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-cctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				cancel(fmt.Errorf("%s is updated (%s)", ev.Name, ev.Op.String()))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				cancel(err)
			}
		}
	}()

	for _, f := range files {
		if err := w.Add(f); err != nil {
			cancel(err)
			return nil, nil, err
		}
	}

	return cctx, func() { cancel(nil) }, nil
}
