package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"go.viam.com/chainik/logging"
)

// settleTime is how long the scene file must stay untouched before it is solved again. Editors
// often write a file in several steps.
const settleTime = 250 * time.Millisecond

type sceneWatcher struct {
	path    string
	logger  logging.Logger
	watcher *fsnotify.Watcher
}

// newSceneWatcher watches the directory holding path rather than path itself, so that editors
// replacing the file by rename are still noticed.
func newSceneWatcher(path string, logger logging.Logger) (*sceneWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "cannot watch %q", path)
	}
	return &sceneWatcher{path: abs, logger: logger, watcher: watcher}, nil
}

// Run calls onChange after each burst of writes to the scene file until ctx is done.
func (w *sceneWatcher) Run(ctx context.Context, onChange func()) error {
	debounced := debounce.New(settleTime)
	w.logger.Infow("watching scene", "scene", w.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.logger.Debugw("scene changed", "scene", w.path, "op", event.Op.String())
			debounced(onChange)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("watch error", "scene", w.path, "error", err)
		}
	}
}

func (w *sceneWatcher) Close() error {
	return w.watcher.Close()
}
