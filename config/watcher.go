package config

import (
	"context"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/steerlab/fourws/logging"
)

// A Watcher is responsible for watching for changes to a config file from some source and
// delivering those changes to some destination.
type Watcher interface {
	Config() <-chan *Config
	Close() error
}

type fsConfigWatcher struct {
	fsWatcher               *fsnotify.Watcher
	configCh                chan *Config
	cancel                  func()
	activeBackgroundWorkers sync.WaitGroup
}

// NewWatcher returns a Watcher that re-reads the file at filePath each time it is written and
// emits every valid config that differs from the last one emitted. Invalid configs are logged and
// skipped.
func NewWatcher(ctx context.Context, filePath string, logger logging.Logger) (Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors commonly replace a file rather than write it in place, so the directory is watched.
	if err := fsWatcher.Add(filepath.Dir(filePath)); err != nil {
		return nil, multierr.Combine(errors.Wrapf(err, "cannot watch %q", filePath), fsWatcher.Close())
	}

	cancelCtx, cancel := context.WithCancel(ctx)
	w := &fsConfigWatcher{
		fsWatcher: fsWatcher,
		configCh:  make(chan *Config),
		cancel:    cancel,
	}
	cleanPath := filepath.Clean(filePath)
	var lastCfg *Config

	w.activeBackgroundWorkers.Add(1)
	utils.ManagedGo(func() {
		for {
			if cancelCtx.Err() != nil {
				return
			}
			select {
			case <-cancelCtx.Done():
				return
			case err, ok := <-fsWatcher.Errors:
				if !ok {
					return
				}
				logger.Errorw("error watching config", "error", err)
			case event, ok := <-fsWatcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != cleanPath || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				newCfg, err := Read(cancelCtx, filePath, logger)
				if err != nil {
					logger.Errorw("error reading config after write", "error", err)
					continue
				}
				if lastCfg != nil && reflect.DeepEqual(newCfg, lastCfg) {
					continue
				}
				select {
				case <-cancelCtx.Done():
					return
				case w.configCh <- newCfg:
					lastCfg = newCfg
				}
			}
		}
	}, w.activeBackgroundWorkers.Done)
	return w, nil
}

func (w *fsConfigWatcher) Config() <-chan *Config {
	return w.configCh
}

func (w *fsConfigWatcher) Close() error {
	w.cancel()
	w.activeBackgroundWorkers.Wait()
	return w.fsWatcher.Close()
}
