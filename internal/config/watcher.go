// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/canonical/identity-binder/internal/logging"
)

// kubernetes swaps mounted ConfigMap contents by renaming this symlink
const configMapDataDir = "..data"

// ProvidersWatcher reloads the providers file when it changes on disk.
// An invalid file is logged and skipped, the last good set stays in place.
type ProvidersWatcher struct {
	path     string
	onChange func([]ProviderSpec) error

	watcher *fsnotify.Watcher
	logger  logging.LoggerInterface
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *ProvidersWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.relevant(event) {
				continue
			}

			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("providers file watcher error: %v", err)
		}
	}
}

func (w *ProvidersWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}

	name := filepath.Clean(event.Name)

	return name == w.path || filepath.Base(name) == configMapDataDir
}

func (w *ProvidersWatcher) reload() {
	providers, err := LoadProviders(w.path)
	if err != nil {
		w.logger.Errorf("ignoring providers file change: %v", err)
		return
	}

	if err := w.onChange(providers); err != nil {
		w.logger.Errorf("failed to apply providers file change: %v", err)
		return
	}

	w.logger.Infof("reloaded %d identity providers from %s", len(providers), w.path)
}

func (w *ProvidersWatcher) Close() error {
	return w.watcher.Close()
}

// NewProvidersWatcher watches the directory holding path, editors and
// ConfigMap mounts replace the file rather than writing it in place.
func NewProvidersWatcher(path string, onChange func([]ProviderSpec) error, logger logging.LoggerInterface) (*ProvidersWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create providers file watcher: %w", err)
	}

	path = filepath.Clean(path)

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch providers file: %w", err)
	}

	w := new(ProvidersWatcher)

	w.path = path
	w.onChange = onChange
	w.watcher = watcher
	w.logger = logger

	return w, nil
}
