package main

import (
	"context"
	"path/filepath"

	"github.com/benoitkugler/okscene/scene"
	"github.com/fsnotify/fsnotify"
)

// watch renders the scene again each time its file is written,
// until `ctx` is done. Render errors are logged, not returned.
func (cfg config) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// editors often replace the file instead of writing it,
	// so the parent directory is watched
	target := filepath.Clean(cfg.scenePath)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	scene.Logger().Info("watching scene", "scene", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSceneUpdate(event, target) {
				continue
			}
			if err := cfg.render(); err != nil {
				scene.Logger().Error("rendering scene", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			scene.Logger().Warn("watcher", "err", err)
		}
	}
}

func isSceneUpdate(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
