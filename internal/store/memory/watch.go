package memory

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a seed file must stay quiet before reloading.
// Editors write in bursts; reloading on every event churns the catalog.
const settleDelay = 250 * time.Millisecond

// WatchCatalog reloads the catalog whenever the seed file changes.
// The parent directory is watched rather than the file itself, so
// atomic rename-over-file saves are picked up too. Close stops the
// watcher.
func (s *Store) WatchCatalog(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		var timer *time.Timer
		for {
			select {
			case <-done:
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(settleDelay, func() {
					if err := s.LoadCatalog(path); err != nil {
						if s.logger != nil {
							s.logger.Error("catalog reload failed", "path", path, "error", err)
						}
						return
					}
					s.mu.RLock()
					reload := s.onReload
					s.mu.RUnlock()
					if reload != nil {
						reload()
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if s.logger != nil {
					s.logger.Warn("catalog watch error", "error", err)
				}
			}
		}
	}()

	s.mu.Lock()
	s.stopWatch = func() {
		close(done)
		watcher.Close()
		wg.Wait()
	}
	s.mu.Unlock()
	return nil
}
