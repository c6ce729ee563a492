package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads path whenever it changes and hands the result to onChange.
// Editors often write a file in several steps, so bursts of events are
// coalesced. onChange runs on a background goroutine; UI callers should hop
// back to their own thread. The returned stop func is idempotent.
func Watch(path string, onChange func(Config, error)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Watch the directory so atomic renames over the file are seen.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	target := filepath.Clean(path)
	quit := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		var pending *time.Timer
		defer func() {
			if pending != nil {
				pending.Stop()
			}
		}()
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(reloadDebounce, func() {
					select {
					case <-quit:
						return
					default:
					}
					cfg, err := Load(path)
					onChange(cfg, err)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				onChange(Default(), fmt.Errorf("config watcher: %w", err))
			case <-quit:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(quit)
			<-done
			watcher.Close()
		})
	}, nil
}
