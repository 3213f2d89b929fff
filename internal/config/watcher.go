package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes and hands every valid
// result to onReload. Invalid files are logged and skipped.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	logger   *slog.Logger
	onReload func(*Config)
	done     chan struct{}
	once     sync.Once
}

// NewWatcher watches the directory holding path so that editors which
// replace the file on save are still seen.
func NewWatcher(path string, logger *slog.Logger, onReload func(*Config)) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(absolute)); err != nil {
		watcher.Close()
		return nil, err
	}

	fw := &Watcher{
		watcher:  watcher,
		path:     absolute,
		logger:   logger,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go fw.processEvents()
	return fw, nil
}

func (fw *Watcher) processEvents() {
	defer close(fw.done)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fw.reload()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (fw *Watcher) reload() {
	config, err := LoadFromFile(fw.path)
	if err != nil {
		fw.logger.Warn("config reload skipped", "path", fw.path, "error", err)
		return
	}
	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		fw.logger.Warn("config reload rejected", "path", fw.path, "error", err)
		return
	}
	fw.logger.Info("config reloaded", "path", fw.path)
	if fw.onReload != nil {
		fw.onReload(config)
	}
}

// Close stops the watcher and waits for the event loop to exit.
func (fw *Watcher) Close() error {
	var err error
	fw.once.Do(func() {
		err = fw.watcher.Close()
		<-fw.done
	})
	return err
}
