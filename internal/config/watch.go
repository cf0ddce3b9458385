package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to one config file. Bursts of writes collapse
// into a single notification.
type Watcher struct {
	fs      *fsnotify.Watcher
	path    string
	log     *zap.Logger
	changed chan struct{}
	done    chan struct{}
}

// Watch starts watching path. The parent directory is watched so editors
// that replace the file on save are noticed too.
func Watch(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", abs, err)
	}

	w := &Watcher{
		fs:      fs,
		path:    abs,
		log:     log,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	log.Debug("watching config", zap.String("path", abs))
	return w, nil
}

// Changes delivers one value after the file was written, created or
// renamed into place.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changed
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))
		}
	}
}
