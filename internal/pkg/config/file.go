package config

import (
	"path/filepath"
	"time"

	"github.com/df-mc/atomic"
	"github.com/fsnotify/fsnotify"
	"github.com/imdario/mergo"
	"go.uber.org/zap"
)

// File reads the config from a single YAML or JSON file. Keys missing from the file are taken
// from the defaults.
type File struct {
	path     string
	defaults map[string]any
	onChange func(map[string]any)
	logger   *zap.Logger
	watcher  *atomic.Value[*fsnotify.Watcher]
}

// New returns a File for path. If onChange is not nil the file is watched and onChange is called
// with the merged config after every change.
func New(path string, defaults map[string]any, onChange func(map[string]any), logger *zap.Logger) (*File, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &File{
		path:     path,
		defaults: defaults,
		onChange: onChange,
		logger:   logger,
		watcher:  atomic.NewValue[*fsnotify.Watcher](nil),
	}

	if onChange == nil {
		return f, nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	f.watcher.Store(w)

	// Watch the directory; editors often replace the file instead of writing to it.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	go func() {
		if err := f.watch(w); err != nil {
			logger.Error("failed while watching config",
				zap.Error(err),
				zap.String("file", path),
			)
		}
	}()

	return f, nil
}

// Read returns the merged config.
func (f *File) Read() (map[string]any, error) {
	data := map[string]any{}
	if err := ReadConfigFile(f.path, &data); err != nil {
		return nil, err
	}

	if f.defaults != nil {
		if err := mergo.Merge(&data, f.defaults); err != nil {
			return nil, err
		}
	}

	return data, nil
}

func (f *File) watch(w *fsnotify.Watcher) error {
	tick := time.NewTicker(time.Millisecond * 100)
	defer tick.Stop()

	name := filepath.Clean(f.path)
	var lastEvent *fsnotify.Event

	for {
		select {
		case <-tick.C:
			if lastEvent == nil {
				continue
			}
			lastEvent = nil

			data, err := f.Read()
			if err != nil {
				f.logger.Error("failed to read changed config",
					zap.Error(err),
					zap.String("file", f.path),
				)
				continue
			}
			f.onChange(data)
		case e, ok := <-w.Events:
			if !ok {
				f.logger.Debug("closing config watcher",
					zap.String("cause", "watcher event channel closed"),
				)
				return nil
			}

			if filepath.Clean(e.Name) != name {
				continue
			}

			if e.Op&fsnotify.Write == fsnotify.Write ||
				e.Op&fsnotify.Create == fsnotify.Create ||
				e.Op&fsnotify.Rename == fsnotify.Rename {
				lastEvent = &e
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			f.logger.Error("error while watching config",
				zap.Error(err),
			)
		}
	}
}

// Close stops watching the file.
func (f *File) Close() error {
	w := f.watcher.Load()
	if w == nil {
		return nil
	}
	f.watcher.Store(nil)
	return w.Close()
}
