// Package watch notifies about changes to the theme and schedule files.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Kind identifies which watched file changed.
type Kind int

const (
	KindTheme Kind = iota
	KindSchedule
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTheme:
		return "theme"
	case KindSchedule:
		return "schedule"
	default:
		return "unknown"
	}
}

// ChangeHandler is called after a watched file changed.
type ChangeHandler func(kind Kind)

// FileWatcher watches the theme and schedule files and reports changes
// after a quiet period, so a burst of writes produces one callback.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	files    map[string]Kind
	debounce time.Duration
	onChange ChangeHandler

	mu      sync.Mutex
	timers  map[Kind]*time.Timer
	running bool
	done    chan struct{}
	stopped chan struct{}
}

// NewFileWatcher creates a watcher for the given theme and schedule paths.
// Either path may be empty to skip it.
func NewFileWatcher(themePath, dataPath string, debounce time.Duration, onChange ChangeHandler, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]Kind)
	if themePath != "" {
		files[filepath.Clean(themePath)] = KindTheme
	}
	if dataPath != "" {
		files[filepath.Clean(dataPath)] = KindSchedule
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		files:    files,
		debounce: debounce,
		onChange: onChange,
		timers:   make(map[Kind]*time.Timer),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directories are watched rather than the
// files themselves so that atomic replace-by-rename is observed.
func (fw *FileWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.running = true
	fw.mu.Unlock()

	dirs := make(map[string]bool)
	for path := range fw.files {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			fw.logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}

	go fw.watch(ctx)
	fw.logger.Debug("file watcher started", "files", len(fw.files), "debounce", fw.debounce)
	return nil
}

func (fw *FileWatcher) watch(ctx context.Context) {
	defer close(fw.stopped)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			kind, ok := fw.files[filepath.Clean(event.Name)]
			if !ok {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fw.schedule(kind)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", "error", err)

		case <-ctx.Done():
			return

		case <-fw.done:
			return
		}
	}
}

// schedule arms or re-arms the debounce timer for kind.
func (fw *FileWatcher) schedule(kind Kind) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.running {
		return
	}
	if t, ok := fw.timers[kind]; ok {
		t.Stop()
	}
	fw.timers[kind] = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		delete(fw.timers, kind)
		running := fw.running
		fw.mu.Unlock()

		if !running {
			return
		}
		fw.logger.Debug("watched file changed", "kind", kind)
		if fw.onChange != nil {
			fw.onChange(kind)
		}
	})
}

// Stop stops the file watcher and cancels pending callbacks.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		return fw.watcher.Close()
	}
	fw.running = false
	for kind, t := range fw.timers {
		t.Stop()
		delete(fw.timers, kind)
	}
	close(fw.done)
	fw.mu.Unlock()

	err := fw.watcher.Close()
	<-fw.stopped
	return err
}
