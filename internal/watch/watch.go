// Package watch reports changes to SQL files on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches files and directories and reports each changed SQL
// file once its writes have settled.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	// files are watched individually; dirs report every .sql file below.
	files map[string]bool
	dirs  map[string]bool

	mu     sync.Mutex
	timers map[string]*time.Timer
	fired  chan string
	closed chan struct{}
}

// New creates a watcher. A zero debounce uses DefaultDebounce.
func New(logger *slog.Logger, debounce time.Duration) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		logger:   logger,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		fired:    make(chan string, 16),
		closed:   make(chan struct{}),
	}, nil
}

// Add watches paths. A file is watched through its directory so that
// editors replacing the file are still seen; a directory is watched
// recursively.
func (w *Watcher) Add(paths ...string) error {
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			w.files[abs] = true
			if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			continue
		}
		err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				w.dirs[p] = true
				return w.fsw.Add(p)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	close(w.closed)
	return w.fsw.Close()
}

// Run calls onChange for every settled change until ctx is done.
// onChange runs on the caller's goroutine, one call at a time.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.tracked(event.Name) {
				continue
			}
			w.schedule(event.Name)

		case path := <-w.fired:
			w.logger.Debug("file changed", "file", path)
			onChange(path)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// tracked reports whether path is a watched file or a .sql file in a
// watched directory tree.
func (w *Watcher) tracked(path string) bool {
	if w.files[path] {
		return true
	}
	return w.dirs[filepath.Dir(path)] && strings.EqualFold(filepath.Ext(path), ".sql")
}

// schedule restarts the debounce timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		select {
		case w.fired <- path:
		case <-w.closed:
		}
	})
}
