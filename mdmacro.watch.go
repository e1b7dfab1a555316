package mdmacro

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeFunc is called once per settled burst of file changes.
type ChangeFunc func(ctx context.Context) error

// Watcher re-runs a ChangeFunc when files under its directories change.
// Events are debounced: the callback runs once the directories have been
// quiet for the debounce interval.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dirs     []string
	debounce time.Duration
	onChange ChangeFunc
	logger   *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	running  bool

	ignore map[string]bool

	pending   bool
	lastEvent time.Time
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet interval before the callback runs.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the watcher logger.
func WithWatchLogger(logger *zap.Logger) WatchOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithIgnorePaths drops events for the given files, such as an output file
// written inside a watched directory.
func WithIgnorePaths(paths ...string) WatchOption {
	return func(w *Watcher) {
		for _, p := range paths {
			w.ignore[absPath(p)] = true
		}
	}
}

// NewWatcher creates a watcher over dirs. Nothing is watched until Start.
func NewWatcher(dirs []string, onChange ChangeFunc, opts ...WatchOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		dirs:     dedupeDirs(dirs),
		debounce: DefaultWatchDebounce,
		onChange: onChange,
		logger:   zap.NewNop(),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		ignore:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start adds every directory, subdirectories included, and starts the
// event loop. Directories that do not exist are logged and skipped.
// The loop ends when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, dir := range w.dirs {
		w.addTree(dir)
	}

	w.logger.Info(LogMsgWatchStarted, zap.Strings(LogFieldPath, w.dirs))
	go w.run(ctx)
	return nil
}

// Stop ends the event loop and waits for it to exit. It is safe to call
// more than once, and before Start.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		running := w.running
		w.mu.Unlock()

		close(w.stopCh)
		if running {
			<-w.doneCh
			return
		}
		_ = w.watcher.Close()
	})
}

// Done is closed when the event loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

// Dirs returns the watched root directories.
func (w *Watcher) Dirs() []string {
	return append([]string(nil), w.dirs...)
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer w.watcher.Close()

	tick := w.debounce / 2
	if tick <= 0 {
		tick = w.debounce
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(LogMsgWatchStopped)
			return

		case <-w.stopCh:
			w.logger.Info(LogMsgWatchStopped)
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(LogMsgWatchError, zap.Error(err))

		case now := <-ticker.C:
			if w.pending && now.Sub(w.lastEvent) >= w.debounce {
				w.pending = false
				if err := w.onChange(ctx); err != nil {
					w.logger.Error(LogMsgWatchRenderFailed, zap.Error(err))
				}
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod || w.ignore[absPath(event.Name)] {
		return
	}

	w.logger.Debug(LogMsgWatchEvent,
		zap.String(LogFieldPath, event.Name),
		zap.String(LogFieldOp, event.Op.String()),
	)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addTree(event.Name)
		}
	}

	w.pending = true
	w.lastEvent = time.Now()
}

// addTree watches dir and all directories below it.
func (w *Watcher) addTree(dir string) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn(LogMsgWatchAddFailed, zap.String(LogFieldPath, path), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		w.logger.Warn(LogMsgWatchAddFailed, zap.String(LogFieldPath, dir), zap.Error(err))
	}
}

func dedupeDirs(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		clean := filepath.Clean(d)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
	}
	return out
}

// absPath cleans p and makes it absolute when the working directory is known.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
