// Package watch re-runs a callback when watched family documents change.
//
// Events are coalesced for a debounce period so an editor's write-then-rename produces one
// callback with every changed path.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/stylekit/internal/logger"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

// DefaultPatterns select family documents inside watched directories.
var DefaultPatterns = []string{"**/*.yaml", "**/*.yml"}

// Config holds the parameters for a Watcher.
type Config struct {
	// Paths are files or directories. A file triggers only on itself; a directory triggers
	// for files below it that match Patterns.
	Paths []string
	// Patterns are doublestar globs relative to each watched directory.
	Patterns []string
	Debounce time.Duration
	// OnChange receives the sorted absolute paths that changed.
	OnChange func(ctx context.Context, changed []string) error
	Logger   *logger.Logger
}

// Watcher monitors family documents. Run must be called exactly once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	log      *logger.Logger
	started  atomic.Bool
}

// New resolves the configured paths and registers them with fsnotify.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("watch: no paths to watch")
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("watch: invalid pattern %q", pattern)
		}
	}
	cfg.Patterns = patterns

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		files:    make(map[string]struct{}),
		debounce: debounce,
		log:      log,
	}
	if err := w.register(); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// register adds watched files' parent directories, and every directory below watched
// directories. Parents are watched so atomic saves that replace the file are seen.
func (w *Watcher) register() error {
	added := make(map[string]struct{})
	add := func(dir string) error {
		if _, ok := added[dir]; ok {
			return nil
		}
		added[dir] = struct{}{}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch: add %q: %w", dir, err)
		}
		return nil
	}

	for _, path := range w.cfg.Paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("watch: resolve %q: %w", path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}

		if !info.IsDir() {
			w.files[abs] = struct{}{}
			if err := add(filepath.Dir(abs)); err != nil {
				return err
			}
			continue
		}

		w.dirs = append(w.dirs, abs)
		walkErr := filepath.WalkDir(abs, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				w.log.WithFields(map[string]any{"path": p}).Warn("skipping inaccessible path")
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return add(p)
		})
		if walkErr != nil {
			return walkErr
		}
	}
	return nil
}

// Matches reports whether an event on path should trigger the callback.
func (w *Watcher) Matches(path string) bool {
	if _, ok := w.files[path]; ok {
		return true
	}
	for _, dir := range w.dirs {
		rel, ok := within(dir, path)
		if !ok {
			continue
		}
		for _, pattern := range w.cfg.Patterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				return true
			}
		}
	}
	return false
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. A callback that is still
// running when the next one is due postpones it instead of running concurrently.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.log.Debug("previous run still in progress; postponing")
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		changed := make([]string, 0, len(pending))
		for path := range pending {
			changed = append(changed, path)
		}
		clear(pending)
		mu.Unlock()

		if len(changed) == 0 || w.cfg.OnChange == nil {
			return
		}
		sort.Strings(changed)
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			w.log.Error(err, "watch callback failed")
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.log.Error(err, "close fsnotify watcher")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			if evt.Has(fsnotify.Create) && len(w.dirs) > 0 {
				w.maybeAddDir(evt.Name)
			}
			if !w.Matches(evt.Name) {
				continue
			}

			w.log.WithFields(map[string]any{"path": evt.Name, "op": evt.Op.String()}).Debug("change detected")
			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.log.Warn("fsnotify event queue overflowed; some changes may be missed")
				continue
			}
			w.log.Error(err, "fsnotify error")
		}
	}
}

// maybeAddDir extends directory watches to directories created after startup.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	for _, dir := range w.dirs {
		if _, ok := within(dir, path); ok {
			if err := w.fsw.Add(path); err != nil {
				w.log.WithFields(map[string]any{"path": path}).Error(err, "watch new directory")
			}
			return
		}
	}
}

// within returns path relative to dir, slash separated, when path lies below dir.
func within(dir, path string) (string, bool) {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
