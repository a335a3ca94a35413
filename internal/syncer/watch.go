package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wallstop/docwiki/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a
// watched sync runs.
const DefaultDebounce = 300 * time.Millisecond

// RunFunc receives the result of every sync performed by Watch.
type RunFunc func(*Report, error)

// Watch runs a sync immediately and again after each burst of changes under
// the source and assets directories, until ctx is done. Runs happen on the
// calling goroutine, so they never overlap.
func (s *Syncer) Watch(ctx context.Context, debounce time.Duration, onRun RunFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range []string{s.cfg.Source, s.cfg.Assets} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			s.addDirsRecursive(watcher, dir)
		}
	}

	absDest, _ := filepath.Abs(s.cfg.Dest)

	s.runOnce(ctx, onRun)
	s.logger.Info("Watching for changes", logfields.Source(s.cfg.Source))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(ev.Name) || within(absDest, ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					s.addDirsRecursive(watcher, ev.Name)
				}
			}
			s.logger.Debug("File change detected", logfields.Path(ev.Name), "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Watcher error", logfields.Error(err))
		case <-timer.C:
			s.runOnce(ctx, onRun)
		}
	}
}

func (s *Syncer) runOnce(ctx context.Context, onRun RunFunc) {
	report, err := s.Run(ctx)
	if onRun != nil {
		onRun(report, err)
	}
}

func (s *Syncer) addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(p); err != nil {
				s.logger.Warn("Watch add failed", logfields.Path(p), logfields.Error(err))
			}
		}
		return nil
	})
}

// within reports whether p is dir or below it. Output written into a
// watched tree must not retrigger a sync.
func within(dir, p string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// shouldIgnoreEvent reports whether a change to path is editor noise.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasPrefix(base, "#") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx")
}
