package preview

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	"git.home.luguber.info/inful/essential/internal/logfields"
)

// debouncer runs fn once events stop arriving for delay.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	fn    func()
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// shouldIgnoreEvent filters editor swap files and other noise.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".tmp"):
		return true
	}
	return false
}

// Watch reloads the fixture whenever its file changes, until ctx is done. The directory is
// watched rather than the file so editors that replace the file on save are handled. Watch
// returns immediately when the server uses the built-in demo fixture.
func (s *Server) Watch(ctx context.Context) error {
	if s.fixturePath == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "create fixture watcher").Build()
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.fixturePath)
	if err := watcher.Add(dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "watch fixture directory").
			WithContext("path", dir).Build()
	}
	s.logger.Info("Watching fixture", logfields.Path(s.fixturePath))

	reload := newDebouncer(s.cfg.Preview.Debounce, func() {
		if err := s.Reload(); err != nil {
			s.logger.Warn("Fixture reload failed", logfields.Path(s.fixturePath), logfields.Error(err))
		}
	})
	defer reload.stop()

	name := filepath.Base(s.fixturePath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name || shouldIgnoreEvent(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				s.logger.Debug("Fixture changed", logfields.Path(event.Name), "op", event.Op.String())
				reload.trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("Fixture watcher error", logfields.Error(err))
		}
	}
}
