package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultInterval is the modification-time poll period.
const DefaultInterval = 5 * time.Minute

// ChangeFunc is called when the source changed. reason is "event" or "poll".
type ChangeFunc func(ctx context.Context, reason string) error

// ChangedFunc reports whether the source differs from the loaded data.
type ChangedFunc func() (bool, error)

// Options configure a Watcher.
type Options struct {
	// Interval between modification-time checks; 0 uses DefaultInterval.
	Interval time.Duration
	// Debounce collapses bursts of file events; 0 uses 500ms.
	Debounce time.Duration
	// Changed backs the poll. When nil only file events trigger reloads.
	Changed ChangedFunc
	Log     *zap.Logger
}

// Stats counts watcher activity.
type Stats struct {
	Events   int
	Polls    int
	Reloads  int
	Errors   int
	LastFire time.Time
}

// Watcher triggers a reload when a source file changes, from file events
// and from a periodic modification-time poll.
type Watcher struct {
	mu       sync.Mutex
	fs       *fsnotify.Watcher
	path     string
	onChange ChangeFunc
	opt      Options
	log      *zap.Logger
	pending  time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stats    Stats
}

// New creates a watcher for path. Call Start to begin.
func New(path string, onChange ChangeFunc, opt Options) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watch: change callback is nil")
	}
	if opt.Interval <= 0 {
		opt.Interval = DefaultInterval
	}
	if opt.Debounce <= 0 {
		opt.Debounce = 500 * time.Millisecond
	}
	log := opt.Log
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     abs,
		onChange: onChange,
		opt:      opt,
		log:      log.With(zap.String("source", abs)),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.log.Warn("file events unavailable, polling only", zap.Error(err))
	} else if err := fw.Add(filepath.Dir(w.path)); err != nil {
		// editors replace files by rename, so the directory is watched
		w.log.Warn("watch directory failed, polling only", zap.Error(err))
		_ = fw.Close()
	} else {
		w.fs = fw
	}
	w.log.Info("watching", zap.Duration("interval", w.opt.Interval), zap.Bool("events", w.fs != nil))
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if w.fs != nil {
		if err := w.fs.Close(); err != nil {
			w.log.Error("close watcher", zap.Error(err))
		}
	}
	w.log.Info("watcher stopped")
}

// Done is closed when the loop exits.
func (w *Watcher) Done() <-chan struct{} { return w.doneCh }

// Stats returns a copy of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	debounceTicker := time.NewTicker(100 * time.Millisecond)
	defer debounceTicker.Stop()
	pollTicker := time.NewTicker(w.opt.Interval)
	defer pollTicker.Stop()

	var events <-chan fsnotify.Event
	var errs <-chan error
	if w.fs != nil {
		events = w.fs.Events
		errs = w.fs.Errors
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			w.handleEvent(ev)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.log.Warn("watch error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		case <-debounceTicker.C:
			w.flush(ctx, time.Now())
		case <-pollTicker.C:
			if _, err := w.Poll(ctx); err != nil {
				w.log.Warn("poll failed", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	w.log.Debug("file event", zap.String("op", ev.Op.String()))
	w.mu.Lock()
	w.stats.Events++
	w.pending = time.Now()
	w.mu.Unlock()
}

// flush fires a pending event once the debounce window has passed.
func (w *Watcher) flush(ctx context.Context, now time.Time) {
	w.mu.Lock()
	if w.pending.IsZero() || now.Sub(w.pending) < w.opt.Debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()
	w.fire(ctx, "event")
}

// Poll checks the modification time and reloads when the source changed.
func (w *Watcher) Poll(ctx context.Context) (bool, error) {
	if w.opt.Changed == nil {
		return false, nil
	}
	w.mu.Lock()
	w.stats.Polls++
	w.mu.Unlock()
	changed, err := w.opt.Changed()
	if err != nil {
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		return false, err
	}
	if !changed {
		return false, nil
	}
	w.fire(ctx, "poll")
	return true, nil
}

func (w *Watcher) fire(ctx context.Context, reason string) {
	err := w.onChange(ctx, reason)
	w.mu.Lock()
	w.stats.LastFire = time.Now()
	if err != nil {
		w.stats.Errors++
	} else {
		w.stats.Reloads++
	}
	w.mu.Unlock()
	if err != nil {
		w.log.Warn("reload failed", zap.String("reason", reason), zap.Error(err))
		return
	}
	w.log.Debug("reloaded", zap.String("reason", reason))
}
