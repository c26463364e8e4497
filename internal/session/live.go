package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"go.uber.org/zap"
)

// Snapshot is one complete loaded row set. It is never modified after it is
// published.
type Snapshot struct {
	Table   *parser.Table
	Rows    []analysis.ClassifiedRow
	Meta    SourceMeta
	Version int
}

// Live holds the current snapshot of a source. Readers always see either the
// previous complete snapshot or the new one.
type Live struct {
	path string
	opt  parser.Options
	log  *zap.Logger

	mu  sync.Mutex // serializes reloads
	cur atomic.Pointer[Snapshot]
}

// NewLive prepares a holder for path. Nothing is loaded until Reload.
func NewLive(path string, opt parser.Options, log *zap.Logger) *Live {
	if log == nil {
		log = zap.NewNop()
	}
	return &Live{path: path, opt: opt, log: log}
}

// Path returns the watched source path.
func (l *Live) Path() string { return l.path }

// Current returns the published snapshot, or nil before the first load.
func (l *Live) Current() *Snapshot { return l.cur.Load() }

// Reload parses and classifies the source, then publishes the result. On
// failure the previous snapshot stays current and the error is returned.
func (l *Live) Reload() (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	meta, err := StatSource(l.path)
	if err != nil {
		return nil, &parser.LoadError{Source: l.path, Err: err}
	}
	t, err := parser.ParseFile(l.path, l.opt)
	if err != nil {
		l.log.Warn("reload failed", zap.String("source", l.path), zap.Error(err))
		return nil, err
	}
	meta.LoadedAt = time.Now()
	meta.Rows = len(t.Rows)
	meta.Dropped = t.Dropped

	next := &Snapshot{Table: t, Rows: analysis.Classify(t.Rows), Meta: meta, Version: 1}
	if prev := l.cur.Load(); prev != nil {
		next.Version = prev.Version + 1
	}
	l.cur.Store(next)
	l.log.Info("source loaded",
		zap.String("source", l.path),
		zap.String("delimiter", parser.DelimiterName(t.Delimiter)),
		zap.Int("rows", meta.Rows),
		zap.Int("dropped", meta.Dropped),
		zap.Int("version", next.Version),
	)
	for _, c := range t.Missing {
		l.log.Debug("column missing", zap.String("source", l.path), zap.String("column", string(c)))
	}
	return next, nil
}

// Changed reports whether the source differs from the current snapshot by
// size or modification time. Before the first load it reports true.
func (l *Live) Changed() (bool, error) {
	meta, err := StatSource(l.path)
	if err != nil {
		return false, err
	}
	cur := l.cur.Load()
	if cur == nil {
		return true, nil
	}
	return !cur.Meta.SameFile(meta), nil
}

// Report builds a report over the current snapshot.
func (l *Live) Report(opt analysis.Options) (*analysis.Report, error) {
	cur := l.cur.Load()
	if cur == nil {
		return nil, errors.New("no data loaded")
	}
	return analysis.NewReport(cur.Table, cur.Rows, opt), nil
}
