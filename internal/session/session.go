package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/KaramelBytes/fieldteam-cli/internal/utils"
	"github.com/google/uuid"
)

const (
	sessionFileName = "session.json"
)

// Session is the persisted view state for one source: which source is loaded,
// how rows are filtered and sorted, and what was exported.
type Session struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Source    string                `json:"source"`
	Delimiter string                `json:"delimiter,omitempty"`
	Filter    analysis.FilterState  `json:"filter"`
	Sort      analysis.SortState    `json:"sort"`
	Meta      *SourceMeta           `json:"meta,omitempty"`
	Exports   map[string]*ExportRef `json:"exports"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`

	// Not serialized: on-disk location of the session.json
	rootDir string `json:"-"`
}

// NewSession constructs an in-memory session. Call Save() to persist.
func NewSession(name, source, rootDir string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		Filter:    analysis.DefaultFilter(),
		Exports:   make(map[string]*ExportRef),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		rootDir:   rootDir,
	}
}

// LoadSession loads a session.json from the provided directory.
func LoadSession(dir string) (*Session, error) {
	path := filepath.Join(dir, sessionFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("session not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if s.Filter.Mode == "" {
		s.Filter = analysis.DefaultFilter()
	}
	if s.Exports == nil {
		s.Exports = make(map[string]*ExportRef)
	}
	s.rootDir = dir
	return &s, nil
}

// RootDir returns the on-disk session directory path.
func (s *Session) RootDir() string { return s.rootDir }

// Save writes session.json using atomic write.
func (s *Session) Save() error {
	if s.rootDir == "" {
		return errors.New("session root directory not set")
	}
	if err := utils.EnsureDir(s.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	s.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(s)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(s.rootDir, sessionFileName), data)
}

// SetSource points the session at a new source file. View state is kept
// except for the sort, which resets with new data.
func (s *Session) SetSource(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("source path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	s.Source = path
	s.Sort = analysis.SortState{}
	s.Meta = nil
	s.UpdatedAt = time.Now()
	return nil
}

// ToggleFilter flips one condition in any-of mode.
func (s *Session) ToggleFilter(c analysis.Condition) {
	s.Filter = s.Filter.Toggle(c)
	s.UpdatedAt = time.Now()
}

// OnlyFilter switches to single-condition mode.
func (s *Session) OnlyFilter(c analysis.Condition) {
	s.Filter = s.Filter.Only(c)
	s.UpdatedAt = time.Now()
}

// AllFilters enables every condition if any is disabled, otherwise disables all.
func (s *Session) AllFilters() {
	s.Filter = s.Filter.ToggleAll()
	s.UpdatedAt = time.Now()
}

// SortBy selects col, flipping the direction when it is already selected.
func (s *Session) SortBy(col parser.Column) {
	s.Sort = s.Sort.Toggle(col)
	s.UpdatedAt = time.Now()
}

// ClearSort restores insertion order.
func (s *Session) ClearSort() {
	s.Sort = analysis.SortState{}
	s.UpdatedAt = time.Now()
}

// RecordLoad stores metadata for a fresh load. A changed source resets the sort.
func (s *Session) RecordLoad(m SourceMeta) {
	if s.Meta != nil && !s.Meta.SameFile(m) {
		s.Sort = analysis.SortState{}
	}
	s.Meta = &m
	s.UpdatedAt = time.Now()
}

// AddExport records a written export and returns its id.
func (s *Session) AddExport(path, format string, rows int) string {
	id := uuid.NewString()
	if s.Exports == nil {
		s.Exports = make(map[string]*ExportRef)
	}
	s.Exports[id] = &ExportRef{
		ID:       id,
		Path:     path,
		Format:   format,
		FilterID: s.Filter.ID(),
		Rows:     rows,
		At:       time.Now(),
	}
	s.UpdatedAt = time.Now()
	return id
}

// ExportList returns exports oldest first.
func (s *Session) ExportList() []*ExportRef {
	out := make([]*ExportRef, 0, len(s.Exports))
	for _, e := range s.Exports {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At.Equal(out[j].At) {
			return out[i].ID < out[j].ID
		}
		return out[i].At.Before(out[j].At)
	})
	return out
}

// Options returns report options for the session's view state.
func (s *Session) Options(limit int) analysis.Options {
	return analysis.Options{Filter: s.Filter, Sort: s.Sort, Limit: limit}
}
