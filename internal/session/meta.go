package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SourceMeta describes the last loaded source file.
type SourceMeta struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
	LoadedAt time.Time `json:"loaded_at"`
	Rows     int       `json:"rows"`
	Dropped  int       `json:"dropped"`
}

// StatSource reads file metadata for path.
func StatSource(path string) (SourceMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SourceMeta{}, fmt.Errorf("stat source: %w", err)
	}
	return SourceMeta{
		Name:    filepath.Base(path),
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// SameFile reports whether m and o describe the same file contents by path,
// size and modification time.
func (m SourceMeta) SameFile(o SourceMeta) bool {
	return m.Path == o.Path && m.Size == o.Size && m.ModTime.Equal(o.ModTime)
}

// ExportRef is one export written from the session.
type ExportRef struct {
	ID       string    `json:"id"`
	Path     string    `json:"path"`
	Format   string    `json:"format"`
	FilterID string    `json:"filter_id"`
	Rows     int       `json:"rows"`
	At       time.Time `json:"at"`
}
