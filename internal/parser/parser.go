package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyInput indicates the source has no data line after its header.
	ErrEmptyInput = errors.New("empty input: no header and data lines")
	// ErrMissingRequiredColumn indicates the header does not carry the Equipe column.
	ErrMissingRequiredColumn = errors.New("missing required column " + string(ColEquipe))
	// ErrUnsupported indicates a format is not supported.
	ErrUnsupported = errors.New("unsupported source format")
)

// LoadError is the single failure reported for a source that could not be loaded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("load: %v", e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Row maps canonical columns to trimmed raw cell text.
type Row map[Column]string

// Get returns the cell for c, or "" when absent.
func (r Row) Get(c Column) string { return r[c] }

// Table is the result of parsing one source.
type Table struct {
	Name      string
	Format    string // csv|xlsx
	Delimiter rune
	Header    []string
	Columns   ColumnMap
	Rows      []Row
	// Dropped counts data lines discarded for a blank Equipe.
	Dropped  int
	Missing  []Column
	Warnings []string
}

// Options controls source parsing.
type Options struct {
	// Delimiter overrides detection when non-zero.
	Delimiter rune
	// Sheet selects an XLSX worksheet by name; empty means the first sheet.
	Sheet string
}

// Parser defines a source parser implementation.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte, opt Options) (*Table, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ParseFile selects a parser by filename and returns the parsed table.
// Failures are reported as *LoadError.
func ParseFile(path string, opt Options) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("read file: %w", err)}
	}
	t, err := ParseContent(filepath.Base(path), data, opt)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return t, nil
}

// ParseContent parses in-memory content, choosing the parser by name.
func ParseContent(name string, content []byte, opt Options) (*Table, error) {
	lower := strings.ToLower(name)
	for _, ext := range []string{".xls", ".ods", ".docx", ".pdf"} {
		if strings.HasSuffix(lower, ext) {
			return nil, fmt.Errorf("%s: %w", ext, ErrUnsupported)
		}
	}
	var p Parser = textParser{}
	for _, cand := range registry {
		if cand.CanParse(name) {
			p = cand
			break
		}
	}
	t, err := p.Parse(content, opt)
	if err != nil {
		return nil, err
	}
	t.Name = name
	return t, nil
}

// FromRecords maps already split records onto the canonical columns. header is
// the first line; records are the data lines in source order.
func FromRecords(header []string, records [][]string, delim rune) (*Table, error) {
	clean := make([]string, len(header))
	for i, h := range header {
		clean[i] = strings.TrimSpace(strings.ReplaceAll(h, `"`, ""))
	}
	cols := ResolveColumns(clean)
	if !cols.Resolved(ColEquipe) {
		return nil, fmt.Errorf("%w (header: %s)", ErrMissingRequiredColumn, strings.Join(clean, " | "))
	}
	t := &Table{Delimiter: delim, Header: clean, Columns: cols}
	for _, c := range cols.Missing() {
		t.Missing = append(t.Missing, c)
		t.Warnings = append(t.Warnings, fmt.Sprintf("column %q not found in header", string(c)))
	}
	for _, rec := range records {
		row := make(Row, len(Columns))
		for _, c := range Columns {
			v := ""
			if idx := cols.Index(c); idx >= 0 && idx < len(rec) {
				v = strings.TrimSpace(rec[idx])
			}
			row[c] = v
		}
		if row[ColEquipe] == "" {
			t.Dropped++
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	if t.Dropped > 0 {
		t.Warnings = append(t.Warnings, fmt.Sprintf("dropped %d row(s) without %s", t.Dropped, ColEquipe))
	}
	return t, nil
}

func init() {
	// Register default parsers
	Register(textParser{})
	Register(xlsxParser{})
}
