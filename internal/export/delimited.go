package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
)

// ParseColumns resolves a comma separated list of column names or short keys.
// An empty list selects every canonical column in display order.
func ParseColumns(list string) ([]parser.Column, error) {
	if strings.TrimSpace(list) == "" {
		return append([]parser.Column(nil), parser.Columns...), nil
	}
	var out []parser.Column
	seen := map[parser.Column]bool{}
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, ok := parser.LookupColumn(name)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", strings.TrimSpace(name))
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no columns selected")
	}
	return out, nil
}

// WriteDelimited serializes rows with a header line, cols in the given order
// and cells separated by delim. Fields holding the delimiter, a quote or a
// line break are quoted with inner quotes doubled. Raw cell text is written
// unchanged so that the output parses back to the same rows.
func WriteDelimited(w io.Writer, rows []analysis.ClassifiedRow, cols []parser.Column, delim rune) error {
	if len(cols) == 0 {
		cols = parser.Columns
	}
	if delim == 0 {
		delim = ','
	}
	cw := csv.NewWriter(w)
	cw.Comma = delim
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(cols))
	for _, r := range rows {
		for i, c := range cols {
			rec[i] = r.Row.Get(c)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Text returns the delimited serialization as a string.
func Text(rows []analysis.ClassifiedRow, cols []parser.Column, delim rune) (string, error) {
	var buf bytes.Buffer
	if err := WriteDelimited(&buf, rows, cols, delim); err != nil {
		return "", err
	}
	return buf.String(), nil
}
