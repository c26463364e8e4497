package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

type textParser struct{}

func (textParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (textParser) Parse(content []byte, opt Options) (*Table, error) {
	return ParseText(string(content), opt)
}

// Parse parses delimited text with an auto-detected delimiter.
func Parse(text string) (*Table, error) {
	return ParseText(text, Options{})
}

// ParseText parses delimited text into a Table. Blank lines are ignored. The
// delimiter is detected from the first non-blank line unless opt overrides it.
// Each line is one record: quoted cells may contain the delimiter and doubled
// quotes but never span lines, so a malformed cell only affects its own row.
func ParseText(text string, opt Options) (*Table, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	first := firstNonBlankLine(text)
	if first == "" {
		return nil, ErrEmptyInput
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(first)
	}

	var records [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, splitLine(line, delim))
	}
	if len(records) < 2 {
		return nil, ErrEmptyInput
	}
	t, err := FromRecords(records[0], records[1:], delim)
	if err != nil {
		return nil, err
	}
	t.Format = "csv"
	return t, nil
}

// splitLine reads one line with encoding/csv. A quote the reader cannot close
// within the line falls back to a plain split on delim.
func splitLine(line string, delim rune) []string {
	r := csv.NewReader(strings.NewReader(line + "\n"))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	// leading-space trimming would also swallow empty tab-separated cells
	r.TrimLeadingSpace = delim != '\t'

	rec, err := r.Read()
	if err == nil {
		if _, extra := r.Read(); errors.Is(extra, io.EOF) && !runaway(rec) {
			return rec
		}
	}
	cells := strings.Split(line, string(delim))
	for i, c := range cells {
		cells[i] = unquote(c)
	}
	return cells
}

// runaway reports a lazily quoted field that consumed the line terminator.
func runaway(rec []string) bool {
	for _, f := range rec {
		if strings.Contains(f, "\n") {
			return true
		}
	}
	return false
}

// unquote strips one layer of surrounding quotes and unescapes doubled ones.
func unquote(cell string) string {
	c := strings.TrimSpace(cell)
	c = strings.TrimPrefix(c, `"`)
	c = strings.TrimSuffix(c, `"`)
	return strings.ReplaceAll(c, `""`, `"`)
}

func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// blankRecord reports a whitespace-only line; lines made of empty cells are
// data lines and go through the Equipe check instead.
func blankRecord(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}
