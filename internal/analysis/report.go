package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
)

// Options controls report building.
type Options struct {
	Filter FilterState
	Sort   SortState
	// Limit caps the rows listed in the report; 0 means all.
	Limit int
}

// DefaultOptions returns the any-of filter with every condition enabled and
// insertion order.
func DefaultOptions() Options {
	return Options{Filter: DefaultFilter()}
}

// Report is a markdown-friendly view of a classified table.
type Report struct {
	Name      string
	Format    string
	Delimiter rune
	Dropped   int
	Summary   Summary
	Filter    FilterState
	Sort      SortState
	// Visible are the filtered and sorted rows, before Limit.
	Visible  []ClassifiedRow
	Limit    int
	Warnings []string
}

// Analyze classifies a parsed table and builds a report.
func Analyze(t *parser.Table, opt Options) *Report {
	return NewReport(t, Classify(t.Rows), opt)
}

// NewReport builds a report from rows classified earlier from t.
func NewReport(t *parser.Table, rows []ClassifiedRow, opt Options) *Report {
	if opt.Filter.Mode == "" {
		opt.Filter.Mode = FilterAnyEnabled
	}
	rep := &Report{
		Summary: Aggregate(rows, opt.Filter),
		Filter:  opt.Filter,
		Sort:    opt.Sort,
		Visible: opt.Sort.Apply(Select(rows, opt.Filter)),
		Limit:   opt.Limit,
	}
	if t != nil {
		rep.Name = t.Name
		rep.Format = t.Format
		rep.Delimiter = t.Delimiter
		rep.Dropped = t.Dropped
		rep.Warnings = append(rep.Warnings, t.Warnings...)
	}
	return rep
}

// Shown returns the rows listed in the report after Limit.
func (r *Report) Shown() []ClassifiedRow {
	if r.Limit > 0 && len(r.Visible) > r.Limit {
		return r.Visible[:r.Limit]
	}
	return r.Visible
}

// Label is the display text of a condition.
func Label(c Condition) string {
	switch c {
	case HasAction:
		return `Ação ≠ "-"`
	case DispatchOver10:
		return "1º Desp > 10"
	case TravelOver25:
		return "1º Desl > 25"
	case LoginOver5:
		return "1º Login > 5"
	}
	return string(c)
}

// FilterLabel describes a filter state for humans.
func FilterLabel(f FilterState) string {
	if f.Mode == FilterSingle {
		return Label(f.Single)
	}
	id := f.ID()
	if id == "todos" {
		return "Todas as Condições"
	}
	var parts []string
	for _, c := range AllConditions {
		if f.IsEnabled(c) {
			parts = append(parts, Label(c))
		}
	}
	if len(parts) == 0 {
		return "(nenhuma condição)"
	}
	return strings.Join(parts, " | ")
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Format == "csv" {
		b.WriteString(fmt.Sprintf("Delimiter: %s\n", parser.DelimiterName(r.Delimiter)))
	}
	b.WriteString(fmt.Sprintf("Teams: %d\n", r.Summary.Total))
	if r.Dropped > 0 {
		b.WriteString(fmt.Sprintf("Dropped: %d (blank %s)\n", r.Dropped, parser.ColEquipe))
	}

	b.WriteString("\n[CONDITIONS]\n")
	for _, c := range AllConditions {
		mark := " "
		if r.Filter.Mode == FilterSingle && r.Filter.Single == c || r.Filter.Mode != FilterSingle && r.Filter.IsEnabled(c) {
			mark = "x"
		}
		b.WriteString(fmt.Sprintf("- [%s] %s (%s): %d\n", mark, Label(c), c, r.Summary.Counts[c]))
	}
	b.WriteString(fmt.Sprintf("- any condition: %d\n", r.Summary.AnyCount))
	b.WriteString(fmt.Sprintf("Filter: %s\n", FilterLabel(r.Filter)))
	if r.Sort.Active() {
		b.WriteString(fmt.Sprintf("Sort: %s (%s)\n", r.Sort.Column, r.Sort.Direction))
	}
	b.WriteString(fmt.Sprintf("Showing %d of %d teams (%.1f%%)\n", r.Summary.Filtered, r.Summary.Total, r.Summary.FilteredPercentage))

	shown := r.Shown()
	if len(shown) > 0 {
		b.WriteString("\n[TEAMS]\n")
		b.WriteString("| ")
		for i, c := range parser.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(string(c))
		}
		b.WriteString(" | Conditions |\n|")
		for range parser.Columns {
			b.WriteString(" --- |")
		}
		b.WriteString(" --- |\n")
		for _, row := range shown {
			b.WriteString("| ")
			for i, c := range parser.Columns {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := safeVal(FormatValue(row.Row.Get(c)))
				val = truncate(val, 80)
				if highlighted(row.Conditions, c) {
					val = "**" + val + "**"
				}
				b.WriteString(val)
			}
			b.WriteString(" | ")
			ids := make([]string, 0, 4)
			for _, m := range row.Conditions.Matched() {
				ids = append(ids, string(m))
			}
			b.WriteString(strings.Join(ids, ", "))
			b.WriteString(" |\n")
		}
		if len(shown) < len(r.Visible) {
			b.WriteString(fmt.Sprintf("(%d more rows not listed)\n", len(r.Visible)-len(shown)))
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// highlighted reports whether column c is the one that triggered a condition.
func highlighted(cs Conditions, c parser.Column) bool {
	for _, id := range cs.Matched() {
		if id.Column() == c {
			return true
		}
	}
	return false
}

// truncate shortens s to at most n runes, ending with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
