package analysis

import "github.com/KaramelBytes/fieldteam-cli/internal/parser"

// ClassifiedRow pairs a parsed row with its condition vector. Index is the
// row's position in the loaded table and is used to break ties.
type ClassifiedRow struct {
	Index      int        `json:"index"`
	Row        parser.Row `json:"row"`
	Conditions Conditions `json:"conditions"`
}

// Classify evaluates every row once. The result is a new slice; rows are not
// modified.
func Classify(rows []parser.Row) []ClassifiedRow {
	out := make([]ClassifiedRow, len(rows))
	for i, r := range rows {
		out[i] = ClassifiedRow{Index: i, Row: r, Conditions: Evaluate(r)}
	}
	return out
}
