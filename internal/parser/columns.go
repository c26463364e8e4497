package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Column is a canonical column name recognized regardless of header spelling.
type Column string

const (
	ColEquipe Column = "Equipe"
	ColInicio Column = "Inicio Calendário"
	ColLogin  Column = "Login"
	ColAcao   Column = "Ação"
	ColStatus Column = "Status Desloc"
	ColLogin1 Column = "1º Login"
	ColDesp1  Column = "1º Desp"
	ColDesl1  Column = "1º Desl."
)

// Columns lists the canonical columns in their display order.
var Columns = []Column{ColEquipe, ColInicio, ColLogin, ColAcao, ColStatus, ColLogin1, ColDesp1, ColDesl1}

// shortKeys are the compact column identifiers accepted on the command line.
var shortKeys = map[string]Column{
	"equipe": ColEquipe,
	"inicio": ColInicio,
	"login":  ColLogin,
	"acao":   ColAcao,
	"status": ColStatus,
	"login1": ColLogin1,
	"desp1":  ColDesp1,
	"desl1":  ColDesl1,
}

// Key returns the short identifier of the column (e.g. "desp1").
func (c Column) Key() string {
	for k, v := range shortKeys {
		if v == c {
			return k
		}
	}
	return NormalizeHeader(string(c))
}

// LookupColumn resolves a short key ("desl1") or any header spelling of a
// canonical column ("1° Desl", "ACAO") to the canonical column.
func LookupColumn(name string) (Column, bool) {
	if c, ok := shortKeys[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c, true
	}
	want := NormalizeHeader(name)
	if want == "" {
		return "", false
	}
	for _, c := range Columns {
		if NormalizeHeader(string(c)) == want {
			return c, true
		}
	}
	return "", false
}

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader folds a header token for tolerant matching: quotes and
// surrounding space are dropped, case and diacritics are folded, the ordinal
// indicator and degree sign compare equal, inner whitespace collapses and a
// trailing dot is ignored.
func NormalizeHeader(h string) string {
	s := strings.ReplaceAll(h, `"`, "")
	s = strings.NewReplacer("º", "o", "°", "o", "ª", "a").Replace(s)
	if folded, _, err := transform.String(foldMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return strings.TrimRight(s, ".")
}

// ColumnMap maps each canonical column to its header index (-1 when unresolved).
type ColumnMap map[Column]int

// Index returns the header index for c, or -1.
func (m ColumnMap) Index(c Column) int {
	if idx, ok := m[c]; ok {
		return idx
	}
	return -1
}

// Resolved reports whether c was found in the header.
func (m ColumnMap) Resolved(c Column) bool { return m.Index(c) >= 0 }

// ResolveColumns maps canonical columns onto header positions. The first
// matching header wins when a file repeats a column.
func ResolveColumns(header []string) ColumnMap {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = NormalizeHeader(h)
	}
	m := make(ColumnMap, len(Columns))
	for _, c := range Columns {
		m[c] = -1
		want := NormalizeHeader(string(c))
		for i, h := range normalized {
			if h == want {
				m[c] = i
				break
			}
		}
	}
	return m
}

// Missing returns canonical columns the header did not provide, in display order.
func (m ColumnMap) Missing() []Column {
	var out []Column
	for _, c := range Columns {
		if !m.Resolved(c) {
			out = append(out, c)
		}
	}
	return out
}
