package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts asc|desc (and the long forms).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return "", fmt.Errorf("invalid sort direction %q (use asc|desc)", s)
}

// SortState is the optional ordering of displayed rows. The zero value means
// insertion order.
type SortState struct {
	Column    parser.Column `json:"column,omitempty" yaml:"column,omitempty"`
	Direction Direction     `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Active reports whether a sort column is set.
func (s SortState) Active() bool { return s.Column != "" }

// Toggle selects col: repeating the current column flips the direction, a new
// column starts ascending.
func (s SortState) Toggle(col parser.Column) SortState {
	if s.Column == col {
		if s.Direction == Desc {
			return SortState{Column: col, Direction: Asc}
		}
		return SortState{Column: col, Direction: Desc}
	}
	return SortState{Column: col, Direction: Asc}
}

// Apply orders rows by the state, or returns them unchanged when inactive.
func (s SortState) Apply(rows []ClassifiedRow) []ClassifiedRow {
	if !s.Active() {
		return rows
	}
	return Sort(rows, s.Column, s.Direction)
}

// Sort returns a copy of rows ordered by col. Numbers compare numerically and
// come before text when ascending (after it when descending); text compares
// case-insensitively. Equal keys keep their relative order.
func Sort(rows []ClassifiedRow, col parser.Column, dir Direction) []ClassifiedRow {
	out := make([]ClassifiedRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return CompareCells(out[i].Row.Get(col), out[j].Row.Get(col), dir) < 0
	})
	return out
}

// CompareCells orders two raw cells for dir, returning <0, 0 or >0.
func CompareCells(a, b string, dir Direction) int {
	sign := 1
	if dir == Desc {
		sign = -1
	}
	na, okA := ParseNumber(a)
	nb, okB := ParseNumber(b)
	switch {
	case okA && okB:
		switch {
		case na < nb:
			return -sign
		case na > nb:
			return sign
		}
		return 0
	case okA:
		return -sign
	case okB:
		return sign
	}
	return sign * strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
