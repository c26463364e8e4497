package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
)

// Condition identifies one of the four row predicates.
type Condition string

const (
	HasAction      Condition = "hasAction"
	DispatchOver10 Condition = "dispatchOver10"
	TravelOver25   Condition = "travelOver25"
	LoginOver5     Condition = "loginOver5"
)

// Thresholds are strict lower bounds: a value must be greater, not equal.
const (
	DispatchThreshold = 10.0
	TravelThreshold   = 25.0
	LoginThreshold    = 5.0
)

// AllConditions lists conditions in their canonical order.
var AllConditions = []Condition{HasAction, DispatchOver10, TravelOver25, LoginOver5}

var conditionAliases = map[string]Condition{
	"cond1":  HasAction,
	"cond2":  DispatchOver10,
	"cond3":  TravelOver25,
	"cond4":  LoginOver5,
	"acao":   HasAction,
	"action": HasAction,
	"desp":   DispatchOver10,
	"desl":   TravelOver25,
	"login":  LoginOver5,
}

// ParseCondition accepts a condition id ("dispatchOver10"), a legacy id
// ("cond2") or a short alias ("desp"), case-insensitively.
func ParseCondition(s string) (Condition, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range AllConditions {
		if strings.ToLower(string(c)) == key {
			return c, nil
		}
	}
	if c, ok := conditionAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown condition %q (use hasAction|dispatchOver10|travelOver25|loginOver5 or cond1..cond4)", s)
}

// Column returns the source column the condition reads.
func (c Condition) Column() parser.Column {
	switch c {
	case HasAction:
		return parser.ColAcao
	case DispatchOver10:
		return parser.ColDesp1
	case TravelOver25:
		return parser.ColDesl1
	case LoginOver5:
		return parser.ColLogin1
	}
	return ""
}

// Conditions is the boolean vector computed for one row.
type Conditions struct {
	HasAction      bool `json:"hasAction"`
	DispatchOver10 bool `json:"dispatchOver10"`
	TravelOver25   bool `json:"travelOver25"`
	LoginOver5     bool `json:"loginOver5"`
}

// Any reports whether at least one condition holds.
func (c Conditions) Any() bool {
	return c.HasAction || c.DispatchOver10 || c.TravelOver25 || c.LoginOver5
}

// Has returns the value of a single condition.
func (c Conditions) Has(id Condition) bool {
	switch id {
	case HasAction:
		return c.HasAction
	case DispatchOver10:
		return c.DispatchOver10
	case TravelOver25:
		return c.TravelOver25
	case LoginOver5:
		return c.LoginOver5
	}
	return false
}

// Matched lists the conditions that hold, in canonical order.
func (c Conditions) Matched() []Condition {
	var out []Condition
	for _, id := range AllConditions {
		if c.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Evaluate applies the four predicates to one row. It reads only the row's
// own cells, so repeated calls on the same row agree.
func Evaluate(row parser.Row) Conditions {
	return Conditions{
		HasAction:      !IsEmptyToken(row.Get(parser.ColAcao)),
		DispatchOver10: over(row.Get(parser.ColDesp1), DispatchThreshold),
		TravelOver25:   over(row.Get(parser.ColDesl1), TravelThreshold),
		LoginOver5:     over(row.Get(parser.ColLogin1), LoginThreshold),
	}
}

func over(raw string, limit float64) bool {
	v, ok := ParseNumber(raw)
	return ok && v > limit
}
