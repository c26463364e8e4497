package analysis

import "strings"

// FilterMode selects how a FilterState matches rows.
type FilterMode string

const (
	// FilterAnyEnabled keeps rows matching at least one enabled condition.
	FilterAnyEnabled FilterMode = "any"
	// FilterSingle keeps rows matching one named condition.
	FilterSingle FilterMode = "single"
)

// FilterState describes which rows are displayed. A nil Enabled map means
// every condition is enabled.
type FilterState struct {
	Mode    FilterMode         `json:"mode" yaml:"mode"`
	Single  Condition          `json:"single,omitempty" yaml:"single,omitempty"`
	Enabled map[Condition]bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// DefaultFilter enables all four conditions in any-of mode.
func DefaultFilter() FilterState {
	return FilterState{Mode: FilterAnyEnabled, Enabled: enabledMap(true)}
}

// Only matches rows where c holds. Enabled flags are kept so that
// switching back to any-of mode restores them.
func (f FilterState) Only(c Condition) FilterState {
	out := f.clone()
	out.Mode = FilterSingle
	out.Single = c
	return out
}

// AnyOf returns to any-of mode with the current enabled flags.
func (f FilterState) AnyOf() FilterState {
	out := f.clone()
	out.Mode = FilterAnyEnabled
	out.Single = ""
	return out
}

// Toggle flips one condition's enabled flag and switches to any-of mode.
func (f FilterState) Toggle(c Condition) FilterState {
	out := f.AnyOf()
	out.Enabled[c] = !out.IsEnabled(c)
	return out
}

// ToggleAll enables every condition when any is disabled, otherwise disables
// them all.
func (f FilterState) ToggleAll() FilterState {
	allOn := true
	for _, c := range AllConditions {
		if !f.IsEnabled(c) {
			allOn = false
			break
		}
	}
	return FilterState{Mode: FilterAnyEnabled, Enabled: enabledMap(!allOn)}
}

// IsEnabled reports whether c takes part in any-of matching.
func (f FilterState) IsEnabled(c Condition) bool {
	if f.Enabled == nil {
		return true
	}
	return f.Enabled[c]
}

// Matches applies the filter to one condition vector.
func (f FilterState) Matches(c Conditions) bool {
	if f.Mode == FilterSingle {
		return c.Has(f.Single)
	}
	for _, id := range AllConditions {
		if f.IsEnabled(id) && c.Has(id) {
			return true
		}
	}
	return false
}

// ID names the filter for file names and reports: the condition id in single
// mode, "todos" when every condition is enabled, otherwise the enabled ids
// joined with '+', or "none".
func (f FilterState) ID() string {
	if f.Mode == FilterSingle {
		return string(f.Single)
	}
	var on []string
	for _, c := range AllConditions {
		if f.IsEnabled(c) {
			on = append(on, string(c))
		}
	}
	switch len(on) {
	case len(AllConditions):
		return "todos"
	case 0:
		return "none"
	}
	return strings.Join(on, "+")
}

func (f FilterState) clone() FilterState {
	out := FilterState{Mode: f.Mode, Single: f.Single, Enabled: make(map[Condition]bool, len(AllConditions))}
	for _, c := range AllConditions {
		out.Enabled[c] = f.IsEnabled(c)
	}
	return out
}

func enabledMap(on bool) map[Condition]bool {
	m := make(map[Condition]bool, len(AllConditions))
	for _, c := range AllConditions {
		m[c] = on
	}
	return m
}

// Select returns the rows the filter keeps, in input order. The input slice is
// not modified.
func Select(rows []ClassifiedRow, f FilterState) []ClassifiedRow {
	out := make([]ClassifiedRow, 0, len(rows))
	for _, r := range rows {
		if f.Matches(r.Conditions) {
			out = append(out, r)
		}
	}
	return out
}
