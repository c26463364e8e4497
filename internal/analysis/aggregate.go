package analysis

import "math"

// Summary holds the counts shown above the team table.
type Summary struct {
	Total int `json:"total"`
	// Counts are taken over all rows, whatever the filter.
	Counts             map[Condition]int `json:"counts"`
	AnyCount           int               `json:"any"`
	Filtered           int               `json:"filtered"`
	FilteredPercentage float64           `json:"filtered_percentage"`
}

// Aggregate counts conditions over the full row set and the rows kept by f.
func Aggregate(rows []ClassifiedRow, f FilterState) Summary {
	s := Summary{Total: len(rows), Counts: make(map[Condition]int, len(AllConditions))}
	for _, c := range AllConditions {
		s.Counts[c] = 0
	}
	for _, r := range rows {
		for _, c := range AllConditions {
			if r.Conditions.Has(c) {
				s.Counts[c]++
			}
		}
		if r.Conditions.Any() {
			s.AnyCount++
		}
		if f.Matches(r.Conditions) {
			s.Filtered++
		}
	}
	s.FilteredPercentage = Percentage(s.Filtered, s.Total)
	return s
}

// Percentage returns part/total*100 rounded to one decimal, or 0 when total is 0.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(total)) / 10
}
