package export

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/xuri/excelize/v2"
)

const (
	// DataSheet holds the exported rows.
	DataSheet = "Equipes"
	// SummarySheet holds the condition counts.
	SummarySheet = "Resumo"
)

// conditionFill is the highlight applied to the cell that triggered a condition.
var conditionFill = map[analysis.Condition]string{
	analysis.HasAction:      "FFF2CC",
	analysis.DispatchOver10: "F8CBAD",
	analysis.TravelOver25:   "BDD7EE",
	analysis.LoginOver5:     "C6E0B4",
}

// WriteXLSX writes a workbook with the rows on the data sheet and the summary
// on a second sheet.
func WriteXLSX(w io.Writer, rep *analysis.Report, rows []analysis.ClassifiedRow, cols []parser.Column) error {
	if len(cols) == 0 {
		cols = parser.Columns
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	fills := make(map[analysis.Condition]int, len(conditionFill))
	for c, color := range conditionFill {
		id, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}})
		if err != nil {
			return fmt.Errorf("fill style: %w", err)
		}
		fills[c] = id
	}

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = string(c)
	}
	if err := f.SetSheetRow(DataSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(DataSheet, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		line := i + 2
		vals := make([]any, len(cols))
		for j, c := range cols {
			vals[j] = r.Row.Get(c)
		}
		start, _ := excelize.CoordinatesToCellName(1, line)
		if err := f.SetSheetRow(DataSheet, start, &vals); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index, err)
		}
		for _, m := range r.Conditions.Matched() {
			for j, c := range cols {
				if c != m.Column() {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(j+1, line)
				if err := f.SetCellStyle(DataSheet, cell, cell, fills[m]); err != nil {
					return fmt.Errorf("style cell %s: %w", cell, err)
				}
			}
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(cols))
	_ = f.SetColWidth(DataSheet, "A", lastCol, 18)

	if rep != nil {
		if err := writeSummary(f, rep, bold); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, rep *analysis.Report, bold int) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	lines := [][]any{
		{"Fonte", rep.Name},
		{"Filtro", analysis.FilterLabel(rep.Filter)},
		{"Total de equipes", rep.Summary.Total},
		{"Equipes filtradas", rep.Summary.Filtered},
		{"Percentual filtrado", rep.Summary.FilteredPercentage},
		{"Linhas descartadas", rep.Dropped},
		{},
		{"Condição", "Equipes"},
	}
	for _, c := range analysis.AllConditions {
		lines = append(lines, []any{analysis.Label(c), rep.Summary.Counts[c]})
	}
	lines = append(lines, []any{"Qualquer condição", rep.Summary.AnyCount})
	for i, l := range lines {
		if len(l) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &l); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	_ = f.SetCellStyle(SummarySheet, "A1", "A6", bold)
	_ = f.SetCellStyle(SummarySheet, "A8", "B8", bold)
	_ = f.SetColWidth(SummarySheet, "A", "A", 24)
	return nil
}
