package parser_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "equipes.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	return path
}

func TestParseFileXLSX(t *testing.T) {
	path := writeWorkbook(t, "Equipes", [][]any{
		{"Equipe", "Ação", "1º Desp", "1º Desl.", "1º Login"},
		{"T1", "-", 15, 5, 2},
		{"", "Reparo", 1, 1, 1},
		{"T3", "Reparo", "12,5", "(Empty)", 7},
	})
	tbl, err := parser.ParseFile(path, parser.Options{})
	if err != nil {
		t.Fatalf("parse xlsx: %v", err)
	}
	if tbl.Format != "xlsx" || tbl.Delimiter != ',' {
		t.Fatalf("format/delimiter = %q/%q", tbl.Format, tbl.Delimiter)
	}
	if len(tbl.Rows) != 2 || tbl.Dropped != 1 {
		t.Fatalf("rows = %d dropped = %d", len(tbl.Rows), tbl.Dropped)
	}
	if got := tbl.Rows[0].Get(parser.ColDesp1); got != "15" {
		t.Fatalf("desp = %q, want 15", got)
	}
	if got := tbl.Rows[1].Get(parser.ColDesl1); got != "(Empty)" {
		t.Fatalf("desl = %q", got)
	}
}

func TestParseFileXLSXSheetSelection(t *testing.T) {
	path := writeWorkbook(t, "Dados", [][]any{
		{"Equipe", "Login"},
		{"T1", "08:00"},
	})
	if _, err := parser.ParseFile(path, parser.Options{Sheet: "dados"}); err != nil {
		t.Fatalf("parse by name: %v", err)
	}
	_, err := parser.ParseFile(path, parser.Options{Sheet: "Other"})
	if err == nil || !strings.Contains(err.Error(), "Available sheets: Dados") {
		t.Fatalf("expected sheet not found error, got %v", err)
	}
}
