package analysis

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
)

func TestAggregateCountsIgnoreFilter(t *testing.T) {
	rows := sampleRows()
	for _, f := range []FilterState{DefaultFilter(), DefaultFilter().Only(LoginOver5), DefaultFilter().ToggleAll()} {
		s := Aggregate(rows, f)
		if s.Total != 6 || s.Counts[DispatchOver10] != 2 || s.Counts[HasAction] != 2 || s.Counts[TravelOver25] != 1 || s.Counts[LoginOver5] != 1 {
			t.Fatalf("counts for %s: %+v", f.ID(), s)
		}
		if s.AnyCount != 5 {
			t.Fatalf("any = %d", s.AnyCount)
		}
	}
	s := Aggregate(rows, DefaultFilter().Only(DispatchOver10))
	if s.Filtered != 2 || s.FilteredPercentage != 33.3 {
		t.Fatalf("filtered = %d (%.2f%%)", s.Filtered, s.FilteredPercentage)
	}
}

func TestPercentage(t *testing.T) {
	if Percentage(0, 0) != 0 {
		t.Fatalf("zero total")
	}
	if Percentage(1, 8) != 12.5 || Percentage(2, 3) != 66.7 || Percentage(5, 5) != 100 {
		t.Fatalf("rounding: %v %v %v", Percentage(1, 8), Percentage(2, 3), Percentage(5, 5))
	}
}

func TestReportMarkdown(t *testing.T) {
	rows := sampleRows()
	opt := DefaultOptions()
	opt.Sort = SortState{Column: "1º Desp", Direction: Desc}
	opt.Limit = 3
	rep := NewReport(nil, rows, opt)
	if len(rep.Visible) != 5 || len(rep.Shown()) != 3 {
		t.Fatalf("visible=%d shown=%d", len(rep.Visible), len(rep.Shown()))
	}
	if rep.Shown()[0].Row.Get("Equipe") != "F" {
		t.Fatalf("desc sort should put F first, got %s", teams(rep.Shown()))
	}
	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"Teams: 6",
		"[CONDITIONS]",
		"1º Desp > 10 (dispatchOver10): 2",
		"Filter: Todas as Condições",
		"Showing 5 of 6 teams (83.3%)",
		"[TEAMS]",
		"**20**",
		"(2 more rows not listed)",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestReportMarkdownTruncatesOnRuneBoundary(t *testing.T) {
	acao := strings.Repeat("ç", 76) + "ãção final"
	rows := Classify([]parser.Row{row("T1", acao, "0", "0", "0")})
	md := NewReport(nil, rows, DefaultOptions()).Markdown()
	if !utf8.ValidString(md) {
		t.Fatalf("markdown is not valid UTF-8")
	}
	want := strings.Repeat("ç", 76) + "ã..."
	if !strings.Contains(md, want) {
		t.Fatalf("expected truncated cell %q in:\n%s", want, md)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Ação", 80); got != "Ação" {
		t.Fatalf("short value changed: %q", got)
	}
	if got := truncate("Calendário", 8); got != "Calen..." {
		t.Fatalf("truncate = %q", got)
	}
}
