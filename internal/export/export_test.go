package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/xuri/excelize/v2"
)

func fixtureRows() []analysis.ClassifiedRow {
	return analysis.Classify([]parser.Row{
		{parser.ColEquipe: "T1", parser.ColAcao: "-", parser.ColDesp1: "15", parser.ColDesl1: "5", parser.ColLogin1: "2"},
		{parser.ColEquipe: "T2; norte", parser.ColAcao: `Retorno "urgente"`, parser.ColDesp1: "3,5", parser.ColStatus: "Em rota,\nparado"},
		{parser.ColEquipe: "T3", parser.ColAcao: "(Empty)", parser.ColDesl1: "40", parser.ColInicio: "07:30"},
	})
}

func TestWriteDelimitedRoundTrip(t *testing.T) {
	rows := fixtureRows()
	for _, delim := range []rune{',', ';', '\t'} {
		text, err := Text(rows, nil, delim)
		if err != nil {
			t.Fatalf("%q: export: %v", delim, err)
		}
		tbl, err := parser.Parse(text)
		if err != nil {
			t.Fatalf("%q: reparse: %v\n%s", delim, err, text)
		}
		if tbl.Delimiter != delim {
			t.Fatalf("detected %q, want %q", tbl.Delimiter, delim)
		}
		if len(tbl.Rows) != len(rows) {
			t.Fatalf("%q: rows = %d, want %d", delim, len(tbl.Rows), len(rows))
		}
		for i, r := range rows {
			for _, c := range parser.Columns {
				if got, want := tbl.Rows[i].Get(c), r.Row.Get(c); got != want {
					t.Fatalf("%q row %d col %s: got %q want %q", delim, i, c, got, want)
				}
			}
		}
		again := analysis.Classify(tbl.Rows)
		for i := range rows {
			if again[i].Conditions != rows[i].Conditions {
				t.Fatalf("conditions changed for row %d", i)
			}
		}
	}
}

func TestWriteDelimitedColumnOrder(t *testing.T) {
	cols, err := ParseColumns("desp1, equipe,desp1")
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	text, err := Text(fixtureRows()[:1], cols, ';')
	if err != nil {
		t.Fatal(err)
	}
	want := "1º Desp;Equipe\n15;T1\n"
	if text != want {
		t.Fatalf("got %q want %q", text, want)
	}
	if _, err := ParseColumns("nope"); err == nil {
		t.Fatalf("expected unknown column error")
	}
	all, _ := ParseColumns("")
	if len(all) != len(parser.Columns) {
		t.Fatalf("empty list should select all columns")
	}
}

func TestFileName(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	if got := FileName("", "dispatchOver10", ts, "csv"); got != "equipes_filtradas_dispatchOver10_1700000000123.csv" {
		t.Fatalf("got %q", got)
	}
	if got := FileName("x", "hasAction+loginOver5", ts, ".XLSX"); got != "x_hasAction+loginOver5_1700000000123.xlsx" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	rows := fixtureRows()
	rep := analysis.NewReport(&parser.Table{Name: "dados.csv", Format: "csv", Delimiter: ';'}, rows, analysis.DefaultOptions())
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rep, rep.Visible, nil); err != nil {
		t.Fatalf("write: %v", err)
	}

	tbl, err := parser.ParseXLSX(buf.Bytes(), DataSheet)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(tbl.Rows) != 3 || tbl.Rows[1].Get(parser.ColAcao) != `Retorno "urgente"` {
		t.Fatalf("unexpected rows: %+v", tbl.Rows)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	summary, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	var flat []string
	for _, r := range summary {
		flat = append(flat, strings.Join(r, "="))
	}
	joined := strings.Join(flat, "\n")
	for _, want := range []string{"Fonte=dados.csv", "Total de equipes=3", "1º Desl > 25=1"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("summary missing %q:\n%s", want, joined)
		}
	}
}
