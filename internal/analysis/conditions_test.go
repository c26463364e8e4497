package analysis

import (
	"testing"

	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
)

func row(equipe, acao, desp, desl, login string) parser.Row {
	return parser.Row{
		parser.ColEquipe: equipe,
		parser.ColAcao:   acao,
		parser.ColDesp1:  desp,
		parser.ColDesl1:  desl,
		parser.ColLogin1: login,
	}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		row  parser.Row
		want Conditions
	}{
		{"dispatch only", row("T1", "-", "15", "5", "2"), Conditions{DispatchOver10: true}},
		{"all placeholders", row("T2", "(Empty)", "-", "", "(empty)"), Conditions{}},
		{"boundaries are strict", row("T3", "-", "10", "25", "5"), Conditions{}},
		{"just over", row("T4", "-", "10,1", "25,5", "5,01"), Conditions{DispatchOver10: true, TravelOver25: true, LoginOver5: true}},
		{"action text", row("T5", "Retorno", "0", "0", "0"), Conditions{HasAction: true}},
		{"non numeric", row("T6", "", "abc", "n/a", "x"), Conditions{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Evaluate(c.row)
			if got != c.want {
				t.Fatalf("Evaluate = %+v, want %+v", got, c.want)
			}
			if again := Evaluate(c.row); again != got {
				t.Fatalf("second evaluation differs: %+v vs %+v", again, got)
			}
		})
	}
}

func TestParseCondition(t *testing.T) {
	cases := map[string]Condition{
		"hasAction":      HasAction,
		"DISPATCHOVER10": DispatchOver10,
		"cond3":          TravelOver25,
		"login":          LoginOver5,
		" desp ":         DispatchOver10,
	}
	for in, want := range cases {
		got, err := ParseCondition(in)
		if err != nil || got != want {
			t.Errorf("ParseCondition(%q) = %q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseCondition("cond9"); err == nil {
		t.Fatalf("expected error for unknown condition")
	}
}

func TestConditionsMatched(t *testing.T) {
	c := Conditions{HasAction: true, LoginOver5: true}
	m := c.Matched()
	if len(m) != 2 || m[0] != HasAction || m[1] != LoginOver5 {
		t.Fatalf("Matched = %v", m)
	}
	if !c.Any() || (Conditions{}).Any() {
		t.Fatalf("Any mismatch")
	}
	if DispatchOver10.Column() != parser.ColDesp1 || LoginOver5.Column() != parser.ColLogin1 {
		t.Fatalf("unexpected condition columns")
	}
}
