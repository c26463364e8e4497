package analysis

import (
	"testing"

	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
)

func sampleRows() []ClassifiedRow {
	return Classify([]parser.Row{
		row("A", "-", "15", "0", "0"),      // dispatch
		row("B", "Retorno", "0", "0", "0"), // action
		row("C", "-", "0", "30", "0"),      // travel
		row("D", "-", "0", "0", "0"),       // none
		row("E", "-", "0", "0", "9"),       // login
		row("F", "X", "20", "0", "0"),      // action + dispatch
	})
}

func teams(rows []ClassifiedRow) string {
	s := ""
	for _, r := range rows {
		s += r.Row.Get(parser.ColEquipe)
	}
	return s
}

func TestSelectAllEnabledEqualsAny(t *testing.T) {
	rows := sampleRows()
	got := Select(rows, DefaultFilter())
	var want []ClassifiedRow
	for _, r := range rows {
		if r.Conditions.Any() {
			want = append(want, r)
		}
	}
	if teams(got) != teams(want) || teams(got) != "ABCEF" {
		t.Fatalf("all-enabled filter = %q, want %q", teams(got), teams(want))
	}
	// zero value behaves the same
	if teams(Select(rows, FilterState{})) != "ABCEF" {
		t.Fatalf("zero filter should enable every condition")
	}
}

func TestSelectSingleAndToggle(t *testing.T) {
	rows := sampleRows()
	f := DefaultFilter().Only(DispatchOver10)
	if got := teams(Select(rows, f)); got != "AF" {
		t.Fatalf("single dispatch = %q", got)
	}
	if f.ID() != "dispatchOver10" {
		t.Fatalf("ID = %q", f.ID())
	}

	f = DefaultFilter().Toggle(HasAction).Toggle(TravelOver25)
	if f.Mode != FilterAnyEnabled {
		t.Fatalf("toggle must switch to any mode")
	}
	if got := teams(Select(rows, f)); got != "AEF" {
		t.Fatalf("dispatch+login = %q", got)
	}
	if f.ID() != "dispatchOver10+loginOver5" {
		t.Fatalf("ID = %q", f.ID())
	}

	off := DefaultFilter().ToggleAll()
	if len(Select(rows, off)) != 0 || off.ID() != "none" {
		t.Fatalf("all disabled should keep nothing (id %q)", off.ID())
	}
	if on := off.ToggleAll(); on.ID() != "todos" {
		t.Fatalf("ToggleAll from none = %q", on.ID())
	}
}

func TestFilterStateIsValue(t *testing.T) {
	base := DefaultFilter()
	_ = base.Toggle(HasAction)
	if !base.IsEnabled(HasAction) {
		t.Fatalf("Toggle mutated the receiver")
	}
	single := base.Toggle(LoginOver5).Only(HasAction)
	back := single.Toggle(LoginOver5)
	if !back.IsEnabled(LoginOver5) || back.Mode != FilterAnyEnabled {
		t.Fatalf("enabled flags should survive single mode: %+v", back)
	}
}
