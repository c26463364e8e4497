package parser

import "testing"

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		line string
		want rune
	}{
		{"A\tB\tC", '\t'},
		{"A,B;C;D", ';'},
		{"A,B,C", ','},
		{"Equipe", ','},
		{"A\tB,C", ','},
		{"A\tB\t;C;D", ';'},
		{"A\t\tB,C;D", '\t'},
	}
	for _, tt := range tests {
		if got := DetectDelimiter(tt.line); got != tt.want {
			t.Errorf("DetectDelimiter(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestParseDelimiter(t *testing.T) {
	for in, want := range map[string]rune{"": 0, ",": ',', "comma": ',', ";": ';', "tab": '\t', "\t": '\t', `\t`: '\t'} {
		got, ok := ParseDelimiter(in)
		if !ok || got != want {
			t.Errorf("ParseDelimiter(%q) = %q,%v want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseDelimiter("|"); ok {
		t.Errorf("expected '|' to be rejected")
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line  string
		delim rune
		want  []string
	}{
		{`a;"b;c";d`, ';', []string{"a", "b;c", "d"}},
		{`"x ""y""",z`, ',', []string{`x "y"`, "z"}},
		{`T1;"open;15`, ';', []string{"T1", "open", "15"}},
		{"\"T1\" \t-\t15", '\t', []string{"T1", "-", "15"}},
		{"a\t\tb", '\t', []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		got := splitLine(tt.line, tt.delim)
		if len(got) != len(tt.want) {
			t.Errorf("splitLine(%q) = %q, want %q", tt.line, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitLine(%q)[%d] = %q, want %q", tt.line, i, got[i], tt.want[i])
			}
		}
	}
}
