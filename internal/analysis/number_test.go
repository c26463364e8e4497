package analysis

import "testing"

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"(Empty)", 0, false},
		{"(empty)", 0, false},
		{"-", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"12,5", 12.5, true},
		{" 7 ", 7, true},
		{"10", 10, true},
		{"-3,25", -3.25, true},
		{"25 min", 25, true},
		{"R$ 1,5", 1.5, true},
	}
	for _, c := range cases {
		got, ok := ParseNumber(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseNumber(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestIsEmptyTokenAndFormat(t *testing.T) {
	for _, s := range []string{"", "-", "(Empty)", "(EMPTY)", " - "} {
		if !IsEmptyToken(s) {
			t.Errorf("IsEmptyToken(%q) = false", s)
		}
		if FormatValue(s) != "-" {
			t.Errorf("FormatValue(%q) = %q", s, FormatValue(s))
		}
	}
	if IsEmptyToken("0") {
		t.Fatalf("0 is a value")
	}
	if FormatValue(" 12,5 ") != "12,5" {
		t.Fatalf("FormatValue trims only: %q", FormatValue(" 12,5 "))
	}
}
