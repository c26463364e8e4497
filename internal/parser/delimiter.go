package parser

import "strings"

// DetectDelimiter picks the field separator from a header line by frequency.
// Tab wins only when it strictly outnumbers both comma and semicolon; otherwise
// semicolon wins over comma when it is more frequent. Comma is the fallback.
func DetectDelimiter(line string) rune {
	tabs := strings.Count(line, "\t")
	commas := strings.Count(line, ",")
	semis := strings.Count(line, ";")
	if tabs > commas && tabs > semis {
		return '\t'
	}
	if semis > commas {
		return ';'
	}
	return ','
}

// DelimiterName returns a printable name for a delimiter rune.
func DelimiterName(d rune) string {
	switch d {
	case '\t':
		return "tab"
	case ';':
		return "semicolon"
	case ',':
		return "comma"
	default:
		return string(d)
	}
}

// ParseDelimiter accepts the spellings used in flags and config files.
// An empty value means auto-detect and yields 0.
func ParseDelimiter(s string) (rune, bool) {
	switch strings.ToLower(s) {
	case "":
		return 0, true
	case ",", "comma":
		return ',', true
	case ";", "semicolon":
		return ';', true
	case "\t", "tab", `\t`:
		return '\t', true
	default:
		return 0, false
	}
}
