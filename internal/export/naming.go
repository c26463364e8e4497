package export

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPrefix is used when no export prefix is configured.
const DefaultPrefix = "equipes_filtradas"

// FileName builds "<prefix>_<filter-id>_<timestamp>.<ext>" with the
// timestamp in Unix milliseconds.
func FileName(prefix, filterID string, ts time.Time, ext string) string {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultPrefix
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "csv"
	}
	return fmt.Sprintf("%s_%s_%d.%s", prefix, sanitize(filterID), ts.UnixMilli(), ext)
}

// sanitize keeps ids safe for file names.
func sanitize(s string) string {
	if s == "" {
		return "todos"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '-'
		}
		return r
	}, s)
}
