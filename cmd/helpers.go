package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/KaramelBytes/fieldteam-cli/internal/session"
	"github.com/KaramelBytes/fieldteam-cli/internal/utils"
	"go.uber.org/zap"
)

func defaultSessionsDir() (string, error) {
	dir := cfg.SessionsDir
	if dir == "" {
		dir = cfgDefaultSessionsDir()
	}
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = strings.TrimPrefix(dir, "~")
		dir = strings.TrimPrefix(dir, string(os.PathSeparator))
		dir = strings.TrimPrefix(dir, "/")
		dir = filepath.Join(home, dir)
	}
	dir = filepath.Clean(dir)
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func cfgDefaultSessionsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".fieldteam", "sessions")
	}
	return filepath.Join(home, ".fieldteam", "sessions")
}

// resolveSessionDir accepts a session name under the sessions dir, or a path
// to a session directory (or any file inside one).
func resolveSessionDir(name string) (string, error) {
	if name == "" {
		return "", errors.New("session name is required")
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return utils.FindSessionRoot(name)
	}
	root, err := defaultSessionsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

func loadSession(name string) (*session.Session, error) {
	dir, err := resolveSessionDir(name)
	if err != nil {
		return nil, err
	}
	return session.LoadSession(dir)
}

// sourceFor picks the file to load: an explicit argument wins, then the
// session's source, then the configured default source.
func sourceFor(args []string, s *session.Session) (string, error) {
	switch {
	case len(args) > 0 && args[0] != "":
		return args[0], nil
	case s != nil && s.Source != "":
		return s.Source, nil
	case cfg.DefaultSource != "":
		return cfg.DefaultSource, nil
	}
	return "", errors.New("no source file: pass a file or use --session")
}

// loadSource parses path with the effective delimiter and sheet options.
func loadSource(path string, s *session.Session) (*parser.Table, error) {
	delim := ""
	if s != nil {
		delim = s.Delimiter
	}
	opt, err := parseOptions(delim)
	if err != nil {
		return nil, err
	}
	t, err := parser.ParseFile(path, opt)
	if err != nil {
		logger.Warn("load failed", zap.String("source", path), zap.Error(err))
		return nil, err
	}
	logger.Info("source loaded",
		zap.String("source", path),
		zap.String("delimiter", parser.DelimiterName(t.Delimiter)),
		zap.Int("rows", len(t.Rows)),
		zap.Int("dropped", t.Dropped),
	)
	for _, c := range t.Missing {
		logger.Debug("column missing", zap.String("source", path), zap.String("column", string(c)))
	}
	return t, nil
}

// recordLoad stores source metadata on the session after a successful load.
func recordLoad(s *session.Session, path string, t *parser.Table) error {
	if s == nil {
		return nil
	}
	meta, err := session.StatSource(path)
	if err != nil {
		return err
	}
	meta.LoadedAt = time.Now()
	meta.Rows = len(t.Rows)
	meta.Dropped = t.Dropped
	s.RecordLoad(meta)
	return s.Save()
}

// parseConditionList reads a comma separated list of condition names.
func parseConditionList(list string) ([]analysis.Condition, error) {
	var out []analysis.Condition
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := analysis.ParseCondition(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// printSummary writes the counter lines shown after every load.
func printSummary(w io.Writer, rep *analysis.Report) {
	fmt.Fprintf(w, "%s: %d teams", displayName(rep.Name), rep.Summary.Total)
	if rep.Dropped > 0 {
		fmt.Fprintf(w, " (%d dropped)", rep.Dropped)
	}
	fmt.Fprintln(w)
	for _, c := range analysis.AllConditions {
		fmt.Fprintf(w, "  %-14s %-16s %d\n", c, analysis.Label(c), rep.Summary.Counts[c])
	}
	fmt.Fprintf(w, "  Filter: %s\n", analysis.FilterLabel(rep.Filter))
	fmt.Fprintf(w, "  Showing %d of %d teams (%.1f%%)\n", rep.Summary.Filtered, rep.Summary.Total, rep.Summary.FilteredPercentage)
}

func displayName(n string) string {
	if n == "" {
		return "(source)"
	}
	return n
}

// reportJSON is the machine-readable form of a report.
func reportJSON(rep *analysis.Report) ([]byte, error) {
	rows := make([]map[string]any, 0, len(rep.Shown()))
	for _, r := range rep.Shown() {
		cells := make(map[string]string, len(parser.Columns))
		for _, c := range parser.Columns {
			cells[string(c)] = r.Row.Get(c)
		}
		rows = append(rows, map[string]any{
			"index":      r.Index,
			"cells":      cells,
			"conditions": r.Conditions,
		})
	}
	out := map[string]any{
		"source":    rep.Name,
		"filter":    rep.Filter.ID(),
		"sort":      rep.Sort,
		"summary":   rep.Summary,
		"dropped":   rep.Dropped,
		"warnings":  rep.Warnings,
		"rows":      rows,
		"delimiter": parser.DelimiterName(rep.Delimiter),
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal output: %w", err)
	}
	return b, nil
}

type outputOptions struct {
	JSON       bool
	Quiet      bool
	OutputPath string
	Writer     io.Writer
}

func formatAndWriteOutput(rep *analysis.Report, opts outputOptions) error {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	var content []byte
	if opts.JSON {
		b, err := reportJSON(rep)
		if err != nil {
			return err
		}
		content = b
	} else {
		content = []byte(rep.Markdown())
	}

	if opts.OutputPath == "" {
		fmt.Fprintln(w, string(content))
		return nil
	}
	if err := os.WriteFile(opts.OutputPath, content, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if !opts.Quiet {
		fmt.Fprintf(w, "✓ Wrote analysis to %s\n", opts.OutputPath)
	}
	return nil
}
