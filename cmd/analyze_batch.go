package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	abOutputDir string
	abOnly      string
	abWithout   string
	abQuiet     bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Classify several team reports with progress and per-file summaries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		files, err := utils.ExpandGlobs(args)
		if err != nil {
			return err
		}
		var existing []string
		for _, f := range files {
			if _, err := os.Stat(f); err == nil {
				existing = append(existing, f)
			}
		}
		if len(existing) == 0 {
			return fmt.Errorf("no input files matched")
		}
		files = existing
		sort.Strings(files)

		opt := analysis.DefaultOptions()
		if abWithout != "" {
			conds, err := parseConditionList(abWithout)
			if err != nil {
				return err
			}
			for _, c := range conds {
				if opt.Filter.IsEnabled(c) {
					opt.Filter = opt.Filter.Toggle(c)
				}
			}
		}
		if abOnly != "" {
			c, err := analysis.ParseCondition(abOnly)
			if err != nil {
				return err
			}
			opt.Filter = opt.Filter.Only(c)
		}
		if abOutputDir != "" {
			if err := utils.EnsureDir(abOutputDir); err != nil {
				return err
			}
		}

		var failed []string
		total := len(files)
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			t, err := loadSource(path, nil)
			if err != nil {
				fmt.Fprintf(out, "⚠ Warning: %v\n", err)
				failed = append(failed, filepath.Base(path))
				continue
			}
			rep := analysis.Analyze(t, opt)
			if !abQuiet {
				printSummary(out, rep)
			}
			if abOutputDir == "" {
				continue
			}
			outFile := uniqueSummaryPath(abOutputDir, path)
			if err := os.WriteFile(outFile, []byte(rep.Markdown()), 0o644); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if !abQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", filepath.Base(outFile))
			}
		}
		if len(failed) > 0 {
			return errors.New("failed to load: " + strings.Join(failed, ", "))
		}
		return nil
	},
}

// uniqueSummaryPath returns <dir>/<base>.summary.md, adding __N when taken.
func uniqueSummaryPath(dir, src string) string {
	base := filepath.Base(src)
	safe := strings.TrimSuffix(base, filepath.Ext(base))
	outFile := filepath.Join(dir, safe+".summary.md")
	if _, statErr := os.Stat(outFile); statErr != nil {
		return outFile
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d.summary.md", safe, idx))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			if !abQuiet {
				fmt.Fprintf(os.Stderr, "⚠ Detected existing summary, writing to %s to avoid overwrite.\n", filepath.Base(cand))
			}
			return cand
		}
	}
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutputDir, "output-dir", "", "directory to write one Markdown summary per file")
	analyzeBatchCmd.Flags().StringVar(&abOnly, "only", "", "show only teams matching one condition")
	analyzeBatchCmd.Flags().StringVar(&abWithout, "without", "", "comma-separated conditions to disable in any-of mode")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
