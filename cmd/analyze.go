package cmd

import (
	"fmt"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/KaramelBytes/fieldteam-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	anaSession    string
	anaOutputPath string
	anaOnly       string
	anaWithout    string
	anaSort       string
	anaDesc       bool
	anaLimit      int
	anaJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Classify a team report and print the filtered table",
	Long: `Loads a CSV/TSV/XLSX team report, evaluates the four conditions for every team
and prints the summary and the teams kept by the filter.

Without a file the session's source (or the configured default source) is used.
Filter and sort flags apply to this run only; use 'filter' and 'sort' to change
a session's saved view.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var s *session.Session
		if anaSession != "" {
			ss, err := loadSession(anaSession)
			if err != nil {
				return err
			}
			s = ss
		}
		opt, err := analyzeOptions(s)
		if err != nil {
			return err
		}
		path, err := sourceFor(args, s)
		if err != nil {
			return err
		}
		t, err := loadSource(path, s)
		if err != nil {
			return err
		}
		if s != nil && len(args) == 0 {
			if err := recordLoad(s, path, t); err != nil {
				return err
			}
			opt.Sort = pickSort(opt.Sort, s.Sort)
		}
		rep := analysis.Analyze(t, opt)
		return formatAndWriteOutput(rep, outputOptions{
			JSON:       anaJSON,
			OutputPath: anaOutputPath,
			Writer:     cmd.OutOrStdout(),
		})
	},
}

// analyzeOptions builds report options from the session view and the flags.
func analyzeOptions(s *session.Session) (analysis.Options, error) {
	opt := analysis.DefaultOptions()
	if s != nil {
		opt = s.Options(0)
	}
	opt.Limit = anaLimit
	if anaWithout != "" {
		conds, err := parseConditionList(anaWithout)
		if err != nil {
			return opt, err
		}
		f := opt.Filter.AnyOf()
		for _, c := range conds {
			if f.IsEnabled(c) {
				f = f.Toggle(c)
			}
		}
		opt.Filter = f
	}
	if anaOnly != "" {
		c, err := analysis.ParseCondition(anaOnly)
		if err != nil {
			return opt, err
		}
		opt.Filter = opt.Filter.Only(c)
	}
	if anaSort != "" {
		col, ok := parser.LookupColumn(anaSort)
		if !ok {
			return opt, fmt.Errorf("unknown column %q (use equipe|inicio|login|acao|status|login1|desp1|desl1)", anaSort)
		}
		dir := analysis.Asc
		if anaDesc {
			dir = analysis.Desc
		}
		opt.Sort = analysis.SortState{Column: col, Direction: dir}
	}
	return opt, nil
}

// pickSort keeps a flag-selected sort over the session's saved one.
func pickSort(flag, saved analysis.SortState) analysis.SortState {
	if anaSort != "" {
		return flag
	}
	return saved
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaSession, "session", "s", "", "session whose source and view to use")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().StringVar(&anaOnly, "only", "", "show only teams matching one condition (hasAction|dispatchOver10|travelOver25|loginOver5 or cond1..cond4)")
	analyzeCmd.Flags().StringVar(&anaWithout, "without", "", "comma-separated conditions to disable in any-of mode")
	analyzeCmd.Flags().StringVar(&anaSort, "sort", "", "sort by column (name or key: equipe|inicio|login|acao|status|login1|desp1|desl1)")
	analyzeCmd.Flags().BoolVar(&anaDesc, "desc", false, "sort descending")
	analyzeCmd.Flags().IntVar(&anaLimit, "limit", 0, "maximum teams to list (0 = all)")
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "print JSON instead of Markdown")
}
