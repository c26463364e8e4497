package cmd

import (
	"fmt"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	fltSession string
	fltToggle  string
	fltOnly    string
	fltAll     bool
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Change a session's condition filter",
	Long: `Changes which teams a session shows.

  --toggle <cond>   flip one condition in any-of mode
  --only <cond>     show only teams matching one condition
  --all             enable every condition, or disable all when all are enabled

Conditions: hasAction, dispatchOver10, travelOver25, loginOver5 (or cond1..cond4).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if fltSession == "" {
			return fmt.Errorf("--session is required")
		}
		n := 0
		for _, set := range []bool{fltToggle != "", fltOnly != "", fltAll} {
			if set {
				n++
			}
		}
		s, err := loadSession(fltSession)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if n == 0 {
			fmt.Fprintf(out, "Filter: %s (%s)\n", analysis.FilterLabel(s.Filter), s.Filter.ID())
			return nil
		}
		if n > 1 {
			return fmt.Errorf("specify exactly one of --toggle, --only or --all")
		}
		switch {
		case fltAll:
			s.AllFilters()
		case fltOnly != "":
			c, err := analysis.ParseCondition(fltOnly)
			if err != nil {
				return err
			}
			s.OnlyFilter(c)
		default:
			c, err := analysis.ParseCondition(fltToggle)
			if err != nil {
				return err
			}
			s.ToggleFilter(c)
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Filter: %s (%s)\n", analysis.FilterLabel(s.Filter), s.Filter.ID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().StringVarP(&fltSession, "session", "s", "", "session name")
	filterCmd.Flags().StringVar(&fltToggle, "toggle", "", "condition to flip in any-of mode")
	filterCmd.Flags().StringVar(&fltOnly, "only", "", "single condition to show")
	filterCmd.Flags().BoolVar(&fltAll, "all", false, "toggle all conditions")
}
