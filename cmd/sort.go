package cmd

import (
	"fmt"

	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/spf13/cobra"
)

var (
	srtSession string
	srtClear   bool
)

var sortCmd = &cobra.Command{
	Use:   "sort <column>",
	Short: "Sort a session's table by a column",
	Long: `Selects the sort column of a session. Selecting the current column again flips
the direction; a new column starts ascending. Numbers sort before text when
ascending and after it when descending.

Columns: equipe, inicio, login, acao, status, login1, desp1, desl1 (or the header name).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if srtSession == "" {
			return fmt.Errorf("--session is required")
		}
		s, err := loadSession(srtSession)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case srtClear:
			s.ClearSort()
		case len(args) == 1:
			col, ok := parser.LookupColumn(args[0])
			if !ok {
				return fmt.Errorf("unknown column %q", args[0])
			}
			s.SortBy(col)
		default:
			return fmt.Errorf("column is required unless --clear is set")
		}
		if err := s.Save(); err != nil {
			return err
		}
		if !s.Sort.Active() {
			fmt.Fprintln(out, "✓ Sort cleared (insertion order)")
			return nil
		}
		fmt.Fprintf(out, "✓ Sort: %s (%s)\n", s.Sort.Column, s.Sort.Direction)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().StringVarP(&srtSession, "session", "s", "", "session name")
	sortCmd.Flags().BoolVar(&srtClear, "clear", false, "restore insertion order")
}
