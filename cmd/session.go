package cmd

import (
	"fmt"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	ssSession string
	ssJSON    bool
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect sessions",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a session's source, view state and last load",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ssSession == "" {
			return fmt.Errorf("--session is required")
		}
		s, err := loadSession(ssSession)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if ssJSON {
			b, err := utils.PrettyJSON(s)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		fmt.Fprintf(out, "Session: %s (%s)\n", s.Name, s.ID)
		fmt.Fprintf(out, "Source: %s\n", s.Source)
		if s.Delimiter != "" {
			fmt.Fprintf(out, "Delimiter: %s\n", s.Delimiter)
		}
		fmt.Fprintf(out, "Filter: %s (%s)\n", analysis.FilterLabel(s.Filter), s.Filter.ID())
		if s.Sort.Active() {
			fmt.Fprintf(out, "Sort: %s (%s)\n", s.Sort.Column, s.Sort.Direction)
		} else {
			fmt.Fprintln(out, "Sort: (insertion order)")
		}
		if m := s.Meta; m != nil {
			fmt.Fprintf(out, "Last load: %s, %d teams, %d dropped, %d bytes, modified %s\n",
				m.LoadedAt.Format("2006-01-02 15:04:05"), m.Rows, m.Dropped, m.Size, m.ModTime.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintf(out, "Exports: %d\n", len(s.Exports))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionShowCmd.Flags().StringVarP(&ssSession, "session", "s", "", "session name")
	sessionShowCmd.Flags().BoolVar(&ssJSON, "json", false, "print session.json")
}
