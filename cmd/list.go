package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/fieldteam-cli/internal/session"
	"github.com/spf13/cobra"
)

var (
	listExports  bool
	listSessName string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, or the exports of one session",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !listExports {
			return listAllSessions(cmd)
		}
		if listSessName == "" {
			return fmt.Errorf("--session is required when using --exports")
		}
		s, err := loadSession(listSessName)
		if err != nil {
			return err
		}
		exports := s.ExportList()
		if len(exports) == 0 {
			fmt.Fprintln(out, "(no exports)")
			return nil
		}
		for _, e := range exports {
			fmt.Fprintf(out, "- %s: %s [%s, %s, %d rows] %s\n", e.ID, e.Path, e.Format, e.FilterID, e.Rows, e.At.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func listAllSessions(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	root, err := defaultSessionsDir()
	if err != nil {
		return err
	}
	dirs, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	found := false
	for _, e := range dirs {
		if !e.IsDir() {
			continue
		}
		s, err := session.LoadSession(filepath.Join(root, e.Name()))
		if err != nil {
			continue
		}
		found = true
		rows := "-"
		if s.Meta != nil {
			rows = fmt.Sprintf("%d teams", s.Meta.Rows)
		}
		fmt.Fprintf(out, "- %s: %s [%s, %s]\n", e.Name(), s.Source, s.Filter.ID(), rows)
	}
	if !found {
		fmt.Fprintln(out, "(no sessions)")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listExports, "exports", false, "list exports of a session")
	listCmd.Flags().StringVarP(&listSessName, "session", "s", "", "session name for --exports")
}
