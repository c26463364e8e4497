package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/spf13/cobra"
)

var (
	addSessionName string
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Attach a source file to a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if addSessionName == "" {
			return fmt.Errorf("--session is required")
		}
		s, err := loadSession(addSessionName)
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		if err := s.SetSource(abs); err != nil {
			return err
		}
		// validate before saving so a broken file is never attached
		t, err := loadSource(abs, s)
		if err != nil {
			return err
		}
		if err := recordLoad(s, abs, t); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Source attached: %s (%d teams, %s)\n", filepath.Base(abs), len(t.Rows), parser.DelimiterName(t.Delimiter))
		if len(t.Missing) > 0 {
			names := make([]string, len(t.Missing))
			for i, c := range t.Missing {
				names[i] = string(c)
			}
			fmt.Fprintf(out, "⚠ Warning: columns not found: %s\n", strings.Join(names, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addSessionName, "session", "s", "", "session name")
}
