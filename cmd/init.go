package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/KaramelBytes/fieldteam-cli/internal/session"
	"github.com/KaramelBytes/fieldteam-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	initSource    string
	initDelimiter string
)

var initCmd = &cobra.Command{
	Use:   "init <session-name>",
	Short: "Initialize a new session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		root, err := defaultSessionsDir()
		if err != nil {
			return err
		}
		sessDir := filepath.Join(root, name)
		// Refuse to overwrite an existing session.
		if info, err := os.Stat(sessDir); err == nil && info.IsDir() {
			sessionFile := filepath.Join(sessDir, "session.json")
			if _, err := os.Stat(sessionFile); err == nil {
				return fmt.Errorf("session already exists at %s", sessDir)
			}
			entries, err := os.ReadDir(sessDir)
			if err != nil {
				return fmt.Errorf("inspect session directory: %w", err)
			}
			if len(entries) > 0 {
				return fmt.Errorf("directory %s already exists and is not empty; refusing to initialize session", sessDir)
			}
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat session directory: %w", err)
		}
		if initDelimiter != "" {
			if _, ok := parser.ParseDelimiter(initDelimiter); !ok {
				return fmt.Errorf("unsupported --source-delimiter: %s", initDelimiter)
			}
		}
		if err := utils.EnsureDir(sessDir); err != nil {
			return err
		}
		s := session.NewSession(name, "", sessDir)
		s.Delimiter = initDelimiter
		if initSource != "" {
			abs, err := filepath.Abs(initSource)
			if err != nil {
				return err
			}
			if err := s.SetSource(abs); err != nil {
				return err
			}
		} else if cfg.DefaultSource != "" {
			// default source may not exist yet
			if abs, err := filepath.Abs(cfg.DefaultSource); err == nil {
				s.Source = abs
			}
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Session initialized: %s\n", sessDir)
		if s.Source != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  source: %s\n", s.Source)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initSource, "source", "", "source file for the session (default from config)")
	initCmd.Flags().StringVar(&initDelimiter, "source-delimiter", "", "pin the session's delimiter: ',' | ';' | 'tab'")
}
