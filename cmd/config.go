package cmd

import (
	"fmt"

	cfgpkg "github.com/KaramelBytes/fieldteam-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set fieldteam configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "sessions_dir: %s\n", cfg.SessionsDir)
		fmt.Fprintf(out, "data_dir: %s\n", cfg.DataDir)
		fmt.Fprintf(out, "default_source: %s\n", cfg.DefaultSource)
		fmt.Fprintf(out, "refresh_interval: %s\n", cfg.RefreshInterval)
		fmt.Fprintf(out, "watch_debounce_ms: %d\n", cfg.WatchDebounceMs)
		fmt.Fprintf(out, "export_dir: %s\n", cfg.ExportDir)
		fmt.Fprintf(out, "export_prefix: %s\n", cfg.ExportPrefix)
		fmt.Fprintf(out, "export_format: %s\n", cfg.ExportFormat)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %s\n", cfg.Delimiter)
		} else {
			fmt.Fprintln(out, "delimiter: (auto)")
		}
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := cfg.Set(key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
