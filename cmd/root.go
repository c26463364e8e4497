package cmd

import (
	"fmt"
	"os"
	"time"

	cfgpkg "github.com/KaramelBytes/fieldteam-cli/internal/config"
	"github.com/KaramelBytes/fieldteam-cli/internal/logging"
	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Overrides (take precedence over config if set)
	flagRefresh   time.Duration
	flagDelimiter string
	flagSheet     string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Process logger, built before every command
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fieldteam",
	Short: "fieldteam: classify field-service team reports by threshold conditions",
	Long: `fieldteam loads the daily team spreadsheet (CSV/TSV/XLSX), flags teams whose
first action, dispatch, travel or login times cross their limits, and lets you
filter, sort, export and watch the result.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (rootCmd -> loadConfig -> rootCmd).
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loadConfig()
		l, err := logging.New(cfg.LogLevel, debug)
		if err != nil {
			return err
		}
		logger = l
		return nil
	}

	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.fieldteam/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&flagRefresh, "refresh", 0, "auto-refresh poll interval, e.g. 30s or 5m (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "force the source delimiter: ',' | ';' | 'tab' (overrides detection)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "XLSX: sheet name to read (default first sheet)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("refresh") && flagRefresh > 0 {
		cfg.RefreshInterval = flagRefresh.String()
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
}

// parseOptions returns parser options from the effective config; a session
// delimiter wins over the config one.
func parseOptions(sessionDelimiter string) (parser.Options, error) {
	raw := cfg.Delimiter
	if sessionDelimiter != "" && !rootCmd.PersistentFlags().Changed("delimiter") {
		raw = sessionDelimiter
	}
	d, ok := parser.ParseDelimiter(raw)
	if !ok {
		return parser.Options{}, fmt.Errorf("unsupported delimiter: %s (use ',' | ';' | 'tab')", raw)
	}
	return parser.Options{Delimiter: d, Sheet: flagSheet}, nil
}
