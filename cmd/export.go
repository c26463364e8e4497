package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/export"
	"github.com/KaramelBytes/fieldteam-cli/internal/session"
	"github.com/KaramelBytes/fieldteam-cli/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	expSession string
	expFormat  string
	expColumns string
	expOutDir  string
	expOutput  string
	expOnly    string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the filtered teams as CSV or XLSX",
	Long: `Writes the teams kept by the current filter, in the current sort order, to
<export_dir>/<prefix>_<filter-id>_<timestamp>.csv (or .xlsx).

CSV output keeps the source delimiter and quotes fields that contain it. XLSX
output adds a summary sheet and highlights the cells that triggered a condition.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var s *session.Session
		if expSession != "" {
			ss, err := loadSession(expSession)
			if err != nil {
				return err
			}
			s = ss
		}
		format := strings.ToLower(expFormat)
		if format == "" {
			format = strings.ToLower(cfg.ExportFormat)
		}
		if format == "" {
			format = "csv"
		}
		if format != "csv" && format != "xlsx" {
			return fmt.Errorf("unsupported --format: %s (use csv|xlsx)", expFormat)
		}
		cols, err := export.ParseColumns(expColumns)
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
		opt := analysis.DefaultOptions()
		if s != nil {
			opt = s.Options(0)
		}
		if expOnly != "" {
			c, err := analysis.ParseCondition(expOnly)
			if err != nil {
				return err
			}
			opt.Filter = opt.Filter.Only(c)
		}
		rep := analysis.Analyze(t, opt)

		var buf bytes.Buffer
		switch format {
		case "xlsx":
			err = export.WriteXLSX(&buf, rep, rep.Visible, cols)
		default:
			err = export.WriteDelimited(&buf, rep.Visible, cols, t.Delimiter)
		}
		if err != nil {
			return err
		}

		outPath := expOutput
		if outPath == "" {
			dir := expOutDir
			if dir == "" {
				dir = cfg.ExportDir
			}
			if err := utils.EnsureDir(dir); err != nil {
				return err
			}
			outPath = filepath.Join(dir, export.FileName(cfg.ExportPrefix, rep.Filter.ID(), time.Now(), format))
		}
		if err := utils.SafeWriteFile(outPath, buf.Bytes()); err != nil {
			return err
		}
		logger.Info("export written",
			zap.String("path", outPath),
			zap.String("format", format),
			zap.String("filter", rep.Filter.ID()),
			zap.Int("rows", len(rep.Visible)),
		)
		if s != nil {
			s.AddExport(outPath, format, len(rep.Visible))
			if err := s.Save(); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d of %d teams to %s\n", len(rep.Visible), rep.Summary.Total, outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&expSession, "session", "s", "", "session whose source and view to export")
	exportCmd.Flags().StringVar(&expFormat, "format", "", "export format: csv|xlsx (default from config)")
	exportCmd.Flags().StringVar(&expColumns, "columns", "", "comma-separated columns in output order (default all)")
	exportCmd.Flags().StringVar(&expOutDir, "out-dir", "", "directory for the export (default export_dir)")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "exact output path (overrides naming)")
	exportCmd.Flags().StringVar(&expOnly, "only", "", "export only teams matching one condition")
}
