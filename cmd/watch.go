package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/session"
	"github.com/KaramelBytes/fieldteam-cli/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	wSession string
	wTimeout time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Reload and re-summarize a team report whenever it changes",
	Long: `Loads the source, prints the summary and keeps running. The source is reloaded
when the file is written (debounced) and on every refresh interval when its
modification time changed. A failed reload keeps the previous data.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var s *session.Session
		if wSession != "" {
			ss, err := loadSession(wSession)
			if err != nil {
				return err
			}
			s = ss
		}
		path, err := sourceFor(args, s)
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		delim := ""
		if s != nil {
			delim = s.Delimiter
		}
		popt, err := parseOptions(delim)
		if err != nil {
			return err
		}
		interval, err := cfg.Interval()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		live := session.NewLive(abs, popt, logger)
		reload := func(ctx context.Context, reason string) error {
			snap, err := live.Reload()
			if err != nil {
				fmt.Fprintf(out, "⚠ Warning: reload failed, keeping previous data: %v\n", err)
				return err
			}
			opt := analysis.DefaultOptions()
			if s != nil {
				if len(args) == 0 {
					s.RecordLoad(snap.Meta)
					if err := s.Save(); err != nil {
						logger.Warn("save session", zap.Error(err))
					}
				}
				opt = s.Options(0)
			}
			rep, err := live.Report(opt)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n[%s] %s (v%d)\n", time.Now().Format("15:04:05"), reason, snap.Version)
			printSummary(out, rep)
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if wTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, wTimeout)
			defer cancel()
		}

		if err := reload(ctx, "initial load"); err != nil {
			return err
		}
		w, err := watch.New(abs, reload, watch.Options{
			Interval: interval,
			Debounce: cfg.Debounce(),
			Changed:  live.Changed,
			Log:      logger,
		})
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "Watching %s (poll every %s, Ctrl+C to stop)\n", abs, interval)
		<-ctx.Done()
		w.Stop()
		st := w.Stats()
		fmt.Fprintf(out, "Stopped after %d reload(s), %d error(s)\n", st.Reloads, st.Errors)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&wSession, "session", "s", "", "session whose source and view to use")
	watchCmd.Flags().DurationVar(&wTimeout, "timeout", 0, "stop after this long (0 = until interrupted)")
}
