package commands

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	derrors "github.com/wallstop/docwiki/internal/errors"
	"github.com/wallstop/docwiki/internal/logfields"
	"github.com/wallstop/docwiki/internal/metrics"
	"github.com/wallstop/docwiki/internal/syncer"
)

// SyncCmd implements the 'sync' command.
type SyncCmd struct {
	Source      string        `short:"s" help:"Docs source directory (overrides config)"`
	Dest        string        `short:"d" help:"Wiki output directory (overrides config)"`
	Assets      string        `short:"a" help:"Assets directory (overrides config)"`
	DryRun      bool          `short:"n" name:"dry-run" help:"Show what would be written without changing files"`
	NoClean     bool          `name:"no-clean" help:"Keep existing files in the wiki directory"`
	Watch       bool          `help:"Re-sync whenever the docs change"`
	Debounce    time.Duration `default:"300ms" help:"Quiet period before a watched re-sync"`
	MetricsFile string        `name:"metrics-file" help:"Write run metrics in Prometheus textfile format"`
}

func (s *SyncCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if s.Source != "" {
		cfg.Source = s.Source
	}
	if s.Dest != "" {
		cfg.Dest = s.Dest
	}
	if s.Assets != "" {
		cfg.Assets = s.Assets
	}
	if s.NoClean {
		clean := false
		cfg.Clean = &clean
	}

	log := g.logger()
	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		prom     *metrics.PrometheusRecorder
	)
	if s.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}
	writeMetrics := func() {
		if prom == nil {
			return
		}
		if err := prom.WriteTextfile(s.MetricsFile); err != nil {
			log.Warn("Could not write metrics file", logfields.Path(s.MetricsFile), logfields.Error(err))
		}
	}

	// Setup signal-based context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sc := syncer.New(cfg, syncer.Options{DryRun: s.DryRun, Recorder: recorder, Logger: log})

	if s.Watch {
		return sc.Watch(ctx, s.Debounce, func(report *syncer.Report, err error) {
			printReport(g.out(), report)
			writeMetrics()
			if err != nil {
				log.Error("Sync run failed", logfields.Error(err))
			}
		})
	}

	report, err := sc.Run(ctx)
	printReport(g.out(), report)
	writeMetrics()
	if err != nil {
		return err
	}
	if !report.OK() {
		return derrors.SyncIncomplete(report.Failed)
	}
	return nil
}

func printReport(w io.Writer, r *syncer.Report) {
	if r == nil {
		return
	}
	verb := "Wrote"
	if r.DryRun {
		verb = "Would write"
	}
	_, _ = fmt.Fprintf(w, "%s %d page(s): %d skipped, %d failed, %d asset(s) (%s)\n",
		verb, r.Written, r.Skipped, r.Failed, r.Assets, r.Duration().Round(time.Millisecond))
	for _, fe := range r.Errors {
		_, _ = fmt.Fprintf(w, "  ✗ %s: %v\n", fe.Path, fe.Err)
	}
}
