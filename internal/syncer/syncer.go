// Package syncer runs a complete docs-to-wiki sync: discovery, cleaning the
// destination, converting every page, and generating Home.md, _Sidebar.md
// and the assets directory.
package syncer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/wallstop/docwiki/internal/config"
	"github.com/wallstop/docwiki/internal/docmodel"
	derrors "github.com/wallstop/docwiki/internal/errors"
	"github.com/wallstop/docwiki/internal/logfields"
	"github.com/wallstop/docwiki/internal/metrics"
	"github.com/wallstop/docwiki/internal/util/sets"
	"github.com/wallstop/docwiki/internal/wiki"
)

// Options tune a Syncer. The zero value syncs for real with no metrics and
// the default logger.
type Options struct {
	DryRun   bool
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Syncer converts a docs tree into a wiki directory. Runs are sequential; a
// Syncer must not be used for two runs at once.
type Syncer struct {
	cfg      *config.Config
	dryRun   bool
	recorder metrics.Recorder
	logger   *slog.Logger
}

// New returns a Syncer for cfg.
func New(cfg *config.Config, opts Options) *Syncer {
	s := &Syncer{
		cfg:      cfg,
		dryRun:   opts.DryRun,
		recorder: opts.Recorder,
		logger:   opts.Logger,
	}
	if s.recorder == nil {
		s.recorder = metrics.NoopRecorder{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Run performs one sync. Per-file failures are logged and counted in the
// report without stopping the run. A returned error means the run could not
// start or was canceled; the report is always non-nil.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	report := newReport(uuid.NewString(), s.dryRun)
	log := s.logger.With(logfields.RunID(report.RunID))
	defer s.finish(report, log)

	if info, err := os.Stat(s.cfg.Source); err != nil || !info.IsDir() {
		report.fail(s.cfg.Source, derrors.DirectoryNotFound("source", s.cfg.Source))
		return report, report.Errors[0].Err
	}

	log.Info("Syncing documentation to wiki",
		logfields.Source(s.cfg.Source), logfields.Dest(s.cfg.Dest), logfields.DryRun(s.dryRun))

	var (
		paths, skipped []string
		err            error
	)
	s.stage("discover", log, func() { paths, skipped, err = Discover(s.cfg.Source, s.cfg.Skip, s.cfg.RootSkip) })
	if err != nil {
		report.fail(s.cfg.Source, err)
		return report, err
	}
	report.Discovered = len(paths)
	for _, p := range skipped {
		report.Skipped++
		s.recorder.IncFileResult(metrics.ResultSkipped)
		log.Debug("Skipping", logfields.Path(p))
	}

	names, collisions := wiki.NewNameTable(s.cfg.Structure, s.cfg.RootPages).WithDiscovered(paths)
	report.Collisions = collisions
	for _, c := range collisions {
		log.Warn("Page name collision; renamed",
			logfields.Path(c.Path), logfields.Page(c.Renamed), slog.String("wanted", c.Wanted))
	}
	opts := wiki.NewOptions(s.cfg, names)

	if s.cfg.CleanEnabled() {
		s.stage("clean", log, func() { err = CleanDest(s.cfg.Dest, s.dryRun, log) })
		if err != nil {
			report.fail(s.cfg.Dest, err)
			return report, err
		}
	}

	s.stage("pages", log, func() { err = s.writePages(ctx, paths, names, opts, report, log) })
	if err != nil {
		report.canceled = true
		return report, err
	}

	s.stage("home", log, func() { s.writeHome(paths, names, opts, report, log) })
	s.stage("sidebar", log, func() {
		s.write(config.SidebarFile, config.SidebarFile, wiki.GenerateSidebar(s.cfg.Sidebar, s.pages(names)), report, log)
	})
	s.stage("assets", log, func() {
		n, err := CopyAssets(s.cfg.Assets, s.cfg.Dest, s.dryRun, log)
		report.Assets = n
		if err != nil {
			report.fail(s.cfg.Assets, err)
			log.Error("Copying assets failed", logfields.Error(err))
		}
	})
	return report, nil
}

func (s *Syncer) writePages(ctx context.Context, paths []string, names *wiki.NameTable, opts wiki.Options, report *Report, log *slog.Logger) error {
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == config.IndexFile {
			continue
		}
		name, _ := names.Lookup(p)
		if name == config.HomePage {
			log.Warn("Page maps to Home; Home is generated from index.md", logfields.Path(p))
			report.Skipped++
			s.recorder.IncFileResult(metrics.ResultSkipped)
			continue
		}

		content, ok := s.convert(p, opts, report, log)
		if !ok {
			continue
		}
		s.write(p, name+".md", content, report, log)
	}
	return nil
}

func (s *Syncer) writeHome(paths []string, names *wiki.NameTable, opts wiki.Options, report *Report, log *slog.Logger) {
	if slices.Contains(paths, config.IndexFile) {
		if content, ok := s.convert(config.IndexFile, opts, report, log); ok {
			s.write(config.IndexFile, config.HomePage+".md", content, report, log)
		}
		return
	}
	s.write("(generated)", config.HomePage+".md", wiki.GenerateFallbackHome(s.cfg, s.pages(names)), report, log)
}

// convert reads and transforms one source file, recording failures.
func (s *Syncer) convert(rel string, opts wiki.Options, report *Report, log *slog.Logger) (string, bool) {
	doc, err := docmodel.ReadFile(s.cfg.Source, rel)
	if err == nil {
		var res wiki.Result
		res, err = wiki.Transform(doc, opts)
		if err == nil {
			for _, rw := range res.Rewrites {
				report.Rewrites[rw.Kind]++
				s.recorder.IncLinkRewrite(string(rw.Kind))
				log.Debug("Rewrote link", logfields.Path(rel), slog.Int("line", rw.Line+doc.LineOffset()),
					logfields.Link(rw.From), slog.String("to", rw.To))
			}
			return res.Content, true
		}
	}
	log.Error("Processing failed", logfields.Path(rel), logfields.Error(err))
	report.fail(rel, err)
	s.recorder.IncFileResult(metrics.ResultFailed)
	return "", false
}

func (s *Syncer) write(src, file, content string, report *Report, log *slog.Logger) {
	dest := filepath.Join(s.cfg.Dest, file)
	if err := writeFile(dest, content, s.dryRun); err != nil {
		log.Error("Write failed", logfields.Dest(dest), logfields.Error(err))
		report.fail(src, err)
		s.recorder.IncFileResult(metrics.ResultFailed)
		return
	}
	report.Written++
	s.recorder.IncFileResult(metrics.ResultWritten)
	if s.dryRun {
		log.Info("Would write", logfields.Source(src), logfields.Dest(dest), logfields.DryRun(true))
		return
	}
	log.Info("Wrote page", logfields.Source(src), logfields.Dest(dest))
}

// pages returns the page names present in the output, Home included.
func (s *Syncer) pages(names *wiki.NameTable) sets.Set[string] {
	pages := names.Pages()
	pages.Add(config.HomePage)
	return pages
}

func (s *Syncer) stage(name string, log *slog.Logger, fn func()) {
	start := time.Now()
	fn()
	d := time.Since(start)
	s.recorder.ObserveStageDuration(name, d)
	log.Debug("Stage complete", logfields.Stage(name), logfields.DurationMS(float64(d.Microseconds())/1000))
}

func (s *Syncer) finish(report *Report, log *slog.Logger) {
	report.End = time.Now()
	s.recorder.ObserveRunDuration(report.Duration())
	s.recorder.IncRunOutcome(report.Outcome())

	attrs := []any{
		slog.String("outcome", string(report.Outcome())),
		slog.Int("written", report.Written),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		logfields.DurationMS(float64(report.Duration().Microseconds()) / 1000),
	}
	if report.Failed > 0 {
		log.Error("Wiki sync completed with errors", attrs...)
		return
	}
	log.Info("Wiki sync complete", attrs...)
}
