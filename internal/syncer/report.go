package syncer

import (
	"time"

	"github.com/wallstop/docwiki/internal/metrics"
	"github.com/wallstop/docwiki/internal/wiki"
)

// FileError records a source file that could not be converted or written.
type FileError struct {
	Path string
	Err  error
}

// Report summarizes one sync run.
type Report struct {
	RunID  string
	DryRun bool
	Start  time.Time
	End    time.Time

	Discovered int
	Written    int
	Skipped    int
	Failed     int
	Assets     int

	Rewrites   map[wiki.LinkKind]int
	Collisions []wiki.Collision
	Errors     []FileError

	canceled bool
}

func newReport(runID string, dryRun bool) *Report {
	return &Report{
		RunID:    runID,
		DryRun:   dryRun,
		Start:    time.Now(),
		Rewrites: make(map[wiki.LinkKind]int),
	}
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// Outcome classifies the run for metrics and exit status.
func (r *Report) Outcome() metrics.OutcomeLabel {
	switch {
	case r.canceled:
		return metrics.OutcomeCanceled
	case r.Failed > 0 && r.Written == 0:
		return metrics.OutcomeFailed
	case r.Failed > 0:
		return metrics.OutcomePartial
	default:
		return metrics.OutcomeSuccess
	}
}

// OK reports whether every file was processed without error.
func (r *Report) OK() bool {
	return r.Outcome() == metrics.OutcomeSuccess
}

func (r *Report) fail(path string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, FileError{Path: path, Err: err})
}
