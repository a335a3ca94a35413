package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeySource     = "source"
	KeyDest       = "dest"
	KeyPath       = "path"
	KeyPage       = "page"
	KeyLink       = "link"
	KeyRule       = "rule"
	KeyCount      = "count"
	KeyDryRun     = "dry_run"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Dest(p string) slog.Attr         { return slog.String(KeyDest, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Page(name string) slog.Attr      { return slog.String(KeyPage, name) }
func Link(href string) slog.Attr      { return slog.String(KeyLink, href) }
func Rule(name string) slog.Attr      { return slog.String(KeyRule, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DryRun(b bool) slog.Attr         { return slog.Bool(KeyDryRun, b) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
