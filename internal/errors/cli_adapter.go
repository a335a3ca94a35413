package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// ExitCodeFor determines the exit code for an error. Every failure maps to 1
// so CI and pre-commit callers only need to test for non-zero.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	dwe, ok := As(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return dwe.Error()
	}

	msg := dwe.Message
	if dwe.Category != CategoryConfig && dwe.Category != CategoryValidation {
		msg = fmt.Sprintf("%s: %s", dwe.Category, dwe.Message)
	}
	if path, ok := dwe.Context["path"]; ok {
		msg = fmt.Sprintf("%s: %v", msg, path)
	}
	if dwe.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, dwe.Cause)
	}
	return msg
}

// HandleError prints err and exits the process with the mapped exit code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.out, "%s\n", a.FormatError(err))
	os.Exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}
	if dwe, ok := As(err); ok {
		return dwe.Category == CategoryInternal || dwe.Category == CategoryGit
	}
	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	dwe, ok := As(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}

	attrs := []slog.Attr{slog.String("category", string(dwe.Category))}
	keys := make([]string, 0, len(dwe.Context))
	for k := range dwe.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, dwe.Context[k]))
	}
	if dwe.Cause != nil {
		attrs = append(attrs, slog.String("error", dwe.Cause.Error()))
	}

	a.logger.LogAttrs(context.Background(), slogLevel(dwe.Severity), dwe.Message, attrs...)
}

func slogLevel(severity ErrorSeverity) slog.Level {
	if severity == SeverityWarning {
		return slog.LevelWarn
	}
	return slog.LevelError
}
