package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Formatter formats validation results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, wikiDir string, strict bool) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result, wikiDir string, strict bool) error {
	lines := []string{
		"Validating wiki in: " + wikiDir,
		strings.Repeat("━", 60),
	}
	for _, issue := range result.Issues {
		loc := issue.File
		if issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d", issue.File, issue.Line)
		}
		lines = append(lines, fmt.Sprintf("  %s %s: %s [%s]", issue.Severity, loc, issue.Message, issue.Rule))
	}
	if len(result.Issues) > 0 {
		lines = append(lines, "")
	}

	lines = append(lines,
		strings.Repeat("━", 60),
		"Results:",
		fmt.Sprintf("  %d file%s scanned", result.FilesTotal, pluralize(result.FilesTotal)),
	)
	if n := result.ErrorCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("  %d error%s", n, pluralize(n)))
	}
	if n := result.WarningCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("  %d warning%s", n, pluralize(n)))
	}

	counts := result.RuleCounts()
	if len(counts) > 0 {
		lines = append(lines, "", "By rule:")
		for _, rule := range slices.Sorted(maps.Keys(counts)) {
			lines = append(lines, fmt.Sprintf("  %-24s %d", rule, counts[rule]))
		}
	}
	lines = append(lines, "", finalMessage(result, strict))

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func finalMessage(result *Result, strict bool) string {
	switch {
	case result.HasErrors():
		return fmt.Sprintf("✗ Found %d error(s) and %d warning(s)", result.ErrorCount(), result.WarningCount())
	case result.HasWarnings() && strict:
		return fmt.Sprintf("✗ Found %d warning(s) (strict mode)", result.WarningCount())
	case result.HasWarnings():
		return fmt.Sprintf("⚠ Found %d warning(s)", result.WarningCount())
	default:
		return "✓ Wiki validation passed"
	}
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// JSONOutput represents the complete JSON output structure.
type JSONOutput struct {
	WikiDir      string         `json:"wiki_dir"`
	FilesTotal   int            `json:"files_total"`
	ErrorCount   int            `json:"error_count"`
	WarningCount int            `json:"warning_count"`
	Strict       bool           `json:"strict"`
	Passed       bool           `json:"passed"`
	Rules        map[string]int `json:"rules"`
	Issues       []JSONIssue    `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line,omitempty"`
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, wikiDir string, strict bool) error {
	output := JSONOutput{
		WikiDir:      wikiDir,
		FilesTotal:   result.FilesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Strict:       strict,
		Passed:       !result.Failed(strict),
		Rules:        result.RuleCounts(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			File:     issue.File,
			Line:     issue.Line,
			Severity: strings.ToLower(issue.Severity.String()),
			Rule:     issue.Rule,
			Message:  issue.Message,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return &JSONFormatter{}
	default:
		return &TextFormatter{}
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
