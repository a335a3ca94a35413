// Package validate checks a generated wiki directory for content that will
// not render correctly on a GitHub wiki, and checks the sidebar and page
// mapping for consistency with the docs tree.
package validate

import (
	"cmp"
	"slices"
)

// Severity indicates the importance level of a validation issue.
type Severity int

const (
	// SeverityWarning indicates issues that should be fixed but only fail
	// validation in strict mode.
	SeverityWarning Severity = iota + 1
	// SeverityError indicates issues that always fail validation.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Rule identifiers.
const (
	RuleIndentedFence         = "indented-fence"
	RuleUnconvertedTab        = "unconverted-tab"
	RuleUnconvertedAdmonition = "unconverted-admonition"
	RuleUnconvertedIcon       = "unconverted-icon"
	RuleOrphanedIndent        = "orphaned-indent"
	RuleEmptySection          = "empty-section"
	RuleBrokenWikiLink        = "broken-wiki-link"
	RuleBrokenPageLink        = "broken-page-link"
	RuleSidebarMissing        = "sidebar-missing"
	RuleSidebarTarget         = "sidebar-target"
	RuleDisplayText           = "display-text"
	RuleUnmappedSource        = "unmapped-source"
	RuleStaleMapping          = "stale-mapping"
	RuleSidebarCompleteness   = "sidebar-completeness"
	RuleLinkSpaceOpen         = "link-space-open"
	RuleLinkSpaceClose        = "link-space-close"
	RuleLinkEmptyText         = "link-empty-text"
	RuleUnreadable            = "unreadable"
)

// Issue represents a single problem found in a wiki file.
type Issue struct {
	File     string   // Path relative to the wiki directory, or the docs path for mapping rules
	Line     int      // Line number (0 if file-level issue)
	Severity Severity // Issue severity level
	Rule     string   // Rule identifier (e.g., "empty-section")
	Message  string   // Brief description of the issue
}

// Result contains all issues found during validation.
type Result struct {
	Issues     []Issue
	FilesTotal int // Wiki files scanned
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.WarningCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// RuleCounts tallies issues per rule.
func (r *Result) RuleCounts() map[string]int {
	counts := make(map[string]int)
	for _, issue := range r.Issues {
		counts[issue.Rule]++
	}
	return counts
}

// Failed reports whether the result should fail the command. Warnings
// count only in strict mode.
func (r *Result) Failed(strict bool) bool {
	return r.HasErrors() || (strict && r.HasWarnings())
}

// Sort orders issues by file, then line, keeping rule order stable.
func (r *Result) Sort() {
	slices.SortStableFunc(r.Issues, func(a, b Issue) int {
		return cmp.Or(cmp.Compare(a.File, b.File), cmp.Compare(a.Line, b.Line))
	})
}

func (r *Result) add(issues ...Issue) {
	r.Issues = append(r.Issues, issues...)
}
