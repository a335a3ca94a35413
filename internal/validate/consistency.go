package validate

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/wallstop/docwiki/internal/config"
	"github.com/wallstop/docwiki/internal/markdown"
	"github.com/wallstop/docwiki/internal/util/sets"
)

// hostileChar is a character that corrupts the URL GitHub generates for a
// `[[Page|Display]]` link when it appears in the display text.
type hostileChar struct {
	char   string
	reason string
}

// Checked in this order; only the first match per link is reported.
var hostileChars = []hostileChar{
	{"+", "plus sign (decoded as space, causing double-dashes in URL)"},
	{"%", "percent sign (interferes with URL encoding)"},
	{"#", "hash (interpreted as anchor)"},
	{"?", "question mark (interpreted as query string)"},
	{"&", "ampersand (interpreted as URL parameter separator)"},
	{"=", "equals sign (interpreted as URL parameter value separator)"},
}

var (
	spaceAfterOpenPattern   = regexp.MustCompile(`\[\s+[^\]]+\]\([^)]+\)`)
	spaceBeforeClosePattern = regexp.MustCompile(`\[[^\]]+\s+\]\([^)]+\)`)
	emptyTextPattern        = regexp.MustCompile(`\[\s*\]\([^)]+\)`)
)

// CheckSidebar verifies that every wiki link in the sidebar targets an
// existing page and carries display text that survives URL generation.
func CheckSidebar(content string, pages sets.Set[string]) []Issue {
	var issues []Issue
	for _, wl := range markdown.ExtractWikiLinks(content) {
		page := strings.TrimSpace(wl.Page)
		line := markdown.LineOf(content, wl.Start)
		if !pages.Has(page) {
			issues = append(issues, Issue{
				File: config.SidebarFile, Line: line, Severity: SeverityError, Rule: RuleSidebarTarget,
				Message: fmt.Sprintf("Wiki link [[%s]] points to non-existent page '%s.md'", page, page),
			})
		}
		if issue, ok := checkDisplayText(page, strings.TrimSpace(wl.Label()), line); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

// checkDisplayText reports the first hostile character in display.
func checkDisplayText(page, display string, line int) (Issue, bool) {
	for _, hc := range hostileChars {
		if strings.Contains(display, hc.char) {
			return Issue{
				File: config.SidebarFile, Line: line, Severity: SeverityError, Rule: RuleDisplayText,
				Message: fmt.Sprintf("Wiki link [[%s|%s]] contains '%s' in display text (%s). This will generate a broken URL.",
					page, display, hc.char, hc.reason),
			}, true
		}
	}
	return Issue{}, false
}

// CheckStructure compares the configured structure mapping with the docs
// files that a sync would convert. Unmapped files and mappings for files
// that no longer exist are both warnings.
func CheckStructure(structure map[string]string, docsFiles []string) []Issue {
	files := sets.New(docsFiles...)
	mapped := sets.New(slices.Collect(maps.Keys(structure))...)

	var issues []Issue
	for _, f := range sets.Sorted(files.Difference(mapped)) {
		issues = append(issues, Issue{
			File: f, Severity: SeverityWarning, Rule: RuleUnmappedSource,
			Message: fmt.Sprintf("%s has no mapping in the structure table; its page name is derived", f),
		})
	}
	for _, f := range sets.Sorted(mapped.Difference(files)) {
		issues = append(issues, Issue{
			File: f, Severity: SeverityWarning, Rule: RuleStaleMapping,
			Message: fmt.Sprintf("Structure table contains mapping for '%s' which does not exist in the docs", f),
		})
	}
	return issues
}

// CheckSidebarCompleteness warns about mapped pages that exist in the wiki
// but are not linked from the sidebar.
func CheckSidebarCompleteness(sidebar string, pages sets.Set[string], structure map[string]string) []Issue {
	linked := sets.New[string]()
	for _, wl := range markdown.ExtractWikiLinks(sidebar) {
		linked.Add(strings.TrimSpace(wl.Page))
	}
	expected := sets.New(slices.Collect(maps.Values(structure))...)

	var issues []Issue
	for _, page := range sets.Sorted(expected.Difference(linked)) {
		if !pages.Has(page) {
			continue
		}
		issues = append(issues, Issue{
			File: config.SidebarFile, Severity: SeverityWarning, Rule: RuleSidebarCompleteness,
			Message: fmt.Sprintf("Wiki page '%s.md' has no entry in %s", page, config.SidebarFile),
		})
	}
	return issues
}

// CheckLinkSyntax flags malformed inline links: a space after `[` (error),
// a space before `]` and empty link text (warnings).
func CheckLinkSyntax(file, content string) []Issue {
	var issues []Issue
	for i, line := range strings.Split(content, "\n") {
		for _, m := range spaceAfterOpenPattern.FindAllString(line, -1) {
			issues = append(issues, Issue{
				File: file, Line: i + 1, Severity: SeverityError, Rule: RuleLinkSpaceOpen,
				Message: "Malformed link with space after '[': " + m,
			})
		}
		for _, m := range spaceBeforeClosePattern.FindAllString(line, -1) {
			issues = append(issues, Issue{
				File: file, Line: i + 1, Severity: SeverityWarning, Rule: RuleLinkSpaceClose,
				Message: "Link has trailing space before ']': " + m,
			})
		}
		for _, m := range emptyTextPattern.FindAllString(line, -1) {
			issues = append(issues, Issue{
				File: file, Line: i + 1, Severity: SeverityWarning, Rule: RuleLinkEmptyText,
				Message: "Empty link text: " + m,
			})
		}
	}
	return issues
}
