package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wallstop/docwiki/internal/config"
	"github.com/wallstop/docwiki/internal/markdown"
	"github.com/wallstop/docwiki/internal/util/sets"
)

var (
	indentedFencePattern   = regexp.MustCompile("^ {4,}```")
	tabMarkerPattern       = regexp.MustCompile(`^=== "[^"]+"`)
	admonitionPattern      = regexp.MustCompile(`^!!! \w+`)
	iconPattern            = regexp.MustCompile(`:(?:material|octicons|fontawesome)-[a-z0-9-]+:`)
	inlineCodeIconPattern  = regexp.MustCompile("`[^`]*:(?:material|octicons|fontawesome)-")
	orphanIndentPattern    = regexp.MustCompile(`^    \S`)
	sectionHeadingPattern  = regexp.MustCompile(`^(#{2,6})\s+(.+)$`)
	anyHeadingLevelPattern = regexp.MustCompile(`^(#{2,6})\s+`)
)

// CheckPage runs the rendering rules and the link rules over one generated
// page. pages holds the page names present in the wiki.
func CheckPage(file, content string, pages sets.Set[string]) []Issue {
	lines := strings.Split(content, "\n")
	fenced := fencedLines(content, lines)

	var issues []Issue
	issues = append(issues, checkIndentedFences(file, lines)...)
	issues = append(issues, checkUnconverted(file, lines)...)
	issues = append(issues, checkOrphanedIndent(file, lines, fenced)...)
	issues = append(issues, checkEmptySections(file, lines, fenced)...)
	issues = append(issues, checkWikiLinks(file, content, pages)...)
	issues = append(issues, checkPageLinks(file, content, pages)...)
	return issues
}

// fencedLines marks the lines that sit inside fenced code, fence lines
// included.
func fencedLines(content string, lines []string) []bool {
	fences := markdown.FenceRanges(content)
	out := make([]bool, len(lines))
	if len(fences) == 0 {
		return out
	}
	offset := 0
	for i, line := range lines {
		out[i] = fences.Contains(offset)
		offset += len(line) + 1
	}
	return out
}

func checkIndentedFences(file string, lines []string) []Issue {
	var issues []Issue
	for i, line := range lines {
		if indentedFencePattern.MatchString(line) {
			issues = append(issues, Issue{
				File:     file,
				Line:     i + 1,
				Severity: SeverityError,
				Rule:     RuleIndentedFence,
				Message:  fmt.Sprintf("Indented code fence (4+ spaces) won't render as code block: %s...", truncate(line, 50)),
			})
		}
	}
	return issues
}

func checkUnconverted(file string, lines []string) []Issue {
	var issues []Issue
	for i, line := range lines {
		if tabMarkerPattern.MatchString(line) {
			issues = append(issues, Issue{
				File: file, Line: i + 1, Severity: SeverityError, Rule: RuleUnconvertedTab,
				Message: "Unconverted MkDocs tab marker: " + line,
			})
		}
		if admonitionPattern.MatchString(line) {
			issues = append(issues, Issue{
				File: file, Line: i + 1, Severity: SeverityError, Rule: RuleUnconvertedAdmonition,
				Message: "Unconverted MkDocs admonition: " + line,
			})
		}
		if hasStrayIcon(line) {
			issues = append(issues, Issue{
				File: file, Line: i + 1, Severity: SeverityWarning, Rule: RuleUnconvertedIcon,
				Message: fmt.Sprintf("Possible unconverted Material icon: %s...", truncate(line, 60)),
			})
		}
	}
	return issues
}

// hasStrayIcon reports an icon shortcode outside quotes, headings and
// inline code.
func hasStrayIcon(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ">") || strings.HasPrefix(trimmed, "`") || strings.HasPrefix(trimmed, "#") {
		return false
	}
	if !iconPattern.MatchString(line) {
		return false
	}
	return !strings.Contains(line, "`") || !inlineCodeIconPattern.MatchString(line)
}

// checkOrphanedIndent flags indented text directly under a `###` heading,
// the shape left behind by a tab block whose marker was lost.
func checkOrphanedIndent(file string, lines []string, fenced []bool) []Issue {
	var issues []Issue
	for i, line := range lines {
		if fenced[i] || i == 0 || !orphanIndentPattern.MatchString(line) {
			continue
		}
		prev := strings.TrimSpace(lines[i-1])
		if hasAnyPrefix(prev, "-", "*", "1.", ">") {
			continue
		}
		if strings.HasPrefix(prev, "###") {
			issues = append(issues, Issue{
				File: file, Line: i + 1, Severity: SeverityWarning, Rule: RuleOrphanedIndent,
				Message: fmt.Sprintf("Possibly orphaned indented content after header: %s...", truncate(line, 50)),
			})
		}
	}
	return issues
}

// checkEmptySections flags `##`..`######` headings with nothing but blank
// lines, rules or HTML comments before the next heading of the same or a
// higher level.
func checkEmptySections(file string, lines []string, fenced []bool) []Issue {
	var issues []Issue
	for i, line := range lines {
		if fenced[i] {
			continue
		}
		m := sectionHeadingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level := len(m[1])
		if sectionHasContent(lines[i+1:], level) {
			continue
		}
		issues = append(issues, Issue{
			File: file, Line: i + 1, Severity: SeverityError, Rule: RuleEmptySection,
			Message: fmt.Sprintf("Empty section: '%s' has no content (possible conversion issue)", strings.TrimSpace(m[2])),
		})
	}
	return issues
}

func sectionHasContent(rest []string, level int) bool {
	for _, next := range rest {
		if m := anyHeadingLevelPattern.FindStringSubmatch(next); m != nil && len(m[1]) <= level {
			return false
		}
		stripped := strings.TrimSpace(next)
		if stripped != "" && stripped != "---" && !strings.HasPrefix(stripped, "<!--") {
			return true
		}
	}
	return false
}

// checkWikiLinks flags `[[Page]]` links to pages that do not exist.
func checkWikiLinks(file, content string, pages sets.Set[string]) []Issue {
	code := markdown.CodeRanges(content)
	var issues []Issue
	for _, wl := range markdown.ExtractWikiLinks(content) {
		if code.Contains(wl.Start) || wl.Page == config.HomePage || pages.Has(wl.Page) {
			continue
		}
		issues = append(issues, Issue{
			File: file, Line: markdown.LineOf(content, wl.Start), Severity: SeverityError, Rule: RuleBrokenWikiLink,
			Message: fmt.Sprintf("Broken wiki link to non-existent page: [[%s]]", wl.Page),
		})
	}
	return issues
}

// checkPageLinks flags markdown links whose target is neither external, an
// anchor, an asset nor an existing page.
func checkPageLinks(file, content string, pages sets.Set[string]) []Issue {
	var issues []Issue
	for _, l := range markdown.ExtractProseLinks(content) {
		if l.Text == "" {
			continue
		}
		href := strings.TrimSpace(l.Href)
		if markdown.IsExternal(href) || strings.HasPrefix(href, "#") || strings.HasPrefix(href, config.AssetsDirName+"/") {
			continue
		}
		page, _ := markdown.SplitAnchor(href)
		if page == "" || pages.Has(page) {
			continue
		}
		issues = append(issues, Issue{
			File: file, Line: markdown.LineOf(content, l.Start), Severity: SeverityWarning, Rule: RuleBrokenPageLink,
			Message: "Link may be broken - page not found: " + page,
		})
	}
	return issues
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
