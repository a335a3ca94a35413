package wiki

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wallstop/docwiki/internal/markdown"
)

var (
	tabMarkerPattern  = regexp.MustCompile(`^=== "([^"]+)"$`)
	admonitionPattern = regexp.MustCompile(`^!!! (\w+)(?: "([^"]*)")?\s*$`)
	iconPattern       = regexp.MustCompile(`:(?:material|octicons|fontawesome)-[a-z0-9-]+: ?`)
	attributePattern  = regexp.MustCompile(`\{\s*[.#][^}]*\}`)
)

// ConvertTabs turns content tabs into level-3 headings and removes one level
// of indentation from each tab body.
//
//	=== "Rust"        ### Rust
//
//	    let x = 1;    let x = 1;
func ConvertTabs(content string) string {
	lines, protected := splitProtected(content)
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		m := tabMarkerPattern.FindStringSubmatch(lines[i])
		if m == nil || protected[i] {
			out = append(out, lines[i])
			i++
			continue
		}
		out = append(out, "### "+m[1])
		i++

		for i < len(lines) {
			line := lines[i]
			if tabMarkerPattern.MatchString(line) {
				break
			}
			if strings.TrimSpace(line) == "" {
				out = append(out, "")
				i++
				continue
			}
			body, ok := dedent(line)
			if !ok {
				break
			}
			out = append(out, body)
			i++
		}
	}
	return strings.Join(out, "\n")
}

// ConvertAdmonitions turns admonition blocks into block quotes with a bold
// title. A block without a title uses its kind, title-cased. Every line up
// to the first non-blank, unindented line is quoted, blank lines included.
//
//	!!! note "Heads up"     > **Heads up**
//	    Body text.          >
//	                        > Body text.
func ConvertAdmonitions(content string) string {
	lines, protected := splitProtected(content)
	out := make([]string, 0, len(lines))
	caser := cases.Title(language.Und)

	for i := 0; i < len(lines); {
		m := admonitionPattern.FindStringSubmatch(lines[i])
		if m == nil || protected[i] {
			out = append(out, lines[i])
			i++
			continue
		}
		title := m[2]
		if title == "" {
			title = caser.String(m[1])
		}
		out = append(out, "> **"+title+"**", ">")
		i++

		for i < len(lines) {
			line := lines[i]
			if strings.TrimSpace(line) == "" {
				// The piece after a final newline is not a line.
				if i == len(lines)-1 && line == "" {
					break
				}
				out = append(out, ">")
				i++
				continue
			}
			body, ok := dedent(line)
			if !ok {
				break
			}
			out = append(out, "> "+body)
			i++
		}
	}
	return strings.Join(out, "\n")
}

// StripIcons removes Material icon shortcodes such as :octicons-book-24:
// outside code.
func StripIcons(content string) string {
	return markdown.TransformOutsideCode(content, func(s string) string {
		return iconPattern.ReplaceAllString(s, "")
	})
}

// StripAttributes removes attribute lists such as { .lg .middle } outside
// code. Braces that do not start with a class or id selector are kept.
func StripAttributes(content string) string {
	return markdown.TransformOutsideCode(content, func(s string) string {
		return attributePattern.ReplaceAllString(s, "")
	})
}

// dedent removes one indentation unit: four spaces or one tab.
func dedent(line string) (string, bool) {
	if rest, ok := strings.CutPrefix(line, "    "); ok {
		return rest, true
	}
	if rest, ok := strings.CutPrefix(line, "\t"); ok {
		return rest, true
	}
	return line, false
}

// splitProtected splits content into lines and marks the lines belonging to
// fenced code blocks that open at column 0.
func splitProtected(content string) ([]string, []bool) {
	lines := strings.Split(content, "\n")
	protected := make([]bool, len(lines))

	fences := markdown.FenceRanges(content)
	if len(fences) == 0 {
		return lines, protected
	}

	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line) + 1
	}

	line := 0
	for _, r := range fences {
		if c := content[r.Start]; c != '`' && c != '~' {
			continue
		}
		for line < len(lines) && starts[line] < r.Start {
			line++
		}
		for j := line; j < len(lines) && starts[j] < r.End; j++ {
			protected[j] = true
		}
	}
	return lines, protected
}
