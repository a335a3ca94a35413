package markdown

import (
	"regexp"
	"strings"
)

// LinkMatch is one occurrence of inline link syntax `[text](href)`.
//
// Start and End are byte offsets of Full within the scanned content.
type LinkMatch struct {
	Start int
	End   int
	Text  string
	Href  string
	Full  string
}

// SplitAnchor separates the path and fragment of Href. The fragment is
// returned without its leading '#'.
func (l LinkMatch) SplitAnchor() (string, string) {
	return SplitAnchor(l.Href)
}

var inlineLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

// ExtractLinks returns every inline link in content, in document order.
//
// The pattern is deliberately simple: nested brackets in the text and
// parentheses in the destination are not supported.
func ExtractLinks(content string) []LinkMatch {
	locs := inlineLinkPattern.FindAllStringSubmatchIndex(content, -1)
	out := make([]LinkMatch, 0, len(locs))
	for _, m := range locs {
		out = append(out, LinkMatch{
			Start: m[0],
			End:   m[1],
			Text:  content[m[2]:m[3]],
			Href:  content[m[4]:m[5]],
			Full:  content[m[0]:m[1]],
		})
	}
	return out
}

// ExtractLinksOutside returns the links of content whose start offset is
// not inside skip.
func ExtractLinksOutside(content string, skip Ranges) []LinkMatch {
	all := ExtractLinks(content)
	out := all[:0]
	for _, l := range all {
		if !skip.Contains(l.Start) {
			out = append(out, l)
		}
	}
	return out
}

// ExtractProseLinks returns the links of content that are outside fenced
// and inline code.
func ExtractProseLinks(content string) []LinkMatch {
	return ExtractLinksOutside(content, CodeRanges(content))
}

// SplitAnchor splits href at the first '#'.
func SplitAnchor(href string) (string, string) {
	path, anchor, _ := strings.Cut(href, "#")
	return path, anchor
}

var externalSchemes = []string{"http://", "https://", "mailto:", "tel:", "ftp:"}

// IsExternal reports whether href uses a scheme that points outside the
// document tree.
func IsExternal(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range externalSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// LineOf returns the 1-based line number of offset pos in content.
func LineOf(content string, pos int) int {
	return strings.Count(content[:pos], "\n") + 1
}
