package markdown

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/wallstop/docwiki/internal/util/sets"
)

var explicitAnchorPattern = regexp.MustCompile(`\{#([\w-]+)\}`)

// HeadingAnchors returns the anchor ids a GitHub-style renderer generates
// for the headings of body, plus any explicit `{#id}` anchors. Ids are
// lowercased.
func HeadingAnchors(body []byte) sets.Set[string] {
	anchors := sets.New[string]()

	root := goldmark.New().Parser().Parse(text.NewReader(body))
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			if slug := Slugify(headingText(h, body)); slug != "" {
				anchors.Add(slug)
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	for _, m := range explicitAnchorPattern.FindAllSubmatch(body, -1) {
		anchors.Add(strings.ToLower(string(m[1])))
	}
	return anchors
}

func headingText(h *gmast.Heading, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(h, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// Slugify converts heading text to its anchor id: lowercase, spaces become
// hyphens, characters other than letters, digits, '_' and '-' are dropped,
// and leading or trailing hyphens are trimmed. Runs of hyphens are kept.
func Slugify(heading string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(heading) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}
