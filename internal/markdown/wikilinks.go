package markdown

import "regexp"

// WikiLink is one occurrence of `[[Page]]` or `[[Page|Display]]`.
type WikiLink struct {
	Start   int
	End     int
	Page    string
	Display string
	Full    string
}

// Label returns the text a reader sees for the link.
func (w WikiLink) Label() string {
	if w.Display != "" {
		return w.Display
	}
	return w.Page
}

var wikiLinkPattern = regexp.MustCompile(`\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)

// ExtractWikiLinks returns every wiki link in content, in document order.
func ExtractWikiLinks(content string) []WikiLink {
	locs := wikiLinkPattern.FindAllStringSubmatchIndex(content, -1)
	out := make([]WikiLink, 0, len(locs))
	for _, m := range locs {
		w := WikiLink{
			Start: m[0],
			End:   m[1],
			Page:  content[m[2]:m[3]],
			Full:  content[m[0]:m[1]],
		}
		if m[4] >= 0 {
			w.Display = content[m[4]:m[5]]
		}
		out = append(out, w)
	}
	return out
}
