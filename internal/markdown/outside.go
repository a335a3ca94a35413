package markdown

import "strings"

// TransformOutsideCode applies fn to every stretch of content that is not
// fenced or inline code and returns the reassembled document. Code spans
// are copied through byte for byte.
func TransformOutsideCode(content string, fn func(string) string) string {
	code := CodeRanges(content)
	if len(code) == 0 {
		return fn(content)
	}

	var b strings.Builder
	b.Grow(len(content))

	last := 0
	for _, r := range code {
		if last < r.Start {
			b.WriteString(fn(content[last:r.Start]))
		}
		b.WriteString(content[r.Start:r.End])
		last = r.End
	}
	if last < len(content) {
		b.WriteString(fn(content[last:]))
	}
	return b.String()
}
