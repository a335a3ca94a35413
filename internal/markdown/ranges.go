// Package markdown scans Markdown source for code ranges, links and
// headings without re-rendering it, and applies byte-range edits.
package markdown

import (
	"cmp"
	"slices"
	"sort"
	"strings"
)

// Range is a half-open byte interval [Start, End) over a document.
type Range struct {
	Start int
	End   int
}

// Contains reports whether pos falls inside r.
func (r Range) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// Ranges is a list of ranges sorted by Start. Ranges produced by a single
// detector never overlap.
type Ranges []Range

// Contains reports whether pos falls inside any range.
func (rs Ranges) Contains(pos int) bool {
	i := sort.Search(len(rs), func(i int) bool { return rs[i].End > pos })
	return i < len(rs) && rs[i].Contains(pos)
}

// Merge combines two sorted range sets into one sorted set, joining ranges
// that overlap or touch.
func (rs Ranges) Merge(other Ranges) Ranges {
	all := make(Ranges, 0, len(rs)+len(other))
	all = append(all, rs...)
	all = append(all, other...)
	slices.SortFunc(all, func(a, b Range) int { return cmp.Compare(a.Start, b.Start) })

	out := make(Ranges, 0, len(all))
	for _, r := range all {
		if n := len(out); n > 0 && r.Start <= out[n-1].End {
			out[n-1].End = max(out[n-1].End, r.End)
			continue
		}
		out = append(out, r)
	}
	return out
}

// FenceRanges returns the fenced code blocks in content.
//
// A fence opens on a line whose first non-blank characters are three or more
// backticks or tildes. It closes on a later line using the same character
// with a run at least as long, so a ```` block may contain ``` lines. The
// range ends at the end of the closing line. A fence that never closes
// extends to the end of content.
func FenceRanges(content string) Ranges {
	var out Ranges

	open := false
	var openChar byte
	openRun, openStart := 0, 0

	for pos := 0; pos < len(content); {
		lineEnd := strings.IndexByte(content[pos:], '\n')
		next := len(content)
		if lineEnd < 0 {
			lineEnd = len(content)
		} else {
			lineEnd += pos
			next = lineEnd + 1
		}

		ch, run := fenceMarker(content[pos:lineEnd])
		switch {
		case run == 0:
		case !open:
			open, openChar, openRun, openStart = true, ch, run, pos
		case ch == openChar && run >= openRun:
			out = append(out, Range{Start: openStart, End: lineEnd})
			open = false
		}
		pos = next
	}

	if open {
		out = append(out, Range{Start: openStart, End: len(content)})
	}
	return out
}

// fenceMarker returns the fence character and run length that start line,
// or a zero run if the line is not a fence line.
func fenceMarker(line string) (byte, int) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" || (trimmed[0] != '`' && trimmed[0] != '~') {
		return 0, 0
	}
	ch := trimmed[0]
	run := 0
	for run < len(trimmed) && trimmed[run] == ch {
		run++
	}
	if run < 3 {
		return 0, 0
	}
	return ch, run
}

// InlineCodeRanges returns the inline code spans in content that lie
// outside fenced blocks.
//
// A run of N backticks is closed only by a run of exactly N backticks on the
// same line; runs of any other length in between are skipped whole. An
// opener without a closer is literal text and scanning resumes right after
// it.
func InlineCodeRanges(content string) Ranges {
	return inlineCodeRanges(content, FenceRanges(content))
}

func inlineCodeRanges(content string, fences Ranges) Ranges {
	var out Ranges
	fi := 0

	for i := 0; i < len(content); {
		for fi < len(fences) && fences[fi].End <= i {
			fi++
		}
		if fi < len(fences) && fences[fi].Contains(i) {
			i = fences[fi].End
			continue
		}
		if content[i] != '`' {
			i++
			continue
		}

		run := backtickRun(content, i)
		if end, ok := findCloser(content, i+run, run); ok {
			out = append(out, Range{Start: i, End: end})
			i = end
			continue
		}
		i += run
	}
	return out
}

// findCloser looks for a run of exactly n backticks between from and the
// end of the line, returning the offset just past it.
func findCloser(content string, from, n int) (int, bool) {
	for j := from; j < len(content) && content[j] != '\n'; {
		if content[j] != '`' {
			j++
			continue
		}
		run := backtickRun(content, j)
		if run == n {
			return j + run, true
		}
		j += run
	}
	return 0, false
}

func backtickRun(content string, at int) int {
	n := 0
	for at+n < len(content) && content[at+n] == '`' {
		n++
	}
	return n
}

// CodeRanges returns fenced and inline code ranges merged into one sorted,
// non-overlapping set.
func CodeRanges(content string) Ranges {
	fences := FenceRanges(content)
	return fences.Merge(inlineCodeRanges(content, fences))
}
