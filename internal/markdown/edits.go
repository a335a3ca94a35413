package markdown

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// Edit is a byte-range replacement against an unmodified source buffer.
//
// Start and End are offsets into the original source, End exclusive.
// Replacement replaces source[Start:End].
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ErrOverlappingEdits is returned when two edits touch the same bytes.
var ErrOverlappingEdits = errors.New("invalid edits: overlapping ranges")

// ApplyEdits applies edits to source and returns the updated content.
//
// Edits may be given in any order. They are applied from the end of the
// document toward the beginning so an earlier replacement never shifts the
// offsets of one that has not been applied yet.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b Edit) int {
		if a.Start == b.Start {
			return cmp.Compare(b.End, a.End)
		}
		return cmp.Compare(b.Start, a.Start)
	})

	for i, e := range sorted {
		switch {
		case e.Start < 0 || e.End < 0:
			return nil, fmt.Errorf("invalid edit[%d]: negative range", i)
		case e.End < e.Start:
			return nil, fmt.Errorf("invalid edit[%d]: end before start", i)
		case e.End > len(source):
			return nil, fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		}
		if i > 0 && e.End > sorted[i-1].Start {
			return nil, ErrOverlappingEdits
		}
	}

	out := slices.Clone(source)
	for _, e := range sorted {
		out = slices.Replace(out, e.Start, e.End, e.Replacement...)
	}
	return out, nil
}

// ApplyEditsString is ApplyEdits for string content.
func ApplyEditsString(source string, edits []Edit) (string, error) {
	out, err := ApplyEdits([]byte(source), edits)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
