package markdown

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEdits_SingleReplacement(t *testing.T) {
	src := []byte("See [API](./api-guide.md) for details.\n")
	old := []byte("./api-guide.md")
	idx := bytes.Index(src, old)
	require.NotEqual(t, -1, idx)

	out, err := ApplyEdits(src, []Edit{{Start: idx, End: idx + len(old), Replacement: []byte("API-Guide")}})
	require.NoError(t, err)
	require.Equal(t, "See [API](API-Guide) for details.\n", string(out))
}

func TestApplyEdits_UnorderedEditsUseOriginalOffsets(t *testing.T) {
	src := []byte("[A](a.md) and [B](b.md)\n")
	first := bytes.Index(src, []byte("[A](a.md)"))
	second := bytes.Index(src, []byte("[B](b.md)"))

	out, err := ApplyEdits(src, []Edit{
		{Start: first, End: first + len("[A](a.md)"), Replacement: []byte("[A](Alpha-Page)")},
		{Start: second, End: second + len("[B](b.md)"), Replacement: []byte("[B](B)")},
	})
	require.NoError(t, err)
	require.Equal(t, "[A](Alpha-Page) and [B](B)\n", string(out))
}

func TestApplyEdits_CRLFInputPreserved(t *testing.T) {
	src := []byte("A: ./old.md\r\nB: ./old.md\r\n")
	idx := bytes.Index(src, []byte("./old.md"))

	out, err := ApplyEdits(src, []Edit{{Start: idx, End: idx + len("./old.md"), Replacement: []byte("New")}})
	require.NoError(t, err)
	require.Equal(t, "A: New\r\nB: ./old.md\r\n", string(out))
}

func TestApplyEdits_SourceNotMutated(t *testing.T) {
	src := []byte("abcdef")
	_, err := ApplyEdits(src, []Edit{{Start: 0, End: 3, Replacement: []byte("XYZW")}})
	require.NoError(t, err)
	require.Equal(t, "abcdef", string(src))
}

func TestApplyEdits_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		edits []Edit
	}{
		{name: "overlap", edits: []Edit{{Start: 1, End: 4}, {Start: 3, End: 5}}},
		{name: "negative", edits: []Edit{{Start: -1, End: 2}}},
		{name: "reversed", edits: []Edit{{Start: 3, End: 2}}},
		{name: "out of bounds", edits: []Edit{{Start: 2, End: 99}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyEdits([]byte("abcdef"), tt.edits)
			require.Error(t, err)
		})
	}
}

func TestApplyEditsString(t *testing.T) {
	out, err := ApplyEditsString("hello world", []Edit{{Start: 6, End: 11, Replacement: []byte("wiki")}})
	require.NoError(t, err)
	require.Equal(t, "hello wiki", out)
}
