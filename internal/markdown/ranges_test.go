package markdown

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spans(content string, rs Ranges) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, content[r.Start:r.End])
	}
	return out
}

func TestFenceRanges(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "backtick fence",
			content: "intro\n```go\ncode\n```\ntext",
			want:    []string{"```go\ncode\n```"},
		},
		{
			name:    "tilde fence",
			content: "~~~\n[x](y.md)\n~~~\n",
			want:    []string{"~~~\n[x](y.md)\n~~~"},
		},
		{
			name:    "longer fence contains shorter",
			content: "````md\n```\ninner\n```\n````\nafter",
			want:    []string{"````md\n```\ninner\n```\n````"},
		},
		{
			name:    "different character does not close",
			content: "~~~\n```\n~~~\nafter",
			want:    []string{"~~~\n```\n~~~"},
		},
		{
			name:    "indented fence",
			content: "- item\n\n    ```\n    code\n    ```\n",
			want:    []string{"    ```\n    code\n    ```"},
		},
		{
			name:    "unclosed fence runs to end",
			content: "text\n```\ncode\nmore",
			want:    []string{"```\ncode\nmore"},
		},
		{
			name:    "two backticks is not a fence",
			content: "``\ntext\n``",
			want:    []string{},
		},
		{
			name:    "two fences",
			content: "```\na\n```\nmid\n```\nb\n```",
			want:    []string{"```\na\n```", "```\nb\n```"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FenceRanges(tt.content)
			assert.Equal(t, tt.want, spans(tt.content, got))
		})
	}
}

func TestInlineCodeRanges(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "single", content: "use `x` here", want: []string{"`x`"}},
		{name: "empty span", content: "a `` b", want: []string{}},
		{name: "double with inner tick", content: "``a ` b`` c", want: []string{"``a ` b``"}},
		{name: "unclosed opener is literal", content: "`unclosed then [link](url)", want: []string{}},
		{name: "three does not close two", content: "``code```", want: []string{}},
		{name: "next exact run closes", content: "``code``` more ``", want: []string{"``code``` more ``"}},
		{name: "does not span lines", content: "`a\nb`", want: []string{}},
		{name: "unclosed then valid span", content: "`` x `y` z", want: []string{"`y`"}},
		{name: "skips fenced blocks", content: "```\n`a`\n```\n`b`", want: []string{"`b`"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InlineCodeRanges(tt.content)
			assert.Equal(t, tt.want, spans(tt.content, got))
		})
	}
}

func TestRanges_Contains(t *testing.T) {
	rs := Ranges{{Start: 2, End: 4}, {Start: 10, End: 12}}
	assert.False(t, rs.Contains(1))
	assert.True(t, rs.Contains(2))
	assert.True(t, rs.Contains(3))
	assert.False(t, rs.Contains(4))
	assert.True(t, rs.Contains(11))
	assert.False(t, rs.Contains(12))
	assert.False(t, Ranges(nil).Contains(0))
}

func TestRanges_Merge(t *testing.T) {
	a := Ranges{{Start: 0, End: 5}, {Start: 20, End: 30}}
	b := Ranges{{Start: 3, End: 8}, {Start: 10, End: 12}}
	assert.Equal(t, Ranges{{Start: 0, End: 8}, {Start: 10, End: 12}, {Start: 20, End: 30}}, a.Merge(b))
}

func assertOrderedDisjoint(t *testing.T, content string, rs Ranges) {
	t.Helper()
	for i, r := range rs {
		require.LessOrEqual(t, 0, r.Start, "content %q", content)
		require.Less(t, r.Start, r.End+1, "content %q", content)
		require.LessOrEqual(t, r.End, len(content), "content %q", content)
		if i > 0 {
			require.LessOrEqual(t, rs[i-1].End, r.Start, "content %q", content)
		}
	}
}

func TestRanges_OrderedAndDisjoint(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []string{"`", "`", "``", "```", "~~~", " ", "    ", "\n", "a", "[x](y.md)", "\t"}

	for range 500 {
		var b strings.Builder
		for range rng.IntN(40) {
			b.WriteString(alphabet[rng.IntN(len(alphabet))])
		}
		content := b.String()

		fences := FenceRanges(content)
		inline := InlineCodeRanges(content)
		assertOrderedDisjoint(t, content, fences)
		assertOrderedDisjoint(t, content, inline)
		assertOrderedDisjoint(t, content, CodeRanges(content))

		for _, r := range inline {
			assert.False(t, fences.Contains(r.Start), "inline span inside fence in %q", content)
		}
	}
}
