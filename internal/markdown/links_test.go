package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	content := "See [Guide](user-guide.md) and ![Logo](../assets/logo.svg).\n"
	links := ExtractLinks(content)
	require.Len(t, links, 2)

	assert.Equal(t, "Guide", links[0].Text)
	assert.Equal(t, "user-guide.md", links[0].Href)
	assert.Equal(t, "[Guide](user-guide.md)", links[0].Full)
	assert.Equal(t, links[0].Full, content[links[0].Start:links[0].End])

	assert.Equal(t, "Logo", links[1].Text)
	assert.Equal(t, "../assets/logo.svg", links[1].Href)
}

func TestExtractProseLinks_SkipsCode(t *testing.T) {
	content := "[a](a.md) `[b](b.md)`\n```\n[c](c.md)\n```\n[d](d.md)"
	links := ExtractProseLinks(content)
	require.Len(t, links, 2)
	assert.Equal(t, "a.md", links[0].Href)
	assert.Equal(t, "d.md", links[1].Href)
}

func TestExtractProseLinks_UnclosedInlineCode(t *testing.T) {
	links := ExtractProseLinks("`unclosed then [link](url)")
	require.Len(t, links, 1)
	assert.Equal(t, "link", links[0].Text)
	assert.Equal(t, "url", links[0].Href)
}

func TestSplitAnchor(t *testing.T) {
	tests := []struct {
		href, path, anchor string
	}{
		{"architecture.md#setup", "architecture.md", "setup"},
		{"guide.md", "guide.md", ""},
		{"#top", "", "top"},
		{"a.md#b#c", "a.md", "b#c"},
	}
	for _, tt := range tests {
		p, a := SplitAnchor(tt.href)
		assert.Equal(t, tt.path, p, tt.href)
		assert.Equal(t, tt.anchor, a, tt.href)
	}
}

func TestIsExternal(t *testing.T) {
	for _, href := range []string{"https://example.com", "http://x", "mailto:a@b.c", "tel:123", "ftp://host/f", "HTTPS://X"} {
		assert.True(t, IsExternal(href), href)
	}
	for _, href := range []string{"guide.md", "#anchor", "../src/lib.rs", "assets/a.png"} {
		assert.False(t, IsExternal(href), href)
	}
}

func TestLineOf(t *testing.T) {
	content := "a\nb\nc"
	assert.Equal(t, 1, LineOf(content, 0))
	assert.Equal(t, 2, LineOf(content, 2))
	assert.Equal(t, 3, LineOf(content, 4))
}

func TestExtractWikiLinks(t *testing.T) {
	content := "- [[Home]]\n- [[User-Guide|User Guide]]\n- [[broken"
	links := ExtractWikiLinks(content)
	require.Len(t, links, 2)

	assert.Equal(t, "Home", links[0].Page)
	assert.Empty(t, links[0].Display)
	assert.Equal(t, "Home", links[0].Label())

	assert.Equal(t, "User-Guide", links[1].Page)
	assert.Equal(t, "User Guide", links[1].Display)
	assert.Equal(t, "User Guide", links[1].Label())
	assert.Equal(t, "[[User-Guide|User Guide]]", content[links[1].Start:links[1].End])
}

func TestTransformOutsideCode(t *testing.T) {
	content := "x :icon: `:icon:`\n```\n:icon:\n```\n:icon:"
	got := TransformOutsideCode(content, func(s string) string {
		return strings.ReplaceAll(s, ":icon:", "")
	})
	assert.Equal(t, "x  `:icon:`\n```\n:icon:\n```\n", got)
}

func TestTransformOutsideCode_NoCode(t *testing.T) {
	got := TransformOutsideCode("plain", func(s string) string { return s + "!" })
	assert.Equal(t, "plain!", got)
}
