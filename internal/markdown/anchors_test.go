package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Getting Started", "getting-started"},
		{"API: Setup & Usage", "api-setup--usage"},
		{"Input/Output", "inputoutput"},
		{"  -Trim- ", "trim"},
		{"snake_case stays", "snake_case-stays"},
		{"Größe", "größe"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestHeadingAnchors(t *testing.T) {
	body := []byte("# Title\n\nText\n\n## Setup `code` Steps\n\nSetext Heading\n--------------\n\n### Custom {#my-anchor}\n\n```\n# not a heading\n```\n")
	anchors := HeadingAnchors(body)

	assert.True(t, anchors.Has("title"))
	assert.True(t, anchors.Has("setup-code-steps"))
	assert.True(t, anchors.Has("setext-heading"))
	assert.True(t, anchors.Has("my-anchor"))
	assert.False(t, anchors.Has("not-a-heading"))
}
