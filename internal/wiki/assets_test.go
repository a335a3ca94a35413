package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteAssetPaths(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "html img",
			in:   `<p align="center"><img src="../assets/logo.svg" alt="Logo" width="200"></p>`,
			want: `<p align="center"><img src="assets/logo.svg" alt="Logo" width="200"></p>`,
		},
		{
			name: "nested path and single quotes",
			in:   `<IMG alt='x' SRC='../../assets/img/logo-small.svg'/>`,
			want: `<IMG alt='x' SRC='assets/logo-small.svg'/>`,
		},
		{
			name: "external img untouched",
			in:   `<img src="https://example.com/assets/logo.svg">`,
			want: `<img src="https://example.com/assets/logo.svg">`,
		},
		{
			name: "protocol relative untouched",
			in:   `<img src="//cdn.example.com/assets/logo.svg">`,
			want: `<img src="//cdn.example.com/assets/logo.svg">`,
		},
		{
			name: "non asset img untouched",
			in:   `<img src="images/logo.svg">`,
			want: `<img src="images/logo.svg">`,
		},
		{
			name: "markdown image",
			in:   `![Diagram](../assets/diagram.png "Flow")`,
			want: `![Diagram](assets/diagram.png "Flow")`,
		},
		{
			name: "code untouched",
			in:   "```html\n<img src=\"../assets/logo.svg\">\n```",
			want: "```html\n<img src=\"../assets/logo.svg\">\n```",
		},
		{
			name: "surrounding markdown preserved",
			in:   "# Title <small>v1</small>\n\nText & more <img src=\"../assets/a.png\">\n",
			want: "# Title <small>v1</small>\n\nText & more <img src=\"assets/a.png\">\n",
		},
		{
			name: "truncated tag",
			in:   `text <img src="../assets/a.png"`,
			want: `text <img src="../assets/a.png"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteAssetPaths(tt.in))
		})
	}
}
