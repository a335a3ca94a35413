// Package wiki converts MkDocs-flavoured Markdown into GitHub wiki pages:
// link and asset rewriting, block conversion, and the generated sidebar and
// home pages.
package wiki

import (
	"fmt"

	"github.com/wallstop/docwiki/internal/docmodel"
)

// Result is the output of Transform for one document.
type Result struct {
	Content  string
	Rewrites []LinkRewrite
}

// Stage is one named step of the document pipeline.
type Stage struct {
	Name string
	Fn   func(string) string
}

// BlockStages are the conversions applied after link and asset rewriting,
// in order.
var BlockStages = []Stage{
	{Name: "tabs", Fn: ConvertTabs},
	{Name: "admonitions", Fn: ConvertAdmonitions},
	{Name: "grid_cards", Fn: ConvertGridCards},
	{Name: "icons", Fn: StripIcons},
	{Name: "attributes", Fn: StripAttributes},
}

// Transform runs the full pipeline over doc, whose frontmatter has already
// been removed: links, asset paths, then the block stages. Running Transform
// on its own output changes nothing.
func Transform(doc *docmodel.Document, opts Options) (Result, error) {
	content, rewrites, err := RewriteLinks(doc.Content, doc.Dir(), opts)
	if err != nil {
		return Result{}, fmt.Errorf("rewrite links in %s: %w", doc.Path, err)
	}
	content = RewriteAssetPaths(content)
	for _, s := range BlockStages {
		content = s.Fn(content)
	}
	return Result{Content: content, Rewrites: rewrites}, nil
}
