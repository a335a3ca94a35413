package wiki

import (
	"path"
	"slices"
	"strings"

	"github.com/wallstop/docwiki/internal/config"
	"github.com/wallstop/docwiki/internal/markdown"
)

// LinkKind classifies a rewritten link.
type LinkKind string

const (
	LinkPage     LinkKind = "page"
	LinkAsset    LinkKind = "asset"
	LinkExternal LinkKind = "external"
)

// LinkRewrite describes one link changed by RewriteLinks. Line is 1-based
// within the document body.
type LinkRewrite struct {
	Line int
	From string
	To   string
	Kind LinkKind
}

// Options carries everything the per-document pipeline needs besides the
// document itself.
type Options struct {
	Names        *NameTable
	EscapePolicy config.EscapePolicy
	// BlobURL is the repository file URL prefix; empty disables external
	// rewriting of links that leave the docs tree.
	BlobURL string
	// SourcePrefix is the docs directory relative to the repository root.
	SourcePrefix string
}

// NewOptions derives pipeline options from cfg.
func NewOptions(cfg *config.Config, names *NameTable) Options {
	return Options{
		Names:        names,
		EscapePolicy: cfg.EscapePolicy,
		BlobURL:      cfg.BlobURL(),
		SourcePrefix: cfg.SourcePrefix(),
	}
}

// RewriteLinks converts relative Markdown links in content, a document in
// docs directory dir, into wiki links. Links inside fenced or inline code
// are left alone.
//
//	[Guide](user-guide.md)          -> [Guide](User-Guide)
//	[API](architecture.md#setup)    -> [API](Architecture#setup)
//	[Logo](../assets/logo.svg)      -> [Logo](assets/logo.svg)
//	[Log](../CHANGELOG.md)          -> [Log](<repo>/blob/<branch>/CHANGELOG.md)
//
// Other non-Markdown targets are left alone.
func RewriteLinks(content, dir string, opts Options) (string, []LinkRewrite, error) {
	var (
		edits    []markdown.Edit
		rewrites []LinkRewrite
	)
	for _, l := range markdown.ExtractProseLinks(content) {
		target, kind, ok := rewriteTarget(l.Href, dir, opts)
		if !ok {
			continue
		}
		replacement := "[" + l.Text + "](" + target + ")"
		if replacement == l.Full {
			continue
		}
		edits = append(edits, markdown.Edit{Start: l.Start, End: l.End, Replacement: []byte(replacement)})
		rewrites = append(rewrites, LinkRewrite{
			Line: markdown.LineOf(content, l.Start),
			From: l.Full,
			To:   replacement,
			Kind: kind,
		})
	}
	if len(edits) == 0 {
		return content, nil, nil
	}
	out, err := markdown.ApplyEditsString(content, edits)
	if err != nil {
		return content, nil, err
	}
	return out, rewrites, nil
}

func rewriteTarget(href, dir string, opts Options) (string, LinkKind, bool) {
	if markdown.IsExternal(href) || strings.HasPrefix(href, "#") {
		return "", "", false
	}
	dest, title := splitTitle(href)
	linkPath, anchor := markdown.SplitAnchor(dest)
	if linkPath == "" {
		return "", "", false
	}
	suffix := title
	if anchor != "" {
		suffix = "#" + anchor + title
	}

	if !strings.HasSuffix(linkPath, ".md") {
		if !hasSegment(linkPath, config.AssetsDirName) {
			return "", "", false
		}
		return config.AssetsDirName + "/" + path.Base(linkPath) + suffix, LinkAsset, true
	}

	resolved, ok := ResolvePath(dir, linkPath)
	if !ok {
		if opts.EscapePolicy != config.EscapeExternal || opts.BlobURL == "" {
			return "", "", false
		}
		ext := ExternalPath(opts.SourcePrefix, dir, linkPath)
		if ext == "" {
			return "", "", false
		}
		return opts.BlobURL + "/" + ext + suffix, LinkExternal, true
	}

	return pageName(resolved, opts.Names) + suffix, LinkPage, true
}

// pageName maps a resolved docs-relative .md path to its page name.
func pageName(resolved string, names *NameTable) string {
	stem := strings.TrimSuffix(resolved, ".md")
	stem = strings.TrimPrefix(stem, config.DefaultSource+"/")
	if names != nil {
		if name, ok := names.Lookup(stem + ".md"); ok {
			return name
		}
		if name, ok := names.RootPage(stem); ok {
			return name
		}
	}
	return DeriveName(resolved)
}

// splitTitle separates an optional quoted link title from a destination:
// `guide.md "Guide"` yields `guide.md` and ` "Guide"`.
func splitTitle(href string) (string, string) {
	if !strings.HasSuffix(href, `"`) {
		return href, ""
	}
	if i := strings.Index(href, ` "`); i > 0 {
		return href[:i], href[i:]
	}
	return href, ""
}

func hasSegment(p, segment string) bool {
	return slices.Contains(strings.Split(p, "/"), segment)
}
