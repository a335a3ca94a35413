package wiki

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/wallstop/docwiki/internal/config"
	"github.com/wallstop/docwiki/internal/markdown"
)

var (
	imgSrcPattern  = regexp.MustCompile(`(?i)(\ssrc\s*=\s*["']?)([^"'\s>]+)`)
	mdImagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
)

// RewriteAssetPaths points image sources that live under an assets
// directory at the flattened wiki assets directory. Both HTML <img> tags and
// Markdown images are handled; code is left alone.
//
//	<img src="../assets/logo.svg">  -> <img src="assets/logo.svg">
//	![Alt](../../assets/image.png)  -> ![Alt](assets/image.png)
func RewriteAssetPaths(content string) string {
	return markdown.TransformOutsideCode(content, func(segment string) string {
		segment = rewriteImgTags(segment)
		return mdImagePattern.ReplaceAllStringFunc(segment, func(m string) string {
			sub := mdImagePattern.FindStringSubmatch(m)
			dest, title := splitTitle(sub[2])
			src, ok := flattenAsset(dest)
			if !ok {
				return m
			}
			return "![" + sub[1] + "](" + src + title + ")"
		})
	})
}

// rewriteImgTags walks segment with the HTML tokenizer and rewrites the src
// attribute of img tags in place. Every other byte is copied through.
func rewriteImgTags(segment string) string {
	if !strings.Contains(strings.ToLower(segment), "<img") {
		return segment
	}

	z := html.NewTokenizer(strings.NewReader(segment))
	var b strings.Builder
	b.Grow(len(segment))
	consumed := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		// TagName lowercases the raw buffer, so copy it first.
		raw := string(z.Raw())
		consumed += len(raw)
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			if name, _ := z.TagName(); string(name) == "img" {
				raw = rewriteSrcAttr(raw)
			}
		}
		b.WriteString(raw)
	}
	b.WriteString(segment[consumed:])
	return b.String()
}

func rewriteSrcAttr(tag string) string {
	loc := imgSrcPattern.FindStringSubmatchIndex(tag)
	if loc == nil {
		return tag
	}
	src, ok := flattenAsset(tag[loc[4]:loc[5]])
	if !ok {
		return tag
	}
	return tag[:loc[4]] + src + tag[loc[5]:]
}

// flattenAsset maps a source containing an assets segment to
// assets/<filename>.
func flattenAsset(src string) (string, bool) {
	if markdown.IsExternal(src) || strings.HasPrefix(src, "//") {
		return "", false
	}
	p, anchor := markdown.SplitAnchor(src)
	if !hasSegment(p, config.AssetsDirName) {
		return "", false
	}
	out := config.AssetsDirName + "/" + path.Base(p)
	if anchor != "" {
		out += "#" + anchor
	}
	return out, true
}
