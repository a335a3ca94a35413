// Package docmodel holds a source document ready for transformation.
package docmodel

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	derrors "github.com/wallstop/docwiki/internal/errors"
	"github.com/wallstop/docwiki/internal/frontmatter"
)

// Document is one Markdown file: its slash-separated path relative to the
// docs root and its body with any frontmatter removed.
type Document struct {
	Path    string
	Content string

	lineOffset int
}

// Parse builds a Document from raw file bytes. Content that is not valid
// UTF-8 is rejected with a decode error.
func Parse(relPath string, raw []byte) (*Document, error) {
	if !utf8.Valid(raw) {
		return nil, derrors.DecodeFailed(relPath)
	}
	body, removed := frontmatter.Strip(raw)
	return &Document{
		Path:       NormalizePath(relPath),
		Content:    string(body),
		lineOffset: removed,
	}, nil
}

// ReadFile reads root/relPath and parses it.
func ReadFile(root, relPath string) (*Document, error) {
	full := filepath.Join(root, filepath.FromSlash(relPath))
	// #nosec G304 -- relPath comes from walking root.
	raw, err := os.ReadFile(full)
	if err != nil {
		return nil, derrors.ReadFailed(full, err)
	}
	return Parse(relPath, raw)
}

// Dir returns the slash directory of the document, "" at the docs root.
func (d *Document) Dir() string {
	dir := path.Dir(d.Path)
	if dir == "." {
		return ""
	}
	return dir
}

// LineOffset translates body line numbers into file line numbers:
// fileLine = LineOffset() + bodyLine.
func (d *Document) LineOffset() int {
	return d.lineOffset
}

// NormalizePath converts p to a clean slash-separated relative path.
func NormalizePath(p string) string {
	p = filepath.ToSlash(p)
	p = path.Clean(p)
	return strings.TrimPrefix(p, "./")
}
