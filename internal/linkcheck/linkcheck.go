// Package linkcheck verifies that relative links in markdown files point to
// files that exist and, for markdown targets, to headings that exist.
package linkcheck

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	derrors "github.com/wallstop/docwiki/internal/errors"
	"github.com/wallstop/docwiki/internal/logfields"
	"github.com/wallstop/docwiki/internal/markdown"
	"github.com/wallstop/docwiki/internal/util/sets"
)

// SkipDirs are directory names never descended into by Walk.
var SkipDirs = []string{"target", "node_modules", ".git"}

// Problem is one broken link.
type Problem struct {
	File    string // Path relative to the checker root
	Line    int
	Target  string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s:%d: %s", p.File, p.Line, p.Message)
}

// Result summarizes a link check.
type Result struct {
	Files    int
	Links    int
	Problems []Problem
}

// OK reports whether no broken links were found.
func (r *Result) OK() bool { return len(r.Problems) == 0 }

// Checker resolves links relative to the file that contains them. Links
// starting with '/' resolve against Root.
type Checker struct {
	root    string
	logger  *slog.Logger
	anchors map[string]sets.Set[string]
}

// New returns a Checker rooted at root. A nil logger uses the default.
func New(root string, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{root: root, logger: logger, anchors: make(map[string]sets.Set[string])}
}

// Walk returns the markdown files under the checker root, skipping SkipDirs.
func (c *Checker) Walk() ([]string, error) {
	var files []string
	err := filepath.WalkDir(c.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != c.root && slices.Contains(SkipDirs, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".md") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, derrors.ReadFailed(c.root, err)
	}
	slices.Sort(files)
	return files, nil
}

// CheckFiles checks every link in files. Files that cannot be read are
// reported as problems.
func (c *Checker) CheckFiles(files []string) *Result {
	result := &Result{}
	for _, f := range files {
		links, problems := c.CheckFile(f)
		result.Files++
		result.Links += links
		result.Problems = append(result.Problems, problems...)
	}
	return result
}

// CheckFile checks the links of one file and returns the number of links
// examined along with the broken ones. Links inside code are not links.
func (c *Checker) CheckFile(path string) (int, []Problem) {
	rel := c.rel(path)
	// #nosec G304 -- path is a markdown file chosen by the caller.
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, []Problem{{File: rel, Message: "Could not read file: " + err.Error()}}
	}
	content := string(data)

	links := markdown.ExtractProseLinks(content)
	var problems []Problem
	for _, l := range links {
		target := strings.TrimSpace(l.Href)
		if target == "" || markdown.IsExternal(target) {
			continue
		}
		if msg, ok := c.checkTarget(path, data, target); !ok {
			problems = append(problems, Problem{
				File:    rel,
				Line:    markdown.LineOf(content, l.Start),
				Target:  target,
				Message: msg,
			})
		}
	}
	c.logger.Debug("Checked links", logfields.Path(rel), logfields.Count(len(links)))
	return len(links), problems
}

func (c *Checker) checkTarget(source string, body []byte, target string) (string, bool) {
	pathPart, anchor := markdown.SplitAnchor(target)
	if pathPart == "" {
		if !c.anchorsOf(source, body).Has(strings.ToLower(anchor)) {
			return fmt.Sprintf("Anchor '%s' not found in %s", anchor, c.rel(source)), false
		}
		return "", true
	}

	if unescaped, err := url.PathUnescape(pathPart); err == nil {
		pathPart = unescaped
	}
	var resolved string
	if strings.HasPrefix(pathPart, "/") {
		resolved = filepath.Join(c.root, filepath.FromSlash(pathPart))
	} else {
		resolved = filepath.Join(filepath.Dir(source), filepath.FromSlash(pathPart))
	}

	if _, err := os.Stat(resolved); err != nil {
		return fmt.Sprintf("Link target not found: %s (from %s)", pathPart, c.rel(source)), false
	}
	if anchor == "" || !strings.EqualFold(filepath.Ext(resolved), ".md") {
		return "", true
	}
	if !c.anchorsOf(resolved, nil).Has(strings.ToLower(anchor)) {
		return fmt.Sprintf("Anchor '%s' not found in %s", anchor, c.rel(resolved)), false
	}
	return "", true
}

// anchorsOf returns the heading anchors of path, reading it unless body is
// given. Unreadable files have no anchors.
func (c *Checker) anchorsOf(path string, body []byte) sets.Set[string] {
	key := filepath.Clean(path)
	if a, ok := c.anchors[key]; ok {
		return a
	}
	if body == nil {
		// #nosec G304 -- path is a link target that was just stat'ed.
		data, err := os.ReadFile(path)
		if err != nil {
			c.logger.Warn("Could not read link target", logfields.Path(path), logfields.Error(err))
		}
		body = data
	}
	a := markdown.HeadingAnchors(body)
	c.anchors[key] = a
	return a
}

func (c *Checker) rel(path string) string {
	if rel, err := filepath.Rel(c.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
