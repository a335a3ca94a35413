package syncer

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	derrors "github.com/wallstop/docwiki/internal/errors"
)

// Discover walks source and returns the slash-separated relative paths of
// every Markdown file to sync, plus the paths excluded by the skip rules.
// Both lists are sorted.
//
// A skip entry matches any path segment or file name anywhere in the tree.
// A rootSkip entry matches only a file directly under source.
func Discover(source string, skip, rootSkip []string) ([]string, []string, error) {
	var docs, skipped []string
	err := filepath.WalkDir(source, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || slices.Contains(skip, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		if slices.Contains(skip, d.Name()) || (!strings.Contains(rel, "/") && slices.Contains(rootSkip, rel)) {
			skipped = append(skipped, rel)
			return nil
		}
		docs = append(docs, rel)
		return nil
	})
	if err != nil {
		return nil, nil, derrors.ReadFailed(source, err)
	}
	slices.Sort(docs)
	slices.Sort(skipped)
	return docs, skipped, nil
}
