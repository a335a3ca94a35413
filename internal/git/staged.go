// Package git finds the markdown files staged for the next commit, so link
// checks can run as a pre-commit step on just the files being changed.
package git

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"

	derrors "github.com/wallstop/docwiki/internal/errors"
)

// StagedMarkdown returns the absolute paths of the markdown files that are
// added, modified, renamed or copied in the index of the repository
// containing dir. Deleted and untracked files are not included.
func StagedMarkdown(dir string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, derrors.GitStatusFailed(dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, derrors.GitStatusFailed(dir, err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, derrors.GitStatusFailed(dir, err)
	}

	root := wt.Filesystem.Root()
	var files []string
	for path, fs := range status {
		switch fs.Staging {
		case git.Unmodified, git.Untracked, git.Deleted:
			continue
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(path)))
	}
	slices.Sort(files)
	return files, nil
}
