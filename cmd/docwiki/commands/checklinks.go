package commands

import (
	"fmt"

	derrors "github.com/wallstop/docwiki/internal/errors"
	"github.com/wallstop/docwiki/internal/git"
	"github.com/wallstop/docwiki/internal/linkcheck"
)

// CheckLinksCmd implements the 'check-links' command.
type CheckLinksCmd struct {
	Files  []string `arg:"" optional:"" type:"path" help:"Markdown files to check (default: every markdown file under --root)"`
	Staged bool     `help:"Check only the markdown files staged for commit"`
	Root   string   `default:"." type:"path" help:"Directory to walk; links starting with '/' resolve against it"`
}

func (c *CheckLinksCmd) Run(g *Global, _ *CLI) error {
	out := g.out()
	checker := linkcheck.New(c.Root, g.logger())

	var (
		files []string
		err   error
	)
	switch {
	case c.Staged:
		files, err = git.StagedMarkdown(c.Root)
		if err == nil && len(files) == 0 {
			_, _ = fmt.Fprintln(out, "No staged markdown files")
			return nil
		}
	case len(c.Files) > 0:
		files = c.Files
	default:
		files, err = checker.Walk()
	}
	if err != nil {
		return err
	}

	result := checker.CheckFiles(files)
	for _, p := range result.Problems {
		_, _ = fmt.Fprintf(out, "ERROR: %s\n", p)
	}
	_, _ = fmt.Fprintf(out, "\nLink check complete:\n  Files checked: %d\n  Links checked: %d\n  Errors: %d\n",
		result.Files, result.Links, len(result.Problems))

	if !result.OK() {
		return derrors.BrokenLinks(len(result.Problems))
	}
	_, _ = fmt.Fprintln(out, "[OK] All links valid")
	return nil
}
