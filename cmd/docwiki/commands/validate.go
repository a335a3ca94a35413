package commands

import (
	"fmt"

	derrors "github.com/wallstop/docwiki/internal/errors"
	"github.com/wallstop/docwiki/internal/validate"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	WikiDir string `name:"wiki-dir" help:"Wiki directory to validate (overrides config dest)"`
	DocsDir string `name:"docs-dir" help:"Docs directory used for structure checks (overrides config source)"`
	Strict  bool   `help:"Fail on warnings as well as errors"`
	Format  string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if v.WikiDir != "" {
		cfg.Dest = v.WikiDir
	}
	if v.DocsDir != "" {
		cfg.Source = v.DocsDir
	}

	result, err := validate.New(cfg, g.logger()).Run()
	if err != nil {
		return err
	}

	if err := validate.NewFormatter(v.Format).Format(g.out(), result, cfg.Dest, v.Strict); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	if result.Failed(v.Strict) {
		return derrors.WikiInvalid(result.ErrorCount(), result.WarningCount(), v.Strict)
	}
	return nil
}
