package validate

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/wallstop/docwiki/internal/config"
	derrors "github.com/wallstop/docwiki/internal/errors"
	"github.com/wallstop/docwiki/internal/logfields"
	"github.com/wallstop/docwiki/internal/syncer"
	"github.com/wallstop/docwiki/internal/util/sets"
)

// Validator checks the wiki directory cfg.Dest against the docs tree
// cfg.Source.
type Validator struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New returns a Validator. A nil logger uses the default logger.
func New(cfg *config.Config, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{cfg: cfg, logger: logger}
}

// Run validates every page of the wiki and the sidebar. The error return is
// reserved for a missing wiki directory or an unreadable listing; problems
// with individual files are issues.
func (v *Validator) Run() (*Result, error) {
	wikiDir := v.cfg.Dest
	if info, err := os.Stat(wikiDir); err != nil || !info.IsDir() {
		return nil, derrors.DirectoryNotFound("wiki", wikiDir)
	}

	files, err := filepath.Glob(filepath.Join(wikiDir, "*.md"))
	if err != nil {
		return nil, derrors.ReadFailed(wikiDir, err)
	}
	slices.Sort(files)

	pages := sets.New[string]()
	for _, f := range files {
		if name := filepath.Base(f); !strings.HasPrefix(name, "_") {
			pages.Add(strings.TrimSuffix(name, ".md"))
		}
	}

	result := &Result{Issues: []Issue{}}
	for _, f := range files {
		name := filepath.Base(f)
		content, ok := v.read(f, name, result)
		if !ok {
			continue
		}
		result.FilesTotal++
		result.add(CheckLinkSyntax(name, content)...)
		if strings.HasPrefix(name, "_") {
			continue
		}
		v.logger.Debug("Validating page", logfields.Path(name))
		result.add(CheckPage(name, content, pages)...)
	}

	v.checkSidebar(files, pages, result)
	v.checkStructure(result)

	result.Sort()
	return result, nil
}

func (v *Validator) checkSidebar(files []string, pages sets.Set[string], result *Result) {
	path := filepath.Join(v.cfg.Dest, config.SidebarFile)
	if !slices.Contains(files, path) {
		result.add(Issue{
			File: config.SidebarFile, Severity: SeverityError, Rule: RuleSidebarMissing,
			Message: "Sidebar not found: " + path,
		})
		return
	}
	content, ok := v.read(path, config.SidebarFile, result)
	if !ok {
		return
	}
	result.add(CheckSidebar(content, pages)...)
	result.add(checkPageLinks(config.SidebarFile, content, pages)...)
	result.add(CheckSidebarCompleteness(content, pages, v.cfg.Structure)...)
}

func (v *Validator) checkStructure(result *Result) {
	if info, err := os.Stat(v.cfg.Source); err != nil || !info.IsDir() {
		v.logger.Warn("Docs directory not found; skipping structure check", logfields.Source(v.cfg.Source))
		return
	}
	docs, _, err := syncer.Discover(v.cfg.Source, v.cfg.Skip, v.cfg.RootSkip)
	if err != nil {
		v.logger.Warn("Could not list docs; skipping structure check", logfields.Error(err))
		return
	}
	result.add(CheckStructure(v.cfg.Structure, docs)...)
}

func (v *Validator) read(path, name string, result *Result) (string, bool) {
	// #nosec G304 -- path comes from globbing the wiki directory.
	data, err := os.ReadFile(path)
	if err == nil && !utf8.Valid(data) {
		err = derrors.DecodeFailed(path)
	}
	if err != nil {
		result.add(Issue{
			File: name, Severity: SeverityError, Rule: RuleUnreadable,
			Message: "Could not read file: " + err.Error(),
		})
		return "", false
	}
	return string(data), true
}
