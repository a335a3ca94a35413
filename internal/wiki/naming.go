package wiki

import (
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wallstop/docwiki/internal/util/sets"
)

// NameTable maps docs-relative source paths to wiki page names.
//
// A NameTable is never modified after construction; WithDiscovered returns a
// new table.
type NameTable struct {
	byPath    map[string]string
	rootPages map[string]string
	present   sets.Set[string]
}

// Collision records a discovered file whose derived page name was already
// taken and had to be renamed.
type Collision struct {
	Path    string
	Wanted  string
	Renamed string
}

// NewNameTable builds a table from the configured structure and root page
// mappings. Both maps are copied.
func NewNameTable(structure, rootPages map[string]string) *NameTable {
	byPath := make(map[string]string, len(structure))
	for p, name := range structure {
		byPath[strings.TrimPrefix(path.Clean(p), "./")] = name
	}
	return &NameTable{
		byPath:    byPath,
		rootPages: maps.Clone(rootPages),
	}
}

// WithDiscovered returns a table that also covers every path in discovered
// and records those paths as the pages present in the docs tree.
//
// Paths not listed in the configured structure get a derived name.
// Configured names are reserved even when their file is absent. When a
// derived name is already used, the parent directory is prepended
// (b/intro.md becomes B-Intro); if that is taken too a numeric suffix is
// added. Paths are handled in sorted order so renames are stable.
func (t *NameTable) WithDiscovered(discovered []string) (*NameTable, []Collision) {
	next := &NameTable{
		byPath:    maps.Clone(t.byPath),
		rootPages: t.rootPages,
		present:   sets.New[string](),
	}

	paths := slices.Clone(discovered)
	slices.Sort(paths)

	used := sets.New[string]()
	for _, name := range t.byPath {
		used.Add(name)
	}

	var collisions []Collision
	for _, p := range paths {
		next.present.Add(p)
		if _, ok := t.byPath[p]; ok {
			continue
		}

		name := DeriveName(p)
		if used.Has(name) {
			renamed := uniqueName(p, name, used)
			collisions = append(collisions, Collision{Path: p, Wanted: name, Renamed: renamed})
			name = renamed
		}
		used.Add(name)
		next.byPath[p] = name
	}
	return next, collisions
}

func uniqueName(p, name string, used sets.Set[string]) string {
	if dir := path.Dir(p); dir != "." {
		candidate := DeriveName(path.Base(dir)) + "-" + name
		if !used.Has(candidate) {
			return candidate
		}
		name = candidate
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", name, i)
		if !used.Has(candidate) {
			return candidate
		}
	}
}

// Lookup returns the page name configured or discovered for relPath.
func (t *NameTable) Lookup(relPath string) (string, bool) {
	name, ok := t.byPath[relPath]
	return name, ok
}

// RootPage returns the page name for a repository root file stem such as
// README.
func (t *NameTable) RootPage(stem string) (string, bool) {
	name, ok := t.rootPages[stem]
	return name, ok
}

// Present returns the discovered source paths in sorted order.
func (t *NameTable) Present() []string {
	return sets.Sorted(t.present)
}

// Pages returns the page names of the discovered source files. Before
// discovery every configured page counts as present.
func (t *NameTable) Pages() sets.Set[string] {
	out := sets.New[string]()
	for p, name := range t.byPath {
		if t.present == nil || t.present.Has(p) {
			out.Add(name)
		}
	}
	return out
}

// DeriveName converts a source path to a page name: the file name without
// its extension, with every hyphen-separated segment capitalized: first rune
// upper case, the rest lower case.
//
//	user-guide.md        -> User-Guide
//	specs/formal-spec.md -> Formal-Spec
//	README.md            -> Readme
//	tla+tools.md         -> Tla+tools
func DeriveName(p string) string {
	base := path.Base(strings.TrimSuffix(p, path.Ext(p)))
	parts := strings.Split(base, "-")
	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, "-")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	_, n := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:n]) + cases.Lower(language.Und).String(s[n:])
}
