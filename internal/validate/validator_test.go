package validate

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallstop/docwiki/internal/config"
	derrors "github.com/wallstop/docwiki/internal/errors"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

func newTestValidator(t *testing.T, wiki, docs map[string]string) (*Validator, *config.Config) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Source = filepath.Join(root, "docs")
	cfg.Dest = filepath.Join(root, "wiki")
	cfg.Structure = map[string]string{"index.md": "Home", "guide.md": "Guide"}
	writeFiles(t, cfg.Source, docs)
	require.NoError(t, os.MkdirAll(cfg.Dest, 0o750))
	writeFiles(t, cfg.Dest, wiki)
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))), cfg
}

var cleanWiki = map[string]string{
	"Home.md":     "# Home\n\nWelcome. See [[Guide]].\n",
	"Guide.md":    "# Guide\n\n## Usage\n\nRun it.\n",
	"_Sidebar.md": "# Docs\n\n**[[Home]]**\n\n## Start\n\n- [[Guide|User Guide]]\n",
}

var cleanDocs = map[string]string{
	"index.md": "# Home\n",
	"guide.md": "# Guide\n",
}

func TestValidator_CleanWiki(t *testing.T) {
	v, _ := newTestValidator(t, cleanWiki, cleanDocs)

	result, err := v.Run()
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 3, result.FilesTotal)
	assert.False(t, result.Failed(true))
}

func TestValidator_ReportsProblems(t *testing.T) {
	wiki := map[string]string{
		"Home.md":     "# Home\n",
		"Guide.md":    "# Guide\n\n## Usage\n\nRun it.\n",
		"Broken.md":   "# Broken\n\n## Empty\n",
		"_Sidebar.md": "**[[Home]]**\n- [[Guide]]\n- [[Nope|TLA+ Tools]]\n",
	}
	docs := map[string]string{"index.md": "x\n", "guide.md": "x\n", "new.md": "x\n"}
	v, _ := newTestValidator(t, wiki, docs)

	result, err := v.Run()
	require.NoError(t, err)

	counts := result.RuleCounts()
	assert.Equal(t, 1, counts[RuleEmptySection])
	assert.Equal(t, 1, counts[RuleSidebarTarget])
	assert.Equal(t, 1, counts[RuleDisplayText])
	assert.Equal(t, 1, counts[RuleUnmappedSource])
	assert.True(t, result.Failed(false))

	for i := 1; i < len(result.Issues); i++ {
		assert.LessOrEqual(t, result.Issues[i-1].File, result.Issues[i].File, "issues are sorted by file")
	}
}

func TestValidator_WarningsOnlyFailInStrictMode(t *testing.T) {
	wiki := map[string]string{
		"Home.md":     "# Home\n\nSee [the page](Elsewhere).\n",
		"Guide.md":    cleanWiki["Guide.md"],
		"_Sidebar.md": cleanWiki["_Sidebar.md"],
	}
	v, _ := newTestValidator(t, wiki, cleanDocs)

	result, err := v.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, result.ErrorCount())
	assert.Equal(t, 1, result.WarningCount())
	assert.False(t, result.Failed(false))
	assert.True(t, result.Failed(true))
}

func TestValidator_MissingSidebar(t *testing.T) {
	wiki := map[string]string{"Home.md": "# Home\n", "Guide.md": cleanWiki["Guide.md"]}
	v, _ := newTestValidator(t, wiki, cleanDocs)

	result, err := v.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, result.RuleCounts()[RuleSidebarMissing])
	assert.True(t, result.HasErrors())
}

func TestValidator_MissingWikiDir(t *testing.T) {
	cfg := config.Default()
	cfg.Dest = filepath.Join(t.TempDir(), "nope")

	_, err := New(cfg, nil).Run()
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestValidator_MissingDocsDirSkipsStructure(t *testing.T) {
	v, cfg := newTestValidator(t, cleanWiki, nil)
	require.NoError(t, os.RemoveAll(cfg.Source))

	result, err := v.Run()
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
}

func TestFormatters(t *testing.T) {
	result := &Result{
		FilesTotal: 2,
		Issues: []Issue{
			{File: "Page.md", Line: 3, Severity: SeverityWarning, Rule: RuleBrokenPageLink, Message: "Link may be broken - page not found: X"},
		},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter("text").Format(&buf, result, "wiki", false))
		out := buf.String()
		assert.Contains(t, out, "WARNING Page.md:3: Link may be broken - page not found: X [broken-page-link]")
		assert.Contains(t, out, "2 files scanned")
		assert.Contains(t, out, "⚠ Found 1 warning(s)")
	})

	t.Run("text strict", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter("text").Format(&buf, result, "wiki", true))
		assert.Contains(t, buf.String(), "(strict mode)")
	})

	t.Run("text passed", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter("text").Format(&buf, &Result{FilesTotal: 1}, "wiki", false))
		assert.Contains(t, buf.String(), "✓ Wiki validation passed")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter("json").Format(&buf, result, "wiki", true))

		var out JSONOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, 1, out.WarningCount)
		assert.False(t, out.Passed)
		assert.Equal(t, 1, out.Rules[RuleBrokenPageLink])
		require.Len(t, out.Issues, 1)
		assert.Equal(t, "warning", out.Issues[0].Severity)
	})
}
