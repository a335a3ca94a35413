package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/wallstop/docwiki/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "docs", cfg.Source)
	assert.Equal(t, "wiki", cfg.Dest)
	assert.Equal(t, "assets", cfg.Assets)
	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, EscapeExternal, cfg.EscapePolicy)
	assert.True(t, cfg.CleanEnabled())
	assert.Equal(t, map[string]string{"index.md": "Home"}, cfg.Structure)
	assert.Equal(t, "Home", cfg.RootPages["README"])
	assert.Equal(t, DefaultTitle, cfg.Sidebar.Title)
	assert.Empty(t, cfg.Sidebar.Footer)
	assert.Empty(t, cfg.BlobURL())
}

func TestParse_ExampleConfig(t *testing.T) {
	cfg, err := Parse(ExampleYAML(), "example.yaml")
	require.NoError(t, err)

	assert.Equal(t, "User-Guide", cfg.Structure["user-guide.md"])
	assert.Equal(t, "Overview", cfg.Structure["specs/README.md"])
	assert.Equal(t, "Formal-Specification", cfg.Structure["specs/formal-spec.md"])
	assert.Equal(t, "https://github.com/wallstop/fortress-rollback/blob/main", cfg.BlobURL())
	assert.Equal(t, "Fortress Rollback", cfg.Sidebar.Title)
	require.Len(t, cfg.Sidebar.Sections, 4)
	assert.Equal(t, "Documentation", cfg.Sidebar.Sections[0].Title)
	assert.Equal(t, SidebarEntry{Page: "User-Guide", Label: "User Guide"}, cfg.Sidebar.Sections[0].Entries[0])
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCWIKI_TEST_REPO", "https://github.com/example/project")
	cfg, err := Parse([]byte("repo_url: ${DOCWIKI_TEST_REPO}\nbranch: trunk\n"), "inline")
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/example/project/blob/trunk", cfg.BlobURL())
	assert.Equal(t, "[View on GitHub](https://github.com/example/project)", cfg.Sidebar.Footer)
}

func TestParse_CleanFalse(t *testing.T) {
	cfg, err := Parse([]byte("clean: false\n"), "inline")
	require.NoError(t, err)
	assert.False(t, cfg.CleanEnabled())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad escape policy", yaml: "escape_policy: drop\n"},
		{name: "bad repo url", yaml: "repo_url: not a url\n"},
		{name: "structure key without md", yaml: "structure:\n  guide: Guide\n"},
		{name: "structure key escapes root", yaml: "structure:\n  ../x.md: X\n"},
		{name: "hostile page name", yaml: "structure:\n  tla.md: TLA+Tools\n"},
		{name: "sidebar entry without page", yaml: "sidebar:\n  sections:\n    - title: Docs\n      entries:\n        - label: Oops\n"},
		{name: "sidebar section without title", yaml: "sidebar:\n  sections:\n    - entries:\n        - page: Home\n"},
		{name: "dest equals source", yaml: "source: docs\ndest: docs\n"},
		{name: "malformed yaml", yaml: "source: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "inline")
			require.Error(t, err)
			assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
		})
	}
}

func TestSourcePrefix(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"docs", "docs"},
		{"./docs", "docs"},
		{"site/docs/", "site/docs"},
		{"../other/docs", "docs"},
		{".", ""},
	}
	for _, tt := range tests {
		cfg := &Config{Source: tt.source}
		assert.Equal(t, tt.want, cfg.SourcePrefix(), tt.source)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docwiki.yaml")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))

	require.NoError(t, os.WriteFile(path, []byte("source: content\ndest: out\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "content", cfg.Source)
	assert.Equal(t, "out", cfg.Dest)
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := LoadOrDefault(missing, false)
	require.NoError(t, err)
	assert.Equal(t, "docs", cfg.Source)

	_, err = LoadOrDefault(missing, true)
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "docwiki.yaml")

	require.NoError(t, Init(path, false))
	require.ErrorIs(t, Init(path, false), ErrConfigExists)
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Fortress Rollback", cfg.Home.Title)
}
