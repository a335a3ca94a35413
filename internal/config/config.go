// Package config loads the docwiki YAML configuration: source and output
// directories, the page naming table, link policies and sidebar layout.
package config

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	derrors "github.com/wallstop/docwiki/internal/errors"
)

// EscapePolicy decides what happens to a relative link that resolves above
// the docs root.
type EscapePolicy string

const (
	// EscapeExternal rewrites escaping links to the repository blob URL.
	EscapeExternal EscapePolicy = "external"
	// EscapeKeep leaves escaping links untouched.
	EscapeKeep EscapePolicy = "keep"
)

// Config represents the application configuration.
//
// A Config is treated as immutable once loaded; the pipeline copies what it
// needs out of it.
type Config struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
	Assets string `yaml:"assets"`
	Clean  *bool  `yaml:"clean,omitempty"`

	RepoURL      string       `yaml:"repo_url,omitempty"`
	Branch       string       `yaml:"branch,omitempty"`
	EscapePolicy EscapePolicy `yaml:"escape_policy,omitempty"`

	// Skip lists path segments or file names excluded anywhere in the tree.
	Skip []string `yaml:"skip,omitempty"`
	// RootSkip lists files excluded only at the docs root.
	RootSkip []string `yaml:"root_skip,omitempty"`

	// Structure maps docs-relative source paths to wiki page names.
	Structure map[string]string `yaml:"structure,omitempty"`
	// RootPages maps repository root file stems (README, LICENSE) to pages.
	RootPages map[string]string `yaml:"root_pages,omitempty"`

	Sidebar SidebarConfig `yaml:"sidebar"`
	Home    HomeConfig    `yaml:"home"`
}

// SidebarConfig describes the generated _Sidebar.md.
type SidebarConfig struct {
	Title    string           `yaml:"title"`
	Sections []SidebarSection `yaml:"sections,omitempty"`
	Footer   string           `yaml:"footer,omitempty"`
}

// SidebarSection is one `## Title` group of sidebar entries.
type SidebarSection struct {
	Title   string         `yaml:"title"`
	Entries []SidebarEntry `yaml:"entries"`
}

// SidebarEntry links one page, optionally with a display label.
type SidebarEntry struct {
	Page  string `yaml:"page"`
	Label string `yaml:"label,omitempty"`
}

// HomeConfig feeds the fallback Home page used when the docs have no index.md.
type HomeConfig struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// CleanEnabled reports whether the destination is cleared before a sync.
func (c *Config) CleanEnabled() bool {
	return c.Clean == nil || *c.Clean
}

// SourcePrefix returns the docs directory as a slash path relative to the
// repository root, used to build repository URLs for escaping links.
func (c *Config) SourcePrefix() string {
	p := filepath.ToSlash(filepath.Clean(c.Source))
	if filepath.IsAbs(c.Source) || p == ".." || strings.HasPrefix(p, "../") {
		return path.Base(p)
	}
	if p == "." {
		return ""
	}
	return p
}

// BlobURL returns the repository URL prefix for files on the configured
// branch, or "" when no repository is configured.
func (c *Config) BlobURL() string {
	if c.RepoURL == "" {
		return ""
	}
	return strings.TrimRight(c.RepoURL, "/") + "/blob/" + c.Branch
}

// Load reads, expands and validates the configuration file at configPath.
//
// Environment variables from .env are loaded first and may be referenced in
// the file as ${VAR}.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, derrors.ConfigNotFound(configPath)
	}
	if err != nil {
		return nil, derrors.ConfigInvalid(configPath, err)
	}
	return Parse(data, configPath)
}

// LoadOrDefault loads configPath when it exists and otherwise returns the
// built-in defaults. A missing file is an error only when required is set.
func LoadOrDefault(configPath string, required bool) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) && !required {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return Load(configPath)
}

// Parse decodes YAML configuration data, applies defaults and validates.
// name identifies the source in errors.
func Parse(data []byte, name string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, derrors.ConfigInvalid(name, err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, derrors.ConfigInvalid(name, err)
	}
	return &cfg, nil
}
