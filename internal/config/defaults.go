package config

import "maps"

const (
	DefaultSource  = "docs"
	DefaultDest    = "wiki"
	DefaultAssets  = "assets"
	DefaultBranch  = "main"
	DefaultTitle   = "Documentation"
	HomePage       = "Home"
	SidebarFile    = "_Sidebar.md"
	IndexFile      = "index.md"
	AssetsDirName  = "assets"
	MoreSection    = "More"
)

var defaultRootPages = map[string]string{
	"README":       "Home",
	"CHANGELOG":    "Changelog",
	"CONTRIBUTING": "Contributing",
	"LICENSE":      "License",
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.Dest == "" {
		cfg.Dest = DefaultDest
	}
	if cfg.Assets == "" {
		cfg.Assets = DefaultAssets
	}
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.EscapePolicy == "" {
		cfg.EscapePolicy = EscapeExternal
	}
	if cfg.Skip == nil {
		cfg.Skip = []string{"stylesheets", "includes", "abbreviations.md"}
	}
	if cfg.RootSkip == nil {
		cfg.RootSkip = []string{"README.md"}
	}
	if cfg.Structure == nil {
		cfg.Structure = map[string]string{}
	}
	if _, ok := cfg.Structure[IndexFile]; !ok {
		cfg.Structure[IndexFile] = HomePage
	}
	if cfg.RootPages == nil {
		cfg.RootPages = maps.Clone(defaultRootPages)
	}
	if cfg.Sidebar.Title == "" {
		cfg.Sidebar.Title = cfg.Home.Title
	}
	if cfg.Sidebar.Title == "" {
		cfg.Sidebar.Title = DefaultTitle
	}
	if cfg.Home.Title == "" {
		cfg.Home.Title = cfg.Sidebar.Title
	}
	if cfg.Sidebar.Footer == "" && cfg.RepoURL != "" {
		cfg.Sidebar.Footer = "[View on GitHub](" + cfg.RepoURL + ")"
	}
}
