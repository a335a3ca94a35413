package wiki

import (
	"strings"

	"github.com/wallstop/docwiki/internal/config"
	"github.com/wallstop/docwiki/internal/util/sets"
)

// GenerateSidebar renders _Sidebar.md.
//
// Configured entries are listed only when their page exists; sections left
// empty are dropped. Existing pages that no section mentions are appended
// under a "More" section in name order.
func GenerateSidebar(sb config.SidebarConfig, pages sets.Set[string]) string {
	var b strings.Builder
	b.WriteString("# " + sb.Title + "\n\n")
	b.WriteString("**[[" + config.HomePage + "]]**\n")

	referenced := sets.New(config.HomePage)
	for _, section := range sb.Sections {
		entries := existingEntries(section.Entries, pages)
		for _, e := range section.Entries {
			referenced.Add(e.Page)
		}
		writeSection(&b, section.Title, entries)
	}

	var more []config.SidebarEntry
	for _, page := range sets.Sorted(pages.Difference(referenced)) {
		more = append(more, config.SidebarEntry{Page: page, Label: strings.ReplaceAll(page, "-", " ")})
	}
	writeSection(&b, config.MoreSection, more)

	if sb.Footer != "" {
		b.WriteString("\n---\n\n" + sb.Footer + "\n")
	}
	return b.String()
}

// GenerateFallbackHome renders a Home page for docs trees without an
// index.md: the configured title and description followed by the sidebar
// sections that have pages.
func GenerateFallbackHome(cfg *config.Config, pages sets.Set[string]) string {
	var b strings.Builder
	b.WriteString("# " + cfg.Home.Title + "\n")
	if cfg.Home.Description != "" {
		b.WriteString("\n" + strings.TrimSpace(cfg.Home.Description) + "\n")
	}
	for _, section := range cfg.Sidebar.Sections {
		writeSection(&b, section.Title, existingEntries(section.Entries, pages))
	}
	if cfg.RepoURL != "" {
		b.WriteString("\n---\n\nThis wiki is automatically synced from the\n[main repository](" + cfg.RepoURL + ").\n")
	}
	return b.String()
}

// WikiLink renders an entry as [[Page]] or [[Page|Label]].
func WikiLink(e config.SidebarEntry) string {
	if e.Label == "" || e.Label == e.Page {
		return "[[" + e.Page + "]]"
	}
	return "[[" + e.Page + "|" + e.Label + "]]"
}

func existingEntries(entries []config.SidebarEntry, pages sets.Set[string]) []config.SidebarEntry {
	var out []config.SidebarEntry
	for _, e := range entries {
		if e.Page == config.HomePage || pages.Has(e.Page) {
			out = append(out, e)
		}
	}
	return out
}

func writeSection(b *strings.Builder, title string, entries []config.SidebarEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("\n## " + title + "\n\n")
	for _, e := range entries {
		b.WriteString("- " + WikiLink(e) + "\n")
	}
}
