package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// pageNamePattern accepts names that survive as wiki URLs unchanged.
var pageNamePattern = regexp.MustCompile(`^[^\s/\\#?%&=+]+$`)

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required),
		validation.Field(&c.Dest, validation.Required, validation.By(differentFrom(c.Source, "source"))),
		validation.Field(&c.RepoURL, is.URL),
		validation.Field(&c.Branch, validation.Required),
		validation.Field(&c.EscapePolicy, validation.Required, validation.In(EscapeExternal, EscapeKeep)),
		validation.Field(&c.Structure, validation.By(validStructure)),
		validation.Field(&c.RootPages, validation.By(validPageValues)),
		validation.Field(&c.Sidebar),
	)
}

// Validate checks a sidebar layout.
func (s SidebarConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.Sections),
	)
}

// Validate checks one sidebar section.
func (s SidebarSection) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.Entries),
	)
}

// Validate checks one sidebar entry.
func (e SidebarEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Page, validation.Required, validation.Match(pageNamePattern)),
	)
}

func differentFrom(other, name string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); s != "" && s == other {
			return fmt.Errorf("must differ from %s", name)
		}
		return nil
	}
}

func validStructure(value any) error {
	m, _ := value.(map[string]string)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if !strings.HasSuffix(k, ".md") {
			return fmt.Errorf("key %q must be a .md path relative to the docs root", k)
		}
		if strings.HasPrefix(k, "/") || strings.Contains(k, "..") {
			return fmt.Errorf("key %q must stay inside the docs root", k)
		}
	}
	return validPageValues(value)
}

func validPageValues(value any) error {
	m, _ := value.(map[string]string)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if !pageNamePattern.MatchString(m[k]) {
			return fmt.Errorf("page name %q for %q contains characters not allowed in wiki URLs", m[k], k)
		}
	}
	return nil
}
