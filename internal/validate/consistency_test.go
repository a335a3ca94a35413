package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallstop/docwiki/internal/util/sets"
)

func TestCheckSidebar_DisplayText(t *testing.T) {
	pages := sets.New("Page")

	tests := []struct {
		name     string
		sidebar  string
		errors   int
		contains string
	}{
		{"plus sign", "- [[Page|TLA+ Tools]]\n", 1, "'+'"},
		{"safe text", "- [[Page|Safe Text]]\n", 0, ""},
		{"several hostile characters report once", "- [[Page|A+B=C & D?]]\n", 1, "'+'"},
		{"percent", "- [[Page|100% done]]\n", 1, "'%'"},
		{"no display text", "- [[Page]]\n", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckSidebar(tt.sidebar, pages)
			require.Len(t, issues, tt.errors)
			for _, issue := range issues {
				assert.Equal(t, RuleDisplayText, issue.Rule)
				assert.Equal(t, SeverityError, issue.Severity)
				assert.Equal(t, 1, issue.Line)
				assert.Contains(t, issue.Message, tt.contains)
			}
		})
	}
}

func TestCheckSidebar_MissingTarget(t *testing.T) {
	issues := CheckSidebar("# Docs\n\n- [[Home]]\n- [[Gone|Old page]]\n", sets.New("Home"))
	require.Len(t, issues, 1)
	assert.Equal(t, RuleSidebarTarget, issues[0].Rule)
	assert.Equal(t, 4, issues[0].Line)
	assert.Contains(t, issues[0].Message, "'Gone.md'")
}

func TestCheckStructure(t *testing.T) {
	structure := map[string]string{"index.md": "Home", "guide.md": "Guide", "old.md": "Old"}
	issues := CheckStructure(structure, []string{"guide.md", "index.md", "new.md"})

	assert.Equal(t, []ruleAt{{RuleUnmappedSource, 0}, {RuleStaleMapping, 0}}, rulesOf(issues))
	assert.Equal(t, "new.md", issues[0].File)
	assert.Equal(t, "old.md", issues[1].File)
	for _, issue := range issues {
		assert.Equal(t, SeverityWarning, issue.Severity)
	}
}

func TestCheckSidebarCompleteness(t *testing.T) {
	structure := map[string]string{
		"index.md": "Home",
		"guide.md": "Guide",
		"extra.md": "Extra",
		"gone.md":  "Gone",
	}
	issues := CheckSidebarCompleteness("[[Home]]\n[[Guide]]\n", sets.New("Home", "Guide", "Extra"), structure)

	require.Len(t, issues, 1)
	assert.Equal(t, RuleSidebarCompleteness, issues[0].Rule)
	assert.Contains(t, issues[0].Message, "'Extra.md'")
}

func TestCheckLinkSyntax(t *testing.T) {
	issues := CheckLinkSyntax("Page.md", "[ Text](a)\n[Text ](b)\n[](c)\n[ok](d)\n")

	assert.Equal(t, []ruleAt{{RuleLinkSpaceOpen, 1}, {RuleLinkSpaceClose, 2}, {RuleLinkEmptyText, 3}}, rulesOf(issues))
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, SeverityWarning, issues[1].Severity)
}
