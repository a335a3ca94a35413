package wiki

import (
	"regexp"
	"strings"

	"github.com/wallstop/docwiki/internal/markdown"
)

var (
	gridOpenPattern  = regexp.MustCompile(`(?i)<div\s+class="grid cards"[^>]*markdown>`)
	divOpenPattern   = regexp.MustCompile(`(?i)^<div[^>]*>`)
	divClosePattern  = regexp.MustCompile(`(?i)^</div\s*>`)
	cardTitlePattern = regexp.MustCompile(`^-\s+.*\*\*([^*]+)\*\*`)
	cardLinkPattern  = regexp.MustCompile(`^\[:[\w-]+:\s*([^\]]+)\]\(([^)]+)\)`)
)

// Card is one entry of a grid cards block.
type Card struct {
	Title       string
	Description string
	LinkText    string
	LinkURL     string
}

// String renders the card as a single list item:
//
//	- **Title** — Description [Link text](url)
func (c Card) String() string {
	var b strings.Builder
	b.WriteString("- **")
	b.WriteString(c.Title)
	b.WriteString("**")
	if c.Description != "" {
		b.WriteString(" — ")
		b.WriteString(c.Description)
	}
	if c.LinkText != "" && c.LinkURL != "" {
		b.WriteString(" [")
		b.WriteString(c.LinkText)
		b.WriteString("](")
		b.WriteString(c.LinkURL)
		b.WriteString(")")
	}
	return b.String()
}

// ConvertGridCards replaces every grid cards block with a flat Markdown list
// of its cards. Nested <div> elements are matched by depth. A block without
// cards is removed entirely.
//
// A block whose closing </div> is missing converts only its card region,
// which ends at the first non-blank line that is neither indented nor a list
// item; the text after it is kept as written.
func ConvertGridCards(content string) string {
	code := markdown.CodeRanges(content)

	var b strings.Builder
	b.Grow(len(content))
	pos := 0
	for pos < len(content) {
		loc := gridOpenPattern.FindStringIndex(content[pos:])
		if loc == nil {
			break
		}
		start, bodyStart := pos+loc[0], pos+loc[1]
		if code.Contains(start) {
			b.WriteString(content[pos:bodyStart])
			pos = bodyStart
			continue
		}
		b.WriteString(content[pos:start])

		bodyEnd, end, closed := matchClosingDiv(content, bodyStart, code)
		if closed {
			b.WriteString(renderCards(ParseCards(content[bodyStart:bodyEnd])))
		} else {
			b.WriteString(convertUnclosedGrid(content[start:bodyStart], content[bodyStart:]))
		}
		pos = end
	}
	b.WriteString(content[pos:])
	return b.String()
}

// matchClosingDiv finds the </div> balancing the grid opener whose body
// starts at from. Tags inside code are not counted. It returns the end of
// the body and the end of the closing tag, or closed=false when the document
// ends first.
func matchClosingDiv(content string, from int, code markdown.Ranges) (bodyEnd, end int, closed bool) {
	depth := 1
	j := from
	for {
		i := strings.IndexByte(content[j:], '<')
		if i < 0 {
			return len(content), len(content), false
		}
		j += i
		if code.Contains(j) {
			j++
			continue
		}
		if m := divOpenPattern.FindStringIndex(content[j:]); m != nil {
			depth++
			j += m[1]
			continue
		}
		if m := divClosePattern.FindStringIndex(content[j:]); m != nil {
			depth--
			if depth == 0 {
				return j, j + m[1], true
			}
			j += m[1]
			continue
		}
		j++
	}
}

func convertUnclosedGrid(opener, body string) string {
	lines := strings.Split(body, "\n")
	k := 0
	for ; k < len(lines); k++ {
		line := lines[k]
		if k == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' || strings.HasPrefix(line, "-") {
			continue
		}
		break
	}

	cards := ParseCards(strings.Join(lines[:k], "\n"))
	if len(cards) == 0 {
		return opener + body
	}
	out := renderCards(cards)
	if k < len(lines) {
		out += "\n" + strings.Join(lines[k:], "\n")
	}
	return out
}

// ParseCards extracts the cards from the body of a grid cards block.
func ParseCards(body string) []Card {
	var (
		cards   []Card
		current *Card
	)
	for line := range strings.Lines(body) {
		trimmed := strings.TrimSpace(line)

		if m := cardTitlePattern.FindStringSubmatch(trimmed); m != nil {
			if current != nil {
				cards = append(cards, *current)
			}
			current = &Card{Title: strings.TrimSpace(m[1])}
			continue
		}
		if current == nil || trimmed == "" || trimmed == "---" {
			continue
		}
		if m := cardLinkPattern.FindStringSubmatch(trimmed); m != nil {
			current.LinkText = strings.TrimSpace(m[1])
			current.LinkURL = strings.TrimSpace(m[2])
			continue
		}
		if strings.HasPrefix(trimmed, "<") {
			continue
		}
		if current.Description == "" {
			current.Description = trimmed
		} else {
			current.Description += " " + trimmed
		}
	}
	if current != nil {
		cards = append(cards, *current)
	}
	return cards
}

func renderCards(cards []Card) string {
	if len(cards) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}
