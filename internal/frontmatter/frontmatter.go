// Package frontmatter separates MkDocs YAML frontmatter from a Markdown body.
package frontmatter

import (
	"bytes"
	"errors"
)

// Style records the newline convention of a document.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Parts is a document split at its frontmatter boundary.
type Parts struct {
	// Raw is the YAML between the delimiters, without the delimiters.
	Raw []byte
	// Body is everything after the closing delimiter.
	Body []byte
	// Had is true when the document opened with a frontmatter block.
	Had bool
	// Lines is the number of lines the frontmatter block occupied,
	// delimiters included.
	Lines int
	Style Style
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates `---` delimited frontmatter from the body.
//
// A document that does not open with a delimiter line yields Had == false and
// the full input as Body.
func Split(content []byte) (Parts, error) {
	style := detectStyle(content)
	nl := style.Newline
	delim := []byte("---" + nl)

	if !bytes.HasPrefix(content, delim) {
		return Parts{Body: content, Style: style}, nil
	}

	start := len(delim)
	if bytes.HasPrefix(content[start:], delim) {
		return Parts{
			Raw:   []byte{},
			Body:  content[start+len(delim):],
			Had:   true,
			Lines: 2,
			Style: style,
		}, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return Parts{Body: content, Style: style}, ErrMissingClosingDelimiter
	}

	raw := content[start : start+idx+len(nl)]
	return Parts{
		Raw:   raw,
		Body:  content[start+idx+len(closeSeq):],
		Had:   true,
		Lines: 2 + bytes.Count(raw, []byte("\n")),
		Style: style,
	}, nil
}

// Strip removes a leading frontmatter block and the blank lines that follow
// it. It returns the body and the number of lines removed from the top of
// content. A document whose frontmatter never closes is returned unchanged.
func Strip(content []byte) ([]byte, int) {
	parts, err := Split(content)
	if err != nil || !parts.Had {
		return content, 0
	}

	body := parts.Body
	removed := parts.Lines
	for {
		trimmed := bytes.TrimLeft(body, " \t\r")
		if len(trimmed) == 0 || trimmed[0] != '\n' {
			if len(trimmed) == 0 {
				body = trimmed
			}
			break
		}
		body = trimmed[1:]
		removed++
	}
	return body, removed
}

func detectStyle(content []byte) Style {
	newline := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		newline = "\r\n"
	}
	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
