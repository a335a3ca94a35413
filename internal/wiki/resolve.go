package wiki

import (
	"path"
	"strings"
)

// ResolvePath resolves link against the docs-relative directory dir,
// collapsing "." and ".." segments. It reports false when the result would
// climb above the docs root.
func ResolvePath(dir, link string) (string, bool) {
	parts, escaped := collapse(splitSegments(dir), splitSegments(link), false)
	if escaped {
		return "", false
	}
	if len(parts) == 0 {
		return ".", true
	}
	return strings.Join(parts, "/"), true
}

// ExternalPath returns the repository-relative path of a link that leaves
// the docs tree. prefix is the docs directory relative to the repository
// root. Extra ".." segments past the repository root are ignored. An empty
// result means the link points at the repository root itself.
func ExternalPath(prefix, dir, link string) string {
	base := append(splitSegments(prefix), splitSegments(dir)...)
	parts, _ := collapse(base, splitSegments(link), true)
	return strings.Join(parts, "/")
}

func splitSegments(p string) []string {
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(path.Clean(p), "/")
}

func collapse(base, rel []string, clamp bool) ([]string, bool) {
	parts := append([]string(nil), base...)
	for _, seg := range rel {
		switch seg {
		case "", ".":
		case "..":
			if len(parts) == 0 {
				if !clamp {
					return nil, true
				}
				continue
			}
			parts = parts[:len(parts)-1]
		default:
			parts = append(parts, seg)
		}
	}
	return parts, false
}
