// Package pathutil normalizes file system paths for rule matching.
//
// Rule patterns and lookup paths are always compared in a canonical
// slash-separated, root-relative form. Normalization is deliberately
// narrow: it does not collapse ".." or doubled separators, because rule
// files written against the reference resolver rely on paths being
// compared exactly as given.
package pathutil

import "strings"

// Sep is the separator used in normalized paths and patterns.
const Sep = "/"

// Normalize canonicalizes a path for rule matching: backslashes become
// forward slashes, leading slashes are stripped, a leading "./" is
// stripped, and "." alone maps to the empty string (the root).
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", Sep)
	p = strings.TrimLeft(p, Sep)
	if strings.HasPrefix(p, "."+Sep) {
		p = p[2:]
	} else if p == "." {
		p = ""
	}
	return p
}

// Segments splits a path into its normalized components. The root path
// yields no segments.
func Segments(p string) []string {
	p = Normalize(p)
	if p == "" {
		return nil
	}
	return strings.Split(p, Sep)
}

// Join joins normalized path components with the canonical separator,
// skipping empty parts.
func Join(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, Sep)
}

// Parent returns the directory containing a normalized path. The parent
// of a top-level entry, and of the root itself, is the root ("").
func Parent(p string) string {
	i := strings.LastIndex(p, Sep)
	if i < 0 {
		return ""
	}
	return p[:i]
}

// RelativeTo returns p relative to the directory dir. Both must already
// be normalized and dir must be an ancestor of p (or the root).
func RelativeTo(p, dir string) string {
	if dir == "" {
		return p
	}
	return strings.TrimPrefix(p, dir+Sep)
}
