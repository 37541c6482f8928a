// Package glob matches rule patterns against normalized paths.
//
// The dialect is the one rule files are written against: "*" matches
// within a single path segment, "?" matches exactly one character, "[...]"
// is a character class with "!"/"^" negation and ranges, and "**" matches
// zero or more whole segments. Interoperating rule files are exchanged
// with the reference resolver, so the matching here mirrors its behavior
// exactly, edge cases included, rather than any general glob library.
package glob

import (
	"strings"

	"github.com/tmcnab/aclwalk/pkg/pathutil"
)

// Match reports whether path matches pattern. Both are normalized before
// matching.
func Match(pattern, path string) bool {
	pattern = pathutil.Normalize(pattern)
	path = pathutil.Normalize(path)

	if pattern == path {
		return true
	}
	if strings.Contains(pattern, "**") {
		return matchDoublestar(pattern, path)
	}
	return matchSimple(pattern, path)
}

// matchDoublestar handles patterns containing "**". The pattern is split
// at the first "**" into a prefix and a suffix; the suffix (which may
// itself contain further "**") is then tried against every segment offset
// of the remaining path.
func matchDoublestar(pattern, path string) bool {
	if pattern == "**" {
		return true
	}
	if pattern == "" {
		return path == ""
	}
	if path == "" {
		return false
	}

	idx := strings.Index(pattern, "**")
	if idx == -1 {
		return matchSimple(pattern, path)
	}
	prefix := strings.TrimRight(pattern[:idx], "/")
	suffix := strings.TrimLeft(pattern[idx+2:], "/")

	var remaining string
	if prefix != "" {
		switch {
		case path == prefix:
			remaining = ""
		case strings.HasPrefix(path, prefix+"/"):
			remaining = path[len(prefix)+1:]
		case matchSimple(prefix, path):
			remaining = ""
		default:
			// A leading ** may absorb unmatched leading segments.
			if strings.HasPrefix(pattern, "**/") {
				segments := strings.Split(path, "/")
				for i := 1; i <= len(segments); i++ {
					if matchDoublestar(pattern, strings.Join(segments[i:], "/")) {
						return true
					}
				}
			}
			return false
		}
	} else {
		remaining = path
	}

	if suffix == "" {
		// "dir/**" requires at least one segment below dir; a bare
		// trailing "**" accepts anything, including nothing.
		if strings.HasSuffix(pattern, "/**") {
			return remaining != ""
		}
		return true
	}

	if remaining == "" {
		return false
	}
	if matchDoublestar(suffix, remaining) {
		return true
	}
	segments := strings.Split(remaining, "/")
	for i := range segments {
		if matchDoublestar(suffix, strings.Join(segments[i:], "/")) {
			return true
		}
	}
	return false
}

// matchSimple matches patterns without "**" by left-to-right scanning
// with backtracking on "*". A "*" never crosses a "/" in the path; "?"
// consumes any single character.
func matchSimple(pattern, path string) bool {
	if pattern == "" && path == "" {
		return true
	}
	if pattern == "" {
		return false
	}
	if path == "" {
		for i := 0; i < len(pattern); i++ {
			if pattern[i] != '*' {
				return false
			}
		}
		return true
	}
	if pattern == path {
		return true
	}

	patIdx, pathIdx := 0, 0
	starPatIdx, starPathIdx := -1, -1

	for pathIdx < len(path) {
		if patIdx < len(pattern) {
			switch {
			case pattern[patIdx] == '*':
				starPatIdx = patIdx
				starPathIdx = pathIdx
				patIdx++
				continue
			case pattern[patIdx] == '?':
				patIdx++
				pathIdx++
				continue
			case pattern[patIdx] == '[':
				if matchCharClass(pattern, patIdx, path[pathIdx]) {
					if end := strings.IndexByte(pattern[patIdx+1:], ']'); end != -1 {
						patIdx += end + 2
						pathIdx++
						continue
					}
				}
				// Unterminated or unmatched class: backtrack below.
			case pattern[patIdx] == path[pathIdx]:
				patIdx++
				pathIdx++
				continue
			}
		}

		if starPatIdx < 0 {
			return false
		}
		// Backtracking would make the "*" swallow a separator; fail
		// instead.
		if path[starPathIdx] == '/' {
			return false
		}
		patIdx = starPatIdx + 1
		starPathIdx++
		pathIdx = starPathIdx
	}

	for patIdx < len(pattern) && pattern[patIdx] == '*' {
		patIdx++
	}
	return patIdx == len(pattern)
}

// matchCharClass matches a single character against the class starting
// at pattern[start] ("[0-9]", "[abc]", "[!xyz]"). An unterminated or
// empty class never matches; it does not abort the surrounding match.
func matchCharClass(pattern string, start int, c byte) bool {
	if start >= len(pattern) || pattern[start] != '[' {
		return false
	}
	end := strings.IndexByte(pattern[start+1:], ']')
	if end == -1 {
		return false
	}
	class := pattern[start+1 : start+1+end]
	if class == "" {
		return false
	}

	negate := false
	if class[0] == '!' || class[0] == '^' {
		negate = true
		class = class[1:]
	}

	matched := false
	for i := 0; i < len(class); {
		if i+2 < len(class) && class[i+1] == '-' {
			if class[i] <= c && c <= class[i+2] {
				matched = true
				break
			}
			i += 3
		} else {
			if class[i] == c {
				matched = true
				break
			}
			i++
		}
	}
	if negate {
		return !matched
	}
	return matched
}
