// FILE: strata/path.go
package strata

import "strings"

// KeyDelimiter separates segments in hierarchical configuration keys.
const KeyDelimiter = ":"

// CombinePath joins the given segments into a single configuration path.
// Empty segments are preserved verbatim, which leaves consecutive
// delimiters in the result.
func CombinePath(segments ...string) string {
	return strings.Join(segments, KeyDelimiter)
}

// SectionKey extracts the last segment from the path. If the path contains
// no delimiter the whole path is returned.
func SectionKey(path string) string {
	if i := strings.LastIndex(path, KeyDelimiter); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ParentPath extracts the path of the parent node for the given path.
// If the path contains no delimiter an empty string is returned.
func ParentPath(path string) string {
	if i := strings.LastIndex(path, KeyDelimiter); i >= 0 {
		return path[:i]
	}
	return ""
}
