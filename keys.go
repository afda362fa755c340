// FILE: strata/keys.go
package strata

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// CompareKeys compares two configuration keys segment by segment and
// reports -1, 0, or +1 in the manner of strings.Compare.
//
// Numeric segments order numerically ("2" before "10") and sort ahead of
// non-numeric segments; non-numeric segments compare case-insensitively.
// When one key is a prefix of the other, the shorter key sorts first.
//
// Empty segments produced by leading or doubled delimiters are dropped
// before comparison, so keys differing only in embedded empty segments
// compare equal. This matches the established ordering contract and is
// kept intentionally.
func CompareKeys(a, b string) int {
	as := splitNonEmpty(a)
	bs := splitNonEmpty(b)
	n := min(len(as), len(bs))

	for i := 0; i < n; i++ {
		x, y := as[i], bs[i]
		xn, xerr := strconv.ParseUint(x, 10, 64)
		yn, yerr := strconv.ParseUint(y, 10, 64)

		switch {
		case xerr == nil && yerr == nil:
			if xn != yn {
				if xn < yn {
					return -1
				}
				return 1
			}
		case xerr == nil:
			return -1
		case yerr == nil:
			return 1
		default:
			if r := strings.Compare(strings.ToUpper(x), strings.ToUpper(y)); r != 0 {
				return r
			}
		}
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func splitNonEmpty(key string) []string {
	parts := strings.Split(key, KeyDelimiter)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// entry holds one configuration value along with the originally-cased key
// used for display and child-segment extraction. Provider snapshots map the
// uppercased full key to an entry.
type entry struct {
	key   string
	value string
}

// accumulateChildKeys appends every immediate child segment below
// parentPath found in data, then sorts the combined result with
// CompareKeys. An empty parentPath selects top-level segments. Only keys
// that continue past parentPath with a delimiter contribute; a bare
// substring match is not enough.
func accumulateChildKeys(data map[string]entry, keys []string, parentPath string) []string {
	if parentPath == "" {
		for _, e := range data {
			keys = append(keys, firstSegment(e.key, 0))
		}
	} else {
		parent := strings.ToUpper(parentPath)
		plen := len(parentPath)
		for k, e := range data {
			if len(k) > plen && strings.HasPrefix(k, parent) && k[plen] == KeyDelimiter[0] {
				keys = append(keys, firstSegment(e.key, plen+1))
			}
		}
	}

	// Keys differing only in casing compare equal; break the tie
	// byte-wise so iteration order never depends on map order.
	sort.Slice(keys, func(i, j int) bool {
		if r := CompareKeys(keys[i], keys[j]); r != 0 {
			return r < 0
		}
		return keys[i] < keys[j]
	})
	return keys
}

func firstSegment(key string, start int) string {
	sub := key[start:]
	if i := strings.Index(sub, KeyDelimiter); i >= 0 {
		return sub[:i]
	}
	return sub
}

// toPascalCase uppercases the first rune of text.
func toPascalCase(text string) string {
	if text == "" {
		return text
	}
	r := []rune(text)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// toPascalCaseParts splits text on sep and pascal-cases each part,
// producing e.g. "no-build" -> "NoBuild".
func toPascalCaseParts(text string, sep string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, part := range strings.Split(text, sep) {
		b.WriteString(toPascalCase(part))
	}
	return b.String()
}
