// FILE: strata/configuration.go
package strata

import (
	"fmt"
	"iter"
	"strings"
)

// Configuration is a read-only view over composed configuration data.
// Both the Root and every Section implement it.
type Configuration interface {
	// Get resolves the value for a key. Absence is reported through the
	// second result, never through an error; a missing key is a normal
	// outcome in layered configuration.
	Get(key string) (string, bool)

	// Section returns a view scoped to the given key below this node.
	// Sections always exist as views; use Section.Exists to test for
	// actual data.
	Section(key string) *Section

	// Children returns the immediate child sections, merged across all
	// providers, deduplicated case-insensitively, and ordered by
	// CompareKeys.
	Children() []*Section

	// ReloadToken returns the token observing the next configuration
	// reload.
	ReloadToken() *ChangeToken
}

// Flatten walks the configuration's section tree depth-first and yields
// every reachable (path, value) pair. When c is a Section and relative is
// true, yielded paths are relative to the section; otherwise paths are
// absolute and the section's own pair is yielded first.
func Flatten(c Configuration, relative bool) iter.Seq2[string, string] {
	prefix := 0
	var firstKey, firstValue string
	emitFirst := false

	if s, ok := c.(*Section); ok {
		if relative {
			prefix = len(s.Path()) + len(KeyDelimiter)
		} else {
			firstKey, firstValue = s.Path(), s.Value()
			emitFirst = true
		}
	}

	return func(yield func(string, string) bool) {
		if emitFirst && !yield(firstKey, firstValue) {
			return
		}

		stack := c.Children()
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, s.Children()...)

			if !yield(s.Path()[prefix:], s.Value()) {
				return
			}
		}
	}
}

// AsMap collects the flattened view of c into a map keyed the same way
// Flatten yields.
func AsMap(c Configuration, relative bool) map[string]string {
	m := make(map[string]string)
	for k, v := range Flatten(c, relative) {
		m[k] = v
	}
	return m
}

// DebugView renders the entire configuration hierarchy with per-value
// provider attribution, one key per line, indented by depth. Intended for
// debug dumps only.
func DebugView(r *Root) string {
	var b strings.Builder
	debugChildren(&b, r, r.Children(), "")
	return b.String()
}

func debugChildren(b *strings.Builder, r *Root, children []*Section, indent string) {
	for _, child := range children {
		b.WriteString(indent)
		b.WriteString(child.Key())

		found := false
		providers := r.Providers()
		for i := len(providers) - 1; i >= 0; i-- {
			if value, ok := providers[i].Get(child.Path()); ok {
				fmt.Fprintf(b, "=%s (%s)", value, providers[i].Name())
				found = true
				break
			}
		}
		if !found {
			b.WriteString(":")
		}
		b.WriteString("\n")

		debugChildren(b, r, child.Children(), indent+"  ")
	}
}
