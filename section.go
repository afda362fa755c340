// FILE: strata/section.go
package strata

// Section is a lightweight view over the Root scoped to a path prefix.
// Sections hold no data of their own: every call re-reads current
// provider state, so a section handle obtained before a reload observes
// the reloaded values transparently.
type Section struct {
	root *Root
	path string
}

// Key returns the key this section occupies in its parent.
func (s *Section) Key() string { return SectionKey(s.path) }

// Path returns the full path of this section.
func (s *Section) Path() string { return s.path }

// Value returns the section's own resolved value, or an empty string when
// none is set. Use Get on the parent to distinguish an empty value from
// an absent one.
func (s *Section) Value() string {
	v, _ := s.root.Get(s.path)
	return v
}

// Exists reports whether the section carries data: a value is present for
// its path (even an empty one) or it has children.
func (s *Section) Exists() bool {
	if _, ok := s.root.Get(s.path); ok {
		return true
	}
	return len(s.root.childKeys(s.path)) > 0
}

// Get resolves a key relative to this section.
func (s *Section) Get(key string) (string, bool) {
	return s.root.Get(s.subkey(key))
}

// Section returns a view scoped to the given key below this section.
func (s *Section) Section(key string) *Section {
	return s.root.Section(s.subkey(key))
}

// Children returns the immediate child sections below this section.
func (s *Section) Children() []*Section {
	keys := s.root.childKeys(s.path)
	sections := make([]*Section, len(keys))
	for i, k := range keys {
		sections[i] = s.Section(k)
	}
	return sections
}

// ReloadToken returns the root's current composite token.
func (s *Section) ReloadToken() *ChangeToken {
	return s.root.ReloadToken()
}

func (s *Section) subkey(key string) string {
	return CombinePath(s.path, key)
}
