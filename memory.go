// FILE: strata/memory.go
package strata

import "strings"

// MemorySource supplies fixed in-memory key/value pairs.
type MemorySource struct {
	// Data holds the initial key/value pairs. Keys may be hierarchical
	// ("Logging:Level").
	Data map[string]string
}

// NewMemorySource creates an in-memory source seeded with data. The map
// is copied, so later mutation of the argument has no effect.
func NewMemorySource(data map[string]string) *MemorySource {
	copied := make(map[string]string, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return &MemorySource{Data: copied}
}

// Build implements Source.
func (s *MemorySource) Build(_ *Builder) Provider {
	data := make(map[string]entry, len(s.Data))
	for k, v := range s.Data {
		data[strings.ToUpper(k)] = entry{key: k, value: v}
	}
	return &memoryProvider{data: data}
}

type memoryProvider struct {
	data map[string]entry
}

func (p *memoryProvider) Name() string { return "MemoryProvider" }

func (p *memoryProvider) Get(key string) (string, bool) {
	e, ok := p.data[strings.ToUpper(key)]
	return e.value, ok
}

func (p *memoryProvider) Load() error { return nil }

func (p *memoryProvider) ReloadToken() *ChangeToken { return NeverChanges() }

func (p *memoryProvider) ChildKeys(earlier []string, parentPath string) []string {
	return accumulateChildKeys(p.data, earlier, parentPath)
}
