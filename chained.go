// FILE: strata/chained.go
package strata

import "sort"

// ChainedSource wraps an existing configuration so it can participate in
// another builder's source list. The chained provider delegates lookups
// to the wrapped configuration live; reloading the outer root does not
// copy its data.
type ChainedSource struct {
	Configuration Configuration
}

// Build implements Source.
func (s *ChainedSource) Build(_ *Builder) Provider {
	return &chainedProvider{config: s.Configuration}
}

type chainedProvider struct {
	config Configuration
}

func (p *chainedProvider) Name() string { return "ChainedProvider" }

func (p *chainedProvider) Get(key string) (string, bool) {
	return p.config.Get(key)
}

func (p *chainedProvider) Load() error { return nil }

func (p *chainedProvider) ReloadToken() *ChangeToken {
	return p.config.ReloadToken()
}

func (p *chainedProvider) ChildKeys(earlier []string, parentPath string) []string {
	var children []*Section
	if parentPath == "" {
		children = p.config.Children()
	} else {
		children = p.config.Section(parentPath).Children()
	}

	for _, c := range children {
		earlier = append(earlier, c.Key())
	}
	sort.Slice(earlier, func(i, j int) bool { return CompareKeys(earlier[i], earlier[j]) < 0 })
	return earlier
}
