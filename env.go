// FILE: strata/env.go
package strata

import (
	"os"
	"strings"
)

// EnvSource supplies environment variables as configuration values.
//
// Variables are filtered by Prefix (case-insensitive); the prefix is
// stripped from the resulting key. A double underscore in a variable name
// maps to the key delimiter, so APP_LOGGING__LEVEL with prefix "APP_"
// becomes the key "LOGGING:LEVEL".
type EnvSource struct {
	Prefix string
}

// Build implements Source.
func (s *EnvSource) Build(_ *Builder) Provider {
	return &envProvider{prefix: s.Prefix}
}

type envProvider struct {
	prefix string
	data   map[string]entry
}

func (p *envProvider) Name() string { return "EnvProvider" }

func (p *envProvider) Get(key string) (string, bool) {
	e, ok := p.data[strings.ToUpper(key)]
	return e.value, ok
}

// Load snapshots the process environment, replacing the previous snapshot
// wholesale.
func (p *envProvider) Load() error {
	data := make(map[string]entry)
	prefix := strings.ToUpper(p.prefix)

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(strings.ToUpper(name), prefix) {
			continue
		}
		key := strings.ReplaceAll(name[len(p.prefix):], "__", KeyDelimiter)
		data[strings.ToUpper(key)] = entry{key: key, value: value}
	}

	p.data = data
	return nil
}

func (p *envProvider) ReloadToken() *ChangeToken { return NeverChanges() }

func (p *envProvider) ChildKeys(earlier []string, parentPath string) []string {
	return accumulateChildKeys(p.data, earlier, parentPath)
}
