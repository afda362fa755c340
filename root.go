// FILE: strata/root.go
package strata

import (
	"io"
	"sort"
	"strings"
	"sync"
)

// Root is the composed configuration: it owns the ordered provider list
// and aggregates the providers' reload tokens into one composite token.
//
// The provider list lives behind a sync.RWMutex: Get and Children take
// read access and proceed concurrently, Reload takes write access and
// blocks until readers drain. Change-token callbacks always fire outside
// the lock.
type Root struct {
	mu        sync.RWMutex
	providers []Provider
	token     *ChangeToken
	regs      []*Registration
}

// NewRoot composes the given providers, loading each one in registration
// order. Every provider gets a chance to load even when an earlier one
// fails; if any failed, the root is not returned and the error aggregates
// all failures.
func NewRoot(providers []Provider) (*Root, error) {
	r := &Root{providers: providers}

	var failures []ProviderError
	for _, p := range providers {
		if err := p.Load(); err != nil {
			failures = append(failures, ProviderError{Provider: p.Name(), Err: err})
		}
	}

	if len(failures) > 0 {
		// The root is not returned, so release whatever the successful
		// providers already started (file watchers in particular).
		for _, p := range providers {
			if c, ok := p.(io.Closer); ok {
				c.Close()
			}
		}
		return nil, &ReloadError{Failures: failures}
	}

	r.token = r.rearm()
	return r, nil
}

// rearm builds a fresh composite token wired to the providers' current
// reload tokens. Provider tokens are single-fire, so this must run after
// every fire. Previous registrations are stopped first; a provider token
// that survived the last cycle unfired would otherwise accumulate
// callbacks and fire the swap more than once. Callers hold no lock or
// the write lock.
func (r *Root) rearm() *ChangeToken {
	for _, reg := range r.regs {
		reg.Stop()
	}
	r.regs = r.regs[:0]

	for _, p := range r.providers {
		pt := p.ReloadToken()
		if pt == nil || pt == never {
			continue
		}
		r.regs = append(r.regs, pt.Register(r.onProviderChange))
	}
	return NewChangeToken()
}

// onProviderChange runs when a provider reloads itself (for example after
// a watched file changed). The composite is replaced before the previous
// one is fired so a new registration cycle can begin immediately.
func (r *Root) onProviderChange() {
	r.mu.Lock()
	old := r.token
	r.token = r.rearm()
	r.mu.Unlock()

	old.Notify()
}

// Get resolves key by scanning providers in reverse registration order;
// the last-registered provider that has the key wins.
func (r *Root) Get(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.providers) - 1; i >= 0; i-- {
		if value, ok := r.providers[i].Get(key); ok {
			return value, true
		}
	}
	return "", false
}

// Section returns a view scoped to the given key.
func (r *Root) Section(key string) *Section {
	return &Section{root: r, path: key}
}

// Children returns the top-level sections.
func (r *Root) Children() []*Section {
	keys := r.childKeys("")
	sections := make([]*Section, len(keys))
	for i, k := range keys {
		sections[i] = r.Section(k)
	}
	return sections
}

// childKeys merges child-key contributions from every provider for the
// given parent path, deduplicates case-insensitively, and orders the
// result with CompareKeys. Contributions are collected per provider in
// registration order and deduplicated before the final sort, so when
// providers disagree on casing the last-registered provider's casing is
// the one that survives, consistently across calls.
func (r *Root) childKeys(parentPath string) []string {
	r.mu.RLock()
	var keys []string
	for _, p := range r.providers {
		keys = append(keys, p.ChildKeys(nil, parentPath)...)
	}
	r.mu.RUnlock()

	seen := make(map[string]string, len(keys))
	for _, k := range keys {
		seen[strings.ToUpper(k)] = k
	}

	out := make([]string, 0, len(seen))
	for _, k := range seen {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return CompareKeys(out[i], out[j]) < 0 })
	return out
}

// ReloadToken returns the current composite token.
func (r *Root) ReloadToken() *ChangeToken {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

// Providers returns a snapshot of the provider list in registration order.
func (r *Root) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Reload reloads every provider in registration order, collecting
// per-provider errors the same way NewRoot does. Observers are notified
// through the previous composite token even when some provider failed,
// because other providers may have changed successfully; the aggregate
// error is still returned.
//
// All effects of a completed Reload are visible to any Get that happens
// after Reload returns.
func (r *Root) Reload() error {
	r.mu.Lock()

	var failures []ProviderError
	for _, p := range r.providers {
		if err := p.Load(); err != nil {
			failures = append(failures, ProviderError{Provider: p.Name(), Err: err})
		}
	}

	old := r.token
	r.token = r.rearm()
	r.mu.Unlock()

	old.Notify()

	if len(failures) > 0 {
		return &ReloadError{Failures: failures}
	}
	return nil
}

// Close releases providers that hold background resources, such as file
// watchers.
func (r *Root) Close() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var first error
	for _, p := range r.providers {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
