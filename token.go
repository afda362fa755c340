// FILE: strata/token.go
package strata

import "sync"

// ChangeToken is a single-fire notification primitive. Callbacks registered
// while the token is armed are invoked exactly once when Notify is called;
// after that the token is inert. Observers must obtain a fresh token from
// the owning provider or root to see the next change.
//
// Registering on a token that has already fired is a no-op and returns an
// inert Registration.
type ChangeToken struct {
	mu        sync.Mutex
	fired     bool
	nextID    int64
	callbacks map[int64]func()
}

// NewChangeToken returns a new, armed change token.
func NewChangeToken() *ChangeToken {
	return &ChangeToken{callbacks: make(map[int64]func())}
}

var never = NewChangeToken()

// NeverChanges returns a shared token that is never notified. Providers
// without change tracking return it from ReloadToken.
func NeverChanges() *ChangeToken {
	return never
}

// Registration is the handle for a registered callback. Dropping or
// stopping the handle disables the callback without affecting others.
type Registration struct {
	token *ChangeToken
	id    int64
}

// Stop removes the callback from the token. Safe to call more than once
// and after the token has fired.
func (r *Registration) Stop() {
	if r == nil || r.token == nil {
		return
	}
	r.token.mu.Lock()
	if r.token.callbacks != nil {
		delete(r.token.callbacks, r.id)
	}
	r.token.mu.Unlock()
	r.token = nil
}

// Register adds a callback that fires when the token is notified.
func (t *ChangeToken) Register(fn func()) *Registration {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return &Registration{}
	}
	id := t.nextID
	t.nextID++
	t.callbacks[id] = fn
	t.mu.Unlock()
	return &Registration{token: t, id: id}
}

// Notify fires the token. Every registered callback is invoked exactly
// once, outside the token's internal lock. Subsequent calls do nothing.
func (t *ChangeToken) Notify() {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	cbs := make([]func(), 0, len(t.callbacks))
	for _, fn := range t.callbacks {
		cbs = append(cbs, fn)
	}
	t.callbacks = nil
	t.mu.Unlock()

	for _, fn := range cbs {
		fn()
	}
}

// HasChanged reports whether the token has fired.
func (t *ChangeToken) HasChanged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// NewCompositeToken returns a token that fires when any of the child
// tokens fires. The single-fire guard in Notify ensures the composite
// fires at most once even if several children fire. Like any token, a
// composite is not reusable; rebuild it from fresh child tokens after it
// fires.
func NewCompositeToken(children ...*ChangeToken) *ChangeToken {
	t := NewChangeToken()
	for _, c := range children {
		if c == nil || c == never {
			continue
		}
		c.Register(t.Notify)
	}
	return t
}
