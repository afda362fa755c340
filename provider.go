// FILE: strata/provider.go
package strata

// Provider is a single configuration source's live, queryable snapshot of
// key/value pairs.
//
// Implementations keep an internal map from uppercased full key to the
// originally-cased key and its value, replaced wholesale by Load. Lookups
// are case-insensitive; the stored original casing is used for display and
// child-segment extraction.
type Provider interface {
	// Name identifies the provider in diagnostics and debug dumps.
	Name() string

	// Get performs an exact, case-insensitive lookup in the current
	// snapshot. The second result distinguishes an absent key from a key
	// present with an empty value.
	Get(key string) (string, bool)

	// Load (re)populates the snapshot. It must be callable repeatedly.
	Load() error

	// ReloadToken returns the token observing the provider's next
	// self-triggered data change. Providers without change tracking
	// return NeverChanges().
	ReloadToken() *ChangeToken

	// ChildKeys appends every immediate child segment below parentPath
	// found in this provider's snapshot to earlier and returns the sorted
	// result. An empty parentPath selects top-level segments. The caller
	// merges and deduplicates across providers.
	ChildKeys(earlier []string, parentPath string) []string
}

// Source builds a Provider. Sources are descriptors; the Builder turns
// them into providers when the configuration is built, passing itself so
// sources can consult shared builder properties.
type Source interface {
	Build(b *Builder) Provider
}
