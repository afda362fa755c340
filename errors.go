// FILE: strata/errors.go
package strata

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates a required configuration file is missing.
// File load errors wrap it so callers can distinguish a missing file from
// malformed content with errors.Is.
var ErrFileNotFound = errors.New("configuration file not found")

// LoadError is returned by a single provider's Load. Path is set for
// file-backed providers and empty otherwise.
type LoadError struct {
	Message string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Path)
	}
	return e.Message
}

func (e *LoadError) Unwrap() error { return e.Err }

// ProviderError pairs a failing provider's name with its load error.
type ProviderError struct {
	Provider string
	Err      error
}

// ReloadError aggregates every provider failure from one build or reload
// pass. Providers are not short-circuited: each one gets a chance to load
// so the error reports the complete failure set.
type ReloadError struct {
	Failures []ProviderError
}

func (e *ReloadError) Error() string {
	if len(e.Failures) == 1 {
		f := e.Failures[0]
		return fmt.Sprintf("%s (%s)", f.Err.Error(), f.Provider)
	}

	var b strings.Builder
	b.WriteString("one or more load errors occurred:")
	for i, f := range e.Failures {
		fmt.Fprintf(&b, "\n  [%d]: %s (%s)", i+1, f.Err.Error(), f.Provider)
	}
	return b.String()
}

// MissingValueError reports a required field with no corresponding
// configuration value during Reify.
type MissingValueError struct {
	Field string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing value for field %s", e.Field)
}

// BindError wraps a leaf conversion failure during binding, annotated with
// the offending key and raw value.
type BindError struct {
	Key   string
	Value string
	Err   error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("%v while binding value %q provided by %s", e.Err, e.Value, e.Key)
}

func (e *BindError) Unwrap() error { return e.Err }
