// FILE: strata/path_test.go
package strata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinePath(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		expected string
	}{
		{"simple", []string{"parent", "key"}, "parent:key"},
		{"trailing empty segment", []string{"parent", ""}, "parent:"},
		{"two empty segments", []string{"parent", "", ""}, "parent::"},
		{"empty segments in between", []string{"parent", "", "", "key"}, "parent:::key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CombinePath(tt.segments...))
		})
	}
}

func TestSectionKey(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"empty", "", ""},
		{"only delimiters", ":::", ""},
		{"empty segments in the middle", "a::b:::c", "c"},
		{"last segment empty", "a:::b:", ""},
		{"no parent", "key", "key"},
		{"one empty parent", ":key", "key"},
		{"two empty parents", "::key", "key"},
		{"with parent", "parent:key", "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SectionKey(tt.path))
		})
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"empty", "", ""},
		{"only delimiters", ":::", "::"},
		{"empty segments in the middle", "a::b:::c", "a::b::"},
		{"last segment empty", "a:::b:", "a:::b"},
		{"no parent", "key", ""},
		{"one empty parent", ":key", ""},
		{"two empty parents", "::key", ":"},
		{"with parent", "parent:key", "parent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParentPath(tt.path))
		})
	}
}
