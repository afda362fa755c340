// FILE: strata/yaml.go
package strata

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NewYAMLFile creates a YAML file source. Mapping keys are kept as
// written; sequence elements become numeric segments.
func NewYAMLFile(path string) *FileSource {
	return newFileSource(path, "YAML", parseYAML)
}

func parseYAML(content []byte) (map[string]entry, error) {
	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	f := newFlattener(false)
	switch root := doc.(type) {
	case nil:
		// Empty document.
	case map[string]any:
		f.visitMap(root, "")
	default:
		return nil, fmt.Errorf("top-level YAML node must be a mapping, got %T", doc)
	}
	return f.data, nil
}
