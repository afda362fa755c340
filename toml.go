// FILE: strata/toml.go
package strata

import "github.com/BurntSushi/toml"

// NewTOMLFile creates a TOML file source. Table and key names are kept as
// written; array elements become numeric segments.
func NewTOMLFile(path string) *FileSource {
	return newFileSource(path, "TOML", parseTOML)
}

func parseTOML(content []byte) (map[string]entry, error) {
	var doc map[string]any
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	f := newFlattener(false)
	f.visitMap(doc, "")
	return f.data, nil
}
