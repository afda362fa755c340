// FILE: strata/json.go
package strata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NewJSONFile creates a JSON file source. The document root must be an
// object; keys are pascal-cased and arrays become numeric segments, so
//
//	{"logging": {"level": "warn"}, "ports": [80, 443]}
//
// flattens to Logging:Level=warn, Ports:0=80, Ports:1=443.
func NewJSONFile(path string) *FileSource {
	return newFileSource(path, "JSON", parseJSON)
}

func parseJSON(content []byte) (map[string]entry, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level JSON element must be an object, got %T", doc)
	}

	f := newFlattener(true)
	f.visitMap(root, "")
	return f.data, nil
}
