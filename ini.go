// FILE: strata/ini.go
package strata

import (
	"strings"

	"gopkg.in/ini.v1"
)

// NewINIFile creates an INI file source. Keys in a [section] flatten to
// "section:key"; keys above any section header are top-level.
func NewINIFile(path string) *FileSource {
	return newFileSource(path, "INI", parseINI)
}

func parseINI(content []byte) (map[string]entry, error) {
	file, err := ini.Load(content)
	if err != nil {
		return nil, err
	}

	data := make(map[string]entry)
	for _, section := range file.Sections() {
		prefix := ""
		if section.Name() != ini.DefaultSection {
			prefix = section.Name() + KeyDelimiter
		}
		for _, key := range section.Keys() {
			full := prefix + key.Name()
			data[strings.ToUpper(full)] = entry{key: full, value: key.Value()}
		}
	}
	return data, nil
}
