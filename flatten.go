// FILE: strata/flatten.go
package strata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// flattener walks a decoded nested document (maps, arrays, scalars) and
// produces the flat snapshot shared by all map-backed providers. Array
// elements become zero-based numeric segments. When pascalize is set,
// map keys get their first letter uppercased, matching how JSON documents
// map onto configuration keys.
type flattener struct {
	data      map[string]entry
	pascalize bool
}

func newFlattener(pascalize bool) *flattener {
	return &flattener{data: make(map[string]entry), pascalize: pascalize}
}

func (f *flattener) visitMap(m map[string]any, path string) {
	if len(m) == 0 {
		f.add(path, "")
		return
	}
	for name, value := range m {
		if f.pascalize {
			name = toPascalCase(name)
		}
		f.visitValue(value, subpath(path, name))
	}
}

func (f *flattener) visitValue(value any, path string) {
	switch v := value.(type) {
	case map[string]any:
		f.visitMap(v, path)
	case []any:
		if len(v) == 0 {
			f.add(path, "")
			return
		}
		for i, elem := range v {
			f.visitValue(elem, subpath(path, strconv.Itoa(i)))
		}
	case []map[string]any:
		// TOML arrays of tables decode to this shape.
		if len(v) == 0 {
			f.add(path, "")
			return
		}
		for i, elem := range v {
			f.visitMap(elem, subpath(path, strconv.Itoa(i)))
		}
	default:
		f.add(path, stringifyScalar(value))
	}
}

func (f *flattener) add(path, value string) {
	if path == "" {
		return
	}
	f.data[strings.ToUpper(path)] = entry{key: path, value: value}
}

// stringifyScalar renders a decoded scalar the way it was written where
// possible. json.Number keeps its lexical form; floats avoid the
// scientific notation fmt would pick.
func stringifyScalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
