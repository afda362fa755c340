// FILE: strata/decode.go
package strata

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

// Scan decodes the configuration under basePath into target using
// weakly-typed conversion rules: strings convert to numbers and booleans
// where they parse, "a,b,c" strings convert to slices, and duration
// strings convert to time.Duration. An empty basePath scans from c
// itself.
//
// Scan trades the strict required-field semantics of Reify for lenience;
// fields with no configuration data are simply left alone by the decoder.
func Scan(c Configuration, basePath string, target any) error {
	node := c
	if basePath != "" {
		node = c.Section(basePath)
	}

	nested := nestedValue(node)
	m, ok := nested.(map[string]any)
	if !ok {
		return fmt.Errorf("path %q does not refer to a configuration section", basePath)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "cfg",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("cannot create decoder: %w", err)
	}

	if err := decoder.Decode(m); err != nil {
		return fmt.Errorf("decode failed for path %q: %w", basePath, err)
	}
	return nil
}

// nestedValue rebuilds the nested document shape from the flat tree. A
// node whose children all have non-negative integer keys becomes a slice
// in numeric order; any other node with children becomes a map keyed by
// the originally-cased segment; a leaf is its string value.
func nestedValue(c Configuration) any {
	children := c.Children()
	if len(children) == 0 {
		if s, ok := c.(*Section); ok {
			return s.Value()
		}
		return map[string]any{}
	}

	numeric := true
	indices := make([]uint64, len(children))
	for i, child := range children {
		n, err := strconv.ParseUint(child.Key(), 10, 64)
		if err != nil {
			numeric = false
			break
		}
		indices[i] = n
	}

	if numeric {
		order := make([]int, len(children))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool { return indices[order[i]] < indices[order[j]] })

		out := make([]any, 0, len(children))
		for _, i := range order {
			out = append(out, nestedValue(children[i]))
		}
		return out
	}

	out := make(map[string]any, len(children))
	for _, child := range children {
		out[child.Key()] = nestedValue(child)
	}
	return out
}
