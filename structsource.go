// FILE: strata/structsource.go
package strata

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// StructSource flattens an arbitrary Go value into configuration keys.
//
// Struct fields use their exported name, or the first element of a `cfg`
// tag when present; fields tagged "-" are skipped. Map keys are used
// verbatim, slice and array elements become zero-based numeric segments.
// Nil pointers contribute nothing; empty structs, maps, and slices are
// recorded as an empty value so the key remains observable.
type StructSource struct {
	Value any
}

// Build implements Source.
func (s *StructSource) Build(_ *Builder) Provider {
	return &structProvider{value: s.Value}
}

type structProvider struct {
	value any
	data  map[string]entry
}

func (p *structProvider) Name() string { return "StructProvider" }

func (p *structProvider) Get(key string) (string, bool) {
	e, ok := p.data[strings.ToUpper(key)]
	return e.value, ok
}

func (p *structProvider) Load() error {
	data := make(map[string]entry)
	if err := visitStruct(reflect.ValueOf(p.value), "", data); err != nil {
		return &LoadError{Message: err.Error(), Err: err}
	}
	p.data = data
	return nil
}

func (p *structProvider) ReloadToken() *ChangeToken { return NeverChanges() }

func (p *structProvider) ChildKeys(earlier []string, parentPath string) []string {
	return accumulateChildKeys(p.data, earlier, parentPath)
}

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

func visitStruct(v reflect.Value, path string, data map[string]entry) error {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	if v.Type() == reflect.TypeOf(time.Duration(0)) {
		record(data, path, v.Interface().(time.Duration).String())
		return nil
	}

	if v.Type().Implements(textMarshalerType) {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return fmt.Errorf("cannot marshal value at %q: %w", path, err)
		}
		record(data, path, string(text))
		return nil
	}

	switch v.Kind() {
	case reflect.Struct:
		visited := false
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if tag, ok := field.Tag.Lookup("cfg"); ok {
				base, _, _ := strings.Cut(tag, ",")
				if base == "-" {
					continue
				}
				if base != "" {
					name = base
				}
			}
			visited = true
			if err := visitStruct(v.Field(i), subpath(path, name), data); err != nil {
				return err
			}
		}
		if !visited {
			record(data, path, "")
		}

	case reflect.Map:
		if v.Len() == 0 {
			record(data, path, "")
			return nil
		}
		for _, key := range v.MapKeys() {
			if err := visitStruct(v.MapIndex(key), subpath(path, fmt.Sprint(key.Interface())), data); err != nil {
				return err
			}
		}

	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			record(data, path, "")
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := visitStruct(v.Index(i), subpath(path, strconv.Itoa(i)), data); err != nil {
				return err
			}
		}

	case reflect.String:
		record(data, path, v.String())
	case reflect.Bool:
		record(data, path, strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		record(data, path, strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		record(data, path, strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		record(data, path, strconv.FormatFloat(v.Float(), 'f', -1, 64))

	default:
		return fmt.Errorf("cannot flatten value of kind %s at %q", v.Kind(), path)
	}

	return nil
}

func record(data map[string]entry, path, value string) {
	if path == "" {
		return
	}
	data[strings.ToUpper(path)] = entry{key: path, value: value}
}

func subpath(path, name string) string {
	if path == "" {
		return name
	}
	return CombinePath(path, name)
}
