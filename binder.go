// FILE: strata/binder.go
package strata

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Reify constructs a fresh T from the configuration view. Every
// non-pointer field without the `cfg:",optional"` tag option is required:
// if its key is absent the call fails with a MissingValueError naming the
// field. Pointer fields map absence to nil.
//
// Field keys default to the exported field name; the first element of a
// `cfg` tag overrides it, and "-" skips the field. Slices gather children
// with non-negative integer keys in numeric order, silently ignoring
// non-numeric siblings. Maps take every child keyed by its
// originally-cased segment. Nesting may be arbitrarily deep.
func Reify[T any](c Configuration) (T, error) {
	var v T
	if err := bindNode(c, reflect.ValueOf(&v).Elem(), true); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// MustReify is like Reify but panics on error.
func MustReify[T any](c Configuration) T {
	v, err := Reify[T](c)
	if err != nil {
		panic(fmt.Sprintf("strata: reify failed: %v", err))
	}
	return v
}

// Bind deserializes the configuration onto an existing value, merging in
// place: fields with no corresponding configuration data keep their
// current value and absence is never an error. Sequences are replaced
// wholesale rather than merged element-wise. If binding fails part way
// through, target may have been partially updated.
func Bind(c Configuration, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("bind target must be a non-nil pointer, got %T", target)
	}
	return bindNode(c, rv.Elem(), false)
}

// BindAt binds the section at key onto target. A nonexistent section
// leaves target untouched.
func BindAt(c Configuration, key string, target any) error {
	section := c.Section(key)
	if !section.Exists() {
		return nil
	}
	return Bind(section, target)
}

// GetValue reads and parses a single leaf value. The boolean result
// reports presence; a present value that fails to parse returns the parse
// error wrapped in a BindError.
func GetValue[T any](c Configuration, key string) (T, bool, error) {
	var v T
	section := c.Section(key)
	if !section.Exists() {
		return v, false, nil
	}
	if err := setLeaf(reflect.ValueOf(&v).Elem(), section.Value(), section.Path()); err != nil {
		var zero T
		return zero, true, err
	}
	return v, true, nil
}

// GetValueOrDefault is GetValue with absence mapped to the zero value.
func GetValueOrDefault[T any](c Configuration, key string) (T, error) {
	v, _, err := GetValue[T](c, key)
	return v, err
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func bindNode(c Configuration, rv reflect.Value, fresh bool) error {
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return bindNode(c, rv.Elem(), fresh)
	}

	// Types with their own text representation bind from the leaf value
	// directly, time.Time being the common case.
	if rv.CanAddr() && rv.Addr().Type().Implements(textUnmarshalerType) {
		if s, ok := c.(*Section); ok {
			return setLeaf(rv, s.Value(), s.Path())
		}
	}

	switch rv.Kind() {
	case reflect.Struct:
		return bindStruct(c, rv, fresh)
	case reflect.Slice:
		return bindSlice(c, rv, fresh)
	case reflect.Map:
		return bindMap(c, rv, fresh)
	default:
		s, ok := c.(*Section)
		if !ok {
			return fmt.Errorf("cannot bind %s at the configuration root", rv.Kind())
		}
		return setLeaf(rv, s.Value(), s.Path())
	}
}

func bindStruct(c Configuration, rv reflect.Value, fresh bool) error {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		optional := false
		if tag, ok := field.Tag.Lookup("cfg"); ok {
			base, opts, _ := strings.Cut(tag, ",")
			if base == "-" {
				continue
			}
			if base != "" {
				name = base
			}
			optional = opts == "optional"
		}

		child := c.Section(name)
		if !child.Exists() {
			if fresh && !optional && field.Type.Kind() != reflect.Pointer {
				return &MissingValueError{Field: field.Name}
			}
			continue
		}

		if err := bindNode(child, rv.Field(i), fresh); err != nil {
			return err
		}
	}
	return nil
}

func bindSlice(c Configuration, rv reflect.Value, fresh bool) error {
	type indexed struct {
		index   uint64
		section *Section
	}

	var elems []indexed
	for _, child := range c.Children() {
		n, err := strconv.ParseUint(child.Key(), 10, 64)
		if err != nil {
			// Non-numeric children are not part of the sequence.
			continue
		}
		elems = append(elems, indexed{index: n, section: child})
	}
	sort.Slice(elems, func(i, j int) bool { return elems[i].index < elems[j].index })

	out := reflect.MakeSlice(rv.Type(), 0, len(elems))
	for _, e := range elems {
		elem := reflect.New(rv.Type().Elem()).Elem()
		if err := bindNode(e.section, elem, fresh); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
	rv.Set(out)
	return nil
}

func bindMap(c Configuration, rv reflect.Value, fresh bool) error {
	t := rv.Type()
	if t.Key().Kind() != reflect.String {
		return fmt.Errorf("cannot bind map with %s keys, only string keys are supported", t.Key().Kind())
	}

	if rv.IsNil() || fresh {
		rv.Set(reflect.MakeMap(t))
	}

	for _, child := range c.Children() {
		key := reflect.ValueOf(child.Key()).Convert(t.Key())
		elem := reflect.New(t.Elem()).Elem()

		if !fresh {
			if existing := rv.MapIndex(key); existing.IsValid() {
				elem.Set(existing)
			}
		}
		if err := bindNode(child, elem, fresh); err != nil {
			return err
		}
		rv.SetMapIndex(key, elem)
	}
	return nil
}

// setLeaf parses raw into rv. Parse failures come back as a BindError
// carrying the key and the raw string for diagnosis.
func setLeaf(rv reflect.Value, raw string, keyPath string) error {
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return setLeaf(rv.Elem(), raw, keyPath)
	}

	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if err := u.UnmarshalText([]byte(raw)); err != nil {
				return &BindError{Key: keyPath, Value: raw, Err: err}
			}
			return nil
		}
	}

	if rv.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return &BindError{Key: keyPath, Value: raw, Err: err}
		}
		rv.SetInt(int64(d))
		return nil
	}

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return &BindError{Key: keyPath, Value: raw, Err: err}
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 0, rv.Type().Bits())
		if err != nil {
			return &BindError{Key: keyPath, Value: raw, Err: err}
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 0, rv.Type().Bits())
		if err != nil {
			return &BindError{Key: keyPath, Value: raw, Err: err}
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, rv.Type().Bits())
		if err != nil {
			return &BindError{Key: keyPath, Value: raw, Err: err}
		}
		rv.SetFloat(f)
	default:
		return fmt.Errorf("cannot bind value %q into %s (%s)", raw, rv.Type(), keyPath)
	}
	return nil
}
