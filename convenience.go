// FILE: strata/convenience.go
package strata

import (
	"fmt"
	"strconv"
	"time"
)

// String retrieves a string value. Unlike Get, absence is an error, which
// makes the helper convenient for required settings.
func String(c Configuration, key string) (string, error) {
	section := c.Section(key)
	if !section.Exists() {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return section.Value(), nil
}

// Int64 retrieves an integer value. Base prefixes are honored ("0xFF"),
// and values written as floats are truncated.
func Int64(c Configuration, key string) (int64, error) {
	raw, err := String(c, key)
	if err != nil {
		return 0, err
	}
	if n, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return n, nil
	}
	if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
		return int64(f), nil
	}
	return 0, fmt.Errorf("cannot convert %q to int64 for key %s", raw, key)
}

// Bool retrieves a boolean value. Numeric values are interpreted as
// zero=false, non-zero=true.
func Bool(c Configuration, key string) (bool, error) {
	raw, err := String(c, key)
	if err != nil {
		return false, err
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b, nil
	}
	if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
		return f != 0, nil
	}
	return false, fmt.Errorf("cannot convert %q to bool for key %s", raw, key)
}

// Float64 retrieves a floating-point value.
func Float64(c Configuration, key string) (float64, error) {
	raw, err := String(c, key)
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(raw, 64)
	if perr != nil {
		return 0, fmt.Errorf("cannot convert %q to float64 for key %s: %w", raw, key, perr)
	}
	return f, nil
}

// Duration retrieves a duration value in time.ParseDuration notation.
// A bare integer is taken as seconds.
func Duration(c Configuration, key string) (time.Duration, error) {
	raw, err := String(c, key)
	if err != nil {
		return 0, err
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	if n, nerr := strconv.ParseInt(raw, 10, 64); nerr == nil {
		return time.Duration(n) * time.Second, nil
	}
	return 0, fmt.Errorf("cannot convert %q to duration for key %s", raw, key)
}
