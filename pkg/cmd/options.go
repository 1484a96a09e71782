package cmd

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrOptionMissing is returned by the typed accessors of Values for names that
// were neither supplied nor defaulted.
var ErrOptionMissing = errors.New("option missing")

// Option is one named value as supplied by a transport. Value is nil when the
// transport sent the name without a value.
type Option struct {
	Name  string
	Value any
}

// Table lists the recognized option names with their defaults.
// A nil default means the option has no default.
type Table map[string]any

// Values holds the extracted options. Absent names have no entry.
type Values map[string]any

// OptionTypeError reports a value whose type does not fit the accessor used.
type OptionTypeError struct {
	Name  string
	Want  string
	Value any
}

func (e *OptionTypeError) Error() string {
	return fmt.Sprintf("option %q: want %s, got %T", e.Name, e.Want, e.Value)
}

// Extract resolves every recognized name in table to its supplied value or its
// default. When a name occurs more than once, the last non-nil value wins; nil
// values never overwrite. Names missing from table are ignored.
func Extract(options []Option, table Table) Values {
	values := make(Values, len(table))
	for name, def := range table {
		if def != nil {
			values[name] = def
		}
	}
	for _, opt := range options {
		if _, ok := table[opt.Name]; !ok || opt.Value == nil {
			continue
		}
		values[opt.Name] = opt.Value
	}
	return values
}

func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v Values) String(name string) (string, error) {
	raw, ok := v[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrOptionMissing, name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", &OptionTypeError{Name: name, Want: "string", Value: raw}
	}
	return s, nil
}

// Bool accepts booleans and their textual forms.
func (v Values) Bool(name string) (bool, error) {
	raw, ok := v[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrOptionMissing, name)
	}
	switch b := raw.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err == nil {
			return parsed, nil
		}
	}
	return false, &OptionTypeError{Name: name, Want: "bool", Value: raw}
}

// Int accepts integers, integral floats (JSON numbers) and their textual forms.
func (v Values) Int(name string) (int64, error) {
	raw, ok := v[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrOptionMissing, name)
	}
	switch n := raw.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n == math.Trunc(n) && math.Abs(n) <= math.MaxInt64 {
			return int64(n), nil
		}
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err == nil {
			return parsed, nil
		}
	}
	return 0, &OptionTypeError{Name: name, Want: "integer", Value: raw}
}
