// Package value defines the typed values produced when template arguments are
// resolved. A Value is one of Int, Float, Bool, String, List or Record; the set
// is closed so callers can switch over it exhaustively.
package value

import (
	"strconv"
	"strings"
)

// Kind identifies the variant of a Value
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindList
	KindRecord
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Value is a resolved argument value
type Value interface {
	// Kind reports which variant the value is
	Kind() Kind

	// Native converts the value into plain Go types (int64, float64, bool,
	// string, []any, map[string]any)
	Native() any

	// String renders the value the way a user would type it
	String() string

	value()
}

// Int is an integer value
type Int int64

// Float is a floating point value
type Float float64

// Bool is a boolean value
type Bool bool

// String is a string value. File parameters resolve to String as well.
type String string

// List holds one value per repetition of a list parameter
type List []Value

// Record holds the arguments bound to the children of a record parameter
type Record struct {
	*Map
}

func (Int) Kind() Kind { return KindInt }
func (Float) Kind() Kind { return KindFloat }
func (Bool) Kind() Kind { return KindBool }
func (String) Kind() Kind { return KindString }
func (List) Kind() Kind { return KindList }
func (Record) Kind() Kind { return KindRecord }

func (v Int) Native() any { return int64(v) }
func (v Float) Native() any { return float64(v) }
func (v Bool) Native() any { return bool(v) }
func (v String) Native() any { return string(v) }

func (v List) Native() any {
	items := make([]any, len(v))
	for i, item := range v {
		items[i] = item.Native()
	}
	return items
}

func (v Record) Native() any {
	if v.Map == nil {
		return map[string]any{}
	}
	return v.Map.Native()
}

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }
func (v String) String() string { return string(v) }

func (v List) String() string {
	parts := make([]string, len(v))
	for i, item := range v {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v Record) String() string {
	if v.Map == nil {
		return "{}"
	}
	return v.Map.String()
}

func (Int) value() {}
func (Float) value() {}
func (Bool) value() {}
func (String) value() {}
func (List) value() {}
func (Record) value() {}

// Equal reports whether two values have the same kind and content
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Record:
		return av.Map.Equal(b.(Record).Map)
	default:
		return a == b
	}
}
