// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package arson

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Kind identifies which variant of Value a value holds.
type Kind byte

// Constants defining the valid Kind values.
const (
	InvalidKind Kind = iota // not a valid value
	ObjectKind              // object: { ... }
	ArrayKind               // array: [ ... ]
	StringKind              // string: "..."
	NumberKind              // number
	BoolKind                // constant: true, false
	NullKind                // constant: null
)

var kindStr = [...]string{
	InvalidKind: "invalid",
	ObjectKind:  "object",
	ArrayKind:   "array",
	StringKind:  "string",
	NumberKind:  "number",
	BoolKind:    "bool",
	NullKind:    "null",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[InvalidKind]
	}
	return kindStr[v]
}

// A Value is an arbitrary JSON value. The concrete type of a Value is one of
// Object, Array, String, Number, Bool, or Null; no other implementations are
// possible.
type Value interface {
	// Kind reports which variant of value this is.
	Kind() Kind

	isValue()
}

// An Object is a collection of key-value members. Keys are unique, and the
// order of members is not significant.
type Object map[string]Value

// Kind satisfies the Value interface.
func (Object) Kind() Kind { return ObjectKind }

func (Object) isValue() {}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Keys returns the keys of o in ascending order.
func (o Object) Keys() []string { return slices.Sorted(maps.Keys(o)) }

// Get returns the value of the member of o with the given key, and reports
// whether such a member exists.
func (o Object) Get(key string) (Value, bool) {
	v, ok := o[key]
	return v, ok
}

// An Array is an ordered sequence of values.
type Array []Value

// Kind satisfies the Value interface.
func (Array) Kind() Kind { return ArrayKind }

func (Array) isValue() {}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// A String is a decoded string value.
type String string

// Kind satisfies the Value interface.
func (String) Kind() Kind { return StringKind }

func (String) isValue() {}

// A Number is a numeric value.
type Number float64

// Kind satisfies the Value interface.
func (Number) Kind() Kind { return NumberKind }

func (Number) isValue() {}

// A Bool is a Boolean constant, true or false.
type Bool bool

// Kind satisfies the Value interface.
func (Bool) Kind() Kind { return BoolKind }

func (Bool) isValue() {}

// Null represents the null constant.
type Null struct{}

// Kind satisfies the Value interface.
func (Null) Kind() Kind { return NullKind }

func (Null) isValue() {}

// Equal reports whether a and b are structurally equal: they have the same
// kind, and their contents are equal recursively. Object member order is not
// significant. Two nil values are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Object:
		y, ok := b.(Object)
		if !ok || len(x) != len(y) {
			return false
		}
		for key, xv := range x {
			yv, ok := y[key]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case Array:
		y, ok := b.(Array)
		return ok && slices.EqualFunc(x, y, Equal)
	case String, Number, Bool, Null:
		return a == b
	default:
		panic(fmt.Sprintf("unknown value type %T", a))
	}
}

// ToValue converts a string, bool, int, float, nil, []any, map[string]any, or
// Value into a Value. Slices and maps are converted recursively. It panics if
// v does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return Null{}
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Number(t)
	case int64:
		return Number(t)
	case float64:
		return Number(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		out := make(Object, len(t))
		for key, elt := range t {
			out[key] = ToValue(elt)
		}
		return out
	}

	// Handle other integer and float widths without listing them all.
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	}
	panic(fmt.Sprintf("unsupported value type %T", v))
}
