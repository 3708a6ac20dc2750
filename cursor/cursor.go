// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a parsed JSON
// value.
package cursor

import (
	"fmt"

	"github.com/creachadair/arson"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method.  This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value as type T.
func Path[T arson.Value](v arson.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var zero T
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("wrong value type %T", c.Value())
	}
	return out, nil
}

// A Cursor is a pointer that navigates into the structure of an arson.Value.
// The zero value is not ready for use; call New to construct a Cursor.
type Cursor struct {
	org arson.Value
	stk []arson.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin arson.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() arson.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() arson.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []arson.Value {
	return append([]arson.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays), or functions (see below).
// Steps that succeed before an error remain on the cursor. Use Err to recover
// the error, if any.
//
// If a path element is a string, the corresponding value must be an object,
// and the string selects the value of the member with that key.
//
// If a path element is an integer, the corresponding value must be an array,
// and the integer selects the element at that offset. Negative offsets count
// backward from the end (-1 is last, -2 second last). An error is reported if
// the offset is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(arson.Value) (arson.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(arson.Object)
			if !ok {
				return c.setErrorf("cannot traverse %v with %q", kindOf(cur), t)
			}
			next, ok := obj[t]
			if !ok {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(next)

		case int:
			arr, ok := cur.(arson.Array)
			if !ok {
				return c.setErrorf("cannot traverse %v with %d", kindOf(cur), t)
			}
			i, ok := fixArrayBound(len(arr), t)
			if !ok {
				return c.setErrorf("array index %d out of bounds (n=%d)", t, len(arr))
			}
			cur = c.push(arr[i])

		case func(arson.Value) (arson.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v arson.Value) arson.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func kindOf(v arson.Value) arson.Kind {
	if v == nil {
		return arson.InvalidKind
	}
	return v.Kind()
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
