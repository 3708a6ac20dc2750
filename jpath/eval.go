// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jpath

import (
	"github.com/creachadair/arson"
	"github.com/creachadair/arson/cursor"
)

// Eval evaluates e against root, and returns the values it selects in
// document order. The members of an object are visited in ascending order by
// key. Eval returns an empty slice if e selects nothing.
//
// A name selects the member of an object with that name, and nothing from
// any other value. An index or slice selects elements of an array, and
// nothing from any other value. A wildcard selects every member of an object
// or every element of an array. A recursive step applies its name to the
// value and to each of its descendants, in pre-order.
func (e Expr) Eval(root arson.Value) []arson.Value {
	cur := []arson.Value{root}
	for _, s := range e {
		var next []arson.Value
		for _, v := range cur {
			next = s.apply(v, next)
		}
		if len(next) == 0 {
			return nil
		}
		cur = next
	}
	return cur
}

// apply appends to out the values selected by s from v.
func (s Step) apply(v arson.Value, out []arson.Value) []arson.Value {
	switch s.Op {
	case Member, Child:
		return s.selectName(v, out)

	case Recur:
		walk(v, func(node arson.Value) {
			out = s.selectName(node, out)
		})
		return out

	case Index:
		for _, i := range s.Indices {
			if c := cursor.New(v).Down(i); c.Err() == nil {
				out = append(out, c.Value())
			}
		}
		return out

	case Slice:
		arr, ok := v.(arson.Array)
		if !ok {
			return out
		}
		lo := clampBound(s.Lo, 0, len(arr))
		hi := clampBound(s.Hi, len(arr), len(arr))
		if lo < hi {
			out = append(out, arr[lo:hi]...)
		}
		return out
	}
	return out
}

// selectName appends to out the member of v named by s, if v is an object
// that has one. A wildcard selects every member or element of v.
func (s Step) selectName(v arson.Value, out []arson.Value) []arson.Value {
	if s.Wild {
		return append(out, children(v)...)
	}
	if c := cursor.New(v).Down(s.Name); c.Err() == nil {
		out = append(out, c.Value())
	}
	return out
}

// children returns the members of an object in key order, or the elements of
// an array. Other values have no children.
func children(v arson.Value) []arson.Value {
	switch t := v.(type) {
	case arson.Object:
		out := make([]arson.Value, 0, len(t))
		for _, key := range t.Keys() {
			out = append(out, t[key])
		}
		return out
	case arson.Array:
		return t
	}
	return nil
}

// walk calls f for v and each of its descendants in pre-order.
func walk(v arson.Value, f func(arson.Value)) {
	f(v)
	for _, kid := range children(v) {
		walk(kid, f)
	}
}

// clampBound converts a slice bound to an offset in [0, n]. An omitted bound
// has value dflt, and negative bounds count backward from n.
func clampBound(p *int, dflt, n int) int {
	if p == nil {
		return dflt
	}
	i := *p
	if i < 0 {
		i += n
	}
	return max(0, min(i, n))
}
