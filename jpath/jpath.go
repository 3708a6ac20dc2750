// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jpath implements a minimal JSONPath expression parser and
// evaluator for arson values.
package jpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

/*
Grammar:

  expr = "$" {step}
  step = "." name
  step = ".." name
  step = "[" name "]"
  step = "[" index {"," index} "]"
  step = "[" [index] ":" [index] "]"
  name = WORD | "'" QTEXT "'" | "*"

  WORD = one or more of [A-Za-z0-9_]
 QTEXT = any text not containing "'"
 index = ["-"] DIGITS, in the range of int

Either slice bound may be omitted, so "[:]" selects every element of an
array. Script "(...)" and filter "?(...)" values are not supported.

Source:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	rest, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var e Expr
	for rest != "" {
		step, next, err := parseStep(rest)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", len(s)-len(rest), err)
		}
		e = append(e, step)
		rest = next
	}
	return e, nil
}

// MustParse parses s as a JSONPath expression, and panics if that fails.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("jpath: parse %q: %v", s, err))
	}
	return e
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		buf.WriteString(s.String())
	}
	return buf.String()
}

// An Op identifies the kind of a path step.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Member            // member lookup: .name
	Recur             // recursive member lookup: ..name
	Child             // bracketed member lookup: [name]
	Index             // array offsets: [i,j]
	Slice             // array range: [lo:hi]
)

var opText = [...]string{
	Invalid: "invalid",
	Member:  "member",
	Recur:   "recursive",
	Child:   "child",
	Index:   "index",
	Slice:   "slice",
}

func (o Op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op Op

	// Member, Recur, and Child steps select by name. If Wild is true the
	// step selects every member or element, and Name is empty.
	Name   string
	Quoted bool // the name was written in quotes
	Wild   bool // the name was written as *

	Indices []int // offsets of an Index step
	Lo, Hi  *int  // bounds of a Slice step; nil if omitted
}

func (s Step) String() string {
	switch s.Op {
	case Member:
		return "." + s.name()
	case Recur:
		return ".." + s.name()
	case Child:
		return "[" + s.name() + "]"
	case Index:
		parts := make([]string, len(s.Indices))
		for i, v := range s.Indices {
			parts[i] = strconv.Itoa(v)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case Slice:
		return "[" + boundString(s.Lo) + ":" + boundString(s.Hi) + "]"
	}
	return "<invalid>"
}

func (s Step) name() string {
	if s.Wild {
		return "*"
	} else if s.Quoted {
		return "'" + s.Name + "'"
	}
	return s.Name
}

func boundString(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func parseStep(s string) (Step, string, error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		return parseName(Recur, t)
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		return parseName(Member, t)
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		return parseBracket(t)
	}
	return Step{}, s, errors.New("invalid path step")
}

// parseName parses a name for a step of the given op.
func parseName(op Op, s string) (Step, string, error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Step{Op: op, Wild: true}, t, nil
	}
	if t, ok := strings.CutPrefix(s, "'"); ok {
		name, rest, ok := strings.Cut(t, "'")
		if !ok {
			return Step{}, s, errors.New("unterminated quoted name")
		}
		return Step{Op: op, Name: name, Quoted: true}, rest, nil
	}
	n := 0
	for n < len(s) && isWordByte(s[n]) {
		n++
	}
	if n == 0 {
		return Step{}, s, fmt.Errorf("invalid %s name", op)
	}
	return Step{Op: op, Name: s[:n]}, s[n:], nil
}

// parseBracket parses the contents of a bracketed step, after the "[".
func parseBracket(s string) (Step, string, error) {
	if strings.HasPrefix(s, "?(") {
		return Step{}, s, errors.New("filter expressions are not supported")
	} else if strings.HasPrefix(s, "(") {
		return Step{}, s, errors.New("script expressions are not supported")
	}

	// Names may contain "]" when quoted, so handle them before searching for
	// the end of the bracket.
	if s != "" && s[0] != '-' && s[0] != ':' && !isDigit(s[0]) {
		step, rest, err := parseName(Child, s)
		if err != nil {
			return Step{}, s, err
		}
		rest, ok := strings.CutPrefix(rest, "]")
		if !ok {
			return Step{}, s, errors.New("missing close bracket")
		}
		return step, rest, nil
	}

	body, rest, ok := strings.Cut(s, "]")
	if !ok {
		return Step{}, s, errors.New("missing close bracket")
	}
	if lo, hi, ok := strings.Cut(body, ":"); ok {
		step := Step{Op: Slice}
		var err error
		if step.Lo, err = parseBound(lo); err != nil {
			return Step{}, s, fmt.Errorf("invalid slice: %w", err)
		}
		if step.Hi, err = parseBound(hi); err != nil {
			return Step{}, s, fmt.Errorf("invalid slice: %w", err)
		}
		return step, rest, nil
	}

	step := Step{Op: Index}
	for _, text := range strings.Split(body, ",") {
		v, err := parseIndex(text)
		if err != nil {
			return Step{}, s, err
		}
		step.Indices = append(step.Indices, v)
	}
	return step, rest, nil
}

func parseBound(text string) (*int, error) {
	if text == "" {
		return nil, nil
	}
	v, err := parseIndex(text)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseIndex parses text as an optionally-signed decimal integer.
func parseIndex(text string) (int, error) {
	digits := strings.TrimPrefix(text, "-")
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return 0, fmt.Errorf("invalid index %q", text)
	}
	v, err := strconv.Atoi(text)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("index %q out of range", text)
	} else if err != nil {
		return 0, fmt.Errorf("invalid index %q", text)
	}
	return v, nil
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isWordByte(b byte) bool {
	return isDigit(b) || b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
