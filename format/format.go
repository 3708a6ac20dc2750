// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package format renders arson values as indented JSON text.
package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/arson"
	"github.com/creachadair/arson/internal/escape"
	"github.com/fatih/color"
	"go4.org/mem"
)

// A Formatter carries the settings for pretty-printing values.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Indent is the text added for each level of nesting.
	// If empty, two spaces are used.
	Indent string

	// If true, color scalar values and error locations with ANSI escape
	// sequences, regardless of whether the output is a terminal.
	Color bool
}

var (
	numberColor   = color.New(color.FgBlue)
	stringColor   = color.New(color.FgHiGreen)
	boolColor     = color.New(color.FgMagenta)
	nullColor     = color.New(color.FgGreen)
	locationColor = color.New(color.FgRed)
)

func init() {
	// Whether to color is decided by Formatter.Color, not by the color
	// package's terminal detection.
	for _, c := range []*color.Color{numberColor, stringColor, boolColor, nullColor, locationColor} {
		c.EnableColor()
	}
}

func (f Formatter) indent() string {
	if f.Indent == "" {
		return "  "
	}
	return f.Indent
}

func (f Formatter) paint(c *color.Color, s string) string {
	if !f.Color {
		return s
	}
	return c.Sprint(s)
}

// Format renders a pretty-printed representation of v to w with default
// settings.
func Format(w io.Writer, v arson.Value) error {
	var f Formatter
	return f.Format(w, v)
}

// Format renders a pretty-printed representation of v to w using the settings
// from f. Object members are rendered in order by key. No newline is written
// after the value.
func (f Formatter) Format(w io.Writer, v arson.Value) error {
	bw := bufio.NewWriter(w)
	f.formatValue(bw, v, "")
	return bw.Flush()
}

// String returns the pretty-printed representation of v using the settings
// from f.
func (f Formatter) String(v arson.Value) string {
	var sb strings.Builder
	f.Format(&sb, v) // writes to a strings.Builder do not fail
	return sb.String()
}

// FormatError renders err to w. If err is or wraps an *arson.SyntaxError, its
// location is rendered first, followed by its message; otherwise err is
// rendered as text. No newline is written after the error.
func (f Formatter) FormatError(w io.Writer, err error) error {
	var serr *arson.SyntaxError
	if errors.As(err, &serr) {
		_, werr := fmt.Fprint(w, f.paint(locationColor, serr.Location.String()), " - ", serr.Message)
		return werr
	}
	_, werr := io.WriteString(w, err.Error())
	return werr
}

// formatValue writes a representation of v to w, where indent is the
// indentation of the line on which v begins.
func (f Formatter) formatValue(w *bufio.Writer, v arson.Value, indent string) {
	switch t := v.(type) {
	case arson.Object:
		f.formatObject(w, t, indent)
	case arson.Array:
		f.formatArray(w, t, indent)
	case arson.String:
		w.WriteString(f.paint(stringColor, string(escape.Quote(mem.S(string(t))))))
	case arson.Number:
		w.WriteString(f.paint(numberColor, formatNumber(float64(t))))
	case arson.Bool:
		w.WriteString(f.paint(boolColor, strconv.FormatBool(bool(t))))
	case arson.Null:
		w.WriteString(f.paint(nullColor, "null"))
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

func (f Formatter) formatArray(w *bufio.Writer, a arson.Array, indent string) {
	if f.isBoring(a) {
		w.WriteString("[")
		for i, v := range a {
			if i > 0 {
				w.WriteString(", ")
			}
			f.formatValue(w, v, indent)
		}
		w.WriteString("]")
		return
	}

	w.WriteString("[\n")
	adent := indent + f.indent()
	for i, v := range a {
		if i > 0 {
			w.WriteString(",\n")
		}
		w.WriteString(adent)
		f.formatValue(w, v, adent)
	}
	fmt.Fprint(w, "\n", indent, "]")
}

func (f Formatter) formatObject(w *bufio.Writer, o arson.Object, indent string) {
	if f.isBoring(o) {
		w.WriteString("{")
		for i, key := range o.Keys() {
			if i > 0 {
				w.WriteString(", ")
			}
			fmt.Fprint(w, string(escape.Quote(mem.S(key))), ": ")
			f.formatValue(w, o[key], indent)
		}
		w.WriteString("}")
		return
	}

	w.WriteString("{\n")
	mdent := indent + f.indent()
	for i, key := range o.Keys() {
		if i > 0 {
			w.WriteString(",\n")
		}
		fmt.Fprint(w, mdent, string(escape.Quote(mem.S(key))), ": ")
		f.formatValue(w, o[key], mdent)
	}
	fmt.Fprint(w, "\n", indent, "}")
}

// isBoring reports whether v has a simple enough structure that it can be
// rendered on one line.
func (f Formatter) isBoring(v arson.Value) bool {
	switch t := v.(type) {
	case arson.Array:
		for i, v := range t {
			if !f.isBoring(v) || i >= 3 {
				return false
			}
		}
		return true
	case arson.Object:
		if len(t) == 1 {
			for _, v := range t {
				return f.isBoring(v)
			}
		}
		return len(t) == 0
	default:
		return true
	}
}

// formatNumber renders z in the shortest form that parses back to the same
// value, using exponent notation only for very large or small magnitudes.
func formatNumber(z float64) string {
	if math.IsInf(z, 0) || math.IsNaN(z) {
		// Not representable in JSON; the parser never produces these.
		return "null"
	}
	abs := math.Abs(z)
	fmtc := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtc = 'e'
	}
	b := strconv.AppendFloat(nil, z, fmtc, -1, 64)
	if fmtc == 'e' {
		// Trim a leading zero from a two-digit negative exponent, e-07 → e-7.
		if n := len(b); n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}
