// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package format_test

import (
	"bytes"
	"errors"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/creachadair/arson"
	"github.com/creachadair/arson/format"
	"github.com/fatih/color"
)

func mustParse(t *testing.T, s string) arson.Value {
	t.Helper()
	p := arson.NewParser(strings.NewReader(s))
	p.AllowAnyValue(true)
	v, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse %q: %v", s, err)
	}
	return v
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`{}`, `{}`},
		{`[]`, `[]`},
		{`null`, `null`},
		{`"a\tb"`, `"a\tb"`},
		{`{"a": 1}`, `{"a": 1}`},
		{`{"a": [1, 2, 3]}`, `{"a": [1, 2, 3]}`},
		{`[[1, 2], [], {}]`, `[[1, 2], [], {}]`},
		{`{"a": [1, 2, 3, 4]}`, `{
  "a": [
    1,
    2,
    3,
    4
  ]
}`},
		{`{"b": true, "a": null}`, `{
  "a": null,
  "b": true
}`},
		{`[{"x": 1, "y": 2}, "z"]`, `[
  {
    "x": 1,
    "y": 2
  },
  "z"
]`},
		{`{"k\"ey": "\u2028"}`, `{"k\"ey": "\u2028"}`},
	}
	for _, test := range tests {
		v := mustParse(t, test.input)
		if got := (format.Formatter{}).String(v); got != test.want {
			t.Errorf("Format %#q: output differs\n%s", test.input, diff.LineDiff(test.want, got))
		}
	}
}

func TestFormatNumbers(t *testing.T) {
	tests := []struct {
		input arson.Number
		want  string
	}{
		{0, "0"},
		{-2.5, "-2.5"},
		{43, "43"},
		{123456789, "123456789"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{-3.5e-10, "-3.5e-10"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.7976931348623157e308, "1.7976931348623157e+308"},
	}
	for _, test := range tests {
		if got := (format.Formatter{}).String(test.input); got != test.want {
			t.Errorf("Format %v: got %q, want %q", float64(test.input), got, test.want)
		}
	}
}

func TestFormatFile(t *testing.T) {
	input, err := os.ReadFile("../testdata/input.json")
	if err != nil {
		t.Fatalf("Read input: %v", err)
	}
	golden, err := os.ReadFile("testdata/input.golden")
	if err != nil {
		t.Fatalf("Read golden: %v", err)
	}
	v := mustParse(t, string(input))

	var buf bytes.Buffer
	if err := format.Format(&buf, v); err != nil {
		t.Fatalf("Format: unexpected error: %v", err)
	}
	want := strings.TrimSpace(string(golden))
	if got := buf.String(); got != want {
		t.Errorf("Format: output differs\n%s", diff.LineDiff(want, got))
	}

	// The formatted output parses back to the same value.
	w, err := arson.ParseString(buf.String())
	if err != nil {
		t.Fatalf("Parse formatted output: %v", err)
	}
	if !arson.Equal(v, w) {
		t.Error("Formatted output does not round-trip")
	}
}

func TestIndent(t *testing.T) {
	v := mustParse(t, `{"a": {"b": 1, "c": 2}}`)
	const want = "{\n\t\"a\": {\n\t\t\"b\": 1,\n\t\t\"c\": 2\n\t}\n}"
	if got := (format.Formatter{Indent: "\t"}).String(v); got != want {
		t.Errorf("Format: output differs\n%s", diff.LineDiff(want, got))
	}
}

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

func TestColor(t *testing.T) {
	f := format.Formatter{Color: true}
	tests := []struct {
		input arson.Value
		want  string
	}{
		{arson.Number(42), paint(color.FgBlue, "42")},
		{arson.String("hi"), paint(color.FgHiGreen, `"hi"`)},
		{arson.Bool(true), paint(color.FgMagenta, "true")},
		{arson.Null{}, paint(color.FgGreen, "null")},
		{arson.Object{"k": arson.Null{}}, `{"k": ` + paint(color.FgGreen, "null") + `}`},
	}
	for _, test := range tests {
		if got := f.String(test.input); got != test.want {
			t.Errorf("Format %v: got %q, want %q", test.input, got, test.want)
		}
	}

	// Stripped of color, the output matches the uncolored rendering.
	input, err := os.ReadFile("../testdata/input.json")
	if err != nil {
		t.Fatalf("Read input: %v", err)
	}
	v := mustParse(t, string(input))
	colored := f.String(v)
	if colored == (format.Formatter{}).String(v) {
		t.Error("Colored output has no color")
	}
	if got, want := ansi.ReplaceAllString(colored, ""), (format.Formatter{}).String(v); got != want {
		t.Errorf("Stripped output differs\n%s", diff.LineDiff(want, got))
	}
}

func TestFormatError(t *testing.T) {
	_, err := arson.ParseString("{\n  \"a\": }")
	if err == nil {
		t.Fatal("Parse: got nil, want error")
	}

	var buf bytes.Buffer
	if err := (format.Formatter{}).FormatError(&buf, err); err != nil {
		t.Fatalf("FormatError: %v", err)
	}
	if got, want := buf.String(), "2:7 - not able to parse '}'"; got != want {
		t.Errorf("FormatError: got %q, want %q", got, want)
	}

	buf.Reset()
	(format.Formatter{Color: true}).FormatError(&buf, err)
	if got, want := buf.String(), paint(color.FgRed, "2:7")+" - not able to parse '}'"; got != want {
		t.Errorf("FormatError: got %q, want %q", got, want)
	}

	buf.Reset()
	(format.Formatter{Color: true}).FormatError(&buf, errors.New("plain failure"))
	if got, want := buf.String(), "plain failure"; got != want {
		t.Errorf("FormatError: got %q, want %q", got, want)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestFormatWriteError(t *testing.T) {
	v := mustParse(t, `{"a": 1}`)
	if err := format.Format(failWriter{}, v); err == nil {
		t.Error("Format: got nil, want write error")
	}
}
