// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/arson"
	"github.com/creachadair/arson/format"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// parseFlags are the parser settings shared by all commands.
type parseFlags struct {
	anyValue bool
	loose    bool
}

func (p *parseFlags) bind(cmd *kingpin.CmdClause) {
	cmd.Flag("any", "Accept any value at the top level, not only an object.").BoolVar(&p.anyValue)
	cmd.Flag("loose-commas", "Ignore commas in arrays that do not separate values.").BoolVar(&p.loose)
}

func (p parseFlags) parse(r io.Reader) (arson.Value, error) {
	ps := arson.NewParser(r)
	ps.AllowAnyValue(p.anyValue)
	ps.AllowLooseCommas(p.loose)
	return ps.Parse()
}

// outputFlags are the output settings of commands that print values.
type outputFlags struct {
	color  string
	indent int
	tabs   bool
}

func (o *outputFlags) bindColor(cmd *kingpin.CmdClause) {
	cmd.Flag("color", "Whether to color output (auto, always, never).").
		Default("auto").Envar("ARSON_COLOR").EnumVar(&o.color, "auto", "always", "never")
}

func (o *outputFlags) bindIndent(cmd *kingpin.CmdClause) {
	cmd.Flag("indent", "Number of spaces per level of nesting.").Default("2").IntVar(&o.indent)
	cmd.Flag("tabs", "Indent with tabs instead of spaces.").BoolVar(&o.tabs)
}

func (o outputFlags) formatter() (format.Formatter, error) {
	var f format.Formatter
	switch {
	case o.tabs:
		f.Indent = "\t"
	case o.indent > 0:
		f.Indent = strings.Repeat(" ", o.indent)
	default:
		return f, errors.Errorf("indent must be positive, got %d", o.indent)
	}
	switch o.color {
	case "always":
		f.Color = true
	case "auto":
		f.Color = !color.NoColor
	}
	return f, nil
}

// inputNames returns the inputs named by files, or standard input if there
// are none.
func inputNames(files []string) []string {
	if len(files) == 0 {
		return []string{"-"}
	}
	return files
}

func (e *env) openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(e.stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	return f, nil
}

// load reads and parses the named input.
func (e *env) load(name string, pf parseFlags) (arson.Value, error) {
	rc, err := e.openInput(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	cr := &countReader{r: rc}
	v, err := pf.parse(cr)
	if err != nil {
		level.Debug(e.log).Log("msg", "parse failed", "input", name, "read", humanize.Bytes(cr.n), "err", err)
		return nil, err
	}
	level.Debug(e.log).Log("msg", "parsed input", "input", name, "size", humanize.Bytes(cr.n), "kind", v.Kind())
	return v, nil
}

// emit writes v to standard output followed by a newline.
func (e *env) emit(f format.Formatter, v arson.Value) error {
	if err := f.Format(e.stdout, v); err != nil {
		return errors.Wrap(err, "writing output")
	}
	_, err := io.WriteString(e.stdout, "\n")
	return errors.Wrap(err, "writing output")
}

// report writes a line describing err for the named input to w.
func report(w io.Writer, f format.Formatter, name string, err error) {
	fmt.Fprint(w, name, ": ")
	f.FormatError(w, err)
	fmt.Fprintln(w)
}

type countReader struct {
	r io.Reader
	n uint64
}

func (c *countReader) Read(data []byte) (int, error) {
	nr, err := c.r.Read(data)
	c.n += uint64(nr)
	return nr, err
}
