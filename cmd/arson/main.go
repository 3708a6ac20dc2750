// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program arson parses, checks, and queries JSON text.
//
// Usage:
//
//	arson print [flags] [FILE...]
//	arson check [flags] [FILE...]
//	arson query [flags] PATH [FILE...]
//
// A file name of "-", or no file names at all, reads standard input.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// errFailed is reported when at least one input could not be processed.
// The details have already been written by the time it is returned.
var errFailed = errors.New("one or more inputs failed")

// env carries the I/O and logging settings shared by all commands.
type env struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	verbose bool
	log     log.Logger
}

func newEnv(stdin io.Reader, stdout, stderr io.Writer) *env {
	return &env{stdin: stdin, stdout: stdout, stderr: stderr, log: log.NewNopLogger()}
}

// setup configures logging once flags have been parsed.
func (e *env) setup(*kingpin.ParseContext) error {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(e.stderr))
	allow := level.AllowInfo()
	if e.verbose {
		allow = level.AllowDebug()
	}
	e.log = level.NewFilter(logger, allow)
	return nil
}

func newApp(e *env) *kingpin.Application {
	app := kingpin.New("arson", "Parse, check, and query JSON text.")
	app.UsageWriter(e.stderr)
	app.ErrorWriter(e.stderr)
	app.Flag("verbose", "Enable debug logging.").Short('v').BoolVar(&e.verbose)
	app.PreAction(e.setup)

	addPrintCommand(app, e)
	addCheckCommand(app, e)
	addQueryCommand(app, e)
	return app
}

func main() {
	app := newApp(newEnv(os.Stdin, os.Stdout, os.Stderr))
	if _, err := app.Parse(os.Args[1:]); err != nil {
		if errors.Cause(err) == errFailed {
			os.Exit(1)
		}
		exitWithErr(err)
	}
}

func exitWithErr(err error) {
	fmt.Fprintf(os.Stderr, "arson: %v\n", err)
	os.Exit(1)
}
