// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"strings"

	"github.com/alecthomas/kingpin/v2"
)

// printCommand parses each input and pretty-prints its value.
type printCommand struct {
	env   *env
	parse parseFlags
	out   outputFlags
	expr  string
	files []string
}

func addPrintCommand(app *kingpin.Application, e *env) {
	cmd := &printCommand{env: e}
	clause := app.Command("print", "Parse and pretty-print JSON values.").Action(cmd.run)
	clause.Flag("expr", "Parse this text instead of reading files.").Short('e').StringVar(&cmd.expr)
	clause.Arg("file", "The files to print.").StringsVar(&cmd.files)
	cmd.parse.bind(clause)
	cmd.out.bindColor(clause)
	cmd.out.bindIndent(clause)
}

func (cmd *printCommand) run(*kingpin.ParseContext) error {
	f, err := cmd.out.formatter()
	if err != nil {
		return err
	}
	if cmd.expr != "" {
		v, err := cmd.parse.parse(strings.NewReader(cmd.expr))
		if err != nil {
			report(cmd.env.stderr, f, "expr", err)
			return errFailed
		}
		return cmd.env.emit(f, v)
	}

	failed := false
	for _, name := range inputNames(cmd.files) {
		v, err := cmd.env.load(name, cmd.parse)
		if err != nil {
			report(cmd.env.stderr, f, name, err)
			failed = true
			continue
		}
		if err := cmd.env.emit(f, v); err != nil {
			return err
		}
	}
	if failed {
		return errFailed
	}
	return nil
}
