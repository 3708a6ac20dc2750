// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
)

// checkCommand reports whether each input parses.
type checkCommand struct {
	env   *env
	parse parseFlags
	out   outputFlags
	files []string
}

func addCheckCommand(app *kingpin.Application, e *env) {
	cmd := &checkCommand{env: e, out: outputFlags{indent: 2}}
	clause := app.Command("check", "Check that inputs are valid JSON.").Action(cmd.run)
	clause.Arg("file", "The files to check.").StringsVar(&cmd.files)
	cmd.parse.bind(clause)
	cmd.out.bindColor(clause)
}

func (cmd *checkCommand) run(*kingpin.ParseContext) error {
	f, err := cmd.out.formatter()
	if err != nil {
		return err
	}
	names := inputNames(cmd.files)
	var nfail int
	for _, name := range names {
		if _, err := cmd.env.load(name, cmd.parse); err != nil {
			report(cmd.env.stdout, f, name, err)
			nfail++
		} else {
			fmt.Fprintf(cmd.env.stdout, "%s: ok\n", name)
		}
	}
	level.Debug(cmd.env.log).Log("msg", "check complete", "inputs", len(names), "failed", nfail)
	if nfail != 0 {
		return errFailed
	}
	return nil
}
