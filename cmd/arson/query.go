// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/arson/jpath"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// queryCommand evaluates a path expression against each input and prints
// the values it selects, one per line.
type queryCommand struct {
	env   *env
	parse parseFlags
	out   outputFlags
	path  string
	files []string
}

func addQueryCommand(app *kingpin.Application, e *env) {
	cmd := &queryCommand{env: e}
	clause := app.Command("query", "Print the values selected by a JSONPath expression.").Action(cmd.run)
	clause.Arg("path", "The JSONPath expression, for example $.store.book[0].title").Required().StringVar(&cmd.path)
	clause.Arg("file", "The files to query.").StringsVar(&cmd.files)
	cmd.parse.bind(clause)
	cmd.out.bindColor(clause)
	cmd.out.bindIndent(clause)
}

func (cmd *queryCommand) run(*kingpin.ParseContext) error {
	expr, err := jpath.Parse(cmd.path)
	if err != nil {
		return errors.Wrapf(err, "invalid path %q", cmd.path)
	}
	f, err := cmd.out.formatter()
	if err != nil {
		return err
	}

	failed := false
	for _, name := range inputNames(cmd.files) {
		v, err := cmd.env.load(name, cmd.parse)
		if err != nil {
			report(cmd.env.stderr, f, name, err)
			failed = true
			continue
		}
		matches := expr.Eval(v)
		level.Debug(cmd.env.log).Log("msg", "evaluated path", "input", name, "path", expr, "matches", len(matches))
		for _, m := range matches {
			if err := cmd.env.emit(f, m); err != nil {
				return err
			}
		}
	}
	if failed {
		return errFailed
	}
	return nil
}
