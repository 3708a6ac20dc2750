// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package arson implements a parser for JSON text.
//
// # Values
//
// A parsed JSON value is represented as a Value, whose concrete type is one
// of the six JSON variants:
//
//	JSON type  | Go type | Contents
//	---------- | ------- | ---------------------------------------
//	object     | Object  | map[string]Value, last duplicate key wins
//	array      | Array   | []Value, in input order
//	string     | String  | decoded text, escapes already replaced
//	number     | Number  | float64
//	boolean    | Bool    | bool
//	null       | Null    | struct{}
//
// Use Equal to compare two values structurally, and ToValue to construct a
// Value from plain Go data.
//
// # Parsing
//
// Construct a Parser from an io.Reader and call its Parse method, or use the
// Parse and ParseString helpers for the default settings:
//
//	v, err := arson.ParseString(`{"name": "John Doe", "age": 43}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// By default the top-level value must be an object, as in the grammar this
// package was designed for. Call AllowAnyValue to accept any value:
//
//	p := arson.NewParser(input)
//	p.AllowAnyValue(true)
//	v, err := p.Parse()
//
// # Errors
//
// In case of error, parsing stops at the first violation and an error of
// concrete type *SyntaxError is returned. Its Location reports the line
// (1-based) and column (0-based) at which the error was detected. Columns
// count characters, and a tab counts as four columns. If the input ended too
// soon, the error wraps io.ErrUnexpectedEOF:
//
//	if errors.Is(err, io.ErrUnexpectedEOF) {
//	   log.Print("Input is truncated")
//	}
package arson
