// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout, stderr string
	err            error
}

func runApp(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errb bytes.Buffer
	app := newApp(newEnv(strings.NewReader(stdin), &out, &errb))
	_, err := app.Parse(args)
	return result{stdout: out.String(), stderr: errb.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestPrint(t *testing.T) {
	t.Run("Stdin", func(t *testing.T) {
		r := runApp(t, `{"b": 1, "a": [true]}`, "print", "--color=never")
		require.NoError(t, r.err)
		require.Equal(t, "{\n  \"a\": [true],\n  \"b\": 1\n}\n", r.stdout)
	})

	t.Run("Expr", func(t *testing.T) {
		r := runApp(t, "", "print", "--any", "-e", `[1,2]`, "--color=never")
		require.NoError(t, r.err)
		require.Equal(t, "[1, 2]\n", r.stdout)
	})

	t.Run("ExprNotObject", func(t *testing.T) {
		r := runApp(t, "", "print", "-e", `[1,2]`, "--color=never")
		require.Equal(t, errFailed, errors.Cause(r.err))
		require.Equal(t, "expr: 1:1 - object did not start with '{', found '['\n", r.stderr)
		require.Empty(t, r.stdout)
	})

	t.Run("LooseCommas", func(t *testing.T) {
		r := runApp(t, `{"a": [1,,2,]}`, "print", "--loose-commas", "--color=never")
		require.NoError(t, r.err)
		require.Equal(t, "{\"a\": [1, 2]}\n", r.stdout)
	})

	t.Run("File", func(t *testing.T) {
		golden, err := os.ReadFile("../../format/testdata/input.golden")
		require.NoError(t, err)
		r := runApp(t, "", "print", "--color=never", "../../testdata/input.json")
		require.NoError(t, r.err)
		require.Equal(t, strings.TrimSpace(string(golden))+"\n", r.stdout)
	})

	t.Run("Indent", func(t *testing.T) {
		const input = `{"a": {"b": 1, "c": 2}}`
		r := runApp(t, input, "print", "--color=never", "--indent=4")
		require.NoError(t, r.err)
		require.Equal(t, "{\n    \"a\": {\n        \"b\": 1,\n        \"c\": 2\n    }\n}\n", r.stdout)

		r = runApp(t, input, "print", "--color=never", "--tabs")
		require.NoError(t, r.err)
		require.Equal(t, "{\n\t\"a\": {\n\t\t\"b\": 1,\n\t\t\"c\": 2\n\t}\n}\n", r.stdout)

		r = runApp(t, input, "print", "--color=never", "--indent=0")
		require.ErrorContains(t, r.err, "indent must be positive")
	})

	t.Run("Color", func(t *testing.T) {
		r := runApp(t, `{"a": 1}`, "print", "--color=always")
		require.NoError(t, r.err)
		require.Contains(t, r.stdout, "\x1b[")

		t.Setenv("ARSON_COLOR", "always")
		r = runApp(t, `{"a": 1}`, "print")
		require.NoError(t, r.err)
		require.Contains(t, r.stdout, "\x1b[")

		r = runApp(t, `{"a": 1}`, "print", "--color=never")
		require.NoError(t, r.err)
		require.Equal(t, "{\"a\": 1}\n", r.stdout)
	})

	t.Run("SomeFail", func(t *testing.T) {
		dir := t.TempDir()
		good := writeFile(t, dir, "good.json", `{"ok": true}`)
		bad := writeFile(t, dir, "bad.json", `{"ok": tru}`)
		r := runApp(t, "", "print", "--color=never", bad, good)
		require.Equal(t, errFailed, errors.Cause(r.err))
		require.Equal(t, "{\"ok\": true}\n", r.stdout)
		require.Contains(t, r.stderr, bad+`: 1:11 - could not parse word, did you mean "true"?`)
	})
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", "{\n  \"a\": [1, 2]\n}\n")
	bad := writeFile(t, dir, "bad.json", "{\n  \"a\": [1, 2,]\n}\n")
	missing := filepath.Join(dir, "missing.json")

	r := runApp(t, "", "check", "--color=never", good)
	require.NoError(t, r.err)
	require.Equal(t, good+": ok\n", r.stdout)

	r = runApp(t, "", "check", "--color=never", good, bad, missing)
	require.Equal(t, errFailed, errors.Cause(r.err))
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, good+": ok", lines[0])
	require.Equal(t, bad+": 2:13 - not able to parse ']'", lines[1])
	require.Contains(t, lines[2], "opening input")

	r = runApp(t, "{} {}", "check", "--color=never")
	require.Equal(t, errFailed, errors.Cause(r.err))
	require.Equal(t, "-: 1:3 - unexpected '{' after end of value\n", r.stdout)
}

func TestInputNames(t *testing.T) {
	require.Equal(t, []string{"-"}, inputNames(nil))
	require.Equal(t, []string{"a", "-", "b"}, inputNames([]string{"a", "-", "b"}))

	e := newEnv(strings.NewReader(`{"x": null}`), nil, nil)
	v, err := e.load("-", parseFlags{})
	require.NoError(t, err)
	require.Equal(t, "object", v.Kind().String())
}

func TestQuery(t *testing.T) {
	r := runApp(t, "", "query", "--color=never", "$.episodes[*].title", "../../testdata/input.json")
	require.NoError(t, r.err)
	require.Equal(t, "\"The Pilot\"\n\"Café \\\"Noir\\\"\"\n\"😀 Smile\"\n", r.stdout)

	r = runApp(t, `{"a": {"b": [1, 2]}}`, "query", "--color=never", "$..b[-1]")
	require.NoError(t, r.err)
	require.Equal(t, "2\n", r.stdout)

	r = runApp(t, `{"a": 1}`, "query", "--color=never", "$.nonesuch")
	require.NoError(t, r.err)
	require.Empty(t, r.stdout)

	r = runApp(t, `{}`, "query", "$[?(@.x)]")
	require.ErrorContains(t, r.err, "invalid path")
}

func TestVerbose(t *testing.T) {
	r := runApp(t, `{"a": 1}`, "-v", "check", "--color=never")
	require.NoError(t, r.err)
	require.Equal(t, "-: ok\n", r.stdout)
	require.Contains(t, r.stderr, "level=debug")
	require.Contains(t, r.stderr, `msg="parsed input"`)
	require.Contains(t, r.stderr, "size=")

	r = runApp(t, `{"a": 1}`, "check", "--color=never")
	require.NoError(t, r.err)
	require.Empty(t, r.stderr)
}
