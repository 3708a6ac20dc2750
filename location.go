// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package arson

import "fmt"

// A LineCol describes the line number and column offset of a location in
// source text.
//
// Columns count characters, not bytes. A tab advances the column by four,
// and a newline starts a new line at column 0.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // column offset in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// advance updates lc to account for the consumption of ch.
func (lc *LineCol) advance(ch rune) {
	switch ch {
	case '\n':
		lc.Line++
		lc.Column = 0
	case '\t':
		lc.Column += tabWidth
	default:
		lc.Column++
	}
}

// tabWidth is the number of columns a tab character is assumed to span.
const tabWidth = 4
