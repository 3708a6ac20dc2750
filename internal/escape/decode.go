// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the escape sequences of JSON strings.
package escape

import (
	"fmt"
	"unicode/utf8"
)

// simpleEsc maps the character following a backslash to the character it
// denotes, for all escapes other than \u.
var simpleEsc = [...]rune{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// Decode reports the character denoted by the single-character escape
// sequence \ch, and whether ch introduces such an escape. Decode reports
// false for 'u', whose escape requires hex digits (see Hex4).
func Decode(ch rune) (rune, bool) {
	if ch < 0 || int(ch) >= len(simpleEsc) {
		return 0, false
	}
	r := simpleEsc[ch]
	return r, r != 0
}

// Hex4 decodes the four hexadecimal digits of a \u escape, most significant
// digit first, into a code unit. The result may be a surrogate half; see
// IsHighSurrogate, IsLowSurrogate, and Combine.
func Hex4(digits [4]rune) (rune, error) {
	var v rune
	for _, d := range digits {
		n, ok := hexValue(d)
		if !ok {
			return 0, fmt.Errorf("unable to parse %q as hex", d)
		}
		v = v<<4 | n
	}
	return v, nil
}

// IsHighSurrogate reports whether r is the leading half of a UTF-16
// surrogate pair.
func IsHighSurrogate(r rune) bool { return 0xd800 <= r && r < 0xdc00 }

// IsLowSurrogate reports whether r is the trailing half of a UTF-16 surrogate
// pair.
func IsLowSurrogate(r rune) bool { return 0xdc00 <= r && r < 0xe000 }

// Combine returns the code point encoded by the surrogate pair hi, lo.
// The caller must ensure hi and lo are a high and low surrogate.
func Combine(hi, lo rune) rune {
	return 0x10000 + (hi-0xd800)<<10 + (lo - 0xdc00)
}

// IsValid reports whether r is a Unicode scalar value, that is, a code point
// that may appear as a character of a decoded string.
func IsValid(r rune) bool { return utf8.ValidRune(r) }

// IsHexDigit reports whether ch is a hexadecimal digit.
func IsHexDigit(ch rune) bool { _, ok := hexValue(ch); return ok }

func hexValue(ch rune) (rune, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0', true
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10, true
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
