// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package arson

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/arson/internal/escape"
	"go4.org/mem"
)

// A Parser parses a single JSON value from a stream of characters.
//
// The parser is a recursive-descent parser with one character of lookahead.
// It consumes its input strictly forward, and reports the first error it
// finds as a *SyntaxError. A Parser is not safe for concurrent use.
type Parser struct {
	r io.RuneReader

	anyValue bool // allow any value at the top level
	loose    bool // allow loose commas in arrays

	// One character of lookahead: if have is true, next is a character that
	// has been read from r but not yet consumed.
	next rune
	have bool
	eof  bool

	pos LineCol // location after the most recently consumed character
}

// NewParser constructs a new Parser that consumes input from r.  If r does
// not implement io.RuneReader, its contents are decoded as UTF-8.
func NewParser(r io.Reader) *Parser {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &Parser{r: rr, pos: LineCol{Line: 1}}
}

// AllowAnyValue configures the parser to accept any JSON value (true) or only
// an object (false) at the top level of the input. By default only an object
// is accepted.
func (p *Parser) AllowAnyValue(ok bool) { p.anyValue = ok }

// AllowLooseCommas configures the parser to skip (true) or reject (false)
// commas in arrays that do not separate two values. When enabled, a comma
// anywhere a value is expected inside an array is ignored, so that [,1,,2,]
// is accepted as [1,2].
func (p *Parser) AllowLooseCommas(ok bool) { p.loose = ok }

// Parse parses a complete JSON value from the input. Only whitespace may
// follow the value. In case of error, Parse returns a nil Value and an error
// of concrete type *SyntaxError; no partial value is returned.
//
// Parse consumes the input. A second call on the same Parser reports an
// unexpected end of input.
func (p *Parser) Parse() (_ Value, err error) {
	defer p.recoverParseError(&err)

	var v Value
	if p.anyValue {
		v = p.parseAny()
	} else {
		v = p.parseObject()
	}
	if ch, ok := p.skipSpace(); ok {
		panic(p.syntaxError(nil, "unexpected %q after end of value", ch))
	}
	return v, nil
}

// Parse parses a complete JSON object from r with default settings.
func Parse(r io.Reader) (Value, error) { return NewParser(r).Parse() }

// ParseString parses a complete JSON object from s with default settings.
func ParseString(s string) (Value, error) { return NewParser(strings.NewReader(s)).Parse() }

// parseAny consumes a single value of any type, chosen by the next
// non-whitespace character.
func (p *Parser) parseAny() Value {
	switch ch := p.peek(); {
	case ch == '-' || isDigit(ch):
		return p.parseNumber()
	case ch == '"':
		return p.parseString()
	case ch == '{':
		return p.parseObject()
	case ch == '[':
		return p.parseArray()
	case ch == 't':
		return p.parseLiteral("true", Bool(true))
	case ch == 'f':
		return p.parseLiteral("false", Bool(false))
	case ch == 'n':
		return p.parseLiteral("null", Null{})
	default:
		panic(p.syntaxError(nil, "not able to parse %q", ch))
	}
}

// parseObject consumes an object and its members.
func (p *Parser) parseObject() Object {
	if ch := p.consume(); ch != '{' {
		panic(p.syntaxError(nil, "object did not start with %q, found %q", '{', ch))
	}
	obj := make(Object)
	if p.peek() == '}' {
		p.advance()
		return obj
	}
	for {
		v := p.parseAny()
		key, ok := v.(String)
		if !ok {
			panic(p.syntaxError(nil, "key of object must be a string, but found %v", v.Kind()))
		}
		if ch := p.consume(); ch != ':' {
			panic(p.syntaxError(nil, "%q is expected after key, but found %q", ':', ch))
		}

		// If a key repeats, the last value wins.
		obj[string(key)] = p.parseAny()

		switch ch := p.consume(); ch {
		case '}':
			return obj
		case ',':
			continue
		default:
			panic(p.syntaxError(nil, "unexpected %q in object, expected %q or %q", ch, ',', '}'))
		}
	}
}

// parseArray consumes an array and its elements.
func (p *Parser) parseArray() Array {
	if ch := p.consume(); ch != '[' {
		panic(p.syntaxError(nil, "array must start with %q, found %q", '[', ch))
	}
	arr := Array{}
	if p.loose {
		for {
			switch p.peek() {
			case ',':
				p.advance()
			case ']':
				p.advance()
				return arr
			default:
				arr = append(arr, p.parseAny())
			}
		}
	}

	if p.peek() == ']' {
		p.advance()
		return arr
	}
	for {
		arr = append(arr, p.parseAny())
		switch ch := p.consume(); ch {
		case ']':
			return arr
		case ',':
			continue
		default:
			panic(p.syntaxError(nil, "unexpected %q in array, expected %q or %q", ch, ',', ']'))
		}
	}
}

// parseString consumes a quoted string and decodes its escape sequences.
// Whitespace inside the quotes is significant.
func (p *Parser) parseString() String {
	if ch := p.consume(); ch != '"' {
		panic(p.syntaxError(nil, "string must start with %q, found %q", '"', ch))
	}
	var sb strings.Builder
	for {
		switch ch := p.nextRaw(); ch {
		case '"':
			return String(sb.String())
		case '\\':
			sb.WriteRune(p.parseEscape())
		default:
			sb.WriteRune(ch)
		}
	}
}

// parseEscape consumes the remainder of an escape sequence after its
// backslash, and returns the character it denotes.
func (p *Parser) parseEscape() rune {
	ch := p.nextRaw()
	if r, ok := escape.Decode(ch); ok {
		return r
	} else if ch != 'u' {
		panic(p.syntaxError(nil, "no escape sequence exists for %q", ch))
	}

	r := p.parseHex4()
	if escape.IsHighSurrogate(r) {
		// A high surrogate is only valid as the first half of a pair, so the
		// next character must begin another \u escape.
		next, ok := p.peekRaw()
		if !ok {
			panic(p.eofError())
		} else if next == '\\' {
			p.advance()
			if ch := p.nextRaw(); ch != 'u' {
				panic(p.syntaxError(nil, `\u%04X is not a valid character`, r))
			}
			lo := p.parseHex4()
			if !escape.IsLowSurrogate(lo) {
				panic(p.syntaxError(nil, `\u%04X\u%04X is not a valid character`, r, lo))
			}
			return escape.Combine(r, lo)
		}
	}
	if !escape.IsValid(r) {
		panic(p.syntaxError(nil, `\u%04X is not a valid character`, r))
	}
	return r
}

// parseHex4 consumes the four hexadecimal digits of a \u escape.
func (p *Parser) parseHex4() rune {
	var digits [4]rune
	for i := range digits {
		digits[i] = p.nextRaw()
		if !escape.IsHexDigit(digits[i]) {
			panic(p.syntaxError(nil, "unable to parse %q as hex", digits[i]))
		}
	}
	r, err := escape.Hex4(digits)
	if err != nil {
		panic(p.syntaxError(err, "%v", err))
	}
	return r
}

// parseNumber consumes a number:
//
//	-? (0 | [1-9][0-9]*) (\.[0-9]+)? ([eE][+-]?[0-9]+)?
//
// Whitespace is not permitted inside a number.
func (p *Parser) parseNumber() Number {
	var buf []byte // all the characters of a number are ASCII
	if ch, ok := p.peekRaw(); ok && ch == '-' {
		buf = append(buf, byte(p.advance()))
	}

	// Integer part.
	switch ch, ok := p.peekRaw(); {
	case !ok:
		panic(p.eofError())
	case ch == '0':
		buf = append(buf, byte(p.advance()))
		if next, ok := p.peekRaw(); ok && isDigit(next) {
			panic(p.syntaxError(nil, "number starting with %q must be followed by %q or nothing", '0', '.'))
		}
	case isDigit(ch):
		buf = p.readDigits(buf)
	default:
		panic(p.syntaxError(nil, "%q is not valid as part of integer part of a number", ch))
	}

	// Fraction part.
	if ch, ok := p.peekRaw(); ok && ch == '.' {
		buf = append(buf, byte(p.advance()))
		buf = p.requireDigits(buf, "fraction")
	}

	// Exponent part.
	if ch, ok := p.peekRaw(); ok && (ch == 'e' || ch == 'E') {
		buf = append(buf, byte(p.advance()))
		if ch, ok := p.peekRaw(); ok && (ch == '+' || ch == '-') {
			buf = append(buf, byte(p.advance()))
		}
		buf = p.requireDigits(buf, "exponent")
	}

	v, err := mem.ParseFloat(mem.B(buf), 64)
	if err != nil {
		panic(p.syntaxError(err, "%q could not be parsed as a number", buf))
	}
	return Number(v)
}

// readDigits consumes a possibly-empty run of decimal digits, appending them
// to buf.
func (p *Parser) readDigits(buf []byte) []byte {
	for {
		ch, ok := p.peekRaw()
		if !ok || !isDigit(ch) {
			return buf
		}
		buf = append(buf, byte(p.advance()))
	}
}

// requireDigits consumes a non-empty run of decimal digits for the named part
// of a number, appending them to buf.
func (p *Parser) requireDigits(buf []byte, part string) []byte {
	ch, ok := p.peekRaw()
	if !ok {
		panic(p.eofError())
	} else if !isDigit(ch) {
		panic(p.syntaxError(nil, "expected digit in %s of number, found %q", part, ch))
	}
	return p.readDigits(buf)
}

// parseLiteral consumes the constant word, which must match exactly, and
// returns v.
func (p *Parser) parseLiteral(word string, v Value) Value {
	for _, want := range word {
		if got := p.nextRaw(); got != want {
			panic(p.syntaxError(nil, "could not parse word, did you mean %q? (diff: %q/%q)", word, want, got))
		}
	}
	return v
}

// peekRaw returns the next unconsumed character without consuming it, and
// reports whether one is available. It reports false at the end of input.
func (p *Parser) peekRaw() (rune, bool) {
	if !p.have && !p.eof {
		ch, _, err := p.r.ReadRune()
		if err == io.EOF {
			p.eof = true
		} else if err != nil {
			panic(p.syntaxError(err, "read error: %v", err))
		} else {
			p.next, p.have = ch, true
		}
	}
	return p.next, p.have
}

// advance consumes the lookahead character and updates the location.
// Precondition: a lookahead character is available.
func (p *Parser) advance() rune {
	ch := p.next
	p.have = false
	p.pos.advance(ch)
	return ch
}

// nextRaw consumes and returns the next character, even if it is whitespace.
func (p *Parser) nextRaw() rune {
	if _, ok := p.peekRaw(); !ok {
		panic(p.eofError())
	}
	return p.advance()
}

// skipSpace consumes whitespace and returns the next non-whitespace
// character without consuming it. It reports false at the end of input.
func (p *Parser) skipSpace() (rune, bool) {
	for {
		ch, ok := p.peekRaw()
		if !ok || !isSpace(ch) {
			return ch, ok
		}
		p.advance()
	}
}

// peek returns the next non-whitespace character without consuming it.
func (p *Parser) peek() rune {
	ch, ok := p.skipSpace()
	if !ok {
		panic(p.eofError())
	}
	return ch
}

// consume consumes and returns the next non-whitespace character.
func (p *Parser) consume() rune {
	p.peek()
	return p.advance()
}

func (p *Parser) syntaxError(err error, msg string, args ...any) *SyntaxError {
	return &SyntaxError{
		Location: p.pos,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
}

func (p *Parser) eofError() *SyntaxError {
	return p.syntaxError(io.ErrUnexpectedEOF, "unexpected end of file during parsing")
}

func (p *Parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		if err, ok := perr.(*SyntaxError); ok {
			*errp = err
			return
		}
		panic(perr)
	}
}

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Location LineCol // where the error was detected
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }
