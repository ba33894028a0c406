// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonstream

import "io"

// A Parser reads JSON values from a ChunkSource. A Parser is stateful: its
// current-character slot and pending-chunk buffer are shared by any
// container cursor or unparsed value handle it hands out, so only one such
// object may be in active use at a time (see the package doc).
type Parser struct {
	byteSource

	depth int  // nesting level; incremented entering an object/array, decremented leaving
	done  bool // a top-level value has already been read
}

// NewParser constructs a Parser that reads from src.
func NewParser(src ChunkSource) *Parser {
	return &Parser{byteSource: byteSource{src: src}}
}

// ReadTopLevelValue reads the single JSON value transmitted by the
// underlying source. A Parser yields exactly one top-level value, whether it
// is read here or a top-level object or array is walked to its end through
// EnterObject or EnterArray: a later call reports io.EOF if the stream holds
// nothing but whitespace afterward, or a ValueAfterEnd error if further
// non-whitespace content follows.
func (p *Parser) ReadTopLevelValue() (any, error) {
	if p.done {
		if !p.curSet {
			return nil, io.EOF
		}
		if err := p.skipWhitespace(); err != nil {
			return nil, err
		}
		if !p.curSet {
			return nil, io.EOF
		}
		return nil, newSyntaxError(ValueAfterEnd, formatByte(p.cur, true))
	}
	v, err := p.ReadValue()
	if err != nil {
		return nil, err
	}
	p.done = true
	return v, nil
}

// ReadValue reads and materializes the complete value at the current
// position: scalars are read eagerly, and compound values are read by
// recursively draining their container cursor. Strings, numbers, booleans,
// and null map to Go string, float64, bool, and nil; objects and arrays map
// to map[string]any and []any.
func (p *Parser) ReadValue() (any, error) {
	t, err := p.PeekType()
	if err != nil {
		return nil, err
	}
	switch t {
	case TypeString:
		return p.ReadString()
	case TypeNumber:
		return p.ReadNumber()
	case TypeBool:
		return p.ReadBool()
	case TypeNull:
		return nil, p.ReadNull()
	case TypeObject:
		oc, err := p.EnterObject()
		if err != nil {
			return nil, err
		}
		return oc.Value()
	case TypeArray:
		ac, err := p.EnterArray()
		if err != nil {
			return nil, err
		}
		return ac.Value()
	default:
		return nil, newSyntaxError(UnexpectedCharacter, formatByte(p.cur, p.curSet))
	}
}

// SkipValue reads one complete value and discards it, without
// materializing any container. It snapshots the current nesting level,
// performs one raw token-level step, and then repeats that step until the
// nesting level returns to the snapshot — exploiting the fact that every
// container enter/exit adjusts the level by exactly one. For a scalar value
// the level never changes, so a single step suffices.
func (p *Parser) SkipValue() error {
	base := p.depth
	if err := p.skipToken(); err != nil {
		return err
	}
	for p.depth > base {
		if err := p.skipToken(); err != nil {
			return err
		}
	}
	return nil
}

// skipToken consumes exactly one raw lexical unit without materializing a
// value: a structural byte ("{", "}", "[", "]", ",", ":"), or a complete
// scalar (string, number, keyword). It is the primitive SkipValue repeats
// to walk over a compound value without building a cursor.
func (p *Parser) skipToken() error {
	if err := p.skipWhitespace(); err != nil {
		return err
	}
	if !p.curSet {
		return newSyntaxError(ReadPastEndOfStream, eob)
	}
	switch c := p.cur; {
	case c == '{' || c == '[':
		p.depth++
		return p.advance()
	case c == '}' || c == ']':
		p.depth--
		return p.advance()
	case c == ',' || c == ':':
		return p.advance()
	case c == '"':
		return p.skipString()
	case c == 't' || c == 'f':
		_, err := p.ReadBool()
		return err
	case c == 'n':
		return p.ReadNull()
	case c == '-' || isDigit(c):
		_, err := p.ReadNumber()
		return err
	default:
		return newSyntaxError(UnexpectedCharacter, formatByte(c, true))
	}
}

// skipString discards a complete string value, reusing the chunked reader's
// escape validation so a malformed escape inside a skipped string is still
// caught at the earliest byte rather than silently passed over.
func (p *Parser) skipString() error {
	sc := p.ReadStringChunks()
	for {
		_, err := sc.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// EnterObject consumes the opening brace of an object and returns a cursor
// over its members. It does not consume any members.
func (p *Parser) EnterObject() (*ObjectCursor, error) {
	if err := p.skipWhitespace(); err != nil {
		return nil, err
	}
	if !p.curSet || p.cur != '{' {
		return nil, newSyntaxErrorf(UnexpectedCharacter, formatByte(p.cur, p.curSet), `'{'`)
	}
	p.depth++
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ObjectCursor{p: p}, nil
}

// EnterArray consumes the opening bracket of an array and returns a cursor
// over its elements. It does not consume any elements.
func (p *Parser) EnterArray() (*ArrayCursor, error) {
	if err := p.skipWhitespace(); err != nil {
		return nil, err
	}
	if !p.curSet || p.cur != '[' {
		return nil, newSyntaxErrorf(UnexpectedCharacter, formatByte(p.cur, p.curSet), `'['`)
	}
	p.depth++
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ArrayCursor{p: p}, nil
}
