// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonstream

import "strconv"

// ValueType classifies the upcoming JSON value without consuming it.
type ValueType byte

// Constants defining the valid ValueType values.
const (
	Invalid ValueType = iota
	TypeString
	TypeNumber
	TypeBool
	TypeNull
	TypeObject
	TypeArray
)

var valueTypeStr = [...]string{
	Invalid:    "invalid",
	TypeString: "string",
	TypeNumber: "number",
	TypeBool:   "boolean",
	TypeNull:   "null",
	TypeObject: "object",
	TypeArray:  "array",
}

func (t ValueType) String() string {
	v := int(t)
	if v < 0 || v >= len(valueTypeStr) {
		return "invalid"
	}
	return valueTypeStr[v]
}

// PeekType reports the type of the upcoming value without consuming any
// input beyond whitespace. It is pure with respect to the value itself: the
// byte that discriminates the type is left in the current-character slot.
func (p *Parser) PeekType() (ValueType, error) {
	if err := p.skipWhitespace(); err != nil {
		return Invalid, err
	}
	return p.peekTypeAt()
}

func (p *Parser) peekTypeAt() (ValueType, error) {
	if !p.curSet {
		return Invalid, newSyntaxError(ReadPastEndOfStream, eob)
	}
	switch c := p.cur; {
	case c == '"':
		return TypeString, nil
	case c == '{':
		return TypeObject, nil
	case c == '[':
		return TypeArray, nil
	case c == 't' || c == 'f':
		return TypeBool, nil
	case c == 'n':
		return TypeNull, nil
	case c == '-' || isDigit(c):
		return TypeNumber, nil
	default:
		return Invalid, newSyntaxError(UnexpectedCharacter, formatByte(c, true))
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ReadBool reads a "true" or "false" literal.
func (p *Parser) ReadBool() (bool, error) {
	if err := p.skipWhitespace(); err != nil {
		return false, err
	}
	if !p.curSet {
		return false, newSyntaxError(ReadPastEndOfStream, eob)
	}
	switch p.cur {
	case 't':
		if err := p.matchKeyword("rue"); err != nil {
			return false, err
		}
		return true, nil
	case 'f':
		if err := p.matchKeyword("alse"); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, newSyntaxError(UnexpectedCharacter, formatByte(p.cur, true))
	}
}

// ReadNull reads a "null" literal.
func (p *Parser) ReadNull() error {
	if err := p.skipWhitespace(); err != nil {
		return err
	}
	if !p.curSet || p.cur != 'n' {
		return newSyntaxError(UnexpectedCharacter, formatByte(p.cur, p.curSet))
	}
	return p.matchKeyword("ull")
}

// matchKeyword matches rest byte-for-byte against the input, having already
// consumed the first byte of the keyword (e.g. "rue" after seeing 't').
// The current-character slot ends on the terminator following the keyword.
func (p *Parser) matchKeyword(rest string) error {
	for i := 0; i < len(rest); i++ {
		if err := p.advance(); err != nil {
			return err
		}
		if !p.curSet {
			return newSyntaxErrorf(ExpectedCharacter, eob, formatByte(rest[i], true))
		}
		if p.cur != rest[i] {
			return newSyntaxErrorf(ExpectedCharacter, formatByte(p.cur, true), formatByte(rest[i], true))
		}
	}
	// Leave the slot on the terminator following the keyword.
	return p.advance()
}

// ReadNumber lexes a JSON number and returns its IEEE-754 double value.
// Leading-zero integer parts are rejected (a lone "0" is the only integer
// part allowed to start with zero). The current-character slot ends on the
// first byte that is not part of the number.
func (p *Parser) ReadNumber() (float64, error) {
	if err := p.skipWhitespace(); err != nil {
		return 0, err
	}
	text, err := p.lexNumber()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, newSyntaxErrorf(MalformedNumber, text, "representable IEEE-754 double")
	}
	return v, nil
}

func (p *Parser) lexNumber() (string, error) {
	var buf []byte

	if !p.curSet {
		return "", newSyntaxError(ReadPastEndOfStream, eob)
	}
	if p.cur == '-' {
		buf = append(buf, '-')
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	if !p.curSet || !isDigit(p.cur) {
		return "", newSyntaxErrorf(MalformedNumber, formatByte(p.cur, p.curSet), "digit")
	}

	// Integer part: a lone "0", or a nonzero digit followed by any digits.
	first := p.cur
	buf = append(buf, first)
	if err := p.advance(); err != nil {
		return "", err
	}
	if first == '0' {
		if p.curSet && isDigit(p.cur) {
			return "", newSyntaxErrorf(MalformedNumber, formatByte(p.cur, true), "'.', 'e', 'E', or a value terminator (leading zeroes are not allowed)")
		}
	} else {
		for p.curSet && isDigit(p.cur) {
			buf = append(buf, p.cur)
			if err := p.advance(); err != nil {
				return "", err
			}
		}
	}

	// Fractional part.
	if p.curSet && p.cur == '.' {
		buf = append(buf, '.')
		if err := p.advance(); err != nil {
			return "", err
		}
		if !p.curSet || !isDigit(p.cur) {
			return "", newSyntaxErrorf(MalformedNumber, formatByte(p.cur, p.curSet), "digit after decimal point")
		}
		for p.curSet && isDigit(p.cur) {
			buf = append(buf, p.cur)
			if err := p.advance(); err != nil {
				return "", err
			}
		}
	}

	// Exponent.
	if p.curSet && (p.cur == 'e' || p.cur == 'E') {
		buf = append(buf, p.cur)
		if err := p.advance(); err != nil {
			return "", err
		}
		if p.curSet && (p.cur == '+' || p.cur == '-') {
			buf = append(buf, p.cur)
			if err := p.advance(); err != nil {
				return "", err
			}
		}
		if !p.curSet || !isDigit(p.cur) {
			return "", newSyntaxErrorf(MalformedNumber, formatByte(p.cur, p.curSet), "exponent digit")
		}
		for p.curSet && isDigit(p.cur) {
			buf = append(buf, p.cur)
			if err := p.advance(); err != nil {
				return "", err
			}
		}
	}
	return string(buf), nil
}
