// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonstream

import (
	"io"
	"unicode/utf16"
	"unicode/utf8"
)

// ReadString reads a complete JSON string value and returns its decoded
// contents. For long streamed values, prefer ReadStringChunks, which
// delivers decoded text incrementally as it arrives.
func (p *Parser) ReadString() (string, error) {
	sc := p.ReadStringChunks()
	var out []byte
	for {
		chunk, err := sc.Next()
		if err == io.EOF {
			return string(out), nil
		} else if err != nil {
			return "", err
		}
		out = append(out, chunk...)
	}
}

// StringChunks is a lazy, one-shot, pull-style sequence of decoded
// fragments of a single JSON string value. The concatenation of every
// fragment Next returns equals the string's fully decoded value. Next
// flushes whatever has been decoded so far as soon as the parser's locally
// buffered chunk is exhausted, rather than blocking for more input while
// holding data the consumer could already use — this is the hot path for
// long streamed text values. An escape sequence split across chunks is
// decoded as a unit: text decoded before it in the same call is held until
// the rest of the escape arrives.
type StringChunks struct {
	p *Parser

	opened      bool
	closed      bool
	needAdvance bool

	pendingHigh    uint16
	havePendingHigh bool
}

// ReadStringChunks begins reading a JSON string value in chunked mode.
func (p *Parser) ReadStringChunks() *StringChunks { return &StringChunks{p: p} }

// Next returns the next decoded fragment, or io.EOF once the string is
// fully consumed.
func (s *StringChunks) Next() (string, error) {
	if s.closed {
		return "", io.EOF
	}
	p := s.p

	if !s.opened {
		if err := p.skipWhitespace(); err != nil {
			return "", err
		}
		if !p.curSet || p.cur != '"' {
			return "", newSyntaxErrorf(UnexpectedCharacter, formatByte(p.cur, p.curSet), `'"'`)
		}
		if err := p.advance(); err != nil {
			return "", err
		}
		s.opened = true
	}

	var out []byte
	for {
		if s.needAdvance {
			if err := p.advance(); err != nil {
				return string(out), err
			}
			s.needAdvance = false
		}
		if !p.curSet {
			return string(out), newSyntaxErrorf(ExpectedCharacter, eob, `'"'`)
		}

		done, err := s.step(&out)
		if err != nil {
			return string(out), err
		}
		if done {
			s.closed = true
			if len(out) == 0 {
				return "", io.EOF
			}
			return string(out), nil
		}

		if p.advanceIfBuffered() {
			continue
		}
		s.needAdvance = true
		if len(out) > 0 {
			return string(out), nil
		}
		// Nothing decoded yet this call; there is nothing worth flushing, so
		// loop around and block for the next chunk instead of returning one.
	}
}

// step decodes the single logical unit (a literal byte, an escape, or the
// closing quote) starting at the parser's current byte, appending any
// decoded output to out. It leaves the current-character slot on the last
// byte of that unit, so the caller advances past it; only the closing quote
// is consumed here. It reports done once the closing quote has been
// consumed.
func (s *StringChunks) step(out *[]byte) (bool, error) {
	p := s.p
	switch c := p.cur; c {
	case '"':
		s.flushPendingHigh(out)
		return true, p.advance() // leave the slot on the terminator

	case '\\':
		if err := p.advance(); err != nil {
			return false, err
		}
		if !p.curSet {
			return false, newSyntaxError(IncompleteEscape, eob)
		}
		switch e := p.cur; e {
		case '"', '\\', '/':
			s.flushPendingHigh(out)
			*out = append(*out, e)
			return false, nil
		case 'b':
			s.flushPendingHigh(out)
			*out = append(*out, '\b')
			return false, nil
		case 'f':
			s.flushPendingHigh(out)
			*out = append(*out, '\f')
			return false, nil
		case 'n':
			s.flushPendingHigh(out)
			*out = append(*out, '\n')
			return false, nil
		case 'r':
			s.flushPendingHigh(out)
			*out = append(*out, '\r')
			return false, nil
		case 't':
			s.flushPendingHigh(out)
			*out = append(*out, '\t')
			return false, nil
		case 'u':
			v, err := p.readHex4()
			if err != nil {
				return false, err
			}
			s.handleUnicodeUnit(out, v)
			return false, nil
		default:
			return false, newSyntaxError(InvalidEscape, formatByte(e, true))
		}

	default:
		s.flushPendingHigh(out)
		*out = append(*out, c)
		return false, nil
	}
}

// readHex4 reads exactly four hexadecimal digits following a "\u" escape
// and returns the 16-bit code unit they encode. The current-character slot
// ends on the fourth digit.
func (p *Parser) readHex4() (uint16, error) {
	var v uint16
	for i := 0; i < 4; i++ {
		if err := p.advance(); err != nil {
			return 0, err
		}
		if !p.curSet {
			return 0, newSyntaxError(IncompleteEscape, eob)
		}
		d, ok := hexDigit(p.cur)
		if !ok {
			return 0, newSyntaxError(InvalidUnicodeEscape, formatByte(p.cur, true))
		}
		v = v<<4 | uint16(d)
	}
	return v, nil
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// handleUnicodeUnit processes one decoded "\uXXXX" code unit, joining a
// high+low surrogate pair that arrives as two consecutive escapes into a
// single emitted code point (see spec §9's note on UTF-16 surrogate pairs).
// An unpaired surrogate is emitted as the Unicode replacement character.
func (s *StringChunks) handleUnicodeUnit(out *[]byte, v uint16) {
	switch {
	case v >= 0xD800 && v <= 0xDBFF: // high surrogate
		s.flushPendingHigh(out)
		s.pendingHigh = v
		s.havePendingHigh = true

	case v >= 0xDC00 && v <= 0xDFFF: // low surrogate
		if s.havePendingHigh {
			r := utf16.DecodeRune(rune(s.pendingHigh), rune(v))
			s.havePendingHigh = false
			appendRune(out, r)
			return
		}
		appendRune(out, utf8.RuneError)

	default:
		s.flushPendingHigh(out)
		appendRune(out, rune(v))
	}
}

func (s *StringChunks) flushPendingHigh(out *[]byte) {
	if s.havePendingHigh {
		appendRune(out, rune(s.pendingHigh))
		s.havePendingHigh = false
	}
}

func appendRune(out *[]byte, r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	*out = append(*out, buf[:n]...)
}
