// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonstream

import "fmt"

// Kind classifies the errors reported by this package into a closed set.
type Kind byte

// Constants defining the valid Kind values.
const (
	_ Kind = iota // zero value is not a valid kind

	// ReadPastEndOfStream reports an attempt to pull another byte from a
	// source that has already reported a clean end of stream.
	ReadPastEndOfStream

	// UnexpectedCharacter reports a byte that cannot begin any value.
	UnexpectedCharacter

	// ExpectedCharacter reports a byte that does not match the single byte
	// required at this position.
	ExpectedCharacter

	// ExpectedOneOf reports a byte that does not match any of a set of
	// acceptable bytes.
	ExpectedOneOf

	// MalformedNumber reports a number literal that violates the JSON
	// grammar (leading zeroes, a bare decimal point, a sign with no
	// exponent digits, and so on).
	MalformedNumber

	// InvalidEscape reports a backslash followed by a byte that is not one
	// of the recognized single-byte escapes or "u".
	InvalidEscape

	// InvalidUnicodeEscape reports a "\u" escape not followed by four
	// hexadecimal digits.
	InvalidUnicodeEscape

	// IncompleteEscape reports end of stream in the middle of an escape
	// sequence.
	IncompleteEscape

	// DoubleConsume reports a second typed read through an unparsed value
	// handle that has already been consumed.
	DoubleConsume

	// StaleHandle reports a read through an unparsed value handle after the
	// owning cursor has advanced past it.
	StaleHandle

	// AlreadyIterated reports an attempt to eagerly materialize a container
	// cursor after iterating it, or to iterate it after materializing it.
	AlreadyIterated

	// ValueAfterEnd reports trailing, non-whitespace input following a
	// completed top-level value.
	ValueAfterEnd

	// DirtyReset reports a reset attempted while a partial marker match is
	// pending. Package segment reports this condition with its own
	// DirtyResetError type; nothing in this package raises it.
	DirtyReset
)

var kindStr = [...]string{
	ReadPastEndOfStream:  "read past end of stream",
	UnexpectedCharacter:  "unexpected character",
	ExpectedCharacter:    "expected character",
	ExpectedOneOf:        "expected one of several characters",
	MalformedNumber:      "malformed number",
	InvalidEscape:        "invalid escape",
	InvalidUnicodeEscape: "invalid unicode escape",
	IncompleteEscape:     "incomplete escape",
	DoubleConsume:        "double consume",
	StaleHandle:          "stale handle",
	AlreadyIterated:      "already iterated",
	ValueAfterEnd:        "value after end",
	DirtyReset:           "dirty reset",
}

func (k Kind) String() string {
	v := int(k)
	if v <= 0 || v >= len(kindStr) {
		return "invalid error kind"
	}
	return kindStr[v]
}

// eob ("end of bytes") is the human-readable stand-in for the absent
// current-character slot, used in error messages in place of a byte.
const eob = "end of stream"

// formatByte renders b (or eob, if ok is false) the way error messages in
// this package quote the offending input byte.
func formatByte(b byte, ok bool) string {
	if !ok {
		return eob
	}
	return fmt.Sprintf("%q", b)
}

// SyntaxError is the concrete type of errors reported for malformed or
// truncated JSON input. It is the streaming-parser analogue of a lexical or
// grammatical fault: every SyntaxError is fatal to the parse in progress.
type SyntaxError struct {
	Kind Kind   // the classified failure
	Got  string // the offending byte, already quoted, or "end of stream"
	Want string // the accepted alternative(s), if any; empty if not applicable

	err error // wrapped cause, if any
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("%s: got %s", e.Kind, e.Got)
	}
	return fmt.Sprintf("%s: got %s, want %s", e.Kind, e.Got, e.Want)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

func newSyntaxError(kind Kind, got string) *SyntaxError {
	return &SyntaxError{Kind: kind, Got: got}
}

func newSyntaxErrorf(kind Kind, got, want string) *SyntaxError {
	return &SyntaxError{Kind: kind, Got: got, Want: want}
}

// UsageError is the concrete type of errors reported when a caller violates
// the one-shot protocol of an unparsed value handle or a container cursor.
// These are programmer errors: they indicate a bug in the calling code, not
// a defect in the input stream, and are always raised synchronously at the
// point of misuse.
type UsageError struct {
	Kind   Kind
	Detail string
}

// Error satisfies the error interface.
func (e *UsageError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func newUsageError(kind Kind, detail string) *UsageError {
	return &UsageError{Kind: kind, Detail: detail}
}
