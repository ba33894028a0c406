// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package segment implements a tagged-segment stream splitter: a small
// state machine that reads a growing text buffer and divides it into
// alternating "prose" and "reasoning" spans, delimited by literal opening
// and closing marker sequences that may themselves arrive split across
// arbitrary chunk boundaries.
package segment

import (
	"fmt"

	"github.com/google/uuid"
)

// Mode identifies which of the two alternating spans the splitter is
// currently inside.
type Mode byte

// Constants defining the valid Mode values.
const (
	Prose Mode = iota
	Reasoning
)

func (m Mode) String() string {
	if m == Reasoning {
		return "reasoning"
	}
	return "prose"
}

const (
	opener = "<plan>"
	closer = "</plan>"
)

// An Action is one dispatched delta: a contiguous run of text belonging to
// a single mode and generation.
type Action struct {
	Mode       Mode
	Generation string
	Delta      string
}

// A Sink receives the actions dispatched by a Splitter, in order.
type Sink interface {
	Dispatch(Action)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Action)

// Dispatch satisfies Sink.
func (f SinkFunc) Dispatch(a Action) { f(a) }

// DirtyResetError reports a Reset call attempted while a partial marker
// match is pending.
type DirtyResetError struct {
	Lookahead string
}

// Error satisfies the error interface.
func (e *DirtyResetError) Error() string {
	return fmt.Sprintf("dirty reset: pending lookahead %q", e.Lookahead)
}

// A Splitter scans incoming text fragments and dispatches APPEND_PROSE /
// APPEND_REASONING actions to a Sink, toggling mode on each literal marker
// it recognizes. It tolerates markers split across arbitrary append
// boundaries and rejects lookalike substrings that diverge from the target
// marker.
//
// A Splitter is not safe for concurrent use; it is driven by a single
// owner calling Append and Reset in sequence.
type Splitter struct {
	sink Sink

	mode       Mode
	generation string

	accum     []byte // content not yet dispatched
	lookahead []byte // prefix of the target marker matched so far
}

// New constructs a Splitter that dispatches to sink, starting in Prose
// mode with a freshly minted generation id.
func New(sink Sink) *Splitter {
	return &Splitter{sink: sink, mode: Prose, generation: newGeneration()}
}

func newGeneration() string { return uuid.NewString() }

// target returns the marker the splitter is currently watching for: the
// opener while in prose mode, the closer while in reasoning mode.
func (s *Splitter) target() string {
	if s.mode == Reasoning {
		return closer
	}
	return opener
}

// Append feeds the next fragment of text into the splitter. It dispatches
// zero or more Actions to the sink before returning: any non-marker
// content is appended to the running accumulator for the current mode; a
// complete marker triggers a dispatch of the pending accumulator (if
// non-empty) followed by a mode transition with a fresh generation id; any
// trailing partial match is retained as the lookahead for the next call.
func (s *Splitter) Append(fragment string) {
	data := append(s.lookahead, fragment...)
	s.lookahead = nil

	i := 0
	for i < len(data) {
		target := s.target()
		matched := 0
		for i+matched < len(data) && matched < len(target) && data[i+matched] == target[matched] {
			matched++
		}
		if matched == len(target) {
			s.flush()
			s.toggle()
			i += matched
			continue
		}
		if i+matched == len(data) {
			// The match ran off the end of the available data while still
			// extending the marker: a genuine prefix. Retain it as
			// lookahead and stop; there is nothing more to scan until the
			// next fragment arrives.
			s.lookahead = append(s.lookahead, data[i:i+matched]...)
			break
		}
		// A mismatch: the matched prefix (if any) was content, not a
		// marker. Rewind it into the accumulator and restart the match at
		// the byte that broke it, which may itself begin a new match.
		if matched > 0 {
			s.accum = append(s.accum, data[i:i+matched]...)
			i += matched
		} else {
			s.accum = append(s.accum, data[i])
			i++
		}
	}
	s.flush()
}

func (s *Splitter) flush() {
	if len(s.accum) == 0 {
		return
	}
	s.sink.Dispatch(Action{Mode: s.mode, Generation: s.generation, Delta: string(s.accum)})
	s.accum = s.accum[:0]
}

func (s *Splitter) toggle() {
	if s.mode == Prose {
		s.mode = Reasoning
	} else {
		s.mode = Prose
	}
	s.generation = newGeneration()
}

// Reset prepares the splitter for an independent stream, returning to
// Prose mode with a fresh generation id. Resetting while a partial marker
// match is pending is a programmer error: the caller must have already
// drained that ambiguity by calling Append with enough trailing data to
// resolve it, or accepted the dangling prefix as lost. A non-empty content
// accumulator with an empty lookahead is legal: the remaining content has
// no pending marker, so it is dispatched as a final delta of the current
// mode before the reset takes effect.
func (s *Splitter) Reset() error {
	if len(s.lookahead) > 0 {
		return &DirtyResetError{Lookahead: string(s.lookahead)}
	}
	s.flush()
	s.mode = Prose
	s.generation = newGeneration()
	return nil
}
