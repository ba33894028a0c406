// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonstream

import "io"

// A ChunkSource is an asynchronous, pull-style producer of text fragments,
// such as the token-by-token output of a language model. Next blocks (from
// the caller's perspective) until another fragment is available, or reports
// io.EOF once the stream is exhausted. Fragments may be of any length,
// including empty, and may split a token, escape sequence, keyword, number,
// or marker at an arbitrary byte boundary.
//
// A ChunkSource is consumed by at most one Parser at a time and is not safe
// for concurrent use.
type ChunkSource interface {
	Next() (string, error)
}

// SliceSource returns a ChunkSource that yields the given fragments in
// order, then reports io.EOF. It is primarily useful in tests, to exercise
// a parser against an arbitrary partition of a complete document.
func SliceSource(chunks ...string) ChunkSource { return &sliceSource{chunks: chunks} }

type sliceSource struct {
	chunks []string
	i      int
}

func (s *sliceSource) Next() (string, error) {
	if s.i >= len(s.chunks) {
		return "", io.EOF
	}
	c := s.chunks[s.i]
	s.i++
	return c, nil
}

// ReaderSource returns a ChunkSource that reads fragments of at most
// bufSize bytes from r. A bufSize of zero or less selects a reasonable
// default. This is a convenience for feeding an ordinary io.Reader (a file,
// a network connection) through the streaming parser.
func ReaderSource(r io.Reader, bufSize int) ChunkSource {
	if bufSize <= 0 {
		bufSize = 4096
	}
	return &readerSource{r: r, buf: make([]byte, bufSize)}
}

type readerSource struct {
	r   io.Reader
	buf []byte
}

func (s *readerSource) Next() (string, error) {
	n, err := s.r.Read(s.buf)
	if n > 0 {
		// Returning the chunk takes priority over a simultaneous error, so
		// that the final fragment is never dropped (mirrors io.Reader's own
		// "may return n > 0 and a non-nil err" contract).
		return string(s.buf[:n]), nil
	}
	if err == nil {
		return "", nil
	}
	return "", err
}

// ChannelSource returns a ChunkSource backed by ch. The source reports
// io.EOF once ch is closed. This is the natural shape for a producer
// running on its own goroutine, such as a model client streaming tokens.
func ChannelSource(ch <-chan string) ChunkSource { return channelSource(ch) }

type channelSource <-chan string

func (s channelSource) Next() (string, error) {
	c, ok := <-s
	if !ok {
		return "", io.EOF
	}
	return c, nil
}

// current-character slot plus pending-chunk buffer, shared by Parser and
// every cursor/handle that borrows it. advance, advanceIfBuffered, and
// skipWhitespace are the entirety of component A.
type byteSource struct {
	src ChunkSource

	buf string
	idx int

	cur    byte
	curSet bool // curSet is false exactly when the current-character slot is absent
}

// advance pulls the next byte of input into the current-character slot.
// If the pending buffer is empty, it draws the next chunk from the
// underlying source. Calling advance when the source has already reported
// a clean end of stream is a fault: it fails with ReadPastEndOfStream.
func (b *byteSource) advance() error {
	if b.idx >= len(b.buf) {
		for {
			chunk, err := b.src.Next()
			if err == io.EOF {
				if !b.curSet {
					return newSyntaxError(ReadPastEndOfStream, eob)
				}
				b.curSet = false
				return nil
			} else if err != nil {
				return err
			}
			if chunk != "" {
				b.buf = chunk
				b.idx = 0
				break
			}
			// An empty, non-terminal fragment carries no byte; draw again.
		}
	}
	b.cur = b.buf[b.idx]
	b.curSet = true
	b.idx++
	return nil
}

// advanceIfBuffered behaves like advance, but never awaits the source: if
// the pending buffer is empty it returns false immediately instead of
// drawing a new chunk. Used by the string reader to flush a partial chunk
// to the consumer as soon as locally-buffered data runs out.
func (b *byteSource) advanceIfBuffered() bool {
	if b.idx >= len(b.buf) {
		return false
	}
	b.cur = b.buf[b.idx]
	b.curSet = true
	b.idx++
	return true
}

// skipWhitespace advances past any run of JSON insignificant whitespace
// (space, tab, CR, LF), pulling a first byte if the current-character slot
// is absent on entry.
func (b *byteSource) skipWhitespace() error {
	if !b.curSet {
		if err := b.advance(); err != nil {
			return err
		}
	}
	for b.curSet && isSpace(b.cur) {
		if err := b.advance(); err != nil {
			return err
		}
	}
	return nil
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
