// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonstream implements a streaming JSON pull-parser over an
// asynchronous source of text fragments, such as the token-by-token output
// of a language model.
//
// # Sources
//
// A ChunkSource is a pull-style producer of text fragments. Construct a
// Parser over one and call its reading methods; the parser awaits the
// source only when it has no buffered bytes left to consume.
//
//	p := jsonstream.NewParser(jsonstream.ChannelSource(tokens))
//	v, err := p.ReadTopLevelValue()
//
// # Materialized and lazy reads
//
// ReadValue (and the top-level ReadTopLevelValue) eagerly materializes a
// complete value: scalars map to string, float64, bool, or nil; objects and
// arrays map to map[string]any and []any.
//
// EnterObject and EnterArray instead return a cursor: a lazy, one-shot
// sequence of (key, value) or (index, value) pairs. Each pair carries an
// UnparsedValue handle authorizing exactly one typed read of that child.
// Advancing the cursor past a handle the caller never read automatically
// skips the value, so partial consumption never desynchronizes the parser:
//
//	oc, err := p.EnterObject()
//	for {
//	    key, v, ok, err := oc.Next()
//	    if err != nil { ... }
//	    if !ok { break }
//	    if key == "content" {
//	        s, err := v.ReadString()
//	        ...
//	    }
//	    // any other key's value is skipped automatically on the next call.
//	}
//
// Call Value on a cursor instead of Next to eagerly materialize every
// remaining member or element; the two are mutually exclusive. A second
// call to Value returns its cached result.
//
// # Errors
//
// Malformed or truncated input produces a *SyntaxError carrying one of a
// closed set of Kind values. Misuse of the handle or cursor protocol
// (reading a handle twice, reading a stale handle, iterating a cursor
// after calling Value) produces a *UsageError instead, reported
// synchronously at the point of misuse.
package jsonstream
