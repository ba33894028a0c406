// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonstream

// An UnparsedValue is a one-shot capability handed to a consumer while
// iterating a container cursor, authorizing exactly one typed read of the
// corresponding child value. It is valid until either a typed reader is
// called on it (it transitions to consumed) or the owning cursor advances
// past it without having been read (it transitions to invalid, and the
// parser automatically skips the value on the cursor's behalf).
type UnparsedValue struct {
	p        *Parser
	consumed bool
	valid    bool
}

func (h *UnparsedValue) guard() error {
	if h.consumed {
		return newUsageError(DoubleConsume, "a typed reader was already called on this value")
	}
	if !h.valid {
		return newUsageError(StaleHandle, "the owning cursor has already advanced past this value")
	}
	return nil
}

func (h *UnparsedValue) use() error {
	if err := h.guard(); err != nil {
		return err
	}
	h.consumed = true
	return nil
}

// PeekType reports the type of the value without consuming it or spending
// the handle's one-shot read.
func (h *UnparsedValue) PeekType() (ValueType, error) {
	if err := h.guard(); err != nil {
		return Invalid, err
	}
	return h.p.PeekType()
}

// ReadValue reads and materializes the complete value.
func (h *UnparsedValue) ReadValue() (any, error) {
	if err := h.use(); err != nil {
		return nil, err
	}
	return h.p.ReadValue()
}

// ReadString reads the value as a string.
func (h *UnparsedValue) ReadString() (string, error) {
	if err := h.use(); err != nil {
		return "", err
	}
	return h.p.ReadString()
}

// ReadStringChunks begins a chunked read of the value as a string.
func (h *UnparsedValue) ReadStringChunks() (*StringChunks, error) {
	if err := h.use(); err != nil {
		return nil, err
	}
	return h.p.ReadStringChunks(), nil
}

// ReadNumber reads the value as a number.
func (h *UnparsedValue) ReadNumber() (float64, error) {
	if err := h.use(); err != nil {
		return 0, err
	}
	return h.p.ReadNumber()
}

// ReadBool reads the value as a boolean.
func (h *UnparsedValue) ReadBool() (bool, error) {
	if err := h.use(); err != nil {
		return false, err
	}
	return h.p.ReadBool()
}

// ReadNull reads the value as a null literal.
func (h *UnparsedValue) ReadNull() error {
	if err := h.use(); err != nil {
		return err
	}
	return h.p.ReadNull()
}

// EnterObject reads the value as an object, returning a cursor over its
// members.
func (h *UnparsedValue) EnterObject() (*ObjectCursor, error) {
	if err := h.use(); err != nil {
		return nil, err
	}
	return h.p.EnterObject()
}

// EnterArray reads the value as an array, returning a cursor over its
// elements.
func (h *UnparsedValue) EnterArray() (*ArrayCursor, error) {
	if err := h.use(); err != nil {
		return nil, err
	}
	return h.p.EnterArray()
}

// SkipValue discards the value without materializing it.
func (h *UnparsedValue) SkipValue() error {
	if err := h.use(); err != nil {
		return err
	}
	return h.p.SkipValue()
}

// An ObjectCursor is a lazy, one-shot sequence of the (key, value) members
// of a JSON object, produced by Parser.EnterObject.
type ObjectCursor struct {
	p *Parser

	iterated bool
	eager    bool
	done     bool
	pending  *UnparsedValue
	cached   map[string]any
}

// Next advances to the next member and returns it. ok is false once the
// object is exhausted. Next reconciles the previously-yielded handle before
// advancing: if the consumer did not read it, its value is skipped.
//
// Next is usable only before Value has been called; calling it afterward
// reports AlreadyIterated.
func (c *ObjectCursor) Next() (key string, value *UnparsedValue, ok bool, err error) {
	if c.eager {
		return "", nil, false, newUsageError(AlreadyIterated, "Next called after Value")
	}
	c.iterated = true
	return c.next()
}

// Value eagerly materializes every remaining member into a map. It is
// usable only before iteration (Next) has begun, and caches its result: a
// second call returns the same map without re-reading the input.
func (c *ObjectCursor) Value() (map[string]any, error) {
	if c.iterated {
		return nil, newUsageError(AlreadyIterated, "Value called after Next")
	}
	if c.eager {
		return c.cached, nil
	}
	c.eager = true
	out := map[string]any{}
	for {
		key, h, ok, err := c.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := h.ReadValue()
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	c.cached = out
	return out, nil
}

func (c *ObjectCursor) next() (string, *UnparsedValue, bool, error) {
	p := c.p
	if c.done {
		return "", nil, false, nil
	}

	first := c.pending == nil
	if !first {
		if err := c.finalizePending(); err != nil {
			return "", nil, false, err
		}
		if err := p.skipWhitespace(); err != nil {
			return "", nil, false, err
		}
		if !p.curSet {
			return "", nil, false, newSyntaxError(ReadPastEndOfStream, eob)
		}
		switch p.cur {
		case ',':
			if err := p.advance(); err != nil {
				return "", nil, false, err
			}
		case '}':
			return c.close()
		default:
			return "", nil, false, newSyntaxErrorf(ExpectedOneOf, formatByte(p.cur, true), `',' or '}'`)
		}
	}

	if err := p.skipWhitespace(); err != nil {
		return "", nil, false, err
	}
	if !p.curSet {
		return "", nil, false, newSyntaxError(ReadPastEndOfStream, eob)
	}
	if first && p.cur == '}' {
		return c.close()
	}
	if p.cur != '"' {
		want := `'"'`
		if first {
			want = `'"' or '}'`
		}
		return "", nil, false, newSyntaxErrorf(UnexpectedCharacter, formatByte(p.cur, true), want)
	}

	key, err := p.ReadString()
	if err != nil {
		return "", nil, false, err
	}
	if err := p.skipWhitespace(); err != nil {
		return "", nil, false, err
	}
	if !p.curSet || p.cur != ':' {
		return "", nil, false, newSyntaxErrorf(ExpectedCharacter, formatByte(p.cur, p.curSet), `':'`)
	}
	if err := p.advance(); err != nil {
		return "", nil, false, err
	}
	h := &UnparsedValue{p: p, valid: true}
	c.pending = h
	return key, h, true, nil
}

func (c *ObjectCursor) close() (string, *UnparsedValue, bool, error) {
	c.p.depth--
	if c.p.depth == 0 {
		c.p.done = true // the top-level value is complete
	}
	if err := c.p.advance(); err != nil {
		return "", nil, false, err
	}
	c.done = true
	return "", nil, false, nil
}

func (c *ObjectCursor) finalizePending() error {
	h := c.pending
	c.pending = nil
	wasConsumed := h.consumed
	h.valid = false
	if wasConsumed {
		return nil
	}
	return c.p.SkipValue()
}

// An ArrayCursor is a lazy, one-shot sequence of the elements of a JSON
// array, produced by Parser.EnterArray.
type ArrayCursor struct {
	p *Parser

	iterated bool
	eager    bool
	done     bool
	pending  *UnparsedValue
	idx      int
	cached   []any
}

// Next advances to the next element and returns it, together with its
// index. ok is false once the array is exhausted. Next reconciles the
// previously-yielded handle before advancing: if the consumer did not read
// it, its value is skipped.
//
// Next is usable only before Value has been called; calling it afterward
// reports AlreadyIterated.
func (c *ArrayCursor) Next() (index int, value *UnparsedValue, ok bool, err error) {
	if c.eager {
		return 0, nil, false, newUsageError(AlreadyIterated, "Next called after Value")
	}
	c.iterated = true
	return c.next()
}

// Value eagerly materializes every remaining element into a slice. It is
// usable only before iteration (Next) has begun, and caches its result.
func (c *ArrayCursor) Value() ([]any, error) {
	if c.iterated {
		return nil, newUsageError(AlreadyIterated, "Value called after Next")
	}
	if c.eager {
		return c.cached, nil
	}
	c.eager = true
	var out []any
	for {
		_, h, ok, err := c.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := h.ReadValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	c.cached = out
	return out, nil
}

func (c *ArrayCursor) next() (int, *UnparsedValue, bool, error) {
	p := c.p
	if c.done {
		return 0, nil, false, nil
	}

	first := c.pending == nil
	if !first {
		if err := c.finalizePending(); err != nil {
			return 0, nil, false, err
		}
		if err := p.skipWhitespace(); err != nil {
			return 0, nil, false, err
		}
		if !p.curSet {
			return 0, nil, false, newSyntaxError(ReadPastEndOfStream, eob)
		}
		switch p.cur {
		case ',':
			if err := p.advance(); err != nil {
				return 0, nil, false, err
			}
		case ']':
			return c.close()
		default:
			return 0, nil, false, newSyntaxErrorf(ExpectedOneOf, formatByte(p.cur, true), `',' or ']'`)
		}
	}

	if err := p.skipWhitespace(); err != nil {
		return 0, nil, false, err
	}
	if !p.curSet {
		return 0, nil, false, newSyntaxError(ReadPastEndOfStream, eob)
	}
	if first && p.cur == ']' {
		return c.close()
	}

	h := &UnparsedValue{p: p, valid: true}
	c.pending = h
	idx := c.idx
	c.idx++
	return idx, h, true, nil
}

func (c *ArrayCursor) close() (int, *UnparsedValue, bool, error) {
	c.p.depth--
	if c.p.depth == 0 {
		c.p.done = true // the top-level value is complete
	}
	if err := c.p.advance(); err != nil {
		return 0, nil, false, err
	}
	c.done = true
	return 0, nil, false, nil
}

func (c *ArrayCursor) finalizePending() error {
	h := c.pending
	c.pending = nil
	wasConsumed := h.consumed
	h.valid = false
	if wasConsumed {
		return nil
	}
	return c.p.SkipValue()
}
