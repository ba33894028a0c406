// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a materialized tree representation of a JSON value,
// and a parser that builds one from a jsonstream source.
package ast

import (
	"strconv"

	"go4.org/mem"

	"github.com/blixt/ainotes/internal/escape"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// GoString renders the value back to JSON text.
	GoString() string
}

// An Object is a collection of key-value members, in source order.
type Object struct {
	Members []*Member
}

// GoString satisfies the Value interface.
func (o *Object) GoString() string {
	buf := []byte{'{'}
	for i, m := range o.Members {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, '"')
		buf = append(buf, escape.Quote(mem.S(m.Key))...)
		buf = append(buf, '"', ':')
		buf = append(buf, m.Value.GoString()...)
	}
	return string(append(buf, '}'))
}

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// GoString satisfies the Value interface.
func (m *Member) GoString() string {
	return `"` + string(escape.Quote(mem.S(m.Key))) + `":` + m.Value.GoString()
}

// An Array is a sequence of values, in source order.
type Array struct {
	Values []Value
}

// GoString satisfies the Value interface.
func (a *Array) GoString() string {
	buf := []byte{'['}
	for i, v := range a.Values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, v.GoString()...)
	}
	return string(append(buf, ']'))
}

// A String is a decoded string value.
type String string

// GoString satisfies the Value interface.
func (s String) GoString() string {
	return `"` + string(escape.Quote(mem.S(string(s)))) + `"`
}

// A Number is a floating-point value.
type Number float64

// GoString satisfies the Value interface.
func (n Number) GoString() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

// A Bool is a Boolean constant, true or false.
type Bool bool

// GoString satisfies the Value interface.
func (b Bool) GoString() string { return strconv.FormatBool(bool(b)) }

// Null represents the null constant.
type Null struct{}

// GoString satisfies the Value interface.
func (Null) GoString() string { return "null" }
