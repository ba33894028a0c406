// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"

	jsonstream "github.com/blixt/ainotes"
)

// Parse reads a single complete JSON value from src and returns its
// materialized tree representation. It is a convenience wrapper over
// jsonstream.Parser for callers who want a traversable tree rather than
// the plain Go values ReadValue produces. Parse reads only the first value
// and does not look at any input that follows it.
func Parse(src jsonstream.ChunkSource) (Value, error) {
	return ParseValue(jsonstream.NewParser(src))
}

// valueSource is the subset of jsonstream.Parser and jsonstream.UnparsedValue
// that ParseValue needs to materialize a tree; both types satisfy it.
type valueSource interface {
	PeekType() (jsonstream.ValueType, error)
	ReadString() (string, error)
	ReadNumber() (float64, error)
	ReadBool() (bool, error)
	ReadNull() error
	EnterObject() (*jsonstream.ObjectCursor, error)
	EnterArray() (*jsonstream.ArrayCursor, error)
}

// ParseValue reads one complete value from vs, building an Object or Array
// node for each container it recurses into rather than a plain map or
// slice. vs is typically a *jsonstream.Parser (to read a top-level value)
// or a *jsonstream.UnparsedValue (to read one child while walking a
// cursor).
func ParseValue(vs valueSource) (Value, error) {
	t, err := vs.PeekType()
	if err != nil {
		return nil, err
	}
	switch t {
	case jsonstream.TypeString:
		s, err := vs.ReadString()
		if err != nil {
			return nil, err
		}
		return String(s), nil

	case jsonstream.TypeNumber:
		n, err := vs.ReadNumber()
		if err != nil {
			return nil, err
		}
		return Number(n), nil

	case jsonstream.TypeBool:
		b, err := vs.ReadBool()
		if err != nil {
			return nil, err
		}
		return Bool(b), nil

	case jsonstream.TypeNull:
		if err := vs.ReadNull(); err != nil {
			return nil, err
		}
		return Null{}, nil

	case jsonstream.TypeObject:
		oc, err := vs.EnterObject()
		if err != nil {
			return nil, err
		}
		obj := new(Object)
		for {
			key, h, ok, err := oc.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			v, err := ParseValue(h)
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, &Member{Key: key, Value: v})
		}
		return obj, nil

	case jsonstream.TypeArray:
		ac, err := vs.EnterArray()
		if err != nil {
			return nil, err
		}
		arr := new(Array)
		for {
			_, h, ok, err := ac.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			v, err := ParseValue(h)
			if err != nil {
				return nil, err
			}
			arr.Values = append(arr.Values, v)
		}
		return arr, nil

	default:
		return nil, fmt.Errorf("unknown value type %v", t)
	}
}
