// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"testing"

	"github.com/blixt/ainotes/ast"
	jsonstream "github.com/blixt/ainotes"
)

const testJSON = `{
  "list": [
    {"x": 1},
    {"x": 2}
  ],
  "y": {"hello": "there"},
  "o": ["hi", "yourself"],
  "xyz": {"p": true, "d": true, "q": false}
}`

func TestParse(t *testing.T) {
	v, err := ast.Parse(jsonstream.SliceSource(testJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	obj, ok := v.(*ast.Object)
	if !ok {
		t.Fatalf("Parse: got %T, want *ast.Object", v)
	}

	m := obj.Find("y")
	if m == nil {
		t.Fatal(`Find("y"): not found`)
	}
	inner, ok := m.Value.(*ast.Object)
	if !ok {
		t.Fatalf(`"y" value: got %T, want *ast.Object`, m.Value)
	}
	hello := inner.Find("hello")
	if hello == nil || hello.Value != ast.String("there") {
		t.Errorf(`"y.hello": got %v, want "there"`, hello)
	}

	list := obj.Find("list")
	if list == nil {
		t.Fatal(`Find("list"): not found`)
	}
	arr, ok := list.Value.(*ast.Array)
	if !ok || len(arr.Values) != 2 {
		t.Fatalf(`"list" value: got %T, want *ast.Array of length 2`, list.Value)
	}
	first, ok := arr.Values[0].(*ast.Object)
	if !ok || first.Find("x").Value != ast.Number(1) {
		t.Errorf(`"list[0].x": got %v, want 1`, first)
	}
}

func TestValueGoString(t *testing.T) {
	v, err := ast.Parse(jsonstream.SliceSource(`{"a": 1, "b": [true, null, "x"]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	const want = `{"a":1,"b":[true,null,"x"]}`
	if got := v.GoString(); got != want {
		t.Errorf("GoString() = %q, want %q", got, want)
	}
}

func TestParse_rejectsMalformed(t *testing.T) {
	if _, err := ast.Parse(jsonstream.SliceSource(`{123}`)); err == nil {
		t.Error("Parse(non-string key): expected an error")
	}
}
