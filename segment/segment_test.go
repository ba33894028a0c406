// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package segment_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/blixt/ainotes/segment"
)

type recorder struct {
	actions []segment.Action
}

func (r *recorder) Dispatch(a segment.Action) { r.actions = append(r.actions, a) }

func (r *recorder) deltas() []segment.Action { return r.actions }

// Scenario 7.
func TestSplitter_markerSplitAcrossChunks(t *testing.T) {
	var r recorder
	s := segment.New(&r)
	s.Append("Initial text")
	s.Append("<pl")
	s.Append("an>This is a thought</plan>More text")

	if len(r.actions) != 3 {
		t.Fatalf("got %d actions, want 3: %+v", len(r.actions), r.actions)
	}
	wantModes := []segment.Mode{segment.Prose, segment.Reasoning, segment.Prose}
	wantDeltas := []string{"Initial text", "This is a thought", "More text"}
	for i, a := range r.actions {
		if a.Mode != wantModes[i] {
			t.Errorf("action %d: mode = %v, want %v", i, a.Mode, wantModes[i])
		}
		if a.Delta != wantDeltas[i] {
			t.Errorf("action %d: delta = %q, want %q", i, a.Delta, wantDeltas[i])
		}
	}
	if r.actions[0].Generation == r.actions[1].Generation {
		t.Error("prose and reasoning segments share a generation id")
	}
	if r.actions[1].Generation == r.actions[2].Generation {
		t.Error("reasoning and trailing prose segments share a generation id")
	}
}

// Scenario 8: a lookalike marker never triggers a transition.
func TestSplitter_lookalikeRejected(t *testing.T) {
	var r recorder
	s := segment.New(&r)
	s.Append("<play>Action</play> is what we need")

	want := []segment.Action{{Mode: segment.Prose, Delta: "<play>Action</play> is what we need"}}
	if diff := cmp.Diff(want, r.actions, cmpopts.IgnoreFields(segment.Action{}, "Generation")); diff != "" {
		t.Errorf("actions: (-want, +got)\n%s", diff)
	}
}

// A comparison operator must never be misread as a marker opener.
func TestSplitter_comparisonOperatorIgnored(t *testing.T) {
	var r recorder
	s := segment.New(&r)
	s.Append("if x < y { return }")

	if len(r.actions) != 1 || r.actions[0].Delta != "if x < y { return }" {
		t.Errorf("actions = %+v, want a single unchanged prose delta", r.actions)
	}
	if r.actions[0].Mode != segment.Prose {
		t.Errorf("mode = %v, want Prose", r.actions[0].Mode)
	}
}

func TestSplitter_markerWithinOneAppend(t *testing.T) {
	var r recorder
	s := segment.New(&r)
	s.Append("before<plan>thinking</plan>after")

	want := []string{"before", "thinking", "after"}
	if len(r.actions) != len(want) {
		t.Fatalf("got %d actions, want %d: %+v", len(r.actions), len(want), r.actions)
	}
	for i, d := range want {
		if r.actions[i].Delta != d {
			t.Errorf("action %d: delta = %q, want %q", i, r.actions[i].Delta, d)
		}
	}
}

func TestSplitter_dirtyReset(t *testing.T) {
	var r recorder
	s := segment.New(&r)
	s.Append("text<pl")

	var dre *segment.DirtyResetError
	if err := s.Reset(); !errors.As(err, &dre) {
		t.Errorf("Reset with pending lookahead: got %v, want *DirtyResetError", err)
	}
}

func TestSplitter_resetWithEmptyLookaheadIsLegal(t *testing.T) {
	var r recorder
	s := segment.New(&r)
	s.Append("some leftover content")
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	s.Append("fresh text")
	if len(r.actions) != 2 {
		t.Fatalf("got %d actions, want 2: %+v", len(r.actions), r.actions)
	}
	if r.actions[1].Delta != "fresh text" || r.actions[1].Mode != segment.Prose {
		t.Errorf("post-reset action = %+v", r.actions[1])
	}
	if r.actions[0].Generation == r.actions[1].Generation {
		t.Error("reset did not reissue the generation id")
	}
}
