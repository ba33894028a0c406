// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package reducer implements a synchronized reducer: a small wrapper that
// folds dispatched actions into a local state and mirrors each one, in the
// same order, onto an outbound event stream for downstream consumers.
package reducer

import "sync"

// A Reducer folds an action into the current state, returning the next
// state. A Reducer must be pure: the wrapper calls it at most once per
// Dispatch and trusts its result verbatim.
type Reducer[S, A any] func(state S, action A) (S, error)

// A Store applies a Reducer to a stream of dispatched actions, keeping the
// current state available to readers and mirroring every action onto an
// outbound channel in dispatch order. It is safe for concurrent use: any
// number of goroutines may call Dispatch or State concurrently.
type Store[S, A any] struct {
	mu     sync.Mutex
	state  S
	reduce Reducer[S, A]
	events chan A
	done   bool
}

// New constructs a Store with the given initial state and reducer. events
// is the capacity of the outbound event channel; zero selects an unbuffered
// channel.
func New[S, A any](initial S, reduce Reducer[S, A], events int) *Store[S, A] {
	return &Store[S, A]{
		state:  initial,
		reduce: reduce,
		events: make(chan A, events),
	}
}

// Dispatch folds action into the current state and then pushes it onto the
// outbound event stream, in that order. If the reducer returns an error,
// the failure propagates to the caller verbatim and the stream is not
// advanced: state is left unchanged and the action is not published.
//
// Dispatch panics if called after Done.
func (st *Store[S, A]) Dispatch(action A) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.done {
		panic("reducer: Dispatch called after Done")
	}
	next, err := st.reduce(st.state, action)
	if err != nil {
		return err
	}
	st.state = next
	st.events <- action
	return nil
}

// State returns the current state.
func (st *Store[S, A]) State() S {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Events returns the outbound event stream. Actions appear on it in the
// exact order they were successfully dispatched.
func (st *Store[S, A]) Events() <-chan A { return st.events }

// Done closes the outbound event stream. Calling Done more than once
// panics, matching close's own contract on the underlying channel.
func (st *Store[S, A]) Done() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.done = true
	close(st.events)
}
