// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

// Enqueue records the dispatch of sub. sub is dispatched in full, including
// its uniform upload, when the command is replayed, so it must not be reset
// before the enclosing queue has been dispatched. Its counters are added to
// q's.
//
// Because sub may leave the API in any state, q forgets all remembered state
// and bindings.
func (q *Queue) Enqueue(sub *Queue) {
	if sub == q {
		panic("renderer: enqueueing queue into itself")
	}
	q.commands += sub.commands
	q.draws += sub.draws
	q.primitives += sub.primitives
	record(q, enqueue{Queue: sub})
	q.forgetState()
}

// Custom records a call of fn. data is copied and passed to fn. If
// preservesState is false, q assumes that fn changed API state and forgets
// all remembered state and bindings. Only pass true if fn leaves every piece
// of state the queue tracks unchanged.
func (q *Queue) Custom(fn CustomFunc, data []byte, preservesState bool) {
	record(q, custom{Fn: fn, Data: q.copyBytes(data), PreservesState: preservesState})
	if !preservesState {
		q.forgetState()
	}
}

func (q *Queue) forgetState() {
	q.cem.reset()
	q.bound.reset()
}

// CheckError makes Dispatch fail if the API has reported an error.
func (q *Queue) CheckError() {
	record(q, checkError{})
}

// CheckErrorDebug logs errors reported by the API without failing.
func (q *Queue) CheckErrorDebug() {
	record(q, checkError{LogOnly: true})
}
