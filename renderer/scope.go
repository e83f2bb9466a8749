// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"honnef.co/go/renderqueue/profiler"
)

// PushScope opens a named scope. Scopes show up as debug groups when the
// queue is dispatched, and as profiler groups while the queue is recorded.
// Every PushScope must be paired with a PopScope.
func (q *Queue) PushScope(name string) {
	var parent profiler.ProfilerGroup
	if len(q.scopes) > 0 {
		parent = q.scopes[len(q.scopes)-1].span
	} else {
		parent = q.opts.Profiler
	}
	var span profiler.ProfilerGroup
	if parent != nil {
		span = parent.Start(name)
	}
	q.scopes = append(q.scopes, scope{name: name, span: span})
	record(q, pushScope{Name: name})
}

// PopScope closes the innermost scope.
func (q *Queue) PopScope() {
	if len(q.scopes) == 0 {
		if debugChecks {
			panic("renderer: PopScope without matching PushScope")
		}
		q.logger().Warn("unbalanced scope", "queue", q.name)
		return
	}
	sc := q.scopes[len(q.scopes)-1]
	q.scopes[len(q.scopes)-1] = scope{}
	q.scopes = q.scopes[:len(q.scopes)-1]
	if sc.span != nil {
		sc.span.End()
	}
	record(q, popScope{})
}

// Scope opens a named scope and returns the function closing it, for use
// with defer.
func (q *Queue) Scope(name string) func() {
	q.PushScope(name)
	return q.PopScope
}

// OpenScopes returns the names of the currently open scopes, outermost first.
func (q *Queue) OpenScopes() []string {
	out := make([]string, len(q.scopes))
	for i, sc := range q.scopes {
		out[i] = sc.name
	}
	return out
}

// unwindScopes ends the spans of scopes that were never popped, innermost
// first.
func (q *Queue) unwindScopes() {
	if len(q.scopes) > 0 {
		q.logger().Warn("scopes left open", "queue", q.name, "scopes", q.OpenScopes())
	}
	for i := len(q.scopes) - 1; i >= 0; i-- {
		if span := q.scopes[i].span; span != nil {
			span.End()
		}
		q.scopes[i] = scope{}
	}
	q.scopes = q.scopes[:0]
}
