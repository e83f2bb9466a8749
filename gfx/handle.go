// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import (
	"sync/atomic"
)

var resourceID atomic.Uint64

func nextResourceID() ResourceID {
	return ResourceID(resourceID.Add(1))
}

// ResourceID identifies a resource for the lifetime of the process. IDs are
// never reused, so comparing IDs compares identities.
type ResourceID uint64

// Handle is a shared, reference-counted reference to a resource that may not
// exist yet. Handles are small values; copying one doesn't take a reference,
// Share does. Every reference obtained from NewHandle, Share or a Provisional
// registry must be released exactly once.
//
// The resource behind a handle is only reachable through Resolve, which
// requires the Resolver of a running dispatch.
type Handle[T any] struct {
	s *shared[T]
}

type shared[T any] struct {
	id   ResourceID
	refs atomic.Int32

	// Set once the resource exists. Only accessed from the goroutine owning
	// the graphics context.
	value T
	ready atomic.Bool

	// create materializes provisional resources on first resolution.
	create  func(dev Device) (T, error)
	release func(T)

	first atomic.Bool
	used  atomic.Bool
}

// NewHandle wraps an existing resource. release, if not nil, is called with
// the resource when the last reference is released. If release is nil and the
// resource implements Releaser, its Release method is called instead.
func NewHandle[T any](v T, release func(T)) Handle[T] {
	s := &shared[T]{
		id:      nextResourceID(),
		value:   v,
		release: release,
	}
	s.refs.Store(1)
	s.ready.Store(true)
	return Handle[T]{s}
}

func newProvisionalHandle[T any](create func(dev Device) (T, error)) Handle[T] {
	s := &shared[T]{
		id:     nextResourceID(),
		create: create,
	}
	s.refs.Store(1)
	s.first.Store(true)
	return Handle[T]{s}
}

// Valid reports whether h refers to anything.
func (h Handle[T]) Valid() bool { return h.s != nil }

// ID returns the handle's identity, or zero for the zero Handle.
func (h Handle[T]) ID() ResourceID {
	if h.s == nil {
		return 0
	}
	return h.s.id
}

// Share takes an additional reference.
func (h Handle[T]) Share() Handle[T] {
	if h.s == nil {
		return h
	}
	h.s.refs.Add(1)
	return h
}

// Release drops one reference. Releasing the zero Handle is a no-op.
func (h Handle[T]) Release() {
	if h.s == nil {
		return
	}
	n := h.s.refs.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic("gfx: handle released more often than shared")
	}
	if !h.s.ready.Load() {
		return
	}
	v := h.s.value
	h.s.value = *new(T)
	h.s.ready.Store(false)
	if h.s.release != nil {
		h.s.release(v)
	} else if r, ok := any(v).(Releaser); ok {
		r.Release()
	}
}

// Refs returns the number of live references.
func (h Handle[T]) Refs() int {
	if h.s == nil {
		return 0
	}
	return int(h.s.refs.Load())
}

// Ready reports whether the resource has been materialized.
func (h Handle[T]) Ready() bool {
	return h.s != nil && h.s.ready.Load()
}

// First returns true the first time it is called on a provisional handle, and
// false afterwards. It lets users initialize a shared provisional resource
// exactly once.
func (h Handle[T]) First() bool {
	return h.s != nil && h.s.first.CompareAndSwap(true, false)
}
