// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import (
	"fmt"

	"honnef.co/go/renderqueue/mem"
)

// Resolver is the capability to turn handles into resources. Render queues
// create one per dispatch and discard it afterwards; code outside of a
// dispatch has no way of obtaining resources from handles.
type Resolver struct {
	dev   Device
	arena *mem.Arena
	seen  mem.BinaryTreeMap[ResourceID, struct{}]
}

// NewResolver returns a resolver whose bookkeeping lives in arena. It is
// meant to be called by dispatch loops, which own dev for their duration.
func NewResolver(dev Device, arena *mem.Arena) *Resolver {
	return &Resolver{dev: dev, arena: arena}
}

func (r *Resolver) Device() Device { return r.dev }

// Resolved returns the number of distinct resources resolved so far.
func (r *Resolver) Resolved() int { return r.seen.Len() }

// Resolve returns the resource behind h, creating provisional resources on
// first use.
func Resolve[T any](r *Resolver, h Handle[T]) (T, error) {
	if h.s == nil {
		return *new(T), fmt.Errorf("gfx: resolving invalid %T", h)
	}
	s := h.s
	s.used.Store(true)
	r.seen.Insert(r.arena, s.id, struct{}{})
	if s.ready.Load() {
		return s.value, nil
	}
	if s.create == nil {
		return *new(T), ErrNotReady
	}
	v, err := s.create(r.dev)
	if err != nil {
		return *new(T), fmt.Errorf("gfx: creating provisional resource %d: %w", s.id, err)
	}
	s.value = v
	s.ready.Store(true)
	return v, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](r *Resolver, h Handle[T]) T {
	v, err := Resolve(r, h)
	if err != nil {
		panic(err)
	}
	return v
}
