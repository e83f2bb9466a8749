// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package renderer records graphics commands into queues that are replayed
// later, on the goroutine that owns the graphics context.
//
// Recording eliminates redundant state changes and binds: setting a piece of
// state to the value it already has, or binding the resource that is already
// bound, doesn't record anything. Resources are referenced through
// [gfx.Handle] values, which queues keep alive until they are reset.
//
// A Queue must not be used concurrently, and must not be dispatched while it
// is being recorded into. Independent queues may be recorded concurrently.
package renderer

import (
	"log/slog"

	"github.com/google/uuid"

	"honnef.co/go/renderqueue"
	"honnef.co/go/renderqueue/gfx"
	"honnef.co/go/renderqueue/mem"
	"honnef.co/go/renderqueue/profiler"
)

// DefaultUniformAlignment is used when neither Options.UniformAlignment nor
// Options.Alignment are set.
const DefaultUniformAlignment = 256

type Options struct {
	// Name identifies the queue in debug output and names its provisional
	// uniform buffer. Defaults to "queue-" followed by a random UUID.
	Name string
	// Provisional, if set, provides the uniform buffer that staged uniforms
	// are uploaded to, which is then reused across dispatches. Otherwise a
	// new buffer is created for every dispatch.
	Provisional *gfx.Provisional
	// UniformAlignment is the alignment of staged uniforms. If zero,
	// Alignment is consulted.
	UniformAlignment uint32
	Alignment        gfx.AlignmentSource
	// Profiler, if set, receives one group per named scope while recording,
	// and one for the uniform upload while dispatching.
	Profiler profiler.ProfilerGroup
	// Logger overrides renderqueue.Logger.
	Logger *slog.Logger
}

type node struct {
	next *node
	cmd  command
}

type Queue struct {
	name   string
	opts   Options
	arena  *mem.Arena
	closed bool

	// head is the inert sentinel, so that tail.next is always assignable.
	head *node
	tail *node

	// setup commands, replayed before uniforms are uploaded
	setupHead *node
	setupTail *node

	commands   int
	draws      int
	primitives int

	cem   cem
	bound settingTable

	uub          []byte
	uubAlignment uint32
	// provisional UUB, kept across resets
	uubHandle gfx.Handle[gfx.UniformBuffer]

	scopes []scope

	dispatching bool
}

type scope struct {
	name string
	span profiler.ProfilerGroup
}

func New(opts Options) *Queue {
	if opts.Name == "" {
		opts.Name = "queue-" + uuid.NewString()
	}
	align := opts.UniformAlignment
	if align == 0 && opts.Alignment != nil {
		align = opts.Alignment.UniformAlignment()
	}
	if align == 0 {
		align = DefaultUniformAlignment
	}
	q := &Queue{
		name:         opts.Name,
		opts:         opts,
		arena:        mem.NewArena(),
		uubAlignment: align,
	}
	q.init()
	return q
}

func (q *Queue) init() {
	q.head = mem.New[node](q.arena)
	q.tail = q.head
	q.setupHead = mem.New[node](q.arena)
	q.setupTail = q.setupHead
	q.cem.reset()
	q.bound.reset()
}

func (q *Queue) Name() string { return q.name }

func (q *Queue) logger() *slog.Logger {
	if q.opts.Logger != nil {
		return q.opts.Logger
	}
	return renderqueue.Logger()
}

// UniformAlignment returns the alignment of staged uniforms.
func (q *Queue) UniformAlignment() uint32 { return q.uubAlignment }

// CommandsCount returns the number of recorded commands, including those of
// enqueued queues.
func (q *Queue) CommandsCount() int { return q.commands }

// DrawsCount returns the number of recorded draws and compute dispatches.
func (q *Queue) DrawsCount() int { return q.draws }

// PrimitivesCount returns the number of primitives drawn by recorded draws.
func (q *Queue) PrimitivesCount() int { return q.primitives }

func (q *Queue) addCommand(cmd command) {
	if q.closed {
		panic("renderer: recording into closed queue")
	}
	n := mem.Make(q.arena, node{cmd: cmd})
	q.tail.next = n
	q.tail = n
	q.commands++
}

// record allocates v in the queue's arena and appends it.
func record[T any, PT interface {
	*T
	command
}](q *Queue, v T) {
	q.addCommand(PT(mem.Make(q.arena, v)))
}

// copyBytes returns a copy of b that lives until the queue is reset.
func (q *Queue) copyBytes(b []byte) []byte {
	return mem.CopyBytes(q.arena, b)
}

// Reset releases all resources referenced by recorded commands and empties
// the queue, which can then be reused.
func (q *Queue) Reset() {
	if debugChecks && q.dispatching {
		panic("renderer: resetting queue during dispatch")
	}
	for _, head := range [...]*node{q.setupHead, q.head} {
		for n := head.next; n != nil; n = n.next {
			if r, ok := n.cmd.(releaser); ok {
				r.release()
			}
		}
	}
	q.arena.Reset()
	q.uub = q.uub[:0]
	q.commands = 0
	q.draws = 0
	q.primitives = 0
	q.unwindScopes()
	q.init()
}

// Close resets the queue and drops its provisional uniform buffer. Recording
// into a closed queue panics.
func (q *Queue) Close() {
	q.Reset()
	q.uubHandle.Release()
	q.uubHandle = gfx.Handle[gfx.UniformBuffer]{}
	q.closed = true
}

// ArenaStats reports the memory used by recorded commands.
func (q *Queue) ArenaStats() mem.Stats { return q.arena.Stats() }
