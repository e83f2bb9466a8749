// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"encoding/binary"
	"fmt"
	"slices"

	"honnef.co/go/renderqueue/gfx"
	"honnef.co/go/renderqueue/mem"
)

// SetupFunc fills a staged uniform range during Dispatch, before the
// universal uniform buffer is uploaded. dst is the range's bytes. It is
// called on every dispatch and sees the contents written by the previous
// one.
type SetupFunc func(r *gfx.Resolver, dst []byte) error

type setupUniform struct {
	Fn    SetupFunc
	Range UubRange
}

type bindlessSetup struct {
	Textures []gfx.Handle[gfx.Texture]
	Range    UubRange
}

type bindlessResident struct {
	Textures []gfx.Handle[gfx.Texture]
	Resident bool
}

func (*setupUniform) isCommand()     {}
func (*bindlessSetup) isCommand()    {}
func (*bindlessResident) isCommand() {}

func (cmd *bindlessSetup) release()    { releaseAll(cmd.Textures) }
func (cmd *bindlessResident) release() { releaseAll(cmd.Textures) }

// addSetup appends a command to the setup list, which Dispatch replays
// before uploading uniforms.
func (q *Queue) addSetup(cmd command) {
	if q.closed {
		panic("renderer: recording into closed queue")
	}
	n := mem.Make(q.arena, node{cmd: cmd})
	q.setupTail.next = n
	q.setupTail = n
	q.commands++
}

func recordSetup[T any, PT interface {
	*T
	command
}](q *Queue, v T) {
	q.addSetup(PT(mem.Make(q.arena, v)))
}

// ReserveUniform stages size zero bytes, like StageUniformBytes. Their
// contents are usually provided by SetupUniform.
func (q *Queue) ReserveUniform(size int, bindingPoint int) UubRange {
	off := mem.RoundUp(uint32(len(q.uub)), q.uubAlignment)
	end := int(off) + size
	q.uub = slices.Grow(q.uub, end-len(q.uub))
	n := len(q.uub)
	q.uub = q.uub[:end]
	clear(q.uub[n:])

	r := UubRange{Offset: off, Size: uint32(size)}
	if bindingPoint >= 0 {
		q.BindUUB(r, uint32(bindingPoint))
	}
	return r
}

// SetupUniform records a call of fn that fills r at dispatch time, for
// uniforms whose values only exist on the goroutine owning the context.
func (q *Queue) SetupUniform(r UubRange, fn SetupFunc) {
	if debugChecks && int(r.Offset)+int(r.Size) > len(q.uub) {
		panic(fmt.Sprintf("renderer: uniform range [%d, %d) out of bounds of %d staged bytes",
			r.Offset, r.Offset+r.Size, len(q.uub)))
	}
	recordSetup(q, setupUniform{Fn: fn, Range: r})
}

// BindlessUniform stages an array of the bindless handles of textures, one
// uint64 per texture, and binds it to bindingPoint. Invalid handles are
// staged as zero. The handles are obtained at dispatch time, so textures
// may be provisional. If makeResident is true, the textures are made
// resident before the array is bound.
//
// Every valid texture must implement gfx.BindlessTexture.
func (q *Queue) BindlessUniform(textures []gfx.Handle[gfx.Texture], bindingPoint uint32, makeResident bool) UubRange {
	r := q.ReserveUniform(8*len(textures), -1)
	recordSetup(q, bindlessSetup{Textures: q.shareAll(textures), Range: r})
	if makeResident {
		q.BindlessResident(textures, true)
	}
	q.BindUUB(r, bindingPoint)
	return r
}

// BindlessResident makes the bindless handles of textures resident or
// non-resident. Invalid handles are skipped.
func (q *Queue) BindlessResident(textures []gfx.Handle[gfx.Texture], resident bool) {
	record(q, bindlessResident{Textures: q.shareAll(textures), Resident: resident})
}

// shareAll returns an arena copy of hs holding its own references.
func (q *Queue) shareAll(hs []gfx.Handle[gfx.Texture]) []gfx.Handle[gfx.Texture] {
	out := mem.NewSlice[[]gfx.Handle[gfx.Texture]](q.arena, len(hs), len(hs))
	for i, h := range hs {
		if h.Valid() {
			out[i] = h.Share()
		}
	}
	return out
}

func releaseAll[T any](hs []gfx.Handle[T]) {
	for _, h := range hs {
		h.Release()
	}
}

func resolveBindless(r *gfx.Resolver, h gfx.Handle[gfx.Texture]) (gfx.BindlessTexture, error) {
	tex, err := gfx.Resolve(r, h)
	if err != nil {
		return nil, err
	}
	bt, ok := tex.(gfx.BindlessTexture)
	if !ok {
		return nil, fmt.Errorf("%w: %T", errNotBindless, tex)
	}
	return bt, nil
}

func (q *Queue) writeBindless(r *gfx.Resolver, cmd *bindlessSetup) error {
	dst := q.uub[cmd.Range.Offset : cmd.Range.Offset+cmd.Range.Size]
	for i, h := range cmd.Textures {
		var v uint64
		if h.Valid() {
			bt, err := resolveBindless(r, h)
			if err != nil {
				return err
			}
			v = bt.BindlessHandle()
		}
		binary.NativeEndian.PutUint64(dst[8*i:], v)
	}
	return nil
}
