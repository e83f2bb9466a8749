// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"fmt"
	"slices"

	"honnef.co/go/safeish"

	"honnef.co/go/renderqueue/mem"
)

// MaxUniformRange is the largest range that can be bound to a uniform
// binding point.
const MaxUniformRange = 16384

// UubRange is a part of a queue's universal uniform buffer. It is only
// meaningful for the queue that returned it, until that queue is reset.
type UubRange struct {
	Offset uint32
	Size   uint32
}

// StageUniformBytes appends data to the queue's universal uniform buffer, at
// an offset aligned to the queue's uniform alignment. If bindingPoint isn't
// negative, the range is also bound to it. The whole buffer is uploaded once,
// at the start of Dispatch.
func (q *Queue) StageUniformBytes(data []byte, bindingPoint int) UubRange {
	off := mem.RoundUp(uint32(len(q.uub)), q.uubAlignment)
	end := int(off) + len(data)
	q.uub = slices.Grow(q.uub, end-len(q.uub))
	pad := q.uub[len(q.uub):off]
	clear(pad)
	q.uub = append(q.uub[:off], data...)

	r := UubRange{Offset: off, Size: uint32(len(data))}
	if bindingPoint >= 0 {
		q.BindUUB(r, uint32(bindingPoint))
	}
	return r
}

// StageUniform stages the memory representation of v. T must have the
// layout the shader expects.
func StageUniform[T any](q *Queue, v T, bindingPoint int) UubRange {
	return q.StageUniformBytes(safeish.AsBytes(&v), bindingPoint)
}

// StageUniformSlice stages the memory representation of s.
func StageUniformSlice[T any](q *Queue, s []T, bindingPoint int) UubRange {
	return q.StageUniformBytes(safeish.SliceCast[[]byte](s), bindingPoint)
}

// StagedBytes returns the number of bytes staged so far, including padding.
func (q *Queue) StagedBytes() int { return len(q.uub) }

// BindUUB binds a staged range to a uniform binding point.
func (q *Queue) BindUUB(r UubRange, bindingPoint uint32) {
	if debugChecks {
		if r.Size > MaxUniformRange {
			panic(fmt.Sprintf("renderer: uniform range of %d bytes exceeds %d", r.Size, MaxUniformRange))
		}
		if int(r.Offset)+int(r.Size) > len(q.uub) {
			panic(fmt.Sprintf("renderer: uniform range [%d, %d) out of bounds of %d staged bytes",
				r.Offset, r.Offset+r.Size, len(q.uub)))
		}
		if r.Offset%q.uubAlignment != 0 {
			panic(fmt.Sprintf("renderer: uniform offset %d isn't aligned to %d", r.Offset, q.uubAlignment))
		}
	}
	record(q, bindUUB{Range: r, Point: bindingPoint})
}
