// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gl_engine

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"honnef.co/go/renderqueue/gfx"
)

// UniformBuffer is a GL_UNIFORM_BUFFER buffer object.
type UniformBuffer struct {
	id    uint32
	label string
	size  uint32
}

var _ gfx.UniformBuffer = (*UniformBuffer)(nil)

func (ub *UniformBuffer) Bind() { gl.BindBuffer(gl.UNIFORM_BUFFER, ub.id) }

func (ub *UniformBuffer) BindBase(point uint32) {
	gl.BindBufferBase(gl.UNIFORM_BUFFER, point, ub.id)
}

func (ub *UniformBuffer) BindRange(point, offset, size uint32) {
	gl.BindBufferRange(gl.UNIFORM_BUFFER, point, ub.id, int(offset), int(size))
}

func (ub *UniformBuffer) WriteWhole(data []byte, usage gfx.BufferUsage) {
	gl.BindBuffer(gl.UNIFORM_BUFFER, ub.id)
	if len(data) == 0 {
		gl.BufferData(gl.UNIFORM_BUFFER, 0, nil, bufferUsages[usage])
	} else {
		gl.BufferData(gl.UNIFORM_BUFFER, len(data), gl.Ptr(data), bufferUsages[usage])
	}
	ub.size = uint32(len(data))
}

func (ub *UniformBuffer) WriteRange(data []byte, offset uint32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, ub.id)
	gl.BufferSubData(gl.UNIFORM_BUFFER, int(offset), len(data), gl.Ptr(data))
}

func (ub *UniformBuffer) Size() uint32 { return ub.size }

func (ub *UniformBuffer) Release() {
	if ub.id == 0 {
		return
	}
	gl.DeleteBuffers(1, &ub.id)
	ub.id = 0
	ub.size = 0
}
