// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package wgpu_engine

import (
	"honnef.co/go/wgpu"

	"honnef.co/go/renderqueue/gfx"
)

var uniformUsage = wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst

// UniformBinding is a range of a uniform buffer bound to a binding point.
// A Size of zero binds the whole buffer.
type UniformBinding struct {
	Buffer *UniformBuffer
	Offset uint32
	Size   uint32
}

func (b UniformBinding) Entry(binding uint32) wgpu.BindGroupEntry {
	size := ^uint64(0)
	if b.Size != 0 {
		size = uint64(b.Size)
	}
	return wgpu.BindGroupEntry{
		Binding: binding,
		Buffer:  b.Buffer.buf,
		Offset:  uint64(b.Offset),
		Size:    size,
	}
}

// UniformBuffer is a gfx.UniformBuffer backed by pooled WebGPU buffers. Its
// storage is allocated by the first WriteWhole.
type UniformBuffer struct {
	dev      *Device
	label    string
	buf      *wgpu.Buffer
	capacity uint64
	size     uint32
}

var _ gfx.UniformBuffer = (*UniformBuffer)(nil)

func (ub *UniformBuffer) Bind() { ub.dev.target = ub }

func (ub *UniformBuffer) BindBase(point uint32) {
	ub.dev.target = ub
	ub.dev.uniforms[point] = UniformBinding{Buffer: ub}
}

func (ub *UniformBuffer) BindRange(point, offset, size uint32) {
	if offset%ub.dev.opts.UniformAlignment != 0 {
		ub.dev.fail(codeInvalidValue, "BindRange")
		return
	}
	ub.dev.target = ub
	ub.dev.uniforms[point] = UniformBinding{Buffer: ub, Offset: offset, Size: size}
}

// WriteWhole replaces the buffer's contents. The storage is only reallocated
// if data doesn't fit. WebGPU has no usage hints, so usage is ignored.
func (ub *UniformBuffer) WriteWhole(data []byte, usage gfx.BufferUsage) {
	need := uint64(len(data)+3) &^ 3
	if ub.buf == nil || ub.capacity < need {
		if ub.buf != nil {
			ub.dev.pool.putBuf(ub.buf, ub.capacity, uniformUsage)
		}
		ub.buf, ub.capacity = ub.dev.pool.getBuf(need, ub.label, uniformUsage, ub.dev.dev)
	}
	ub.size = uint32(len(data))
	if len(data) > 0 {
		ub.dev.write(ub.buf, 0, data)
	}
}

func (ub *UniformBuffer) WriteRange(data []byte, offset uint32) {
	if ub.buf == nil {
		ub.dev.fail(codeInvalidOperation, "WriteRange")
		return
	}
	if offset%4 != 0 || uint64(offset)+uint64(len(data)) > uint64(ub.size) {
		ub.dev.fail(codeInvalidValue, "WriteRange")
		return
	}
	ub.dev.write(ub.buf, offset, data)
}

func (ub *UniformBuffer) Size() uint32 { return ub.size }

// Release returns the buffer's storage to the device's pool.
func (ub *UniformBuffer) Release() {
	if ub.buf == nil {
		return
	}
	ub.dev.pool.putBuf(ub.buf, ub.capacity, uniformUsage)
	ub.buf = nil
	ub.capacity = 0
	ub.size = 0
	for p, b := range ub.dev.uniforms {
		if b.Buffer == ub {
			delete(ub.dev.uniforms, p)
		}
	}
	if ub.dev.target == ub {
		ub.dev.target = nil
	}
}
