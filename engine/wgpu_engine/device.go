// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package wgpu_engine implements the device and uniform buffers of render
// queues on top of WebGPU.
//
// WebGPU has no global state. The device records fixed-function state in a
// PipelineState and uniform bindings in a table, both of which the embedding
// application consults when it builds pipelines, passes and bind groups.
package wgpu_engine

import (
	"maps"
	"slices"
	"strings"

	"honnef.co/go/wgpu"

	"honnef.co/go/renderqueue"
	"honnef.co/go/renderqueue/gfx"
	"honnef.co/go/renderqueue/mem"
)

// Error codes reported through gfx.GraphicsError. They reuse OpenGL's values.
const (
	codeInvalidValue     = 0x0501
	codeInvalidOperation = 0x0502
	codeStackUnderflow   = 0x0504
)

type Options struct {
	// Label prefixes the labels of all buffers created by the device.
	Label string
	// UniformAlignment is the device's minUniformBufferOffsetAlignment. It
	// defaults to 256, the maximum WebGPU allows.
	UniformAlignment uint32
}

type Device struct {
	dev   *wgpu.Device
	queue *wgpu.Queue
	opts  Options
	pool  resourcePool

	State PipelineState

	pendingClear  gfx.ClearMask
	defaultTarget bool
	activeUnit    uint32
	groups        []string
	uniforms      map[uint32]UniformBinding
	target        *UniformBuffer
	scratch       []byte
	err           error
}

var _ gfx.Device = (*Device)(nil)
var _ gfx.AlignmentSource = (*Device)(nil)

func New(dev *wgpu.Device, queue *wgpu.Queue, opts Options) *Device {
	if opts.UniformAlignment == 0 {
		opts.UniformAlignment = 256
	}
	return &Device{
		dev:           dev,
		queue:         queue,
		opts:          opts,
		pool:          newResourcePool(),
		State:         DefaultPipelineState(),
		defaultTarget: true,
		uniforms:      make(map[uint32]UniformBinding),
	}
}

func (d *Device) UniformAlignment() uint32 { return d.opts.UniformAlignment }

func (d *Device) changed() { d.State.Generation++ }

func (d *Device) Viewport(x, y, width, height int32) {
	d.State.Viewport = [4]int32{x, y, width, height}
}

func (d *Device) Scissor(x, y, width, height int32) {
	d.State.Scissor = [4]int32{x, y, width, height}
}

func (d *Device) SetEnabled(c gfx.Capability, enable bool) {
	switch c {
	case gfx.CapScissorTest:
		d.State.ScissorTest = enable
		return
	case gfx.CapCullFace:
		d.State.Culling = enable
	case gfx.CapDepthTest:
		d.State.DepthTest = enable
	case gfx.CapBlend:
		d.State.Blending = enable
	default:
		d.fail(codeInvalidValue, "SetEnabled")
		return
	}
	d.changed()
}

func (d *Device) CullFace(face gfx.CullFace) {
	if int(face) >= len(cullModes) {
		d.fail(codeInvalidValue, "CullFace")
		return
	}
	d.State.CullFace = face
	d.changed()
}

func (d *Device) DepthFunc(fn gfx.CompareFunc) {
	if int(fn) >= len(compareFunctions) {
		d.fail(codeInvalidValue, "DepthFunc")
		return
	}
	d.State.DepthFunc = fn
	d.changed()
}

func (d *Device) DepthMask(enable bool) {
	d.State.DepthWrite = enable
	d.changed()
}

func (d *Device) ColorMask(enable bool) {
	d.State.ColorWrite = enable
	d.changed()
}

func (d *Device) BlendFunc(src, dst gfx.BlendFactor) {
	if int(src) >= len(blendFactors) || int(dst) >= len(blendFactors) {
		d.fail(codeInvalidValue, "BlendFunc")
		return
	}
	d.State.BlendSrc = src
	d.State.BlendDst = dst
	d.changed()
}

func (d *Device) ClearColor(rgba [4]float32) { d.State.ClearColor = rgba }

// Clear requests that the given buffers be cleared. WebGPU clears through the
// load operations of render passes; see TakeClear.
func (d *Device) Clear(mask gfx.ClearMask) { d.pendingClear |= mask }

// TakeClear returns and resets the buffers cleared since the last call, and
// the colour to clear to. The next render pass should use LoadOpClear for
// them.
func (d *Device) TakeClear() (gfx.ClearMask, wgpu.Color) {
	mask := d.pendingClear
	d.pendingClear = 0
	return mask, d.State.ClearValue()
}

func (d *Device) PushDebugGroup(name string) {
	d.groups = append(d.groups, name)
}

func (d *Device) PopDebugGroup() {
	if len(d.groups) == 0 {
		d.fail(codeStackUnderflow, "PopDebugGroup")
		return
	}
	d.groups = d.groups[:len(d.groups)-1]
}

// Label returns the open debug groups joined by slashes, for labeling
// command encoders and passes.
func (d *Device) Label() string {
	return strings.Join(d.groups, "/")
}

func (d *Device) BindDefaultFrameBuffer() { d.defaultTarget = true }

// TargetsDefault reports whether the default framebuffer has been bound
// since the last call of UseFrameBuffer.
func (d *Device) TargetsDefault() bool { return d.defaultTarget }

// UseFrameBuffer is called by framebuffer implementations when they are
// bound.
func (d *Device) UseFrameBuffer() { d.defaultTarget = false }

func (d *Device) ActiveTexture(unit uint32) {
	if unit >= gfx.MaxTextureUnits {
		d.fail(codeInvalidValue, "ActiveTexture")
		return
	}
	d.activeUnit = unit
}

func (d *Device) ActiveUnit() uint32 { return d.activeUnit }

func (d *Device) UnbindTextures(units int) { d.activeUnit = 0 }

// MemoryBarrier does nothing; WebGPU tracks hazards between passes itself.
func (d *Device) MemoryBarrier(bits uint32) {}

func (d *Device) NewUniformBuffer(label string) (gfx.UniformBuffer, error) {
	return &UniformBuffer{dev: d, label: d.opts.Label + label}, nil
}

// Error returns the first error since the last call, as a
// *gfx.GraphicsError.
func (d *Device) Error() error {
	err := d.err
	d.err = nil
	return err
}

func (d *Device) fail(code uint32, op string) {
	renderqueue.Logger().Debug("wgpu device error", "op", op, "code", code)
	if d.err == nil {
		d.err = &gfx.GraphicsError{Code: code, Op: op}
	}
}

// WriteTarget returns the uniform buffer bound last, or nil.
func (d *Device) WriteTarget() *UniformBuffer { return d.target }

// UniformBinding returns what is bound to a uniform binding point.
func (d *Device) UniformBinding(point uint32) (UniformBinding, bool) {
	b, ok := d.uniforms[point]
	return b, ok
}

// UniformEntries returns bind group entries for all bound uniform binding
// points, in ascending order of binding point. The slice is allocated in
// arena.
func (d *Device) UniformEntries(arena *mem.Arena) []wgpu.BindGroupEntry {
	points := slices.Sorted(maps.Keys(d.uniforms))
	entries := mem.NewSlice[[]wgpu.BindGroupEntry](arena, 0, len(points))
	for _, p := range points {
		b := d.uniforms[p]
		if b.Buffer.buf == nil {
			continue
		}
		entries = append(entries, b.Entry(p))
	}
	return entries
}

// PooledBuffers returns the number of buffers kept for reuse.
func (d *Device) PooledBuffers() int { return d.pool.pooled() }

// Close destroys all pooled buffers.
func (d *Device) Close() {
	d.pool.release()
}

// write copies data into buf. WebGPU requires writes to be multiples of four
// bytes; data is padded with zeroes as needed.
func (d *Device) write(buf *wgpu.Buffer, offset uint32, data []byte) {
	if n := mem.RoundUp(len(data), 4); n != len(data) {
		d.scratch = append(d.scratch[:0], data...)
		d.scratch = append(d.scratch, make([]byte, n-len(data))...)
		data = d.scratch
	}
	d.queue.WriteBuffer(buf, uint64(offset), data)
}
