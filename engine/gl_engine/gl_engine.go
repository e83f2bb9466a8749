// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package gl_engine implements the device and uniform buffers of render
// queues on top of OpenGL 4.3 core.
//
// gl.Init must have been called, and all methods must be called on the
// goroutine the context is current on.
package gl_engine

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"honnef.co/go/renderqueue"
	"honnef.co/go/renderqueue/gfx"
)

type Options struct {
	// DebugGroups enables glPushDebugGroup and glPopDebugGroup. They are
	// no-ops otherwise.
	DebugGroups bool
	// UniformAlignment overrides GL_UNIFORM_BUFFER_OFFSET_ALIGNMENT. If it is
	// set, New makes no GL calls.
	UniformAlignment uint32
}

type Device struct {
	opts      Options
	alignment uint32
}

var _ gfx.Device = (*Device)(nil)
var _ gfx.AlignmentSource = (*Device)(nil)

// New returns a device for the current context. Unless opts.UniformAlignment
// is set, it queries the context and must be called on its goroutine.
func New(opts Options) *Device {
	d := &Device{opts: opts, alignment: opts.UniformAlignment}
	if d.alignment == 0 {
		var v int32
		gl.GetIntegerv(gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT, &v)
		if v <= 0 {
			v = 256
		}
		d.alignment = uint32(v)
		renderqueue.Logger().Debug("queried uniform buffer alignment", "alignment", d.alignment)
	}
	return d
}

// UniformAlignment returns the alignment determined by New. It may be called
// from any goroutine.
func (d *Device) UniformAlignment() uint32 { return d.alignment }

func (d *Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (d *Device) Scissor(x, y, width, height int32)  { gl.Scissor(x, y, width, height) }

func (d *Device) SetEnabled(c gfx.Capability, enable bool) {
	if enable {
		gl.Enable(capabilities[c])
	} else {
		gl.Disable(capabilities[c])
	}
}

func (d *Device) CullFace(face gfx.CullFace)   { gl.CullFace(cullFaces[face]) }
func (d *Device) DepthFunc(fn gfx.CompareFunc) { gl.DepthFunc(compareFuncs[fn]) }
func (d *Device) DepthMask(enable bool)        { gl.DepthMask(enable) }
func (d *Device) ColorMask(enable bool)        { gl.ColorMask(enable, enable, enable, enable) }
func (d *Device) BlendFunc(src, dst gfx.BlendFactor) {
	gl.BlendFunc(blendFactors[src], blendFactors[dst])
}

func (d *Device) ClearColor(c [4]float32) { gl.ClearColor(c[0], c[1], c[2], c[3]) }

func (d *Device) Clear(mask gfx.ClearMask) { gl.Clear(clearBits(mask)) }

func (d *Device) PushDebugGroup(name string) {
	if !d.opts.DebugGroups {
		return
	}
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, -1, gl.Str(name+"\x00"))
}

func (d *Device) PopDebugGroup() {
	if !d.opts.DebugGroups {
		return
	}
	gl.PopDebugGroup()
}

func (d *Device) BindDefaultFrameBuffer() { gl.BindFramebuffer(gl.FRAMEBUFFER, 0) }

func (d *Device) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

var textureTargets = [...]uint32{
	gl.TEXTURE_1D,
	gl.TEXTURE_2D,
	gl.TEXTURE_3D,
	gl.TEXTURE_CUBE_MAP,
	gl.TEXTURE_2D_ARRAY,
	gl.TEXTURE_BUFFER,
}

func (d *Device) UnbindTextures(units int) {
	for i := range units {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		for _, target := range textureTargets {
			gl.BindTexture(target, 0)
		}
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

func (d *Device) MemoryBarrier(bits uint32) { gl.MemoryBarrier(bits) }

func (d *Device) NewUniformBuffer(label string) (gfx.UniformBuffer, error) {
	ub := &UniformBuffer{label: label}
	gl.GenBuffers(1, &ub.id)
	if ub.id == 0 {
		return nil, &gfx.GraphicsError{Code: gl.GetError(), Op: "glGenBuffers"}
	}
	if d.opts.DebugGroups {
		gl.ObjectLabel(gl.BUFFER, ub.id, -1, gl.Str(label+"\x00"))
	}
	return ub, nil
}

// Error drains the GL error flags and returns the first one.
func (d *Device) Error() error {
	var first uint32
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == 0 {
			first = code
		} else {
			renderqueue.Logger().Debug("dropping additional GL error", "code", code)
		}
	}
	if first == 0 {
		return nil
	}
	return &gfx.GraphicsError{Code: first}
}
