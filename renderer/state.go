// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"honnef.co/go/color"
	"honnef.co/go/curve"

	"honnef.co/go/renderqueue/gfx"
)

func (q *Queue) Viewport(origin, size gfx.Vec2i) {
	if !q.cem.updateRect(slotViewportX, origin[0], origin[1], size[0], size[1]) {
		return
	}
	record(q, viewport{Origin: origin, Size: size})
}

// ViewportRect sets the viewport to the smallest integer rectangle containing
// r.
func (q *Queue) ViewportRect(r curve.Rect) {
	q.Viewport(gfx.RectToInts(r))
}

func (q *Queue) Scissors(origin, size gfx.Vec2i) {
	if !q.cem.updateRect(slotScissorX, origin[0], origin[1], size[0], size[1]) {
		return
	}
	record(q, scissor{Origin: origin, Size: size})
}

func (q *Queue) ScissorsRect(r curve.Rect) {
	q.Scissors(gfx.RectToInts(r))
}

func (q *Queue) toggle(s slot, c gfx.Capability, enable bool) {
	if !q.cem.updateBool(s, enable) {
		return
	}
	record(q, toggle{Cap: c, Enable: enable})
}

func (q *Queue) ScissorTest(enable bool) { q.toggle(slotScissorTest, gfx.CapScissorTest, enable) }
func (q *Queue) Culling(enable bool)     { q.toggle(slotCulling, gfx.CapCullFace, enable) }
func (q *Queue) DepthTest(enable bool)   { q.toggle(slotDepthTest, gfx.CapDepthTest, enable) }
func (q *Queue) Blending(enable bool)    { q.toggle(slotBlending, gfx.CapBlend, enable) }

func (q *Queue) CullFace(face gfx.CullFace) {
	if !q.cem.update(slotCullFace, int64(face)) {
		return
	}
	record(q, cullFace{Face: face})
}

func (q *Queue) DepthFunc(fn gfx.CompareFunc) {
	if !q.cem.update(slotDepthFunc, int64(fn)) {
		return
	}
	record(q, depthFunc{Func: fn})
}

func (q *Queue) DepthFuncLess()      { q.DepthFunc(gfx.CompareLess) }
func (q *Queue) DepthFuncLessEqual() { q.DepthFunc(gfx.CompareLessEqual) }
func (q *Queue) DepthFuncEqual()     { q.DepthFunc(gfx.CompareEqual) }
func (q *Queue) DepthFuncAlways()    { q.DepthFunc(gfx.CompareAlways) }

func (q *Queue) DepthWrite(enable bool) {
	if !q.cem.updateBool(slotDepthWrite, enable) {
		return
	}
	record(q, depthWrite{Enable: enable})
}

func (q *Queue) ColorWrite(enable bool) {
	if !q.cem.updateBool(slotColorWrite, enable) {
		return
	}
	record(q, colorWrite{Enable: enable})
}

func (q *Queue) BlendFunc(src, dst gfx.BlendFactor) {
	if !q.cem.updatePair(slotBlendSrc, slotBlendDst, int64(src), int64(dst)) {
		return
	}
	record(q, blendFunc{Src: src, Dst: dst})
}

// BlendFuncNone writes the source unchanged.
func (q *Queue) BlendFuncNone() { q.BlendFunc(gfx.BlendOne, gfx.BlendZero) }

func (q *Queue) BlendFuncAdditive() { q.BlendFunc(gfx.BlendOne, gfx.BlendOne) }

// BlendFuncPremultipliedTransparency blends sources with premultiplied
// alpha.
func (q *Queue) BlendFuncPremultipliedTransparency() {
	q.BlendFunc(gfx.BlendOne, gfx.BlendOneMinusSrcAlpha)
}

// BlendFuncAlphaTransparency blends sources with straight alpha.
func (q *Queue) BlendFuncAlphaTransparency() {
	q.BlendFunc(gfx.BlendSrcAlpha, gfx.BlendOneMinusSrcAlpha)
}

// ClearColor sets the colour used by Clear. It always records a command.
func (q *Queue) ClearColor(rgba [4]float32) {
	record(q, clearColor{RGBA: rgba})
}

// ClearColorOf is like ClearColor but takes a colour in any colour space.
func (q *Queue) ClearColorOf(c *color.Color) {
	q.ClearColor(gfx.LinearRGBA(c))
}

func (q *Queue) Clear(colors, depth, stencil bool) {
	var mask gfx.ClearMask
	if colors {
		mask |= gfx.ClearColorBit
	}
	if depth {
		mask |= gfx.ClearDepthBit
	}
	if stencil {
		mask |= gfx.ClearStencilBit
	}
	record(q, clearBuffers{Mask: mask})
}

// ResetAllState forgets all remembered state and sets every piece of
// fixed-function state to its default.
func (q *Queue) ResetAllState() {
	defer q.Scope("default all state")()
	q.cem.reset()
	q.Viewport(gfx.Vec2i{}, gfx.Vec2i{})
	q.ScissorTest(false)
	q.CullFace(gfx.CullBack)
	q.Culling(false)
	q.DepthFuncLess()
	q.DepthTest(false)
	q.DepthWrite(true)
	q.ColorWrite(true)
	q.BlendFuncNone()
	q.Blending(false)
	q.ClearColor([4]float32{})
}

// Draw draws instances instances of the bound model.
func (q *Queue) Draw(instances uint32) {
	if debugChecks && q.bound.model == 0 {
		panic("renderer: drawing without a bound model")
	}
	q.draws++
	q.primitives += int(instances) * int(q.bound.primitives)
	record(q, draw{Instances: instances})
}

// Compute runs shader with the given number of work groups. shader becomes
// the current program.
func (q *Queue) Compute(shader gfx.Handle[gfx.ShaderProgram], groups gfx.Vec3i) {
	q.BindShader(shader)
	q.draws++
	record(q, compute{Shader: shader.Share(), Groups: groups})
}

func (q *Queue) MemoryBarrier(bits uint32) {
	record(q, memoryBarrier{Bits: bits})
}
