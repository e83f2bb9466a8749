// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gl_engine

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"honnef.co/go/renderqueue/gfx"
)

var capabilities = [...]uint32{
	gfx.CapScissorTest: gl.SCISSOR_TEST,
	gfx.CapCullFace:    gl.CULL_FACE,
	gfx.CapDepthTest:   gl.DEPTH_TEST,
	gfx.CapBlend:       gl.BLEND,
}

var cullFaces = [...]uint32{
	gfx.CullBack:  gl.BACK,
	gfx.CullFront: gl.FRONT,
}

var compareFuncs = [...]uint32{
	gfx.CompareLess:         gl.LESS,
	gfx.CompareNever:        gl.NEVER,
	gfx.CompareEqual:        gl.EQUAL,
	gfx.CompareLessEqual:    gl.LEQUAL,
	gfx.CompareGreater:      gl.GREATER,
	gfx.CompareNotEqual:     gl.NOTEQUAL,
	gfx.CompareGreaterEqual: gl.GEQUAL,
	gfx.CompareAlways:       gl.ALWAYS,
}

var blendFactors = [...]uint32{
	gfx.BlendZero:             gl.ZERO,
	gfx.BlendOne:              gl.ONE,
	gfx.BlendSrcColor:         gl.SRC_COLOR,
	gfx.BlendOneMinusSrcColor: gl.ONE_MINUS_SRC_COLOR,
	gfx.BlendDstColor:         gl.DST_COLOR,
	gfx.BlendOneMinusDstColor: gl.ONE_MINUS_DST_COLOR,
	gfx.BlendSrcAlpha:         gl.SRC_ALPHA,
	gfx.BlendOneMinusSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
	gfx.BlendDstAlpha:         gl.DST_ALPHA,
	gfx.BlendOneMinusDstAlpha: gl.ONE_MINUS_DST_ALPHA,
}

var bufferUsages = [...]uint32{
	gfx.UsageStatic:  gl.STATIC_DRAW,
	gfx.UsageDynamic: gl.DYNAMIC_DRAW,
	gfx.UsageStream:  gl.STREAM_DRAW,
}

func clearBits(mask gfx.ClearMask) uint32 {
	var bits uint32
	if mask&gfx.ClearColorBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gfx.ClearDepthBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&gfx.ClearStencilBit != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	return bits
}
