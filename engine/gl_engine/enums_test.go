// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gl_engine

import (
	"testing"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/stretchr/testify/assert"

	"honnef.co/go/renderqueue/gfx"
)

func TestEnumTables(t *testing.T) {
	assert.Len(t, capabilities, int(gfx.CapBlend)+1)
	assert.Len(t, cullFaces, int(gfx.CullFront)+1)
	assert.Len(t, compareFuncs, int(gfx.CompareAlways)+1)
	assert.Len(t, blendFactors, int(gfx.BlendOneMinusDstAlpha)+1)
	assert.Len(t, bufferUsages, int(gfx.UsageStream)+1)

	for i, v := range compareFuncs {
		assert.NotZero(t, v, "compare func %s", gfx.CompareFunc(i))
	}
	for i, v := range blendFactors {
		if gfx.BlendFactor(i) == gfx.BlendZero {
			continue
		}
		assert.NotZero(t, v, "blend factor %s", gfx.BlendFactor(i))
	}

	assert.Equal(t, uint32(gl.LEQUAL), compareFuncs[gfx.CompareLessEqual])
	assert.Equal(t, uint32(gl.ONE_MINUS_SRC_ALPHA), blendFactors[gfx.BlendOneMinusSrcAlpha])
	assert.Equal(t, uint32(gl.STREAM_DRAW), bufferUsages[gfx.UsageStream])
}

func TestClearBits(t *testing.T) {
	assert.Zero(t, clearBits(0))
	assert.Equal(t, uint32(gl.COLOR_BUFFER_BIT|gl.DEPTH_BUFFER_BIT),
		clearBits(gfx.ClearColorBit|gfx.ClearDepthBit))
	assert.Equal(t, uint32(gl.STENCIL_BUFFER_BIT), clearBits(gfx.ClearStencilBit))
}
