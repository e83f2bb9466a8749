// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package wgpu_engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/wgpu"

	"honnef.co/go/renderqueue/gfx"
	"honnef.co/go/renderqueue/renderer"
)

func TestPoolSizeClass(t *testing.T) {
	tests := []struct {
		in, out uint64
	}{
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 3},
		{4, 4},
		{5, 6},
		{7, 8},
		{9, 12},
		{13, 16},
		{96, 96},
		{97, 128},
		{700, 768},
		{1000, 1024},
		{1 << 20, 1 << 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, poolSizeClass(tt.in, 1), "poolSizeClass(%d)", tt.in)
	}
}

func TestDefaultState(t *testing.T) {
	d := New(nil, nil, Options{})
	assert.Equal(t, uint32(256), d.UniformAlignment())
	assert.Equal(t, uint32(64), New(nil, nil, Options{UniformAlignment: 64}).UniformAlignment())

	s := d.State
	assert.Equal(t, wgpu.CullModeNone, s.PrimitiveState().CullMode)
	ds := s.DepthStencilState(wgpu.TextureFormatDepth24Plus)
	assert.Equal(t, wgpu.CompareFunctionAlways, ds.DepthCompare)
	assert.False(t, ds.DepthWriteEnabled)
	ct := s.ColorTargetState(wgpu.TextureFormatRGBA8Unorm)
	assert.Nil(t, ct.Blend)
	assert.Equal(t, wgpu.ColorWriteMaskAll, ct.WriteMask)
	assert.True(t, d.TargetsDefault())
}

func TestStateTracking(t *testing.T) {
	d := New(nil, nil, Options{})
	gen := d.State.Generation

	d.SetEnabled(gfx.CapCullFace, true)
	d.CullFace(gfx.CullFront)
	d.SetEnabled(gfx.CapDepthTest, true)
	d.DepthFunc(gfx.CompareLessEqual)
	d.SetEnabled(gfx.CapBlend, true)
	d.BlendFunc(gfx.BlendSrcAlpha, gfx.BlendOneMinusSrcAlpha)
	d.ColorMask(false)
	assert.Greater(t, d.State.Generation, gen)

	assert.Equal(t, wgpu.CullModeFront, d.State.PrimitiveState().CullMode)
	ds := d.State.DepthStencilState(wgpu.TextureFormatDepth24Plus)
	assert.Equal(t, wgpu.CompareFunctionLessEqual, ds.DepthCompare)
	assert.True(t, ds.DepthWriteEnabled)

	ct := d.State.ColorTargetState(wgpu.TextureFormatRGBA8Unorm)
	require.NotNil(t, ct.Blend)
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, ct.Blend.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, ct.Blend.Alpha.DstFactor)
	assert.Equal(t, wgpu.ColorWriteMaskNone, ct.WriteMask)

	// Viewport and scissor don't affect pipelines.
	gen = d.State.Generation
	d.Viewport(0, 0, 800, 600)
	d.Scissor(10, 20, 30, 40)
	assert.Equal(t, gen, d.State.Generation)

	x, y, w, h := d.State.ScissorRect()
	assert.Equal(t, [4]uint32{0, 0, 800, 600}, [4]uint32{x, y, w, h})
	d.SetEnabled(gfx.CapScissorTest, true)
	x, y, w, h = d.State.ScissorRect()
	assert.Equal(t, [4]uint32{10, 20, 30, 40}, [4]uint32{x, y, w, h})
}

func TestClear(t *testing.T) {
	d := New(nil, nil, Options{})
	d.ClearColor([4]float32{1, 0.5, 0, 1})
	d.Clear(gfx.ClearColorBit)
	d.Clear(gfx.ClearDepthBit)
	mask, c := d.TakeClear()
	assert.Equal(t, gfx.ClearColorBit|gfx.ClearDepthBit, mask)
	assert.Equal(t, wgpu.Color{R: 1, G: 0.5, B: 0, A: 1}, c)
	mask, _ = d.TakeClear()
	assert.Zero(t, mask)
}

func TestDebugGroupsAndErrors(t *testing.T) {
	d := New(nil, nil, Options{})
	d.PushDebugGroup("frame")
	d.PushDebugGroup("shadows")
	assert.Equal(t, "frame/shadows", d.Label())
	d.PopDebugGroup()
	d.PopDebugGroup()
	assert.NoError(t, d.Error())

	d.PopDebugGroup()
	d.ActiveTexture(gfx.MaxTextureUnits)
	err := d.Error()
	var gerr *gfx.GraphicsError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, uint32(codeStackUnderflow), gerr.Code)
	assert.Equal(t, "PopDebugGroup", gerr.Op)
	assert.NoError(t, d.Error())
}

func TestUniformBufferWithoutStorage(t *testing.T) {
	d := New(nil, nil, Options{Label: "test "})
	gub, err := d.NewUniformBuffer("UUB")
	require.NoError(t, err)
	ub := gub.(*UniformBuffer)
	assert.Equal(t, "test UUB", ub.label)
	assert.Zero(t, ub.Size())

	ub.BindBase(3)
	b, ok := d.UniformBinding(3)
	require.True(t, ok)
	assert.Same(t, ub, b.Buffer)
	assert.Same(t, ub, d.WriteTarget())
	assert.Equal(t, ^uint64(0), b.Entry(3).Size)

	ub.BindRange(4, 256, 64)
	b, _ = d.UniformBinding(4)
	assert.Equal(t, uint64(64), b.Entry(4).Size)
	assert.Equal(t, uint64(256), b.Entry(4).Offset)
	assert.NoError(t, d.Error())

	ub.BindRange(5, 3, 64)
	assert.Error(t, d.Error())

	ub.WriteRange([]byte{1}, 0)
	var gerr *gfx.GraphicsError
	require.ErrorAs(t, d.Error(), &gerr)
	assert.Equal(t, uint32(codeInvalidOperation), gerr.Code)

	ub.Release()
	assert.Zero(t, d.PooledBuffers())
}

func TestQueueRecordsIntoDevice(t *testing.T) {
	d := New(nil, nil, Options{})
	q := renderer.New(renderer.Options{Name: "wgpu", Alignment: d})
	q.Viewport(gfx.Vec2i{0, 0}, gfx.Vec2i{640, 480})
	q.DepthTest(true)
	q.DepthFuncLessEqual()
	q.Blending(true)
	q.BlendFuncPremultipliedTransparency()
	q.ClearColor([4]float32{0, 0, 0, 1})
	q.Clear(true, true, false)
	q.PushScope("scene")
	q.PopScope()
	require.NoError(t, q.Dispatch(d))

	assert.Equal(t, [4]int32{0, 0, 640, 480}, d.State.Viewport)
	assert.True(t, d.State.DepthTest)
	assert.Equal(t, gfx.CompareLessEqual, d.State.DepthFunc)
	ct := d.State.ColorTargetState(wgpu.TextureFormatBGRA8Unorm)
	require.NotNil(t, ct.Blend)
	assert.Equal(t, wgpu.BlendFactorOne, ct.Blend.Color.SrcFactor)
	mask, _ := d.TakeClear()
	assert.Equal(t, gfx.ClearColorBit|gfx.ClearDepthBit, mask)
	assert.Empty(t, d.Label())
}
