// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package wgpu_engine

import (
	"honnef.co/go/wgpu"

	"honnef.co/go/renderqueue/gfx"
)

// PipelineState is the fixed-function state set through a Device. WebGPU
// bakes this state into pipelines and render passes, so instead of applying
// it, the device records it here. Pipeline and pass construction uses the
// descriptors returned by the methods below.
type PipelineState struct {
	Viewport    [4]int32
	Scissor     [4]int32
	ScissorTest bool

	Culling  bool
	CullFace gfx.CullFace

	DepthTest  bool
	DepthFunc  gfx.CompareFunc
	DepthWrite bool

	ColorWrite bool
	Blending   bool
	BlendSrc   gfx.BlendFactor
	BlendDst   gfx.BlendFactor

	ClearColor [4]float32

	// Generation changes whenever a field that ends up in a pipeline
	// descriptor changes. Pipeline caches key on it.
	Generation uint64
}

// DefaultPipelineState returns the state of a fresh OpenGL context.
func DefaultPipelineState() PipelineState {
	return PipelineState{
		CullFace:   gfx.CullBack,
		DepthFunc:  gfx.CompareLess,
		DepthWrite: true,
		ColorWrite: true,
		BlendSrc:   gfx.BlendOne,
		BlendDst:   gfx.BlendZero,
	}
}

var cullModes = [...]wgpu.CullMode{
	gfx.CullBack:  wgpu.CullModeBack,
	gfx.CullFront: wgpu.CullModeFront,
}

var compareFunctions = [...]wgpu.CompareFunction{
	gfx.CompareLess:         wgpu.CompareFunctionLess,
	gfx.CompareNever:        wgpu.CompareFunctionNever,
	gfx.CompareEqual:        wgpu.CompareFunctionEqual,
	gfx.CompareLessEqual:    wgpu.CompareFunctionLessEqual,
	gfx.CompareGreater:      wgpu.CompareFunctionGreater,
	gfx.CompareNotEqual:     wgpu.CompareFunctionNotEqual,
	gfx.CompareGreaterEqual: wgpu.CompareFunctionGreaterEqual,
	gfx.CompareAlways:       wgpu.CompareFunctionAlways,
}

var blendFactors = [...]wgpu.BlendFactor{
	gfx.BlendZero:             wgpu.BlendFactorZero,
	gfx.BlendOne:              wgpu.BlendFactorOne,
	gfx.BlendSrcColor:         wgpu.BlendFactorSrc,
	gfx.BlendOneMinusSrcColor: wgpu.BlendFactorOneMinusSrc,
	gfx.BlendDstColor:         wgpu.BlendFactorDst,
	gfx.BlendOneMinusDstColor: wgpu.BlendFactorOneMinusDst,
	gfx.BlendSrcAlpha:         wgpu.BlendFactorSrcAlpha,
	gfx.BlendOneMinusSrcAlpha: wgpu.BlendFactorOneMinusSrcAlpha,
	gfx.BlendDstAlpha:         wgpu.BlendFactorDstAlpha,
	gfx.BlendOneMinusDstAlpha: wgpu.BlendFactorOneMinusDstAlpha,
}

// PrimitiveState returns the primitive state for triangle lists.
func (s *PipelineState) PrimitiveState() wgpu.PrimitiveState {
	mode := wgpu.CullModeNone
	if s.Culling {
		mode = cullModes[s.CullFace]
	}
	return wgpu.PrimitiveState{
		Topology:         wgpu.PrimitiveTopologyTriangleList,
		StripIndexFormat: ^wgpu.IndexFormat(0),
		FrontFace:        wgpu.FrontFaceCCW,
		CullMode:         mode,
	}
}

// DepthStencilState returns the depth state for a depth attachment of the
// given format. As in OpenGL, a disabled depth test also disables depth
// writes.
func (s *PipelineState) DepthStencilState(format wgpu.TextureFormat) *wgpu.DepthStencilState {
	compare := wgpu.CompareFunctionAlways
	if s.DepthTest {
		compare = compareFunctions[s.DepthFunc]
	}
	keep := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}
	return &wgpu.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: s.DepthTest && s.DepthWrite,
		DepthCompare:      compare,
		StencilFront:      keep,
		StencilBack:       keep,
	}
}

// ColorTargetState returns the state of a color attachment of the given
// format.
func (s *PipelineState) ColorTargetState(format wgpu.TextureFormat) wgpu.ColorTargetState {
	out := wgpu.ColorTargetState{
		Format:    format,
		WriteMask: wgpu.ColorWriteMaskNone,
	}
	if s.ColorWrite {
		out.WriteMask = wgpu.ColorWriteMaskAll
	}
	if s.Blending {
		c := wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: blendFactors[s.BlendSrc],
			DstFactor: blendFactors[s.BlendDst],
		}
		out.Blend = &wgpu.BlendState{Color: c, Alpha: c}
	}
	return out
}

// ScissorRect returns the rectangle to pass to SetScissorRect. Without the
// scissor test, it is the viewport.
func (s *PipelineState) ScissorRect() (x, y, width, height uint32) {
	r := s.Viewport
	if s.ScissorTest {
		r = s.Scissor
	}
	return uint32(max(r[0], 0)), uint32(max(r[1], 0)), uint32(max(r[2], 0)), uint32(max(r[3], 0))
}

func (s *PipelineState) ClearValue() wgpu.Color {
	return wgpu.Color{
		R: float64(s.ClearColor[0]),
		G: float64(s.ClearColor[1]),
		B: float64(s.ClearColor[2]),
		A: float64(s.ClearColor[3]),
	}
}
