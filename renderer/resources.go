// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"fmt"

	"honnef.co/go/renderqueue/gfx"
)

// BindShader makes shader the current program. The queue takes its own
// reference to shader; the caller keeps theirs.
func (q *Queue) BindShader(shader gfx.Handle[gfx.ShaderProgram]) {
	checkValid(shader)
	if q.bound.shader == shader.ID() {
		return
	}
	q.bound.shader = shader.ID()
	record(q, bindShader{Shader: shader.Share()})
}

// BindModel makes model the current model. primitives is the model's number
// of primitives per instance, used for statistics. Debug builds check it
// against the model's PrimitiveCount when dispatching.
func (q *Queue) BindModel(model gfx.Handle[gfx.Model], primitives uint32) {
	checkValid(model)
	if q.bound.model == model.ID() {
		return
	}
	q.bound.model = model.ID()
	q.bound.primitives = primitives
	record(q, bindModel{Model: model.Share(), Primitives: primitives})
}

// BindTexture binds tex to a texture unit. If that records a command, the
// unit also becomes the active unit.
func (q *Queue) BindTexture(tex gfx.Handle[gfx.Texture], unit uint32) {
	checkValid(tex)
	if debugChecks && unit >= gfx.MaxTextureUnits {
		panic(fmt.Sprintf("renderer: texture unit %d out of range", unit))
	}
	if q.bound.textures[unit] == tex.ID() {
		return
	}
	q.bound.textures[unit] = tex.ID()
	q.bound.activeUnit = unit + 1
	record(q, bindTexture{Texture: tex.Share(), Unit: unit})
}

func (q *Queue) ActiveTexture(unit uint32) {
	if q.bound.activeUnit == unit+1 {
		return
	}
	q.bound.activeUnit = unit + 1
	record(q, activeTexture{Unit: unit})
}

func (q *Queue) BindFrameBuffer(fb gfx.Handle[gfx.FrameBuffer]) {
	checkValid(fb)
	if q.bound.frameBuffer == fb.ID() {
		return
	}
	q.bound.frameBuffer = fb.ID()
	record(q, bindFrameBuffer{FrameBuffer: fb.Share()})
}

// ResetFrameBuffer binds the default framebuffer.
func (q *Queue) ResetFrameBuffer() {
	q.bound.frameBuffer = 0
	record(q, resetFrameBuffer{})
}

// BindUniformBuffer makes ub the target of WriteWhole and WriteRange.
func (q *Queue) BindUniformBuffer(ub gfx.Handle[gfx.UniformBuffer]) {
	record(q, bindUniformBuffer{Buffer: ub.Share(), Kind: bindForWrite})
}

// BindUniformBufferPoint binds all of ub to a binding point. It also becomes
// the target of writes.
func (q *Queue) BindUniformBufferPoint(ub gfx.Handle[gfx.UniformBuffer], bindingPoint uint32) {
	record(q, bindUniformBuffer{Buffer: ub.Share(), Kind: bindBase, Point: bindingPoint})
}

// BindUniformBufferRange binds part of ub to a binding point. It also becomes
// the target of writes.
func (q *Queue) BindUniformBufferRange(ub gfx.Handle[gfx.UniformBuffer], bindingPoint, offset, size uint32) {
	record(q, bindUniformBuffer{
		Buffer: ub.Share(),
		Kind:   bindRange,
		Point:  bindingPoint,
		Offset: offset,
		Size:   size,
	})
}

// WriteWhole replaces the contents of the bound uniform buffer with a copy of
// data.
func (q *Queue) WriteWhole(data []byte, usage gfx.BufferUsage) {
	record(q, writeWhole{Data: q.copyBytes(data), Usage: usage})
}

// WriteRange writes a copy of data to the bound uniform buffer.
func (q *Queue) WriteRange(data []byte, offset uint32) {
	record(q, writeRange{Data: q.copyBytes(data), Offset: offset})
}

func (q *Queue) DepthTexture(fb gfx.Handle[gfx.FrameBuffer], tex gfx.Handle[gfx.Texture]) {
	record(q, attachDepth{FrameBuffer: fb.Share(), Texture: tex.Share()})
}

func (q *Queue) ColorTexture(fb gfx.Handle[gfx.FrameBuffer], index uint32, tex gfx.Handle[gfx.Texture], mipLevel uint32) {
	record(q, attachColor{FrameBuffer: fb.Share(), Index: index, Texture: tex.Share(), MipLevel: mipLevel})
}

func (q *Queue) ActiveAttachments(fb gfx.Handle[gfx.FrameBuffer], mask uint32) {
	record(q, activeAttachments{FrameBuffer: fb.Share(), Mask: mask})
}

func (q *Queue) ClearFrameBuffer(fb gfx.Handle[gfx.FrameBuffer]) {
	record(q, clearFrameBuffer{FrameBuffer: fb.Share()})
}

// CheckFrameBuffer makes Dispatch fail if fb is incomplete.
func (q *Queue) CheckFrameBuffer(fb gfx.Handle[gfx.FrameBuffer]) {
	record(q, checkFrameBuffer{FrameBuffer: fb.Share()})
}

// Image2D allocates storage for a 2D texture.
func (q *Queue) Image2D(tex gfx.Handle[gfx.Texture], size gfx.Vec2i, mipmapLevels, internalFormat uint32) {
	record(q, image2D{Texture: tex.Share(), Size: size, Mips: mipmapLevels, Format: internalFormat})
}

// Image3D allocates storage for a 3D texture.
func (q *Queue) Image3D(tex gfx.Handle[gfx.Texture], size gfx.Vec3i, mipmapLevels, internalFormat uint32) {
	record(q, image3D{Texture: tex.Share(), Size: size, Mips: mipmapLevels, Format: internalFormat})
}

func (q *Queue) Filters(tex gfx.Handle[gfx.Texture], min, mag, anisotropy uint32) {
	record(q, textureFilters{Texture: tex.Share(), Min: min, Mag: mag, Anisotropy: anisotropy})
}

// Wraps sets the wrap modes of tex. r is ignored by textures with fewer than
// three dimensions.
func (q *Queue) Wraps(tex gfx.Handle[gfx.Texture], s, t, r uint32) {
	record(q, textureWraps{Texture: tex.Share(), S: s, T: t, R: r})
}

func (q *Queue) GenerateMipmaps(tex gfx.Handle[gfx.Texture]) {
	record(q, generateMipmaps{Texture: tex.Share()})
}

// BindImage binds tex as an image, for loads and stores from shaders.
func (q *Queue) BindImage(tex gfx.Handle[gfx.Texture], unit uint32, read, write bool) {
	record(q, bindImage{Texture: tex.Share(), Unit: unit, Read: read, Write: write})
}

// ResetAllTextures unbinds the textures of all units.
func (q *Queue) ResetAllTextures() {
	defer q.Scope("reset all textures")()
	q.bound.resetTextures()
	record(q, resetAllTextures{})
}

func checkValid[T any](h gfx.Handle[T]) {
	if debugChecks && !h.Valid() {
		panic(fmt.Sprintf("renderer: binding invalid %T", h))
	}
}
