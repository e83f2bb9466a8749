// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"fmt"
	"strings"

	"honnef.co/go/renderqueue/gfx"
)

// command is a recorded unit of work. The set of commands is closed;
// dispatch.go replays them with a type switch.
type command interface {
	isCommand()
}

// releaser is implemented by commands that hold references to resources.
type releaser interface {
	release()
}

func (*bindShader) isCommand()        {}
func (*bindModel) isCommand()         {}
func (*bindTexture) isCommand()       {}
func (*activeTexture) isCommand()     {}
func (*bindFrameBuffer) isCommand()   {}
func (*resetFrameBuffer) isCommand()  {}
func (*bindUniformBuffer) isCommand() {}
func (*writeWhole) isCommand()        {}
func (*writeRange) isCommand()        {}
func (*bindUUB) isCommand()           {}
func (*setUniform) isCommand()        {}
func (*attachDepth) isCommand()       {}
func (*attachColor) isCommand()       {}
func (*activeAttachments) isCommand() {}
func (*clearFrameBuffer) isCommand()  {}
func (*checkFrameBuffer) isCommand()  {}
func (*image2D) isCommand()           {}
func (*image3D) isCommand()           {}
func (*textureFilters) isCommand()    {}
func (*textureWraps) isCommand()      {}
func (*generateMipmaps) isCommand()   {}
func (*bindImage) isCommand()         {}
func (*resetAllTextures) isCommand()  {}
func (*viewport) isCommand()          {}
func (*scissor) isCommand()           {}
func (*toggle) isCommand()            {}
func (*cullFace) isCommand()          {}
func (*depthFunc) isCommand()         {}
func (*depthWrite) isCommand()        {}
func (*colorWrite) isCommand()        {}
func (*blendFunc) isCommand()         {}
func (*clearColor) isCommand()        {}
func (*clearBuffers) isCommand()      {}
func (*draw) isCommand()              {}
func (*compute) isCommand()           {}
func (*memoryBarrier) isCommand()     {}
func (*pushScope) isCommand()         {}
func (*popScope) isCommand()          {}
func (*enqueue) isCommand()           {}
func (*custom) isCommand()            {}
func (*checkError) isCommand()        {}

type bindShader struct {
	Shader gfx.Handle[gfx.ShaderProgram]
}

type bindModel struct {
	Model      gfx.Handle[gfx.Model]
	Primitives uint32
}

type bindTexture struct {
	Texture gfx.Handle[gfx.Texture]
	Unit    uint32
}

type activeTexture struct {
	Unit uint32
}

type bindFrameBuffer struct {
	FrameBuffer gfx.Handle[gfx.FrameBuffer]
}

type resetFrameBuffer struct{}

type bindKind uint8

const (
	// target of writes
	bindForWrite bindKind = iota
	bindBase
	bindRange
)

type bindUniformBuffer struct {
	Buffer gfx.Handle[gfx.UniformBuffer]
	Kind   bindKind
	Point  uint32
	Offset uint32
	Size   uint32
}

type writeWhole struct {
	Data  []byte
	Usage gfx.BufferUsage
}

type writeRange struct {
	Data   []byte
	Offset uint32
}

type bindUUB struct {
	Range UubRange
	Point uint32
}

type setUniform struct {
	Shader   gfx.Handle[gfx.ShaderProgram]
	Location uint32
	Kind     gfx.UniformKind
	Count    int
	Data     []byte
}

type attachDepth struct {
	FrameBuffer gfx.Handle[gfx.FrameBuffer]
	Texture     gfx.Handle[gfx.Texture]
}

type attachColor struct {
	FrameBuffer gfx.Handle[gfx.FrameBuffer]
	Index       uint32
	Texture     gfx.Handle[gfx.Texture]
	MipLevel    uint32
}

type activeAttachments struct {
	FrameBuffer gfx.Handle[gfx.FrameBuffer]
	Mask        uint32
}

type clearFrameBuffer struct {
	FrameBuffer gfx.Handle[gfx.FrameBuffer]
}

type checkFrameBuffer struct {
	FrameBuffer gfx.Handle[gfx.FrameBuffer]
}

type image2D struct {
	Texture gfx.Handle[gfx.Texture]
	Size    gfx.Vec2i
	Mips    uint32
	Format  uint32
}

type image3D struct {
	Texture gfx.Handle[gfx.Texture]
	Size    gfx.Vec3i
	Mips    uint32
	Format  uint32
}

type textureFilters struct {
	Texture    gfx.Handle[gfx.Texture]
	Min, Mag   uint32
	Anisotropy uint32
}

type textureWraps struct {
	Texture gfx.Handle[gfx.Texture]
	S, T, R uint32
}

type generateMipmaps struct {
	Texture gfx.Handle[gfx.Texture]
}

type bindImage struct {
	Texture     gfx.Handle[gfx.Texture]
	Unit        uint32
	Read, Write bool
}

type resetAllTextures struct{}

type viewport struct {
	Origin, Size gfx.Vec2i
}

type scissor struct {
	Origin, Size gfx.Vec2i
}

type toggle struct {
	Cap    gfx.Capability
	Enable bool
}

type cullFace struct {
	Face gfx.CullFace
}

type depthFunc struct {
	Func gfx.CompareFunc
}

type depthWrite struct {
	Enable bool
}

type colorWrite struct {
	Enable bool
}

type blendFunc struct {
	Src, Dst gfx.BlendFactor
}

type clearColor struct {
	RGBA [4]float32
}

type clearBuffers struct {
	Mask gfx.ClearMask
}

type draw struct {
	Instances uint32
}

type compute struct {
	Shader gfx.Handle[gfx.ShaderProgram]
	Groups gfx.Vec3i
}

type memoryBarrier struct {
	Bits uint32
}

type pushScope struct {
	Name string
}

type popScope struct{}

type enqueue struct {
	Queue *Queue
}

// CustomFunc is the callback of a custom command. data is the queue's copy of
// the bytes passed to Custom.
type CustomFunc func(r *gfx.Resolver, data []byte) error

type custom struct {
	Fn             CustomFunc
	Data           []byte
	PreservesState bool
}

type checkError struct {
	// Only log errors instead of failing the dispatch.
	LogOnly bool
}

func (cmd *bindShader) release()        { cmd.Shader.Release() }
func (cmd *bindModel) release()         { cmd.Model.Release() }
func (cmd *bindTexture) release()       { cmd.Texture.Release() }
func (cmd *bindFrameBuffer) release()   { cmd.FrameBuffer.Release() }
func (cmd *bindUniformBuffer) release() { cmd.Buffer.Release() }
func (cmd *setUniform) release()        { cmd.Shader.Release() }
func (cmd *attachDepth) release() {
	cmd.FrameBuffer.Release()
	cmd.Texture.Release()
}
func (cmd *attachColor) release() {
	cmd.FrameBuffer.Release()
	cmd.Texture.Release()
}
func (cmd *activeAttachments) release() { cmd.FrameBuffer.Release() }
func (cmd *clearFrameBuffer) release()  { cmd.FrameBuffer.Release() }
func (cmd *checkFrameBuffer) release()  { cmd.FrameBuffer.Release() }
func (cmd *image2D) release()           { cmd.Texture.Release() }
func (cmd *image3D) release()           { cmd.Texture.Release() }
func (cmd *textureFilters) release()    { cmd.Texture.Release() }
func (cmd *textureWraps) release()      { cmd.Texture.Release() }
func (cmd *generateMipmaps) release()   { cmd.Texture.Release() }
func (cmd *bindImage) release()         { cmd.Texture.Release() }
func (cmd *compute) release()           { cmd.Shader.Release() }

// commandName returns a human readable name of cmd's type, for error
// messages.
func commandName(cmd command) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", cmd), "*renderer.")
}
