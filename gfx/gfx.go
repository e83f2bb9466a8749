// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package gfx describes the graphics objects a render queue talks to.
//
// Everything in this package is a contract: the queue records calls against
// these interfaces and replays them on the goroutine that owns the graphics
// context. Concrete implementations live in the engine packages, or in the
// embedding application for shader programs, models, textures and
// framebuffers.
package gfx

import "fmt"

// Device exposes the context-wide state of an immediate-mode graphics API.
// All methods must be called from the goroutine that owns the context.
type Device interface {
	Viewport(x, y, width, height int32)
	Scissor(x, y, width, height int32)
	SetEnabled(cap Capability, enable bool)
	CullFace(face CullFace)
	DepthFunc(fn CompareFunc)
	DepthMask(enable bool)
	ColorMask(enable bool)
	BlendFunc(src, dst BlendFactor)
	ClearColor(rgba [4]float32)
	Clear(mask ClearMask)

	PushDebugGroup(name string)
	PopDebugGroup()

	// BindDefaultFrameBuffer makes the window's framebuffer current.
	BindDefaultFrameBuffer()
	ActiveTexture(unit uint32)
	// UnbindTextures unbinds every texture target of the first units units and
	// leaves unit 0 active.
	UnbindTextures(units int)
	MemoryBarrier(bits uint32)

	NewUniformBuffer(label string) (UniformBuffer, error)

	// Error returns and clears the API's pending error, if any.
	Error() error
}

// AlignmentSource reports the minimum offset alignment of uniform buffer
// bindings. Queues call it while recording, on any goroutine, so it must not
// use the context.
type AlignmentSource interface {
	UniformAlignment() uint32
}

type ShaderProgram interface {
	Bind()
	// SetUniform writes count values of the given kind, packed in data, to
	// the uniform at location.
	SetUniform(location uint32, kind UniformKind, count int, data []byte)
	Compute(groups Vec3i)
}

type Model interface {
	Bind()
	Draw(instances uint32)
	PrimitiveCount() uint32
}

type FrameBuffer interface {
	Bind()
	DepthTexture(tex Texture)
	ColorTexture(index uint32, tex Texture, mipmapLevel uint32)
	ActiveAttachments(mask uint32)
	Clear()
	CheckStatus() error
}

type UniformBuffer interface {
	// Bind makes the buffer the target of subsequent writes.
	Bind()
	BindBase(bindingPoint uint32)
	BindRange(bindingPoint, offset, size uint32)
	// WriteWhole replaces the buffer's storage with data.
	WriteWhole(data []byte, usage BufferUsage)
	// WriteRange overwrites part of the existing storage.
	WriteRange(data []byte, offset uint32)
	Size() uint32
	Release()
}

// BufferUsage hints at how often a buffer's contents change.
type BufferUsage uint8

const (
	UsageStatic BufferUsage = iota
	UsageDynamic
	UsageStream
)

// Releaser is implemented by resources that hold API objects which have to
// be destroyed explicitly.
type Releaser interface {
	Release()
}

type UniformKind uint8

const (
	UniformInt32 UniformKind = iota + 1
	UniformUint32
	UniformFloat32
	UniformIVec2
	UniformIVec3
	UniformIVec4
	UniformVec2
	UniformVec3
	UniformVec4
	UniformQuat
	UniformMat3
	UniformMat4
)

var uniformKindNames = [...]string{
	UniformInt32:   "int32",
	UniformUint32:  "uint32",
	UniformFloat32: "float32",
	UniformIVec2:   "ivec2",
	UniformIVec3:   "ivec3",
	UniformIVec4:   "ivec4",
	UniformVec2:    "vec2",
	UniformVec3:    "vec3",
	UniformVec4:    "vec4",
	UniformQuat:    "quat",
	UniformMat3:    "mat3",
	UniformMat4:    "mat4",
}

func (k UniformKind) String() string {
	if k > 0 && int(k) < len(uniformKindNames) {
		return uniformKindNames[k]
	}
	return fmt.Sprintf("UniformKind(%d)", k)
}

// Size returns the size in bytes of a single value of kind k.
func (k UniformKind) Size() int {
	switch k {
	case UniformInt32, UniformUint32, UniformFloat32:
		return 4
	case UniformIVec2, UniformVec2:
		return 8
	case UniformIVec3, UniformVec3:
		return 12
	case UniformIVec4, UniformVec4, UniformQuat:
		return 16
	case UniformMat3:
		return 36
	case UniformMat4:
		return 64
	default:
		panic(fmt.Sprintf("invalid uniform kind %d", k))
	}
}
