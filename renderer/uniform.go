// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"honnef.co/go/safeish"

	"honnef.co/go/renderqueue/gfx"
	"honnef.co/go/renderqueue/mem"
)

// UniformValue lists the types that can be written to shader uniforms.
type UniformValue interface {
	int32 | uint32 | float32 |
		[2]int32 | [3]int32 | [4]int32 |
		mgl32.Vec2 | mgl32.Vec3 | mgl32.Vec4 |
		mgl32.Quat | mgl32.Mat3 | mgl32.Mat4
}

func uniformKind[T UniformValue]() gfx.UniformKind {
	switch any(*new(T)).(type) {
	case int32:
		return gfx.UniformInt32
	case uint32:
		return gfx.UniformUint32
	case float32:
		return gfx.UniformFloat32
	case [2]int32:
		return gfx.UniformIVec2
	case [3]int32:
		return gfx.UniformIVec3
	case [4]int32:
		return gfx.UniformIVec4
	case mgl32.Vec2:
		return gfx.UniformVec2
	case mgl32.Vec3:
		return gfx.UniformVec3
	case mgl32.Vec4:
		return gfx.UniformVec4
	case mgl32.Quat:
		return gfx.UniformQuat
	case mgl32.Mat3:
		return gfx.UniformMat3
	case mgl32.Mat4:
		return gfx.UniformMat4
	default:
		panic("unreachable")
	}
}

// Uniform writes v to the uniform at location of shader.
func Uniform[T UniformValue](q *Queue, shader gfx.Handle[gfx.ShaderProgram], location uint32, v T) {
	UniformSlice(q, shader, location, []T{v})
}

// UniformSlice writes an array of values, starting at location. Quaternions
// are written as vec4 in x, y, z, w order.
func UniformSlice[T UniformValue](q *Queue, shader gfx.Handle[gfx.ShaderProgram], location uint32, vs []T) {
	kind := uniformKind[T]()
	var data []byte
	if qs, ok := any(vs).([]mgl32.Quat); ok {
		vecs := mem.NewSlice[[]mgl32.Vec4](q.arena, len(qs), len(qs))
		for i, quat := range qs {
			vecs[i] = quat.V.Vec4(quat.W)
		}
		data = safeish.SliceCast[[]byte](vecs)
	} else {
		data = q.copyBytes(safeish.SliceCast[[]byte](vs))
	}
	record(q, setUniform{
		Shader:   shader.Share(),
		Location: location,
		Kind:     kind,
		Count:    len(vs),
		Data:     data,
	})
}
