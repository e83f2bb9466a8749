// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import "fmt"

type CullFace uint8

const (
	CullBack CullFace = iota
	CullFront
)

func (f CullFace) String() string {
	switch f {
	case CullBack:
		return "Back"
	case CullFront:
		return "Front"
	default:
		return fmt.Sprintf("CullFace(%d)", f)
	}
}

// CompareFunc is a depth comparison function.
type CompareFunc uint8

const (
	CompareLess CompareFunc = iota
	CompareNever
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

var compareFuncNames = [...]string{
	CompareLess:         "Less",
	CompareNever:        "Never",
	CompareEqual:        "Equal",
	CompareLessEqual:    "LessEqual",
	CompareGreater:      "Greater",
	CompareNotEqual:     "NotEqual",
	CompareGreaterEqual: "GreaterEqual",
	CompareAlways:       "Always",
}

func (f CompareFunc) String() string {
	if int(f) < len(compareFuncNames) {
		return compareFuncNames[f]
	}
	return fmt.Sprintf("CompareFunc(%d)", f)
}

// Capability is a server-side toggle of the API.
type Capability uint8

const (
	CapScissorTest Capability = iota
	CapCullFace
	CapDepthTest
	CapBlend
)

func (c Capability) String() string {
	switch c {
	case CapScissorTest:
		return "ScissorTest"
	case CapCullFace:
		return "CullFace"
	case CapDepthTest:
		return "DepthTest"
	case CapBlend:
		return "Blend"
	default:
		return fmt.Sprintf("Capability(%d)", c)
	}
}

type ClearMask uint8

const (
	ClearColorBit ClearMask = 1 << iota
	ClearDepthBit
	ClearStencilBit
)

// Vec2i is an integer 2D vector, used for origins and sizes.
type Vec2i [2]int32

// Vec3i is an integer 3D vector, used for texture sizes and compute groups.
type Vec3i [3]int32
