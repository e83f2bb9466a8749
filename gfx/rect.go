// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import (
	"math"

	"honnef.co/go/curve"
)

// RectToInts returns the origin and size of the smallest integer rectangle
// containing r. Inverted rectangles are normalized first.
func RectToInts(r curve.Rect) (origin, size Vec2i) {
	x0, x1 := math.Min(r.X0, r.X1), math.Max(r.X0, r.X1)
	y0, y1 := math.Min(r.Y0, r.Y1), math.Max(r.Y0, r.Y1)
	ix0 := int32(math.Floor(x0))
	iy0 := int32(math.Floor(y0))
	ix1 := int32(math.Ceil(x1))
	iy1 := int32(math.Ceil(y1))
	return Vec2i{ix0, iy0}, Vec2i{ix1 - ix0, iy1 - iy0}
}
