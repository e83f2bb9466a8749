// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import "fmt"

// BlendFactor is a source or destination factor of the blend equation.
//
// The zero value is BlendZero so that a zeroed blend state disables the
// destination, matching the API's defaults for the destination factor.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

var blendFactorNames = [...]string{
	BlendZero:             "Zero",
	BlendOne:              "One",
	BlendSrcColor:         "SrcColor",
	BlendOneMinusSrcColor: "OneMinusSrcColor",
	BlendDstColor:         "DstColor",
	BlendOneMinusDstColor: "OneMinusDstColor",
	BlendSrcAlpha:         "SrcAlpha",
	BlendOneMinusSrcAlpha: "OneMinusSrcAlpha",
	BlendDstAlpha:         "DstAlpha",
	BlendOneMinusDstAlpha: "OneMinusDstAlpha",
}

func (f BlendFactor) String() string {
	if int(f) < len(blendFactorNames) {
		return blendFactorNames[f]
	}
	return fmt.Sprintf("BlendFactor(%d)", f)
}
