// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

// Texture is an image resource. Formats, filters and wrap modes are the
// underlying API's enumerants and are passed through untouched.
type Texture interface {
	Bind(unit uint32)
	BindImage(unit uint32, read, write bool)
	Initialize2D(size Vec2i, mipmapLevels uint32, internalFormat uint32)
	Initialize3D(size Vec3i, mipmapLevels uint32, internalFormat uint32)
	Filters(min, mag, aniso uint32)
	Wraps(s, t, r uint32)
	GenerateMipmaps()
}

// MaxTextureUnits is the number of texture units tracked by render queues.
const MaxTextureUnits = 16

// BindlessTexture is implemented by textures that can be accessed through
// bindless handles, as in ARB_bindless_texture.
type BindlessTexture interface {
	Texture
	BindlessHandle() uint64
	MakeResident(resident bool)
}
