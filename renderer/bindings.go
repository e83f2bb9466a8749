// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"honnef.co/go/renderqueue/gfx"
)

// settingTable tracks, while recording, the identities of bound resources. It
// holds no references; zero means unknown.
type settingTable struct {
	shader      gfx.ResourceID
	model       gfx.ResourceID
	primitives  uint32
	frameBuffer gfx.ResourceID
	// one more than the active texture unit
	activeUnit uint32
	textures   [gfx.MaxTextureUnits]gfx.ResourceID
}

func (t *settingTable) reset() {
	*t = settingTable{}
}

func (t *settingTable) resetTextures() {
	t.activeUnit = 0
	clear(t.textures[:])
}

// dispatchTable holds the resources bound during a dispatch that later
// commands depend on. It only exists for the duration of Dispatch.
type dispatchTable struct {
	resolver *gfx.Resolver
	dev      gfx.Device

	model   gfx.Model
	uniform gfx.UniformBuffer
	uub     gfx.UniformBuffer

	// number of open debug groups
	groups int
}

// clearBindings forgets what is bound. Used when code outside of the queue
// had access to the API.
func (t *dispatchTable) clearBindings() {
	t.model = nil
	t.uniform = nil
}
