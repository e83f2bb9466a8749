// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import "math"

type slot uint8

const (
	slotViewportX slot = iota
	slotViewportY
	slotViewportW
	slotViewportH
	slotScissorX
	slotScissorY
	slotScissorW
	slotScissorH
	slotCullFace
	slotDepthFunc
	slotDepthWrite
	slotColorWrite
	slotBlendSrc
	slotBlendDst
	slotScissorTest
	slotCulling
	slotDepthTest
	slotBlending

	numSlots
)

// unset can't be the value of any slot.
const unset = math.MinInt64

// cem remembers the last recorded value of each piece of fixed-function state,
// so that recording the same value twice records only one command.
type cem [numSlots]int64

func (c *cem) reset() {
	for i := range c {
		c[i] = unset
	}
}

// update stores v in s and reports whether that changed s.
func (c *cem) update(s slot, v int64) bool {
	if c[s] == v {
		return false
	}
	c[s] = v
	return true
}

func (c *cem) updateBool(s slot, v bool) bool {
	if v {
		return c.update(s, 1)
	}
	return c.update(s, 0)
}

// updateRect updates four consecutive slots starting at s. All slots are
// updated, even if an earlier one already changed.
func (c *cem) updateRect(s slot, x, y, w, h int32) bool {
	changed := c.update(s, int64(x))
	changed = c.update(s+1, int64(y)) || changed
	changed = c.update(s+2, int64(w)) || changed
	changed = c.update(s+3, int64(h)) || changed
	return changed
}

// updatePair is like updateRect for two slots.
func (c *cem) updatePair(s1, s2 slot, v1, v2 int64) bool {
	changed := c.update(s1, v1)
	changed = c.update(s2, v2) || changed
	return changed
}
