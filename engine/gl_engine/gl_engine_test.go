// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gl_engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"honnef.co/go/renderqueue/renderer"
)

func TestUniformAlignmentOverride(t *testing.T) {
	// No context exists in tests, so this only passes if New skips the
	// query.
	d := New(Options{UniformAlignment: 64})
	assert.Equal(t, uint32(64), d.UniformAlignment())

	var wg sync.WaitGroup
	aligns := make([]uint32, 8)
	for i := range aligns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q := renderer.New(renderer.Options{Alignment: d})
			aligns[i] = q.UniformAlignment()
		}()
	}
	wg.Wait()
	for _, a := range aligns {
		assert.Equal(t, uint32(64), a)
	}
}
