// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClock() func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func TestNesting(t *testing.T) {
	p := NewProfiler()
	p.now = fakeClock()

	frame := p.Start("frame")
	var pg ProfilerGroup = frame
	shadows := pg.Start("shadows")
	shadows.End()
	lighting := pg.Start("lighting")
	lighting.Start("ssao").End()
	lighting.End()
	frame.End()

	res := p.Collect()
	require.Len(t, res, 1)
	assert.Equal(t, "frame", res[0].Label)
	require.Len(t, res[0].Children, 2)
	assert.Equal(t, "shadows", res[0].Children[0].Label)
	assert.Equal(t, "lighting", res[0].Children[1].Label)
	require.Len(t, res[0].Children[1].Children, 1)
	assert.Equal(t, "ssao", res[0].Children[1].Children[0].Label)
	assert.Equal(t, time.Millisecond, res[0].Children[0].Duration())
	assert.True(t, res[0].Duration() > res[0].Children[1].Duration())

	assert.Empty(t, p.Collect())
}

func TestCollectStopsAtUnfinished(t *testing.T) {
	p := NewProfiler()
	a := p.Start("a")
	b := p.Start("b")
	c := p.Start("c")
	a.End()
	c.End()

	res := p.Collect()
	require.Len(t, res, 1)
	assert.Equal(t, "a", res[0].Label)

	b.End()
	res = p.Collect()
	require.Len(t, res, 2)
	assert.Equal(t, "b", res[0].Label)
	assert.Equal(t, "c", res[1].Label)
}

func TestEndTwice(t *testing.T) {
	p := NewProfiler()
	g := p.Start("g")
	g.End()
	assert.Panics(t, g.End)
}

func TestNop(t *testing.T) {
	p := NewNopProfiler()
	g := p.Start("x")
	assert.Nil(t, g)
	g.Start("y").End()
	g.End()
	assert.Nil(t, p.Collect())
}
