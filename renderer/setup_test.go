// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/renderqueue/gfx"
	"honnef.co/go/renderqueue/gfx/gfxtest"
)

func TestSetupUniform(t *testing.T) {
	f := newFixture(t)
	q := New(Options{UniformAlignment: 16})
	q.StageUniformBytes([]byte{1, 2, 3, 4}, -1)
	r := q.ReserveUniform(4, 2)
	assert.Equal(t, UubRange{Offset: 16, Size: 4}, r)

	calls := 0
	q.SetupUniform(r, func(_ *gfx.Resolver, dst []byte) error {
		calls++
		f.dev.Log.Printf("setup")
		dst[0] += 5
		return nil
	})
	assert.Equal(t, 2, q.CommandsCount())

	assert.Equal(t, []string{
		"setup",
		"new uniform buffer UUB",
		"bind uniform buffer UUB",
		"write whole UUB 20",
		"bind uniform range UUB 2 16 4",
	}, f.dispatch(t, q))
	require.Len(t, f.dev.Buffers, 1)
	want := make([]byte, 20)
	copy(want, []byte{1, 2, 3, 4})
	want[16] = 5
	assert.Equal(t, want, f.dev.Buffers[0].Data)

	// Setup runs on every dispatch.
	f.dispatch(t, q)
	assert.Equal(t, 2, calls)
	assert.Equal(t, byte(10), f.dev.Buffers[1].Data[16])
}

func TestSetupError(t *testing.T) {
	f := newFixture(t)
	q := New(Options{})
	r := q.ReserveUniform(4, -1)
	errSetup := errors.New("no value")
	q.SetupUniform(r, func(*gfx.Resolver, []byte) error { return errSetup })
	q.DepthTest(true)

	f.dev.Log.Reset()
	err := q.Dispatch(f.dev)
	assert.ErrorIs(t, err, errSetup)
	assert.ErrorContains(t, err, "setup command 0 (setupUniform)")
	assert.Empty(t, f.dev.Log.Calls())
}

func TestReserveUniformZeroes(t *testing.T) {
	q := New(Options{UniformAlignment: 4})
	q.StageUniformBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8}, -1)
	q.Reset()
	q.StageUniformBytes([]byte{9}, -1)
	r := q.ReserveUniform(4, -1)
	assert.Equal(t, UubRange{Offset: 4, Size: 4}, r)
	assert.Equal(t, []byte{9, 0, 0, 0, 0, 0, 0, 0}, q.uub)
}

func newBindless(log *gfxtest.Log, name string, handle uint64) (*gfxtest.BindlessTexture, gfx.Handle[gfx.Texture]) {
	tex := &gfxtest.BindlessTexture{Texture: gfxtest.Texture{Name: name, Log: log}, Handle: handle}
	return tex, gfx.NewHandle[gfx.Texture](tex, nil)
}

func TestBindlessUniform(t *testing.T) {
	f := newFixture(t)
	a, ha := newBindless(f.dev.Log, "A", 0x1122334455667788)
	b, hb := newBindless(f.dev.Log, "B", 7)
	defer ha.Release()
	defer hb.Release()

	q := New(Options{UniformAlignment: 16})
	q.StageUniformBytes([]byte{1}, -1)
	r := q.BindlessUniform([]gfx.Handle[gfx.Texture]{ha, {}, hb}, 4, true)
	assert.Equal(t, UubRange{Offset: 16, Size: 24}, r)
	assert.Equal(t, 3, q.CommandsCount())
	assert.Equal(t, 3, ha.Refs())

	assert.Equal(t, []string{
		"new uniform buffer UUB",
		"bind uniform buffer UUB",
		"write whole UUB 40",
		"resident A true",
		"resident B true",
		"bind uniform range UUB 4 16 24",
	}, f.dispatch(t, q))
	data := f.dev.Buffers[0].Data
	assert.Equal(t, a.Handle, binary.NativeEndian.Uint64(data[16:]))
	assert.Zero(t, binary.NativeEndian.Uint64(data[24:]))
	assert.Equal(t, b.Handle, binary.NativeEndian.Uint64(data[32:]))
	assert.True(t, a.Resident)

	q.Reset()
	assert.Equal(t, 1, ha.Refs())
	assert.Equal(t, 1, hb.Refs())

	q.BindlessResident([]gfx.Handle[gfx.Texture]{ha, {}}, false)
	assert.Equal(t, []string{"resident A false"}, f.dispatch(t, q))
	assert.False(t, a.Resident)
}

func TestBindlessProvisional(t *testing.T) {
	f := newFixture(t)
	prov := gfx.NewProvisional(gfx.ProvisionalOptions{
		NewTexture: func(dev gfx.Device, name string) (gfx.Texture, error) {
			return &gfxtest.BindlessTexture{Texture: gfxtest.Texture{Name: name, Log: f.dev.Log}, Handle: 42}, nil
		},
	})
	h := prov.Texture("atlas")
	defer h.Release()

	q := New(Options{})
	q.BindlessUniform([]gfx.Handle[gfx.Texture]{h}, 0, false)
	assert.False(t, h.Ready())
	f.dispatch(t, q)
	assert.Equal(t, uint64(42), binary.NativeEndian.Uint64(f.dev.Buffers[0].Data))
}

func TestBindlessUnsupported(t *testing.T) {
	f := newFixture(t)
	q := New(Options{})
	q.BindlessUniform([]gfx.Handle[gfx.Texture]{f.tex}, 0, false)
	err := q.Dispatch(f.dev)
	assert.ErrorIs(t, err, errNotBindless)
	assert.ErrorContains(t, err, "setup command 0 (bindlessSetup)")
	assert.ErrorContains(t, err, "*gfxtest.Texture")

	q.Reset()
	q.BindlessResident([]gfx.Handle[gfx.Texture]{f.tex}, true)
	err = q.Dispatch(f.dev)
	assert.ErrorIs(t, err, errNotBindless)
	assert.ErrorContains(t, err, "command 0 (bindlessResident)")
}
