// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package gfxtest provides in-memory implementations of the gfx interfaces
// that record every call, for use in tests.
package gfxtest

import (
	"fmt"
	"slices"
	"sync"

	"honnef.co/go/renderqueue/gfx"
)

// Log collects calls made against fake resources, in order.
type Log struct {
	mu    sync.Mutex
	calls []string
}

func (l *Log) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the recorded calls.
func (l *Log) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.calls)
}

func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = l.calls[:0]
}

var _ gfx.Device = (*Device)(nil)
var _ gfx.AlignmentSource = (*Device)(nil)

type Device struct {
	Log *Log
	// Pending is returned, once, by the next call to Error.
	Pending error
	// Alignment is reported by UniformAlignment. Zero means 256.
	Alignment uint32
	// Buffers holds every uniform buffer created by NewUniformBuffer.
	Buffers []*UniformBuffer
	// BufferErr, if set, is returned by NewUniformBuffer.
	BufferErr error
}

func NewDevice() *Device {
	return &Device{Log: new(Log)}
}

func (d *Device) UniformAlignment() uint32 {
	if d.Alignment == 0 {
		return 256
	}
	return d.Alignment
}

func (d *Device) Viewport(x, y, w, h int32) { d.Log.Printf("viewport %d %d %d %d", x, y, w, h) }
func (d *Device) Scissor(x, y, w, h int32)  { d.Log.Printf("scissor %d %d %d %d", x, y, w, h) }
func (d *Device) SetEnabled(c gfx.Capability, enable bool) {
	d.Log.Printf("enable %s %t", c, enable)
}
func (d *Device) CullFace(f gfx.CullFace)      { d.Log.Printf("cull face %s", f) }
func (d *Device) DepthFunc(fn gfx.CompareFunc) { d.Log.Printf("depth func %s", fn) }
func (d *Device) DepthMask(enable bool)        { d.Log.Printf("depth mask %t", enable) }
func (d *Device) ColorMask(enable bool)        { d.Log.Printf("color mask %t", enable) }
func (d *Device) BlendFunc(src, dst gfx.BlendFactor) {
	d.Log.Printf("blend func %s %s", src, dst)
}
func (d *Device) ClearColor(c [4]float32) { d.Log.Printf("clear color %g %g %g %g", c[0], c[1], c[2], c[3]) }
func (d *Device) Clear(mask gfx.ClearMask) {
	d.Log.Printf("clear %t %t %t", mask&gfx.ClearColorBit != 0, mask&gfx.ClearDepthBit != 0, mask&gfx.ClearStencilBit != 0)
}
func (d *Device) PushDebugGroup(name string) { d.Log.Printf("push group %s", name) }
func (d *Device) PopDebugGroup()             { d.Log.Printf("pop group") }
func (d *Device) BindDefaultFrameBuffer()    { d.Log.Printf("bind default framebuffer") }
func (d *Device) ActiveTexture(unit uint32)  { d.Log.Printf("active texture %d", unit) }
func (d *Device) UnbindTextures(units int)   { d.Log.Printf("unbind textures %d", units) }
func (d *Device) MemoryBarrier(bits uint32)  { d.Log.Printf("memory barrier %#x", bits) }

func (d *Device) NewUniformBuffer(label string) (gfx.UniformBuffer, error) {
	if d.BufferErr != nil {
		return nil, d.BufferErr
	}
	d.Log.Printf("new uniform buffer %s", label)
	ub := &UniformBuffer{Name: label, Log: d.Log}
	d.Buffers = append(d.Buffers, ub)
	return ub, nil
}

func (d *Device) Error() error {
	err := d.Pending
	d.Pending = nil
	return err
}

type Shader struct {
	Name string
	Log  *Log
}

func (s *Shader) Bind() { s.Log.Printf("bind shader %s", s.Name) }
func (s *Shader) SetUniform(location uint32, kind gfx.UniformKind, count int, data []byte) {
	s.Log.Printf("uniform %s %d %s x%d %x", s.Name, location, kind, count, data)
}
func (s *Shader) Compute(groups gfx.Vec3i) {
	s.Log.Printf("compute %s %d %d %d", s.Name, groups[0], groups[1], groups[2])
}

type Model struct {
	Name       string
	Primitives uint32
	Log        *Log
}

func (m *Model) Bind()                  { m.Log.Printf("bind model %s", m.Name) }
func (m *Model) Draw(instances uint32)  { m.Log.Printf("draw %s %d", m.Name, instances) }
func (m *Model) PrimitiveCount() uint32 { return m.Primitives }

type Texture struct {
	Name     string
	Log      *Log
	Released bool
}

var _ gfx.BindlessTexture = (*BindlessTexture)(nil)

// BindlessTexture is a Texture with a bindless handle.
type BindlessTexture struct {
	Texture
	Handle   uint64
	Resident bool
}

func (t *BindlessTexture) BindlessHandle() uint64 { return t.Handle }
func (t *BindlessTexture) MakeResident(resident bool) {
	t.Log.Printf("resident %s %t", t.Name, resident)
	t.Resident = resident
}

func (t *Texture) Bind(unit uint32) { t.Log.Printf("bind texture %s %d", t.Name, unit) }
func (t *Texture) BindImage(unit uint32, read, write bool) {
	t.Log.Printf("bind image %s %d %t %t", t.Name, unit, read, write)
}
func (t *Texture) Initialize2D(size gfx.Vec2i, mips, format uint32) {
	t.Log.Printf("image2d %s %dx%d %d %#x", t.Name, size[0], size[1], mips, format)
}
func (t *Texture) Initialize3D(size gfx.Vec3i, mips, format uint32) {
	t.Log.Printf("image3d %s %dx%dx%d %d %#x", t.Name, size[0], size[1], size[2], mips, format)
}
func (t *Texture) Filters(min, mag, aniso uint32) {
	t.Log.Printf("filters %s %#x %#x %d", t.Name, min, mag, aniso)
}
func (t *Texture) Wraps(s, tt, r uint32) { t.Log.Printf("wraps %s %#x %#x %#x", t.Name, s, tt, r) }
func (t *Texture) GenerateMipmaps()      { t.Log.Printf("mipmaps %s", t.Name) }
func (t *Texture) Release()              { t.Released = true }

type FrameBuffer struct {
	Name string
	Log  *Log
	// Status is returned by CheckStatus.
	Status error
}

func (fb *FrameBuffer) Bind() { fb.Log.Printf("bind framebuffer %s", fb.Name) }
func (fb *FrameBuffer) DepthTexture(tex gfx.Texture) {
	fb.Log.Printf("depth texture %s %s", fb.Name, name(tex))
}
func (fb *FrameBuffer) ColorTexture(index uint32, tex gfx.Texture, mip uint32) {
	fb.Log.Printf("color texture %s %d %s %d", fb.Name, index, name(tex), mip)
}
func (fb *FrameBuffer) ActiveAttachments(mask uint32) {
	fb.Log.Printf("attachments %s %#x", fb.Name, mask)
}
func (fb *FrameBuffer) Clear()             { fb.Log.Printf("clear framebuffer %s", fb.Name) }
func (fb *FrameBuffer) CheckStatus() error { return fb.Status }

type UniformBuffer struct {
	Name     string
	Log      *Log
	Data     []byte
	Released bool
}

func (ub *UniformBuffer) Bind() { ub.Log.Printf("bind uniform buffer %s", ub.Name) }
func (ub *UniformBuffer) BindBase(point uint32) {
	ub.Log.Printf("bind uniform base %s %d", ub.Name, point)
}
func (ub *UniformBuffer) BindRange(point, offset, size uint32) {
	ub.Log.Printf("bind uniform range %s %d %d %d", ub.Name, point, offset, size)
}
func (ub *UniformBuffer) WriteWhole(data []byte, usage gfx.BufferUsage) {
	ub.Log.Printf("write whole %s %d", ub.Name, len(data))
	ub.Data = slices.Clone(data)
}
func (ub *UniformBuffer) WriteRange(data []byte, offset uint32) {
	ub.Log.Printf("write range %s %d %d", ub.Name, offset, len(data))
	copy(ub.Data[offset:], data)
}
func (ub *UniformBuffer) Size() uint32 { return uint32(len(ub.Data)) }
func (ub *UniformBuffer) Release()     { ub.Released = true }

func name(tex gfx.Texture) string {
	if t, ok := tex.(*Texture); ok {
		return t.Name
	}
	return fmt.Sprintf("%T", tex)
}
