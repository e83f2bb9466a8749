// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import (
	"fmt"
	"sync"
)

type ProvisionalOptions struct {
	// NewTexture creates named textures. Texture handles can't be acquired if
	// it is nil.
	NewTexture func(dev Device, name string) (Texture, error)
	// NewFrameBuffer creates named framebuffers. Framebuffer handles can't be
	// acquired if it is nil.
	NewFrameBuffer func(dev Device, name string) (FrameBuffer, error)
}

// Provisional hands out named resources that are created lazily, the first
// time a dispatch resolves them, and are reused for as long as somebody keeps
// acquiring them. It may be shared by many queues and is safe for concurrent
// use.
type Provisional struct {
	opts ProvisionalOptions

	mu           sync.Mutex
	uniforms     registry[UniformBuffer]
	textures     registry[Texture]
	frameBuffers registry[FrameBuffer]
}

func NewProvisional(opts ProvisionalOptions) *Provisional {
	return &Provisional{opts: opts}
}

type registry[T any] map[string]Handle[T]

func (reg *registry[T]) acquire(name string, create func(dev Device) (T, error)) Handle[T] {
	if *reg == nil {
		*reg = make(registry[T])
	}
	h, ok := (*reg)[name]
	if !ok {
		h = newProvisionalHandle(create)
		(*reg)[name] = h
	}
	return h.Share()
}

// sweep drops the registry's reference to entries that weren't resolved since
// the last sweep, or to all entries if all is set.
func (reg registry[T]) sweep(all bool) int {
	n := 0
	for name, h := range reg {
		if !all && h.s.used.Swap(false) {
			continue
		}
		delete(reg, name)
		h.Release()
		n++
	}
	return n
}

// UniformBuffer returns a reference to the uniform buffer called name. The
// caller must release it.
func (p *Provisional) UniformBuffer(name string) Handle[UniformBuffer] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uniforms.acquire(name, func(dev Device) (UniformBuffer, error) {
		return dev.NewUniformBuffer(name)
	})
}

// Texture returns a reference to the texture called name. The caller must
// release it.
func (p *Provisional) Texture(name string) Handle[Texture] {
	if p.opts.NewTexture == nil {
		panic(fmt.Sprintf("gfx: no texture factory for provisional texture %q", name))
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.textures.acquire(name, func(dev Device) (Texture, error) {
		return p.opts.NewTexture(dev, name)
	})
}

// FrameBuffer returns a reference to the framebuffer called name. The caller
// must release it.
func (p *Provisional) FrameBuffer(name string) Handle[FrameBuffer] {
	if p.opts.NewFrameBuffer == nil {
		panic(fmt.Sprintf("gfx: no framebuffer factory for provisional framebuffer %q", name))
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frameBuffers.acquire(name, func(dev Device) (FrameBuffer, error) {
		return p.opts.NewFrameBuffer(dev, name)
	})
}

// Len returns the number of registered resources.
func (p *Provisional) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.uniforms) + len(p.textures) + len(p.frameBuffers)
}

// Reset forgets resources that haven't been resolved since the previous call
// to Reset. Resources still referenced elsewhere stay alive until their last
// handle is released. It returns the number of forgotten resources.
func (p *Provisional) Reset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uniforms.sweep(false) + p.textures.sweep(false) + p.frameBuffers.sweep(false)
}

// Purge forgets all resources.
func (p *Provisional) Purge() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uniforms.sweep(true)
	p.textures.sweep(true)
	p.frameBuffers.sweep(true)
}
