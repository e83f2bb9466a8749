// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package wgpu_engine

import (
	"math"
	"math/bits"

	"honnef.co/go/wgpu"
)

type bufferProperties struct {
	size   uint64
	usages wgpu.BufferUsage
}

// resourcePool recycles buffers by size class and usage.
type resourcePool struct {
	bufs map[bufferProperties][]*wgpu.Buffer
}

func newResourcePool() resourcePool {
	return resourcePool{bufs: make(map[bufferProperties][]*wgpu.Buffer)}
}

// getBuf returns a buffer of at least size bytes, and its actual size.
func (pool *resourcePool) getBuf(
	size uint64,
	name string,
	usage wgpu.BufferUsage,
	dev *wgpu.Device,
) (*wgpu.Buffer, uint64) {
	const sizeClassBits = 1

	roundedSize := poolSizeClass(size, sizeClassBits)
	props := bufferProperties{
		size:   roundedSize,
		usages: usage,
	}
	if bufVec := pool.bufs[props]; len(bufVec) > 0 {
		buf := bufVec[len(bufVec)-1]
		bufVec[len(bufVec)-1] = nil
		pool.bufs[props] = bufVec[:len(bufVec)-1]
		return buf, roundedSize
	}
	return dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label: name,
		Size:  roundedSize,
		Usage: usage,
	}), roundedSize
}

// putBuf returns a buffer obtained from getBuf. size must be the size getBuf
// returned.
func (pool *resourcePool) putBuf(buf *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	props := bufferProperties{
		size:   size,
		usages: usage,
	}
	pool.bufs[props] = append(pool.bufs[props], buf)
}

// pooled returns the number of buffers waiting for reuse.
func (pool *resourcePool) pooled() int {
	n := 0
	for _, bufs := range pool.bufs {
		n += len(bufs)
	}
	return n
}

func (pool *resourcePool) release() {
	for props, bufs := range pool.bufs {
		for _, buf := range bufs {
			buf.Release()
		}
		delete(pool.bufs, props)
	}
}

// poolSizeClass rounds x up so that only the numBits most significant bits
// may be set.
func poolSizeClass(x uint64, numBits uint32) uint64 {
	if x > 1<<numBits {
		a := bits.LeadingZeros64(x - 1)
		b := (x - 1) | (((math.MaxUint64 / 2) >> numBits) >> a)
		return b + 1
	} else {
		return 1 << numBits
	}
}
