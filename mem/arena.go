// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package mem implements a bump allocator whose memory is reclaimed all at
// once. Values that contain Go pointers are carved out of slabs typed as
// slices of their own type so that the garbage collector keeps seeing them;
// pointer-free values share untyped byte slabs.
package mem

import (
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// slabSize is the default slab size in bytes. Values larger than a slab get a
// dedicated slab of their own.
const slabSize = 16 * 1024

type Arena struct {
	byteSlabs  []slab
	typedSlabs map[reflect.Type][]slab
	// bytes handed out since the last reset
	used int
}

type slab struct {
	data   unsafe.Pointer
	size   int
	offset int
	// backing slice for typed slabs, used to zero them on reset
	val reflect.Value
}

// Stats describes the memory held by an arena.
type Stats struct {
	Slabs     int
	Reserved  int
	Allocated int
}

func NewArena() *Arena {
	return &Arena{
		typedSlabs: make(map[reflect.Type][]slab),
	}
}

// New returns a pointer to a zeroed T owned by the arena.
func New[T any](a *Arena) *T {
	var t *T
	// We cannot use TypeOf(*new(T)) when T is an interface type, because that
	// passes a nil interface to TypeOf, which returns nil.
	typ := reflect.TypeOf(t).Elem()
	return (*T)(a.alloc(typ, 1))
}

// Make returns a pointer to an arena-owned copy of v.
func Make[T any](a *Arena, v T) *T {
	ptr := New[T](a)
	*ptr = v
	return ptr
}

// zeroSized is handed out for every allocation of size zero.
var zeroSized uintptr

func (a *Arena) alloc(typ reflect.Type, num int) unsafe.Pointer {
	if a.typedSlabs == nil {
		a.typedSlabs = make(map[reflect.Type][]slab)
	}
	size := int(typ.Size())
	totalSize := num * size
	if totalSize == 0 {
		return unsafe.Pointer(&zeroSized)
	}
	a.used += totalSize

	if !hasPointers(typ) {
		al := typ.Align()
		for i := range a.byteSlabs {
			sl := &a.byteSlabs[i]
			off := align(sl.offset, al)
			if sl.size-off >= totalSize {
				sl.offset = off + totalSize
				ptr := unsafe.Add(sl.data, off)
				clear(unsafe.Slice((*byte)(ptr), totalSize))
				return ptr
			}
		}
		n := max(slabSize, totalSize)
		a.byteSlabs = append(a.byteSlabs, slab{
			data:   unsafe.Pointer(unsafe.SliceData(make([]byte, n))),
			size:   n,
			offset: totalSize,
		})
		return a.byteSlabs[len(a.byteSlabs)-1].data
	}

	slabs := a.typedSlabs[typ]
	for i := range slabs {
		sl := &slabs[i]
		if sl.size-sl.offset >= totalSize {
			// Typed slabs only ever hold values of one type, so offsets are
			// always aligned. Memory was zeroed when the arena was reset.
			ptr := unsafe.Add(sl.data, sl.offset)
			sl.offset += totalSize
			return ptr
		}
	}
	elems := max(slabSize/size, num)
	val := reflect.MakeSlice(reflect.SliceOf(typ), elems, elems)
	a.typedSlabs[typ] = append(slabs, slab{
		data:   val.UnsafePointer(),
		size:   elems * size,
		offset: totalSize,
		val:    val,
	})
	return val.UnsafePointer()
}

// align rounds v up to a multiple of to, which has to be a power of two.
func align(v int, to int) int {
	return v + (-v & (to - 1))
}

// RoundUp rounds v up to the next multiple of to. Unlike align, to doesn't
// have to be a power of two.
func RoundUp[T constraints.Integer](v, to T) T {
	if to <= 1 {
		return v
	}
	if r := v % to; r != 0 {
		return v + to - r
	}
	return v
}

// Reset makes all of the arena's memory available again. Pointers returned
// before the reset must not be used afterwards.
func (a *Arena) Reset() {
	if a.typedSlabs == nil {
		a.typedSlabs = make(map[reflect.Type][]slab)
	}
	for i := range a.byteSlabs {
		a.byteSlabs[i].offset = 0
	}
	for typ, slabs := range a.typedSlabs {
		size := int(typ.Size())
		for i := range slabs {
			sl := &slabs[i]
			// Zero through reflect so that the GC's write barriers see the
			// pointers we're dropping.
			sl.val.Slice(0, sl.offset/size).Clear()
			sl.offset = 0
		}
	}
	a.used = 0
}

func (a *Arena) Stats() Stats {
	st := Stats{Allocated: a.used}
	for _, sl := range a.byteSlabs {
		st.Slabs++
		st.Reserved += sl.size
	}
	for _, slabs := range a.typedSlabs {
		for _, sl := range slabs {
			st.Slabs++
			st.Reserved += sl.size
		}
	}
	return st
}

func hasPointers(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return typ.Len() > 0 && hasPointers(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if hasPointers(typ.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
