// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package mem

import (
	"cmp"
	"iter"
	"sort"

	"golang.org/x/exp/constraints"
)

// BinaryTreeMap is a sorted map whose storage lives in an arena. The zero
// value is an empty map. Deletions only mark entries, so that iteration
// order and storage stay stable until the arena is reset.
type BinaryTreeMap[K constraints.Ordered, V any] struct {
	entries []BinaryTreeMapEntry[K, V]
	live    int
}

type BinaryTreeMapEntry[K constraints.Ordered, V any] struct {
	key     K
	value   V
	deleted bool
}

func (m *BinaryTreeMap[K, V]) find(key K) (*BinaryTreeMapEntry[K, V], bool) {
	idx, ok := sort.Find(len(m.entries), func(i int) int {
		return cmp.Compare(key, m.entries[i].key)
	})
	if !ok {
		return nil, false
	}
	return &m.entries[idx], true
}

func (m *BinaryTreeMap[K, V]) Insert(a *Arena, key K, value V) {
	idx := sort.Search(len(m.entries), func(i int) bool {
		return key <= m.entries[i].key
	})

	if idx == len(m.entries) || m.entries[idx].key != key {
		m.entries = insert(a, m.entries, idx, BinaryTreeMapEntry[K, V]{key, value, false})
		m.live++
		return
	}
	e := &m.entries[idx]
	e.value = value
	if e.deleted {
		e.deleted = false
		m.live++
	}
}

func (m *BinaryTreeMap[K, V]) Get(key K) (V, bool) {
	if e, ok := m.find(key); ok && !e.deleted {
		return e.value, true
	}
	return *new(V), false
}

func (m *BinaryTreeMap[K, V]) Delete(key K) bool {
	e, ok := m.find(key)
	if !ok || e.deleted {
		return false
	}
	e.deleted = true
	e.value = *new(V)
	m.live--
	return true
}

func (m *BinaryTreeMap[K, V]) Len() int { return m.live }

// Clear forgets all entries. The map must not be used with memory from before
// an arena reset.
func (m *BinaryTreeMap[K, V]) Clear() {
	*m = BinaryTreeMap[K, V]{}
}

func (m *BinaryTreeMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range m.entries {
			if e.deleted {
				continue
			}
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

func insert[S ~[]E, E any](a *Arena, s S, i int, v E) S {
	if i == len(s) {
		return Append(a, s, v)
	}

	if cap(s) > len(s) {
		s = s[:len(s)+1]
		copy(s[i+1:], s[i:])
		s[i] = v
		return s
	}
	s2 := NewSlice[S](a, len(s)+1, (len(s)+1)*2)
	copy(s2, s[:i])
	s2[i] = v
	copy(s2[i+1:], s[i:])
	return s2
}
