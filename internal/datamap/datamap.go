// Copyright 2026 The lightframe-engine Authors. All rights reserved.

// Package datamap implements a dense map from small
// integer identifiers to values.
//
// Values are stored contiguously so that iteration
// does not skip holes. Removing a value moves the last
// value into its place, so iteration order is only
// stable while no removals happen.
package datamap

import (
	"iter"
	"math/bits"
)

// ID identifies a value in a Map.
type ID interface{ ~int }

type entry[D any] struct {
	data D
	id   int
}

// Map stores values of type D with identifiers of type I.
// The zero value is an empty Map ready to use.
type Map[I ID, D any] struct {
	// ids[i] is the index into data of the value
	// whose identifier is i, or -1.
	ids  []int
	used bitset
	data []entry[D]
}

// Insert inserts data into m.
// It returns an I value that identifies data in m.
// Identifiers of removed values may be reused.
func (m *Map[I, D]) Insert(data D) I {
	if m.used.rem == 0 {
		n := max(1, len(m.used.s))
		m.used.grow(n)
		for range n * 64 {
			m.ids = append(m.ids, -1)
		}
	}
	idx, ok := m.used.search()
	if !ok {
		// Should never happen.
		panic("datamap: no free identifier after growing")
	}
	m.used.set(idx)
	m.ids[idx] = len(m.data)
	m.data = append(m.data, entry[D]{data, idx})
	return I(idx)
}

// Remove removes the value identified by id.
// It returns the removed value.
// id must belong to m.
func (m *Map[I, D]) Remove(id I) D {
	d := m.index(id)
	data := m.data[d].data
	last := len(m.data) - 1
	if d < last {
		swap := m.data[last].id
		m.ids[swap] = d
		m.data[d] = m.data[last]
	}
	m.ids[id] = -1
	m.used.unset(int(id))
	m.data[last] = entry[D]{}
	m.data = m.data[:last]
	return data
}

func (m *Map[I, D]) index(id I) int {
	if !m.Has(id) {
		panic("datamap: invalid identifier")
	}
	return m.ids[id]
}

// Has returns whether id identifies a value in m.
func (m *Map[I, D]) Has(id I) bool {
	return id >= 0 && int(id) < len(m.ids) && m.ids[id] >= 0
}

// Get returns a pointer to the value identified by id.
// id must belong to m.
// The pointer is invalidated by the next Insert or Remove.
func (m *Map[I, D]) Get(id I) *D { return &m.data[m.index(id)].data }

// Len returns the number of values in m.
func (m *Map[_, _]) Len() int { return len(m.data) }

// All returns an iterator over the values in m.
// m must not be modified during iteration.
func (m *Map[I, D]) All() iter.Seq2[I, D] {
	return func(yield func(I, D) bool) {
		for i := range m.data {
			if !yield(I(m.data[i].id), m.data[i].data) {
				return
			}
		}
	}
}

// Clear removes every value from m.
func (m *Map[I, D]) Clear() {
	for i := range m.ids {
		m.ids[i] = -1
	}
	m.used.clear()
	clear(m.data)
	m.data = m.data[:0]
}

// bitset tracks which identifiers are in use.
type bitset struct {
	s   []uint64
	rem int
}

// grow appends n words of unset bits.
// It returns the index of the first new bit.
func (b *bitset) grow(n int) (index int) {
	index = len(b.s) * 64
	b.rem += n * 64
	b.s = append(b.s, make([]uint64, n)...)
	return
}

func (b *bitset) set(index int) {
	w, m := index/64, uint64(1)<<(index%64)
	if b.s[w]&m == 0 {
		b.s[w] |= m
		b.rem--
	}
}

func (b *bitset) unset(index int) {
	w, m := index/64, uint64(1)<<(index%64)
	if b.s[w]&m != 0 {
		b.s[w] &^= m
		b.rem++
	}
}

func (b *bitset) isSet(index int) bool {
	return b.s[index/64]&(1<<(index%64)) != 0
}

// search locates the lowest unset bit.
func (b *bitset) search() (index int, ok bool) {
	if b.rem == 0 {
		return
	}
	for i, x := range b.s {
		if x != ^uint64(0) {
			return i*64 + bits.TrailingZeros64(^x), true
		}
	}
	return
}

func (b *bitset) clear() {
	clear(b.s)
	b.rem = len(b.s) * 64
}
