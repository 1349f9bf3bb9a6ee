// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package ordered implements the sorted container used by the mark
// phase of the integer and octet-string engines (the prefix trie
// keeps its own list of marked prefixes). The original library walks
// an intrusive ascending linked list with an O(n) insert; this
// replaces it with a build-then-sort slice, which is the idiomatic
// Go shape for "collect everything, then sort once" batch workloads
// and meets realistic input sizes without changing the observable
// mark/map semantics.
package ordered

import (
	"bytes"
	"sort"
)

// Set is a sorted, duplicate-free collection of byte-string keys.
// Byte-string keys let a single implementation serve fixed-width
// integers (stored big-endian, so byte order is numeric order) and
// variable-length octet strings (stored as-is, so byte order is
// lexicographic order) alike.
type Set struct {
	items  [][]byte
	seen   map[string]struct{}
	sorted bool
}

// New returns an empty ordered set.
func New() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add records v as observed. Duplicates are silently ignored, as the
// specification requires for set_used.
func (s *Set) Add(v []byte) {
	key := string(v)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.sorted = false
	s.items = append(s.items, append([]byte{}, v...))
}

// Len reports the number of distinct values recorded.
func (s *Set) Len() int {
	return len(s.items)
}

// Sorted returns the recorded values in ascending byte order. Call
// once, after the mark phase has finished.
func (s *Set) Sorted() [][]byte {
	if !s.sorted {
		sort.Slice(s.items, func(i, j int) bool {
			return bytes.Compare(s.items[i], s.items[j]) < 0
		})
		s.sorted = true
	}
	return s.items
}
