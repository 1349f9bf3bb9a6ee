// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package intanon implements the range-constrained pseudonym
// generators for unsigned and signed 64-bit integers. Both non-lex
// and lex modes draw without replacement from [lower, upper] and
// record the assignment in the shared chained hash table; lex mode
// additionally sorts the marked set and the drawn pseudonyms so the
// pairing is monotone.
package intanon

import (
	"encoding/binary"
	"math"

	"netanon/internal/hashtable"
	"netanon/internal/lifecycle"
	"netanon/internal/ordered"
	"netanon/internal/randsrc"
)

// Uint64Engine anonymizes unsigned 64-bit integers within [lower, upper].
type Uint64Engine struct {
	lower, upper uint64

	rng randsrc.Source
	lc  lifecycle.Machine

	table       *hashtable.Table[uint64, uint64]
	usedOutputs map[uint64]struct{}
	marked      *ordered.Set
}

// NewUint64 builds an engine over the inclusive range [lower, upper].
// A nil src defaults to the operating system's CSPRNG; set_key on the
// uint64 engine is a documented no-op in the original source, so no
// key material is accepted here.
func NewUint64(lower, upper uint64, src randsrc.Source) *Uint64Engine {
	if lower > upper {
		panic("intanon: NewUint64: lower > upper")
	}
	if src == nil {
		src = randsrc.New()
	}
	return &Uint64Engine{
		lower:       lower,
		upper:       upper,
		rng:         src,
		table:       hashtable.New[uint64, uint64](hashtable.IdentityHash),
		usedOutputs: make(map[uint64]struct{}),
		marked:      ordered.New(),
	}
}

// SetUsed records n for inclusion in a later MapLex bulk assignment.
// Permitted only in INIT; duplicates are silently ignored.
func (e *Uint64Engine) SetUsed(n uint64) {
	e.lc.RequireInit("set_used")
	e.marked.Add(encodeUint64(n))
}

// Map looks up n, drawing and recording a fresh pseudonym on first
// sight. Panics if the inputs mapped so far already exhaust the range.
func (e *Uint64Engine) Map(n uint64) uint64 {
	e.lc.EnterNonLex()
	if m, ok := e.table.Get(n); ok {
		return m
	}
	if !e.hasCapacityFor(e.table.Len() + 1) {
		panic("intanon: Map: inputs exceed the configured range")
	}
	m := e.drawUnusedOutput()
	e.table.Set(n, m)
	return m
}

// MapLex looks up the pseudonym assigned to a previously marked n.
// The first call performs the one-time bulk assignment over the
// marked set. Calling MapLex on an input that was never marked is a
// programmer error.
func (e *Uint64Engine) MapLex(n uint64) uint64 {
	if e.lc.EnterLex() {
		e.runLexAssignment()
	}
	m, ok := e.table.Get(n)
	if !ok {
		panic("intanon: MapLex: input was never marked with SetUsed")
	}
	return m
}

func (e *Uint64Engine) runLexAssignment() {
	items := e.marked.Sorted()
	if !e.hasCapacityFor(len(items)) {
		panic("intanon: MapLex: marked set exceeds the configured range")
	}
	outputs := make([]uint64, 0, len(items))
	for len(outputs) < len(items) {
		v := e.draw()
		if _, used := e.usedOutputs[v]; used {
			continue
		}
		e.usedOutputs[v] = struct{}{}
		outputs = append(outputs, v)
	}
	sortUint64s(outputs)
	for i, item := range items {
		e.table.Set(decodeUint64(item), outputs[i])
	}
	e.marked = nil
}

// Delete releases the engine's storage.
func (e *Uint64Engine) Delete() {
	e.table = nil
	e.usedOutputs = nil
	e.marked = nil
}

func (e *Uint64Engine) draw() uint64 {
	return randsrc.Uint64(e.rng, e.lower, e.upper)
}

func (e *Uint64Engine) drawUnusedOutput() uint64 {
	for {
		v := e.draw()
		if _, used := e.usedOutputs[v]; !used {
			e.usedOutputs[v] = struct{}{}
			return v
		}
	}
}

// hasCapacityFor reports whether count distinct outputs can still be
// drawn from [lower, upper] without repeating an already-used value.
func (e *Uint64Engine) hasCapacityFor(count int) bool {
	if e.lower == 0 && e.upper == math.MaxUint64 {
		return true
	}
	span := e.upper - e.lower + 1
	return uint64(count) <= span
}

func encodeUint64(n uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	return b[:]
}

func decodeUint64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

func sortUint64s(s []uint64) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// signBias converts between two's-complement ordering and unsigned
// ordering: flipping the sign bit maps int64's natural order onto
// uint64's natural order, so the unsigned engine's comparisons stay
// numeric rather than bitwise once reused for signed ranges.
const signBias = uint64(1) << 63

// Int64Engine anonymizes signed 64-bit integers within [lower, upper]
// by delegating to a Uint64Engine over the sign-bias-shifted range.
type Int64Engine struct {
	u *Uint64Engine
}

// NewInt64 builds an engine over the inclusive range [lower, upper].
func NewInt64(lower, upper int64, src randsrc.Source) *Int64Engine {
	if lower > upper {
		panic("intanon: NewInt64: lower > upper")
	}
	return &Int64Engine{u: NewUint64(toUnsigned(lower), toUnsigned(upper), src)}
}

// SetUsed records n for inclusion in a later MapLex bulk assignment.
func (e *Int64Engine) SetUsed(n int64) { e.u.SetUsed(toUnsigned(n)) }

// Map looks up n, drawing and recording a fresh pseudonym on first
// sight.
func (e *Int64Engine) Map(n int64) int64 { return toSigned(e.u.Map(toUnsigned(n))) }

// MapLex looks up the pseudonym assigned to a previously marked n.
func (e *Int64Engine) MapLex(n int64) int64 { return toSigned(e.u.MapLex(toUnsigned(n))) }

// Delete releases the engine's storage.
func (e *Int64Engine) Delete() { e.u.Delete() }

func toUnsigned(n int64) uint64 { return uint64(n) ^ signBias }
func toSigned(n uint64) int64   { return int64(n ^ signBias) }
