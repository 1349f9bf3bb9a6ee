// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package octanon implements the octet-string engine: a same-length,
// same-character-class pseudonym generator. Characters are
// partitioned into four classes (lowercase, uppercase, digit,
// everything else); the last class passes through unchanged, and the
// other three are replaced within their own alphabet.
package octanon

import (
	"sort"

	"netanon/internal/hashtable"
	"netanon/internal/lifecycle"
	"netanon/internal/ordered"
	"netanon/internal/randsrc"
)

const (
	classOther = iota
	classLower
	classUpper
	classDigit
)

func classify(c byte) (class int, lower, upper byte) {
	switch {
	case c >= 'a' && c <= 'z':
		return classLower, 'a', 'z'
	case c >= 'A' && c <= 'Z':
		return classUpper, 'A', 'Z'
	case c >= '0' && c <= '9':
		return classDigit, '0', '9'
	default:
		return classOther, 0, 0
	}
}

type posClassKey struct {
	pos   int
	class int
}

// Engine anonymizes octet strings, preserving length and per-position
// character class.
type Engine struct {
	rng randsrc.Source
	lc  lifecycle.Machine

	fwd     map[posClassKey]map[byte]byte
	usedOut map[posClassKey]map[byte]struct{}

	table  *hashtable.Table[string, string]
	marked *ordered.Set
}

// New returns an empty octet-string engine. A nil src defaults to the
// operating system's CSPRNG.
func New(src randsrc.Source) *Engine {
	if src == nil {
		src = randsrc.New()
	}
	return &Engine{
		rng:     src,
		fwd:     make(map[posClassKey]map[byte]byte),
		usedOut: make(map[posClassKey]map[byte]struct{}),
		table:   hashtable.New[string, string](hashtable.StringDigestHash),
		marked:  ordered.New(),
	}
}

// SetUsed records s for inclusion in a later MapLex bulk assignment.
// Permitted only in INIT; duplicates are silently ignored.
func (e *Engine) SetUsed(s string) {
	e.lc.RequireInit("set_used")
	e.marked.Add([]byte(s))
}

// Map anonymizes s, maintaining a per-position, per-class bijection
// that stays consistent across every string seen so far.
func (e *Engine) Map(s string) string {
	e.lc.EnterNonLex()
	if out, ok := e.table.Get(s); ok {
		return out
	}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = e.mapByte(i, s[i])
	}
	result := string(out)
	e.table.Set(s, result)
	return result
}

// MapLex anonymizes s, consistent with the lex-order-preserving bulk
// assignment computed on the first MapLex call.
func (e *Engine) MapLex(s string) string {
	if e.lc.EnterLex() {
		e.runLexAssignment()
	}
	out, ok := e.table.Get(s)
	if !ok {
		panic("octanon: MapLex: input was never marked with SetUsed")
	}
	return out
}

func (e *Engine) mapByte(pos int, c byte) byte {
	class, lower, upper := classify(c)
	if class == classOther {
		return c
	}
	key := posClassKey{pos: pos, class: class}
	if e.fwd[key] == nil {
		e.fwd[key] = make(map[byte]byte)
		e.usedOut[key] = make(map[byte]struct{})
	}
	if out, ok := e.fwd[key][c]; ok {
		return out
	}
	alphabetSize := int(upper-lower) + 1
	if len(e.usedOut[key]) >= alphabetSize {
		panic("octanon: Map: alphabet exhausted at this position and class")
	}
	var out byte
	for {
		out = randsrc.Byte(e.rng, lower, upper)
		if _, used := e.usedOut[key][out]; !used {
			break
		}
	}
	e.fwd[key][c] = out
	e.usedOut[key][out] = struct{}{}
	return out
}

// runLexAssignment sorts the marked set, generates one independent
// per-position-class-respecting random string per marked input, sorts
// the generated strings, and pairs the two sorted sequences
// positionally -- the strategy the specification names directly.
func (e *Engine) runLexAssignment() {
	items := e.marked.Sorted()
	inputs := make([]string, len(items))
	for i, it := range items {
		inputs[i] = string(it)
	}

	generated := make([]string, 0, len(inputs))
	usedGenerated := make(map[string]struct{}, len(inputs))
	for _, s := range inputs {
		var g string
		for {
			g = e.genRandomSameClass(s)
			if _, used := usedGenerated[g]; !used {
				break
			}
		}
		usedGenerated[g] = struct{}{}
		generated = append(generated, g)
	}
	sort.Strings(generated)

	for i, s := range inputs {
		e.table.Set(s, generated[i])
	}
	e.marked = nil
}

// Delete releases the engine's storage.
func (e *Engine) Delete() {
	e.fwd = nil
	e.usedOut = nil
	e.table = nil
	e.marked = nil
}

func (e *Engine) genRandomSameClass(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		class, lower, upper := classify(s[i])
		if class == classOther {
			out[i] = s[i]
			continue
		}
		out[i] = randsrc.Byte(e.rng, lower, upper)
	}
	return string(out)
}
