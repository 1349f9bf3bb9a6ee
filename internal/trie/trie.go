// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package trie implements the lazily-constructed binary trie shared by
// every prefix-preserving engine (IPv4, IPv6, and the permuted 48-bit
// stream of a MAC address, whose first two levels pass through
// unchanged). Nodes live in an arena addressed by int32
// index rather than linked by pointer, following the arena/index style
// the original source's raw pointer webs are re-cast into: children
// are two indices, with -1 standing in for "absent," so freeing the
// trie is dropping the slice rather than walking it.
package trie

import (
	"sort"
	"strconv"

	"netanon/internal/anonkey"
	"netanon/internal/lifecycle"
	"netanon/internal/prf"
)

const absentIndex = -1

type node struct {
	left, right int32
	bit         uint8
	has         bool
}

// markedEntry is one set_used call: a prefix of the address space,
// truncated to prefixLen bits and zero-padded to the engine's full
// byte width so it sorts numerically alongside full addresses.
type markedEntry struct {
	value     []byte
	prefixLen int
}

// Engine is the prefix-preserving trie for a fixed bit width. The
// first skip levels never consult the PRF: their anonymization bit is
// forced to 0 (an identity pass-through), while still branching on the
// input bit at that level. The MAC engine uses skip=2 to carry the
// Individual/Group and Universal/Local bits through unchanged while
// still scoping the remaining 46 bits into four independent subtrees,
// one per combination of the two preserved bits.
type Engine struct {
	width int
	skip  int

	arena []node
	root  int32

	key *anonkey.Key
	prf *prf.PRF
	pad [16]byte

	lc lifecycle.Machine

	marked     []markedEntry
	markedSeen map[string]struct{}
}

// New builds an empty trie over width bits, forcing the first skip
// levels to pass through unchanged.
func New(width, skip int) *Engine {
	return &Engine{
		width:      width,
		skip:       skip,
		root:       absentIndex,
		markedSeen: make(map[string]struct{}),
	}
}

// SetKey attaches the secret that drives the PRF. Only permitted in
// INIT, matching every other set_* call on this engine.
func (e *Engine) SetKey(k *anonkey.Key) {
	e.lc.RequireInit("set_key")
	secret, pad := k.Bytes()
	p, err := prf.New(secret)
	if err != nil {
		panic("trie: set_key: " + err.Error())
	}
	e.key = k
	e.prf = p
	e.pad = pad
}

// SetUsed records addr, truncated to its high prefixLen bits, as a
// value that will be mapped later in LEX mode. Permitted only in
// INIT; duplicates are silently ignored.
func (e *Engine) SetUsed(addr []byte, prefixLen int) {
	e.lc.RequireInit("set_used")
	if prefixLen < 0 || prefixLen > e.width {
		panic("trie: set_used: prefix_len " + strconv.Itoa(prefixLen) + " out of range for width " + strconv.Itoa(e.width))
	}
	truncated := truncateToPrefix(addr, prefixLen)
	key := string(truncated) + "/" + strconv.Itoa(prefixLen)
	if _, ok := e.markedSeen[key]; ok {
		return
	}
	e.markedSeen[key] = struct{}{}
	e.marked = append(e.marked, markedEntry{value: truncated, prefixLen: prefixLen})
}

// MapPref computes the prefix-preserving anonymization of addr.
// Permitted in INIT or NON_LEX; the first call transitions the engine
// out of INIT.
func (e *Engine) MapPref(addr []byte) []byte {
	e.lc.EnterNonLex()
	return e.walk(addr)
}

// MapPrefLex computes the prefix- and lex-order-preserving
// anonymization of addr. The first call, which must follow a
// complete sequence of SetUsed calls, performs the one-time bulk
// assignment over the marked set before answering any lookup.
func (e *Engine) MapPrefLex(addr []byte) []byte {
	if e.lc.EnterLex() {
		e.runLexAssignment()
	}
	return e.walk(addr)
}

// NodesCount reports the number of trie nodes allocated so far.
func (e *Engine) NodesCount() int {
	return len(e.arena)
}

// Delete releases the trie's storage. The engine must not be used
// afterwards.
func (e *Engine) Delete() {
	e.arena = nil
	e.root = absentIndex
	e.marked = nil
	e.markedSeen = nil
}

func (e *Engine) walk(addr []byte) []byte {
	out := make([]byte, len(addr))
	if e.root == absentIndex {
		e.root = e.newNode()
	}
	idx := e.root
	for d := 0; d < e.width; d++ {
		n := &e.arena[idx]
		if !n.has {
			n.bit = e.computeBit(d, addr)
			n.has = true
		}
		inBit := getBit(addr, d)
		setBit(out, d, inBit^n.bit)
		idx = e.ensureChild(idx, int(inBit))
	}
	return out
}

// runLexAssignment performs the one-time bulk decision pass described
// in the specification: walk the marked set restricted to the trie,
// and at every node whose two subtrees both hold marked descendants,
// force the anonymization bit to 0 so the numerically lower subtree
// maps before the higher one. Nodes with marked descendants on only
// one side keep the ordinary prefix-preserving bit.
func (e *Engine) runLexAssignment() {
	if e.root == absentIndex {
		e.root = e.newNode()
	}
	sort.Slice(e.marked, func(i, j int) bool {
		c := compareBytes(e.marked[i].value, e.marked[j].value)
		if c != 0 {
			return c < 0
		}
		return e.marked[i].prefixLen < e.marked[j].prefixLen
	})
	e.buildLex(e.root, 0, e.marked)
	e.marked = nil
	e.markedSeen = nil
}

func (e *Engine) buildLex(idx int32, depth int, items []markedEntry) {
	if depth == e.width || len(items) == 0 {
		return
	}

	rest := make([]markedEntry, 0, len(items))
	for _, it := range items {
		if it.prefixLen > depth {
			rest = append(rest, it)
		}
	}
	if len(rest) == 0 {
		e.ensureBit(idx, depth, items[0].value)
		return
	}

	var low, high []markedEntry
	for _, it := range rest {
		if getBit(it.value, depth) == 0 {
			low = append(low, it)
		} else {
			high = append(high, it)
		}
	}

	n := &e.arena[idx]
	if !n.has {
		if len(low) > 0 && len(high) > 0 {
			n.bit = 0
		} else {
			n.bit = e.computeBit(depth, items[0].value)
		}
		n.has = true
	}
	if len(low) > 0 {
		e.buildLex(e.ensureChild(idx, 0), depth+1, low)
	}
	if len(high) > 0 {
		e.buildLex(e.ensureChild(idx, 1), depth+1, high)
	}
}

func (e *Engine) ensureBit(idx int32, depth int, addr []byte) {
	n := &e.arena[idx]
	if !n.has {
		n.bit = e.computeBit(depth, addr)
		n.has = true
	}
}

// computeBit derives f_d: the anonymization bit for the node reached
// by the d-bit prefix of addr. Levels below skip pass through
// unchanged without consulting the PRF.
func (e *Engine) computeBit(depth int, addr []byte) uint8 {
	if depth < e.skip {
		return 0
	}
	block := e.packBlock(addr, depth)
	out := e.prf.Block(block)
	return getBit(out[:], 0)
}

// packBlock builds the 16-byte PRF input for a d-bit prefix: the
// leading d bits come from addr, the remaining 128-d bits come from
// the key's pad block, exactly as "p_i padded on the right with bytes
// of pad to fill a 16-byte block" in the specification.
func (e *Engine) packBlock(addr []byte, depth int) [16]byte {
	var block [16]byte
	for j := 0; j < 128; j++ {
		var bit uint8
		if j < depth {
			bit = getBit(addr, j)
		} else {
			bit = getBit(e.pad[:], j)
		}
		if bit == 1 {
			setBit(block[:], j, 1)
		}
	}
	return block
}

func (e *Engine) newNode() int32 {
	e.arena = append(e.arena, node{left: absentIndex, right: absentIndex})
	return int32(len(e.arena) - 1)
}

func (e *Engine) ensureChild(idx int32, branch int) int32 {
	// newNode may grow the arena, so the link is written through a
	// fresh index rather than a pointer taken before the append.
	if branch == 0 {
		if e.arena[idx].left == absentIndex {
			c := e.newNode()
			e.arena[idx].left = c
		}
		return e.arena[idx].left
	}
	if e.arena[idx].right == absentIndex {
		c := e.newNode()
		e.arena[idx].right = c
	}
	return e.arena[idx].right
}

// getBit reads bit pos (0 = most significant bit of buf[0]) from buf,
// treating positions past the end of buf as 0.
func getBit(buf []byte, pos int) uint8 {
	byteIdx := pos / 8
	if byteIdx >= len(buf) {
		return 0
	}
	shift := 7 - uint(pos%8)
	return (buf[byteIdx] >> shift) & 1
}

func setBit(buf []byte, pos int, v uint8) {
	byteIdx := pos / 8
	if byteIdx >= len(buf) {
		return
	}
	shift := uint(7 - pos%8)
	if v == 1 {
		buf[byteIdx] |= 1 << shift
	} else {
		buf[byteIdx] &^= 1 << shift
	}
}

func truncateToPrefix(addr []byte, prefixLen int) []byte {
	out := make([]byte, len(addr))
	copy(out, addr)
	for j := prefixLen; j < len(out)*8; j++ {
		setBit(out, j, 0)
	}
	return out
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
