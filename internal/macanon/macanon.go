// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package macanon implements the 48-bit MAC address engine. It
// preserves the Individual/Group bit (the least-significant bit of
// the first octet) and the Universal/Local bit (the next bit)
// unchanged, and routes the remaining 46 bits through the shared
// prefix-preserving trie, scoped independently per combination of the
// two preserved bits.
//
// The trie only knows how to force its first skip levels to pass
// through unchanged at the *front* of a bitstream, so this package
// permutes the two preserved bits to the front before handing the
// address to a width=48, skip=2 trie, and undoes the permutation on
// the way out.
package macanon

import (
	"fmt"
	"net"

	"netanon/internal/anonkey"
	"netanon/internal/trie"
)

// Engine anonymizes IEEE-802 MAC addresses.
type Engine struct {
	t *trie.Engine
}

// New returns an empty MAC engine.
func New() *Engine {
	return &Engine{t: trie.New(48, 2)}
}

// SetKey attaches the secret driving the prefix-preserving map.
func (e *Engine) SetKey(k *anonkey.Key) { e.t.SetKey(k) }

// SetUsed marks mac for inclusion in a later MapLex bulk assignment.
func (e *Engine) SetUsed(mac [6]byte) {
	p := permute(mac)
	e.t.SetUsed(p[:], 48)
}

// Map computes the prefix-preserving anonymization of mac, leaving
// the Individual/Group and Universal/Local bits unchanged.
func (e *Engine) Map(mac [6]byte) [6]byte {
	p := permute(mac)
	out := e.t.MapPref(p[:])
	var o [6]byte
	copy(o[:], out)
	return unpermute(o)
}

// MapLex computes the prefix- and lex-order-preserving anonymization
// of mac.
func (e *Engine) MapLex(mac [6]byte) [6]byte {
	p := permute(mac)
	out := e.t.MapPrefLex(p[:])
	var o [6]byte
	copy(o[:], out)
	return unpermute(o)
}

// NodesCount reports the number of trie nodes allocated so far.
func (e *Engine) NodesCount() int { return e.t.NodesCount() }

// Delete releases the engine's storage.
func (e *Engine) Delete() { e.t.Delete() }

// permute moves the Individual/Group bit (overall bit index 7, the
// low bit of the first octet) and the Universal/Local bit (index 6)
// to the front of the bitstream, at indices 0 and 1. The remaining 46
// bits keep their relative order behind them.
func permute(mac [6]byte) [6]byte {
	var out [6]byte
	setBit(&out, 0, getBit(mac, 7))
	setBit(&out, 1, getBit(mac, 6))
	j := 2
	for i := 0; i < 6; i++ {
		setBit(&out, j, getBit(mac, i))
		j++
	}
	for i := 8; i < 48; i++ {
		setBit(&out, j, getBit(mac, i))
		j++
	}
	return out
}

// unpermute is the inverse of permute.
func unpermute(p [6]byte) [6]byte {
	var out [6]byte
	setBit(&out, 7, getBit(p, 0))
	setBit(&out, 6, getBit(p, 1))
	j := 2
	for i := 0; i < 6; i++ {
		setBit(&out, i, getBit(p, j))
		j++
	}
	for i := 8; i < 48; i++ {
		setBit(&out, i, getBit(p, j))
		j++
	}
	return out
}

func getBit(b [6]byte, pos int) uint8 {
	byteIdx := pos / 8
	shift := 7 - uint(pos%8)
	return (b[byteIdx] >> shift) & 1
}

func setBit(b *[6]byte, pos int, v uint8) {
	byteIdx := pos / 8
	shift := uint(7 - pos%8)
	if v == 1 {
		b[byteIdx] |= 1 << shift
	} else {
		b[byteIdx] &^= 1 << shift
	}
}

// Parse parses s in xx:xx:xx:xx:xx:xx notation.
func Parse(s string) ([6]byte, error) {
	var mac [6]byte
	hw, err := net.ParseMAC(s)
	if err != nil || len(hw) != 6 {
		return mac, fmt.Errorf("invalid MAC address %q", s)
	}
	copy(mac[:], hw)
	return mac, nil
}

// String formats mac in xx:xx:xx:xx:xx:xx notation.
func String(mac [6]byte) string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])
}
