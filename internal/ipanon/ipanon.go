// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package ipanon implements the prefix-preserving IPv4 and IPv6
// engines as thin, width-specialized wrappers over internal/trie. The
// two variants differ only in address width; both delegate every bit
// of the cryptographic work to the shared trie.
package ipanon

import (
	"fmt"
	"net/netip"

	"netanon/internal/anonkey"
	"netanon/internal/trie"
)

// V4 anonymizes IPv4 addresses, preserving prefix relationships.
type V4 struct {
	t *trie.Engine
}

// NewV4 returns an empty IPv4 engine.
func NewV4() *V4 {
	return &V4{t: trie.New(32, 0)}
}

// SetKey attaches the secret driving the prefix-preserving map.
func (e *V4) SetKey(k *anonkey.Key) { e.t.SetKey(k) }

// SetUsed marks addr (truncated to its high prefixLen bits) for
// inclusion in a later MapLex bulk assignment.
func (e *V4) SetUsed(addr netip.Addr, prefixLen int) {
	b := addr.As4()
	e.t.SetUsed(b[:], prefixLen)
}

// Map computes the prefix-preserving anonymization of addr.
func (e *V4) Map(addr netip.Addr) netip.Addr {
	b := addr.As4()
	out := e.t.MapPref(b[:])
	var o [4]byte
	copy(o[:], out)
	return netip.AddrFrom4(o)
}

// MapLex computes the prefix- and lex-order-preserving anonymization
// of addr.
func (e *V4) MapLex(addr netip.Addr) netip.Addr {
	b := addr.As4()
	out := e.t.MapPrefLex(b[:])
	var o [4]byte
	copy(o[:], out)
	return netip.AddrFrom4(o)
}

// NodesCount reports the number of trie nodes allocated so far.
func (e *V4) NodesCount() int { return e.t.NodesCount() }

// Delete releases the engine's storage.
func (e *V4) Delete() { e.t.Delete() }

// V6 anonymizes IPv6 addresses, preserving prefix relationships.
type V6 struct {
	t *trie.Engine
}

// NewV6 returns an empty IPv6 engine.
func NewV6() *V6 {
	return &V6{t: trie.New(128, 0)}
}

// SetKey attaches the secret driving the prefix-preserving map.
func (e *V6) SetKey(k *anonkey.Key) { e.t.SetKey(k) }

// SetUsed marks addr (truncated to its high prefixLen bits) for
// inclusion in a later MapLex bulk assignment.
func (e *V6) SetUsed(addr netip.Addr, prefixLen int) {
	b := addr.As16()
	e.t.SetUsed(b[:], prefixLen)
}

// Map computes the prefix-preserving anonymization of addr.
func (e *V6) Map(addr netip.Addr) netip.Addr {
	b := addr.As16()
	out := e.t.MapPref(b[:])
	var o [16]byte
	copy(o[:], out)
	return netip.AddrFrom16(o)
}

// MapLex computes the prefix- and lex-order-preserving anonymization
// of addr.
func (e *V6) MapLex(addr netip.Addr) netip.Addr {
	b := addr.As16()
	out := e.t.MapPrefLex(b[:])
	var o [16]byte
	copy(o[:], out)
	return netip.AddrFrom16(o)
}

// NodesCount reports the number of trie nodes allocated so far.
func (e *V6) NodesCount() int { return e.t.NodesCount() }

// Delete releases the engine's storage.
func (e *V6) Delete() { e.t.Delete() }

// ParseAddr parses s as an IPv4 or IPv6 address in its usual textual
// form, rejecting IPv4-in-IPv6 forms so callers never confuse the two
// engines.
func ParseAddr(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if addr.Is4In6() {
		return netip.Addr{}, fmt.Errorf("invalid address %q: IPv4-mapped IPv6 form is not accepted", s)
	}
	return addr, nil
}
