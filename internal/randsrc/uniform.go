// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package randsrc

import (
	"encoding/binary"
	"math"
)

// Uint64 draws a value uniformly from [lower, upper] (inclusive),
// using rejection sampling against a power-unaligned range so the
// result carries no modulo bias.
func Uint64(src Source, lower, upper uint64) uint64 {
	if lower == 0 && upper == math.MaxUint64 {
		return draw(src)
	}
	span := upper - lower + 1
	limit := math.MaxUint64 - (math.MaxUint64 % span)
	for {
		v := draw(src)
		if v < limit {
			return lower + v%span
		}
	}
}

func draw(src Source) uint64 {
	var b [8]byte
	if _, err := src.Read(b[:]); err != nil {
		panic("randsrc: entropy source failed: " + err.Error())
	}
	return binary.BigEndian.Uint64(b[:])
}

// Byte draws a value uniformly from [lower, upper] (inclusive) within
// a single byte's range, used by the octet-string engine to pick a
// replacement character inside a character class.
func Byte(src Source, lower, upper byte) byte {
	span := uint32(upper) - uint32(lower) + 1
	limit := uint32(256) - uint32(256)%span
	var b [1]byte
	for {
		if _, err := src.Read(b[:]); err != nil {
			panic("randsrc: entropy source failed: " + err.Error())
		}
		v := uint32(b[0])
		if v < limit {
			return lower + byte(v%span)
		}
	}
}
