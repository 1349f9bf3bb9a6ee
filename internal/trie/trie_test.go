// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package trie

import (
	"testing"

	"netanon/internal/anonkey"
)

func keyFromPassphrase(p string) *anonkey.Key {
	k := anonkey.New()
	k.SetPassphrase([]byte(p))
	return k
}

func TestDeterministic(t *testing.T) {
	addr := []byte{10, 0, 0, 1}
	e1 := New(32, 0)
	e1.SetKey(keyFromPassphrase("test"))
	e2 := New(32, 0)
	e2.SetKey(keyFromPassphrase("test"))

	out1 := e1.MapPref(addr)
	out2 := e2.MapPref(addr)
	if string(out1) != string(out2) {
		t.Fatalf("MapPref not deterministic under same passphrase: %x != %x", out1, out2)
	}
}

func TestPrefixPreservation(t *testing.T) {
	e := New(32, 0)
	e.SetKey(keyFromPassphrase("test"))

	a := []byte{10, 0, 0, 1}
	b := []byte{10, 0, 0, 2}
	c := []byte{11, 0, 0, 1}

	outA := e.MapPref(a)
	outB := e.MapPref(b)
	outC := e.MapPref(c)

	if outA[0] != outB[0] {
		t.Fatalf("inputs sharing a 24-bit prefix produced different first octets: %x vs %x", outA, outB)
	}
	if outA[0] == outC[0] && outA[1] == outC[1] && outA[2] == outC[2] && outA[3] == outC[3] {
		t.Fatalf("unrelated inputs produced identical output")
	}
}

func TestNodeLaziness(t *testing.T) {
	e := New(32, 0)
	e.SetKey(keyFromPassphrase("test"))
	e.MapPref([]byte{10, 0, 0, 1})
	if got := e.NodesCount(); got > 33 {
		t.Fatalf("NodesCount() = %d after one address, want <= 33", got)
	}
}

func TestLexMonotonicity(t *testing.T) {
	e := New(32, 0)
	e.SetKey(keyFromPassphrase("test"))

	inputs := [][]byte{{1, 2, 3, 4}, {1, 2, 3, 5}, {5, 6, 7, 8}}
	for _, in := range inputs {
		e.SetUsed(in, 32)
	}

	outs := make([][]byte, len(inputs))
	for i, in := range inputs {
		outs[i] = e.MapPrefLex(in)
	}

	if compareBytes(outs[0], outs[1]) >= 0 {
		t.Fatalf("map_lex(1.2.3.4) >= map_lex(1.2.3.5): %x, %x", outs[0], outs[1])
	}
	if compareBytes(outs[1], outs[2]) >= 0 {
		t.Fatalf("map_lex(1.2.3.5) >= map_lex(5.6.7.8): %x, %x", outs[1], outs[2])
	}
	if outs[0][0] != outs[1][0] || outs[0][1] != outs[1][1] || outs[0][2] != outs[1][2] || outs[0][3]>>2 != outs[1][3]>>2 {
		t.Fatalf("lex assignment broke the 30-bit prefix shared by the first two inputs: %x, %x", outs[0], outs[1])
	}
}

func TestMapAfterMapLexPanics(t *testing.T) {
	e := New(32, 0)
	e.SetKey(keyFromPassphrase("test"))
	e.SetUsed([]byte{1, 2, 3, 4}, 32)
	e.MapPrefLex([]byte{1, 2, 3, 4})

	defer func() {
		if recover() == nil {
			t.Fatalf("MapPref after MapPrefLex did not panic")
		}
	}()
	e.MapPref([]byte{1, 2, 3, 4})
}

func TestSkipLevelsPreserveLeadingBits(t *testing.T) {
	e := New(8, 2)
	e.SetKey(keyFromPassphrase("test"))
	in := []byte{0b11000000}
	out := e.MapPref(in)
	if out[0]&0b11000000 != in[0]&0b11000000 {
		t.Fatalf("skip levels altered preserved bits: in=%08b out=%08b", in[0], out[0])
	}
}
