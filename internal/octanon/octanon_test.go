// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package octanon

import "testing"

func classOf(c byte) int {
	class, _, _ := classify(c)
	return class
}

func TestMapPreservesClassAndLength(t *testing.T) {
	e := New(nil)
	in := "Ab3-x"
	out := e.Map(in)
	if len(out) != len(in) {
		t.Fatalf("Map() changed length: %q -> %q", in, out)
	}
	for i := 0; i < len(in); i++ {
		if classOf(in[i]) != classOf(out[i]) {
			t.Fatalf("Map() changed class at position %d: %q -> %q", i, in, out)
		}
	}
	if out[3] != '-' {
		t.Fatalf("Map() altered a non-classified character: %q -> %q", in, out)
	}
}

func TestMapConsistentAcrossCalls(t *testing.T) {
	e := New(nil)
	a := e.Map("aaa")
	b := e.Map("aaa")
	if a != b {
		t.Fatalf("Map() not idempotent: %q != %q", a, b)
	}
}

func TestMapLexOrdering(t *testing.T) {
	e := New(nil)
	inputs := []string{"aaa", "aab", "zzz"}
	for _, s := range inputs {
		e.SetUsed(s)
	}
	var outs []string
	for _, s := range inputs {
		outs = append(outs, e.MapLex(s))
	}
	for _, o := range outs {
		if len(o) != 3 {
			t.Fatalf("MapLex() output wrong length: %q", o)
		}
		for i := 0; i < 3; i++ {
			if classOf(o[i]) != classLower {
				t.Fatalf("MapLex() output not lowercase: %q", o)
			}
		}
	}
	if !(outs[0] < outs[1] && outs[1] < outs[2]) {
		t.Fatalf("MapLex() outputs not sorted: %v", outs)
	}
}

func TestMapLexOnUnmarkedPanics(t *testing.T) {
	e := New(nil)
	e.SetUsed("aaa")
	e.MapLex("aaa")

	defer func() {
		if recover() == nil {
			t.Fatalf("MapLex on an unmarked input did not panic")
		}
	}()
	e.MapLex("zzz")
}
