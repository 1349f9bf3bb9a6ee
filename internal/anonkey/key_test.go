// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package anonkey

import "testing"

func TestSetPassphraseDeterministic(t *testing.T) {
	k1 := New()
	k1.SetPassphrase([]byte("correct horse battery staple"))
	k2 := New()
	k2.SetPassphrase([]byte("correct horse battery staple"))

	s1, p1 := k1.Bytes()
	s2, p2 := k2.Bytes()
	if s1 != s2 || p1 != p2 {
		t.Fatalf("SetPassphrase not deterministic for the same passphrase")
	}
}

func TestSetPassphraseDiffersByInput(t *testing.T) {
	k1 := New()
	k1.SetPassphrase([]byte("a"))
	k2 := New()
	k2.SetPassphrase([]byte("b"))

	s1, _ := k1.Bytes()
	s2, _ := k2.Bytes()
	if s1 == s2 {
		t.Fatalf("different passphrases produced the same secret")
	}
}

func TestSetRandomMarksSet(t *testing.T) {
	k := New()
	if k.IsSet() {
		t.Fatalf("new key reports IsSet before construction")
	}
	if err := k.SetRandom(nil); err != nil {
		t.Fatalf("SetRandom() error: %+v", err)
	}
	if !k.IsSet() {
		t.Fatalf("IsSet() false after SetRandom")
	}
}

func TestDeleteZeroizes(t *testing.T) {
	k := New()
	k.SetPassphrase([]byte("x"))
	k.Delete()
	if k.IsSet() {
		t.Fatalf("IsSet() true after Delete")
	}
	secret, pad := k.Bytes()
	for _, b := range secret {
		if b != 0 {
			t.Fatalf("secret not zeroized after Delete")
		}
	}
	for _, b := range pad {
		if b != 0 {
			t.Fatalf("pad not zeroized after Delete")
		}
	}
}
