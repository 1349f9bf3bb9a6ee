// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package macanon

import (
	"testing"

	"netanon/internal/anonkey"
)

func keyFromPassphrase(p string) *anonkey.Key {
	k := anonkey.New()
	k.SetPassphrase([]byte(p))
	return k
}

func TestPreservesIGAndULBits(t *testing.T) {
	e := New()
	e.SetKey(keyFromPassphrase("test"))

	a, err := Parse("01:23:45:67:89:ab")
	if err != nil {
		t.Fatalf("Parse() error: %+v", err)
	}
	out := e.Map(a)

	// 0x01 has I/G=1 (odd), U/L=0.
	if out[0]&0x01 != a[0]&0x01 {
		t.Fatalf("I/G bit not preserved: in=%02x out=%02x", a[0], out[0])
	}
	if out[0]&0x02 != a[0]&0x02 {
		t.Fatalf("U/L bit not preserved: in=%02x out=%02x", a[0], out[0])
	}
}

func TestPermuteRoundTrips(t *testing.T) {
	mac, _ := Parse("01:23:45:67:89:ab")
	if got := unpermute(permute(mac)); got != mac {
		t.Fatalf("unpermute(permute(x)) = %v, want %v", got, mac)
	}
}

func TestDeterministic(t *testing.T) {
	mac, _ := Parse("01:23:45:67:89:ab")
	e1 := New()
	e1.SetKey(keyFromPassphrase("test"))
	e2 := New()
	e2.SetKey(keyFromPassphrase("test"))
	if e1.Map(mac) != e2.Map(mac) {
		t.Fatalf("Map not deterministic under same passphrase")
	}
}
