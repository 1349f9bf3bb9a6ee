// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package intanon

import "testing"

func TestUint64MapWithinRange(t *testing.T) {
	e := NewUint64(100, 199, nil)
	for _, n := range []uint64{5, 42, 7, 99} {
		m := e.Map(n)
		if m < 100 || m > 199 {
			t.Fatalf("Map(%d) = %d, out of [100,199]", n, m)
		}
	}
}

func TestUint64MapIsInjectiveAndIdempotent(t *testing.T) {
	e := NewUint64(0, 1000, nil)
	a1 := e.Map(5)
	a2 := e.Map(5)
	if a1 != a2 {
		t.Fatalf("Map(5) not idempotent: %d != %d", a1, a2)
	}
	b := e.Map(6)
	if a1 == b {
		t.Fatalf("Map(5) and Map(6) collided: both %d", a1)
	}
}

func TestUint64MapLexMonotonicity(t *testing.T) {
	e := NewUint64(100, 199, nil)
	for _, n := range []uint64{5, 42} {
		e.SetUsed(n)
	}
	m5 := e.MapLex(5)
	m42 := e.MapLex(42)
	if m5 >= m42 {
		t.Fatalf("MapLex(5) >= MapLex(42): %d, %d", m5, m42)
	}
}

func TestUint64MapLexOnUnmarkedPanics(t *testing.T) {
	e := NewUint64(100, 199, nil)
	e.SetUsed(5)
	e.MapLex(5)

	defer func() {
		if recover() == nil {
			t.Fatalf("MapLex on an unmarked input did not panic")
		}
	}()
	e.MapLex(6)
}

func TestUint64ExceedingRangePanics(t *testing.T) {
	e := NewUint64(0, 1, nil)
	e.Map(0)
	e.Map(1)
	defer func() {
		if recover() == nil {
			t.Fatalf("Map beyond the configured range did not panic")
		}
	}()
	e.Map(2)
}

func TestInt64NegativeRange(t *testing.T) {
	e := NewInt64(-100, 100, nil)
	for _, n := range []int64{-50, 0, 50} {
		m := e.Map(n)
		if m < -100 || m > 100 {
			t.Fatalf("Map(%d) = %d, out of [-100,100]", n, m)
		}
	}
}

func TestInt64MapLexMonotonicity(t *testing.T) {
	e := NewInt64(-1000, 1000, nil)
	e.SetUsed(-5)
	e.SetUsed(42)
	m1 := e.MapLex(-5)
	m2 := e.MapLex(42)
	if m1 >= m2 {
		t.Fatalf("MapLex(-5) >= MapLex(42): %d, %d", m1, m2)
	}
}
