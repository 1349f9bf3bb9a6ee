// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package ordered

import (
	"testing"

	"netanon/common/helpers"
)

func TestSortedAscendingAndDeduplicated(t *testing.T) {
	s := New()
	for _, v := range [][]byte{{5}, {1}, {3}, {1}, {2}} {
		s.Add(v)
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	got := s.Sorted()
	want := [][]byte{{1}, {2}, {3}, {5}}
	if diff := helpers.Diff(got, want); diff != "" {
		t.Fatalf("Sorted() (-got +want):\n%s", diff)
	}
}

func TestAddIgnoresDuplicates(t *testing.T) {
	s := New()
	s.Add([]byte{10})
	s.Add([]byte{20})
	s.Add([]byte{10})

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	want := [][]byte{{10}, {20}}
	if diff := helpers.Diff(s.Sorted(), want); diff != "" {
		t.Fatalf("Sorted() (-got +want):\n%s", diff)
	}
}
