package labels

import (
	"errors"
	"testing"
)

func TestAllocate_Prefix(t *testing.T) {
	got := Allocate(5)
	want := []string{"a", "s", "d", "f", "j"}
	if len(got) != len(want) {
		t.Fatalf("expected %d labels, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("label %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestAllocate_SpillsIntoPairs(t *testing.T) {
	got := Allocate(30)
	if got[25] != "b" {
		t.Fatalf("expected last single to be b, got %q", got[25])
	}
	if got[26] != "aa" || got[29] != "af" {
		t.Fatalf("expected aa..af, got %q..%q", got[26], got[29])
	}
}

func TestAllocate_LengthsAndUniqueness(t *testing.T) {
	for _, n := range []int{0, 1, 25, 26, 27, 100, 702} {
		got := Allocate(n)
		if len(got) != n {
			t.Fatalf("n=%d: expected %d labels, got %d", n, n, len(got))
		}
		seen := make(map[string]bool, n)
		for i, label := range got {
			if seen[label] {
				t.Fatalf("n=%d: duplicate label %q", n, label)
			}
			seen[label] = true
			wantLen := 2
			if i < 26 {
				wantLen = 1
			}
			if len(label) != wantLen {
				t.Fatalf("n=%d: label %d %q has length %d", n, i, label, len(label))
			}
		}
	}
}

func TestAllocate_Idempotent(t *testing.T) {
	a := NewAllocator()
	first := append([]string(nil), a.Allocate(60)...)
	a.Reset()
	second := a.Allocate(60)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("label %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestAllocate_TruncatesPastCapacity(t *testing.T) {
	a := NewAllocator()
	got := a.Allocate(710)
	if len(got) != 702 {
		t.Fatalf("expected 702 labels, got %d", len(got))
	}
	if a.Unlabeled() != 8 {
		t.Fatalf("expected 8 unlabeled, got %d", a.Unlabeled())
	}
	if got[701] != "bb" {
		t.Fatalf("expected final label bb, got %q", got[701])
	}
	a.Allocate(3)
	if a.Unlabeled() != 0 {
		t.Fatalf("expected unlabeled to reset, got %d", a.Unlabeled())
	}
}

func TestWithAlphabet(t *testing.T) {
	got := NewAllocator(WithAlphabet("jk")).Allocate(6)
	want := []string{"j", "k", "jj", "jk", "kj", "kk"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("label %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestValidateAlphabet(t *testing.T) {
	for _, bad := range []string{"", "aa", "aB", "a1"} {
		if err := ValidateAlphabet(bad); !errors.Is(err, ErrInvalidAlphabet) {
			t.Fatalf("expected %q to be rejected, got %v", bad, err)
		}
	}
	if err := ValidateAlphabet(Alphabet); err != nil {
		t.Fatalf("expected default alphabet valid, got %v", err)
	}
}
