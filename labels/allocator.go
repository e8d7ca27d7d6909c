// Package labels assigns short, typeable hint labels to discovered elements.
package labels

import (
	"errors"
	"fmt"
)

// Alphabet is the default label alphabet in keystroke-efficiency order:
// home row first, then the keys nearest to it.
const Alphabet = "asdfjklgheiwoqpruvncmxztyb"

// Capacity returns how many labels an alphabet of size n can address.
func Capacity(n int) int {
	return n + n*n
}

// ErrInvalidAlphabet is returned for alphabets that cannot produce unique labels.
var ErrInvalidAlphabet = errors.New("invalid label alphabet")

// ValidateAlphabet checks that alphabet is non-empty, lowercase a-z and unique.
func ValidateAlphabet(alphabet string) error {
	if alphabet == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAlphabet)
	}
	seen := make(map[rune]bool, len(alphabet))
	for _, r := range alphabet {
		if r < 'a' || r > 'z' {
			return fmt.Errorf("%w: %q is not a lowercase letter", ErrInvalidAlphabet, r)
		}
		if seen[r] {
			return fmt.Errorf("%w: %q repeats", ErrInvalidAlphabet, r)
		}
		seen[r] = true
	}
	return nil
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithAlphabet overrides the alphabet. Invalid alphabets are ignored.
func WithAlphabet(alphabet string) Option {
	return func(a *Allocator) {
		if ValidateAlphabet(alphabet) == nil {
			a.alphabet = []rune(alphabet)
		}
	}
}

// Allocator produces label sets. It is deterministic: the same n always
// yields the same sequence, and a reused allocator drops its previous set
// before producing the next one.
type Allocator struct {
	alphabet  []rune
	labels    []string
	unlabeled int
}

// NewAllocator creates an allocator over the default alphabet.
func NewAllocator(opts ...Option) *Allocator {
	a := &Allocator{alphabet: []rune(Alphabet)}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Capacity returns the number of addressable elements.
func (a *Allocator) Capacity() int {
	if a == nil {
		return 0
	}
	return Capacity(len(a.alphabet))
}

// Allocate returns min(n, Capacity) labels: single letters in alphabet order,
// then two-letter combinations in nested alphabet order.
func (a *Allocator) Allocate(n int) []string {
	if a == nil {
		return nil
	}
	a.Reset()
	if n <= 0 {
		return nil
	}
	limit := n
	if capacity := a.Capacity(); limit > capacity {
		limit = capacity
		a.unlabeled = n - capacity
	}
	out := make([]string, 0, limit)
	for _, r := range a.alphabet {
		if len(out) == limit {
			break
		}
		out = append(out, string(r))
	}
	for _, first := range a.alphabet {
		if len(out) == limit {
			break
		}
		for _, second := range a.alphabet {
			if len(out) == limit {
				break
			}
			out = append(out, string([]rune{first, second}))
		}
	}
	a.labels = out
	return out
}

// Labels returns the most recently allocated set.
func (a *Allocator) Labels() []string {
	if a == nil {
		return nil
	}
	return a.labels
}

// Unlabeled reports how many elements of the last request received no label.
func (a *Allocator) Unlabeled() int {
	if a == nil {
		return 0
	}
	return a.unlabeled
}

// Reset drops the current label set.
func (a *Allocator) Reset() {
	if a == nil {
		return
	}
	a.labels = nil
	a.unlabeled = 0
}

// Allocate is a convenience wrapper over a default allocator.
func Allocate(n int) []string {
	return NewAllocator().Allocate(n)
}

// Lookup returns the index of label in labels, or -1.
func Lookup(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}
