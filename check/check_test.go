package check

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/ChristianF88/lsdsort/radix"
)

var int32Key radix.Key[int32] = radix.Signed[int32]{}

func TestSorted(t *testing.T) {
	tests := []struct {
		name string
		data []int32
		ok   bool
	}{
		{name: "empty", data: nil, ok: true},
		{name: "single", data: []int32{4}, ok: true},
		{name: "ascending with ties", data: []int32{-3, 0, 0, 8}, ok: true},
		{name: "descending pair", data: []int32{1, -1}, ok: false},
		{name: "late inversion", data: []int32{1, 2, 3, 5, 4}, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Sorted(tt.data, int32Key)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrNotSorted) {
				t.Errorf("expected ErrNotSorted, got %v", err)
			}
		})
	}
}

type item struct {
	k   uint8
	seq int
}

var itemKey = radix.Field[item, uint8](radix.Unsigned[uint8]{}, func(it item) uint8 { return it.k })

func sameItem(a, b item) bool { return a == b }

func TestStable(t *testing.T) {
	input := []item{{2, 0}, {1, 1}, {2, 2}, {1, 3}}
	good := []item{{1, 1}, {1, 3}, {2, 0}, {2, 2}}
	bad := []item{{1, 3}, {1, 1}, {2, 0}, {2, 2}}

	if err := Stable(input, good, itemKey, sameItem); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Stable(input, bad, itemKey, sameItem); !errors.Is(err, ErrNotStable) {
		t.Errorf("expected ErrNotStable, got %v", err)
	}
	if err := Stable(input, good[:3], itemKey, sameItem); !errors.Is(err, ErrNotStable) {
		t.Errorf("expected ErrNotStable for short output, got %v", err)
	}
}

func TestPermutation(t *testing.T) {
	a := []int32{5, -1, 5, 3}
	tests := []struct {
		name string
		b    []int32
		ok   bool
	}{
		{name: "same order", b: []int32{5, -1, 5, 3}, ok: true},
		{name: "sorted", b: []int32{-1, 3, 5, 5}, ok: true},
		{name: "duplicate swapped", b: []int32{-1, 3, 3, 5}, ok: false},
		{name: "foreign value", b: []int32{-1, 3, 5, 6}, ok: false},
		{name: "shorter", b: []int32{-1, 3, 5}, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Permutation(a, tt.b, int32Key, 2)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrNotPermutation) {
				t.Errorf("expected ErrNotPermutation, got %v", err)
			}
		})
	}
}

func TestPermutationConcurrentChunks(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := make([]int32, 4*minChunk+5)
	for i := range a {
		a[i] = int32(rng.Intn(1000))
	}
	b := slices.Clone(a)
	rng.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })

	if err := Permutation(a, b, int32Key, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b[len(b)/2]++
	if err := Permutation(a, b, int32Key, 4); !errors.Is(err, ErrNotPermutation) {
		t.Errorf("expected ErrNotPermutation after change, got %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	a := []int32{9, -4, 7, 7, 0}
	b := []int32{7, 0, 9, 7, -4}
	if Fingerprint(a, int32Key) != Fingerprint(b, int32Key) {
		t.Error("fingerprint should not depend on order")
	}
	c := []int32{7, 0, 9, 8, -4}
	if Fingerprint(a, int32Key) == Fingerprint(c, int32Key) {
		t.Error("fingerprint should change with the elements")
	}
	if Fingerprint[int32](nil, int32Key) != 0 {
		t.Error("empty input should hash to zero")
	}
}

func TestChecksAfterRadixSort(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	input := make([]item, 3000)
	for i := range input {
		input[i] = item{k: uint8(rng.Intn(20)), seq: i}
	}
	output := slices.Clone(input)
	if err := radix.Sort(output, itemKey); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if err := Sorted(output, itemKey); err != nil {
		t.Errorf("Sorted: %v", err)
	}
	if err := Permutation(input, output, itemKey, 4); err != nil {
		t.Errorf("Permutation: %v", err)
	}
	if err := Stable(input, output, itemKey, sameItem); err != nil {
		t.Errorf("Stable: %v", err)
	}
	if err := Sorted(input, itemKey); !errors.Is(err, ErrNotSorted) {
		t.Errorf("expected ErrNotSorted for the unsorted input, got %v", err)
	}
}
