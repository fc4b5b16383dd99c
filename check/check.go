// Package check verifies the output of a sort: order under a key, stability
// against a reference sort and that no element was lost or duplicated.
package check

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync/atomic"

	"github.com/alphadose/haxmap"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ChristianF88/lsdsort/pools"
	"github.com/ChristianF88/lsdsort/radix"
)

var (
	ErrNotSorted      = errors.New("check: not sorted")
	ErrNotStable      = errors.New("check: equal keys reordered")
	ErrNotPermutation = errors.New("check: output is not a permutation of the input")
)

// minChunk is the smallest slice Permutation tallies on its own goroutine.
const minChunk = 1 << 16

var keyBuffers = pools.NewKeyBufferPool()

// Sorted returns nil when data is in ascending order under key.
func Sorted[T any](data []T, key radix.Key[T]) error {
	for i := 1; i < len(data); i++ {
		if radix.Compare(key, data[i-1], data[i]) > 0 {
			return fmt.Errorf("%w: index %d", ErrNotSorted, i)
		}
	}
	return nil
}

// Stable compares output with a stable comparison sort of input under the
// same key. equal decides whether two elements are the same element.
func Stable[T any](input, output []T, key radix.Key[T], equal func(a, b T) bool) error {
	if len(input) != len(output) {
		return fmt.Errorf("%w: lengths %d and %d", ErrNotStable, len(input), len(output))
	}
	want := slices.Clone(input)
	slices.SortStableFunc(want, func(a, b T) int { return radix.Compare(key, a, b) })
	for i := range want {
		if !equal(want[i], output[i]) {
			return fmt.Errorf("%w: index %d", ErrNotStable, i)
		}
	}
	return nil
}

// Permutation checks that a and b hold the same multiset of keys. Key bytes
// are tallied in a concurrent map by up to workers goroutines; workers <= 0
// means runtime.GOMAXPROCS(0).
func Permutation[T any](a, b []T, key radix.Key[T], workers int) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: lengths %d and %d", ErrNotPermutation, len(a), len(b))
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	counts := haxmap.New[string, *atomic.Int64](uintptr(len(a)/2 + 1))
	if err := tally(counts, a, key, 1, workers); err != nil {
		return err
	}
	if err := tally(counts, b, key, -1, workers); err != nil {
		return err
	}

	// The counts sum to zero, so any mismatch leaves a positive count on a
	// key of a.
	buf := pools.GetKeyBuffer(keyBuffers)
	defer pools.ReturnKeyBuffer(keyBuffers, buf)
	for i, v := range a {
		*buf = radix.AppendKey((*buf)[:0], key, v)
		if c, ok := counts.Get(string(*buf)); !ok || c.Load() != 0 {
			return fmt.Errorf("%w: key of element %d", ErrNotPermutation, i)
		}
	}
	return nil
}

func tally[T any](counts *haxmap.Map[string, *atomic.Int64], data []T, key radix.Key[T], delta int64, workers int) error {
	chunks := min(workers, max(1, len(data)/minChunk))
	width := len(data) / chunks

	var g errgroup.Group
	for j := range chunks {
		lo, hi := j*width, (j+1)*width
		if j == chunks-1 {
			hi = len(data)
		}
		g.Go(func() error {
			buf := pools.GetKeyBuffer(keyBuffers)
			defer pools.ReturnKeyBuffer(keyBuffers, buf)
			for _, v := range data[lo:hi] {
				*buf = radix.AppendKey((*buf)[:0], key, v)
				c, _ := counts.GetOrSet(string(*buf), new(atomic.Int64))
				c.Add(delta)
			}
			return nil
		})
	}
	return g.Wait()
}

// Fingerprint hashes the key bytes of every element and sums the hashes,
// so any reordering of data gives the same value.
func Fingerprint[T any](data []T, key radix.Key[T]) uint64 {
	buf := pools.GetKeyBuffer(keyBuffers)
	defer pools.ReturnKeyBuffer(keyBuffers, buf)

	var sum uint64
	for _, v := range data {
		*buf = radix.AppendKey((*buf)[:0], key, v)
		sum += xxhash.Sum64(*buf)
	}
	return sum
}
