package radix

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

type options struct {
	parallel bool
	workers  int
}

// Option configures a sort call.
type Option func(*options)

// Sequential sorts on the calling goroutine. It is the default.
func Sequential() Option {
	return func(o *options) {
		o.parallel = false
	}
}

// Parallel splits large inputs into chunks sorted by up to workers
// goroutines per phase. workers <= 0 means runtime.GOMAXPROCS(0). Inputs
// under 2*MinParallelChunk elements still sort sequentially.
func Parallel(workers int) Option {
	return func(o *options) {
		o.parallel = true
		o.workers = workers
	}
}

// Sort sorts data by key, allocating its own auxiliary buffer.
//
// Elements with equal keys keep their relative order. On error the input is
// not sorted; see SortWithBuffer for the cases.
func Sort[T any](data []T, key Key[T], opts ...Option) error {
	return SortWithBuffer(data, nil, key, opts...)
}

// SortWithBuffer sorts data by key using buf as the auxiliary buffer. buf
// must hold at least len(data) elements, of which the first len(data) must
// not share memory with data (ErrBufferOverlap). With a nil buf a buffer of
// exactly len(data) elements is allocated for the call.
//
// Inputs of zero or one element return at once without touching buf.
func SortWithBuffer[T any](data, buf []T, key Key[T], opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := len(data)
	if n <= 1 {
		return nil
	}
	if key == nil {
		return ErrNilKey
	}

	size := key.RadixSize()
	if size < 0 {
		return ErrInvalidKey
	}
	if size == 0 {
		return nil
	}

	scratch := buf
	if scratch == nil {
		var err error
		if scratch, err = newScratch[T](n); err != nil {
			return err
		}
	} else if len(scratch) < n {
		return fmt.Errorf("%w: %d < %d", ErrBufferTooSmall, len(scratch), n)
	} else if overlaps(data, scratch[:n]) {
		return ErrBufferOverlap
	}

	p := 1
	if o.parallel {
		p = degree(n, o.workers)
	}

	if uint64(n) <= narrowLimit {
		if p > 1 {
			return sortParallel[T, uint32](data, scratch, key, p)
		}
		sortSequential[T, uint32](data, scratch, key)
		return nil
	}

	if p > 1 {
		return sortParallel[T, uint64](data, scratch, key, p)
	}
	sortSequential[T, uint64](data, scratch, key)
	return nil
}

// overlaps reports whether a and b share any element's memory
func overlaps[T any](a, b []T) bool {
	size := unsafe.Sizeof(*new(T))
	if size == 0 || len(a) == 0 || len(b) == 0 {
		return false
	}
	aStart := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bStart := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	aEnd := aStart + uintptr(len(a))*size
	bEnd := bStart + uintptr(len(b))*size
	return aStart < bEnd && bStart < aEnd
}

// newScratch allocates the auxiliary buffer for n elements.
func newScratch[T any](n int) (buf []T, err error) {
	var zero T
	if size := unsafe.Sizeof(zero); size > 0 && uint64(n) > math.MaxInt/uint64(size) {
		return nil, fmt.Errorf("%w: %d elements of %d bytes", ErrAllocation, n, size)
	}

	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	return make([]T, n), nil
}

// Ints sorts signed integers in ascending order.
func Ints[T constraints.Signed](data []T, opts ...Option) error {
	return Sort[T](data, Signed[T]{}, opts...)
}

// Uints sorts unsigned integers in ascending order.
func Uints[T constraints.Unsigned](data []T, opts ...Option) error {
	return Sort[T](data, Unsigned[T]{}, opts...)
}

// Float32s sorts float32 values in ascending IEEE-754 order.
func Float32s(data []float32, opts ...Option) error {
	return Sort[float32](data, Float32{}, opts...)
}

// Float64s sorts float64 values in ascending IEEE-754 order.
func Float64s(data []float64, opts ...Option) error {
	return Sort[float64](data, Float64{}, opts...)
}

// Pointers sorts pointers by address.
func Pointers[E any](data []*E, opts ...Option) error {
	return Sort[*E](data, Pointer[E]{}, opts...)
}
