package radix

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferTooSmall is returned when a caller supplied buffer holds fewer
	// elements than the input. The input is left untouched.
	ErrBufferTooSmall = errors.New("radix: buffer shorter than input")

	// ErrBufferOverlap is returned when a caller supplied buffer shares
	// memory with the input. The input is left untouched.
	ErrBufferOverlap = errors.New("radix: buffer overlaps input")

	// ErrAllocation is returned when the auxiliary buffer cannot be
	// allocated. The input is left untouched.
	ErrAllocation = errors.New("radix: cannot allocate auxiliary buffer")

	// ErrNilKey is returned when no key is given.
	ErrNilKey = errors.New("radix: nil key")

	// ErrInvalidKey is returned for a key with a negative radix size.
	ErrInvalidKey = errors.New("radix: key reports a negative radix size")
)

// TaskError reports a chunk task of a parallel sort that panicked. No pass
// starts after a failed one and the input is left in an unspecified order.
type TaskError struct {
	Pass  int
	Chunk int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("radix: chunk %d failed in pass %d: %v", e.Chunk, e.Pass, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }
