package pools

import (
	"sync"

	"github.com/ChristianF88/lsdsort/ingestor"
)

// SlicePool hands out reusable slices of T. It backs the caller supplied
// auxiliary buffers of repeated radix sorts.
type SlicePool[T any] struct {
	pool   sync.Pool
	maxCap int
}

// NewSlicePool creates a pool that keeps returned slices of at most maxCap
// elements. maxCap <= 0 keeps every slice.
func NewSlicePool[T any](maxCap int) *SlicePool[T] {
	return &SlicePool[T]{maxCap: maxCap}
}

// Get returns a slice of exactly n elements. Its contents are whatever the
// previous user left behind.
func (p *SlicePool[T]) Get(n int) []T {
	if v := p.pool.Get(); v != nil {
		slicePtr := v.(*[]T)
		if cap(*slicePtr) >= n {
			return (*slicePtr)[:n]
		}
	}
	return make([]T, n)
}

// Put returns a slice to the pool
func (p *SlicePool[T]) Put(s []T) {
	if s == nil || (p.maxCap > 0 && cap(s) > p.maxCap) {
		return
	}
	s = s[:0]
	p.pool.Put(&s)
}

// NewKeyBufferPool creates a pool of byte buffers sized for radix keys
// rendered with radix.AppendKey. Pre-allocates room for a 16 byte key.
func NewKeyBufferPool() *sync.Pool {
	return &sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 0, 16)
			return &buf
		},
	}
}

// GetKeyBuffer gets a buffer from the pool and resets it
func GetKeyBuffer(pool *sync.Pool) *[]byte {
	buf := pool.Get().(*[]byte)
	*buf = (*buf)[:0]
	return buf
}

// ReturnKeyBuffer returns a buffer to the pool
func ReturnKeyBuffer(pool *sync.Pool, buf *[]byte) {
	if cap(*buf) <= 1024 {
		pool.Put(buf)
	}
}

// GlobalPools provides the process wide pools of the ingest path
type GlobalPools struct {
	RecordSlices sync.Pool
}

// Pools is the global instance of memory pools
var Pools = &GlobalPools{
	RecordSlices: sync.Pool{
		New: func() interface{} {
			slice := make([]ingestor.Record, 0, 1024)
			return &slice
		},
	},
}

// GetRecordSlice gets a record slice from the pool and resets it
func (gp *GlobalPools) GetRecordSlice() []ingestor.Record {
	slicePtr := gp.RecordSlices.Get().(*[]ingestor.Record)
	*slicePtr = (*slicePtr)[:0] // Reset length while keeping capacity
	return *slicePtr
}

// ReturnRecordSlice returns a record slice to the pool
func (gp *GlobalPools) ReturnRecordSlice(slice []ingestor.Record) {
	if cap(slice) < 1<<16 { // Prevent memory bloat
		emptySlice := slice[:0]
		gp.RecordSlices.Put(&emptySlice)
	}
}

// Reset clears all pools (useful for testing)
func (gp *GlobalPools) Reset() {
	gp.RecordSlices = sync.Pool{New: gp.RecordSlices.New}
}
