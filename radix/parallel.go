package radix

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MinParallelChunk is the smallest number of elements worth a goroutine of
// their own. Inputs shorter than two chunks always sort sequentially.
const MinParallelChunk = 100000

// minChunkLen is MinParallelChunk, lowered by tests.
var minChunkLen = MinParallelChunk

// degree returns how many chunks an input of n elements is split into.
func degree(n, workers int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return min(workers, max(1, n/minChunkLen))
}

// span is a half-open index range [lo, hi) of the input.
type span struct {
	lo, hi int
}

// partition splits [0, n) into p contiguous chunks of n/p elements. The last
// chunk also takes the remainder.
func partition(n, p int) []span {
	width := n / p
	chunks := make([]span, p)
	for j := range chunks {
		chunks[j] = span{lo: j * width, hi: (j + 1) * width}
	}
	chunks[p-1].hi = n
	return chunks
}

// runChunks calls fn for every chunk on its own goroutine and waits for all
// of them. A panic inside fn is returned as a *TaskError.
func runChunks(pass int, chunks []span, fn func(j int, s span)) error {
	var g errgroup.Group
	for j, s := range chunks {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &TaskError{Pass: pass, Chunk: j, Err: fmt.Errorf("%v", r)}
				}
			}()
			fn(j, s)
			return nil
		})
	}
	return g.Wait()
}

// mergeOffsets turns per-chunk counts into per-chunk end offsets.
//
// The tables are first folded from the last chunk down, so tables[j] holds
// the counts of chunks j..P-1 and tables[0] the totals. The totals become
// global end offsets. Chunk j then ends, for bucket v, where the elements of
// chunks after it begin: global[v] - suffix[j+1][v]. It reports false when
// the pass would not move anything.
func mergeOffsets[C counter](tables []table[C], global *table[C], n int) bool {
	last := len(tables) - 1
	for j := last - 1; j >= 0; j-- {
		for v := range tables[j] {
			tables[j][v] += tables[j+1][v]
		}
	}

	if single(&tables[0], n) {
		return false
	}

	*global = tables[0]
	endOffsets(global)

	for j := 0; j < last; j++ {
		for v := range tables[j] {
			tables[j][v] = global[v] - tables[j+1][v]
		}
	}
	tables[last] = *global
	return true
}

// sortParallel is the chunked version of sortSequential. Within a pass all
// counting finishes before the merge, and the merge before any scatter.
// Chunks scatter into disjoint slots of the destination.
func sortParallel[T any, C counter](data, scratch []T, key Key[T], p int) error {
	n := len(data)
	chain := passChain[T]{primary: data, scratch: scratch[:n]}
	chunks := partition(n, p)
	tables := make([]table[C], p)
	global := new(table[C])

	for index := range key.RadixSize() {
		src, dst := chain.src(), chain.dst()

		err := runChunks(index, chunks, func(j int, s span) {
			countPass(key, index, src[s.lo:s.hi], &tables[j])
		})
		if err != nil {
			return err
		}

		if !mergeOffsets(tables, global, n) {
			continue
		}

		err = runChunks(index, chunks, func(j int, s span) {
			scatterPass(key, index, src[s.lo:s.hi], dst, &tables[j])
		})
		if err != nil {
			return err
		}
		chain.flip()
	}

	chain.finish()
	return nil
}
