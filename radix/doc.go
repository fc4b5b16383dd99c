// Package radix implements a byte-wise least significant digit radix sort
// for fixed-width elements.
//
// A Key tells the sorter how many bytes an element's key has and how to read
// each of them. Sorting runs one stable counting pass per key byte, least
// significant first, moving elements back and forth between the input and an
// auxiliary buffer of the same length. The cost is linear in
// len(data) * RadixSize().
//
// # Keys
//
// Built-in keys cover unsigned and signed integers, float32 and float64,
// pointers, two-field pairs and a descending counterpart of any key:
//
//	radix.Ints(data)                                   // []int32, []int64, ...
//	radix.Sort(data, radix.Desc[uint64](radix.Unsigned[uint64]{}))
//	radix.Sort(pairs, radix.PairOf[int32, uint32](radix.Signed[int32]{}, radix.Unsigned[uint32]{}))
//
// Structs are keyed with Field and Compose:
//
//	key := radix.Compose(
//		radix.Field[trade, float64](radix.Float64{}, func(t trade) float64 { return t.Price }),
//		radix.Desc(radix.Field[trade, uint32](radix.Unsigned[uint32]{}, func(t trade) uint32 { return t.Qty })),
//	)
//	err := radix.Sort(trades, key)
//
// # Parallel sorting
//
// With the Parallel option, inputs of at least 2*MinParallelChunk elements
// are split into contiguous chunks. Each pass counts the chunks concurrently,
// merges the counts on the calling goroutine and scatters the chunks
// concurrently into disjoint parts of the destination. The result is
// identical to the sequential one.
//
// # Stability
//
// Elements with equal keys keep their input order, in both modes.
package radix
