package radix

import "math"

// counter is the integer width of a bucket table entry.
type counter interface {
	~uint32 | ~uint64
}

// table holds one entry per byte value.
type table[C counter] [256]C

// narrowLimit is the largest input length sorted with uint32 counters.
// Longer inputs use uint64 tables.
var narrowLimit = uint64(math.MaxUint32)

// countPass zeroes t and counts how many elements of src have each value
// at byte index. Elements are read four at a time; the n%4 leftovers form a
// short leading batch.
func countPass[T any, C counter](key Key[T], index int, src []T, t *table[C]) {
	*t = table[C]{}
	n := len(src)
	if n == 0 {
		return
	}

	i := 0
	switch n % 4 {
	case 3:
		t[key.Byte(index, src[i])]++
		i++
		fallthrough
	case 2:
		t[key.Byte(index, src[i])]++
		i++
		fallthrough
	case 1:
		t[key.Byte(index, src[i])]++
		i++
	}

	for ; i < n; i += 4 {
		batch := src[i : i+4 : i+4]
		t[key.Byte(index, batch[0])]++
		t[key.Byte(index, batch[1])]++
		t[key.Byte(index, batch[2])]++
		t[key.Byte(index, batch[3])]++
	}
}

// endOffsets turns counts into inclusive prefix sums: entry v becomes the
// offset one past the last slot of bucket v.
func endOffsets[C counter](t *table[C]) {
	var sum C
	for v := range t {
		sum += t[v]
		t[v] = sum
	}
}

// single reports whether every one of n counted elements landed in the
// same bucket, in which case the pass would not move anything.
func single[C counter](t *table[C], n int) bool {
	for _, c := range t {
		if c != 0 {
			return uint64(c) == uint64(n)
		}
	}
	return n == 0
}
