package radix

import (
	"encoding/binary"
	"math"
	"slices"
	"testing"
)

func FuzzSortInt64(f *testing.F) {
	seeds := [][]byte{
		{},
		{1, 2, 3, 4, 5, 6, 7, 8},
		{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0x80},
		make([]byte, 64),
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, raw []byte) {
		data := make([]int64, len(raw)/8)
		for i := range data {
			data[i] = int64(binary.LittleEndian.Uint64(raw[8*i:]))
		}
		want := slices.Clone(data)
		slices.Sort(want)

		if err := Ints(data); err != nil {
			t.Fatalf("Ints: %v", err)
		}
		if !slices.Equal(data, want) {
			t.Fatalf("expected %v, got %v", want, data)
		}
	})
}

func FuzzSortFloat64(f *testing.F) {
	f.Add(1.5, -2.25, 0.0)
	f.Add(math.Inf(1), math.Inf(-1), math.Copysign(0, -1))
	f.Add(math.MaxFloat64, -math.SmallestNonzeroFloat64, 3.0)

	f.Fuzz(func(t *testing.T, a, b, c float64) {
		data := []float64{a, b, c, b, a}
		if slices.ContainsFunc(data, math.IsNaN) {
			return
		}
		if err := Float64s(data); err != nil {
			t.Fatalf("Float64s: %v", err)
		}
		for i := 1; i < len(data); i++ {
			if data[i] < data[i-1] {
				t.Fatalf("not sorted at index %d: %v", i, data)
			}
			if data[i] == data[i-1] && !math.Signbit(data[i-1]) && math.Signbit(data[i]) {
				t.Fatalf("+0 sorted before -0: %v", data)
			}
		}
	})
}

func FuzzSortPairsStable(f *testing.F) {
	f.Add([]byte{3, 1, 3, 0, 2, 2})
	f.Add([]byte{0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, raw []byte) {
		data := make([]Pair[uint8, uint16], len(raw))
		for i, b := range raw {
			data[i] = Pair[uint8, uint16]{First: b & 0x0F, Second: uint16(i)}
		}
		key := Field[Pair[uint8, uint16], uint8](Unsigned[uint8]{}, func(p Pair[uint8, uint16]) uint8 { return p.First })
		if err := Sort(data, key); err != nil {
			t.Fatalf("Sort: %v", err)
		}
		for i := 1; i < len(data); i++ {
			prev, cur := data[i-1], data[i]
			if prev.First > cur.First || (prev.First == cur.First && prev.Second > cur.Second) {
				t.Fatalf("order broken at index %d: %v then %v", i, prev, cur)
			}
		}
	})
}
