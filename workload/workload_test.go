package workload

import (
	"slices"
	"testing"

	"github.com/ChristianF88/lsdsort/radix"
)

func TestMinStd_TenThousandthValue(t *testing.T) {
	// Reference value of the minimal standard generator seeded with 1
	m := NewMinStd(1)
	var v uint32
	for i := 0; i < 10000; i++ {
		v = m.Next()
	}
	if v != 399268537 {
		t.Errorf("expected 399268537, got %d", v)
	}
}

func TestMinStd_DefaultSeed(t *testing.T) {
	m := NewMinStd(DefaultSeed)
	want := []uint32{1232738000, 871623277, 627592043}
	for i, w := range want {
		if got := m.Next(); got != w {
			t.Fatalf("draw %d: expected %d, got %d", i, w, got)
		}
	}
}

func TestMinStd_ZeroSeed(t *testing.T) {
	a, b := NewMinStd(0), NewMinStd(1)
	if a.Next() != b.Next() {
		t.Error("seed 0 should behave like seed 1")
	}
	c := NewMinStd(minStdModulus)
	if c.Next() != 48271 {
		t.Error("seed equal to the modulus should behave like seed 1")
	}
}

func TestFill_Deterministic(t *testing.T) {
	a := make([]int32, 100)
	b := make([]int32, 100)
	Fill(a, DefaultSeed, DrawInt32)
	Fill(b, DefaultSeed, DrawInt32)
	if !slices.Equal(a, b) {
		t.Error("equal seeds should give equal data")
	}
	Fill(b, DefaultSeed+1, DrawInt32)
	if slices.Equal(a, b) {
		t.Error("different seeds should give different data")
	}

	var negative bool
	for _, v := range a {
		if v < 0 {
			negative = true
		}
	}
	if !negative {
		t.Error("expected negative int32 values")
	}
}

func TestFloat64_Range(t *testing.T) {
	data := make([]float64, 5000)
	Fill(data, DefaultSeed, DrawFloat64)
	if !IsFinite(data) {
		t.Fatal("float workload contains non-finite values")
	}
	var neg, pos int
	for _, v := range data {
		if v < -1e6 || v >= 1e6 {
			t.Fatalf("value %v out of range", v)
		}
		if v < 0 {
			neg++
		} else {
			pos++
		}
	}
	if neg == 0 || pos == 0 {
		t.Errorf("expected both signs, got %d negative and %d positive", neg, pos)
	}
}

func TestBounded(t *testing.T) {
	draw := Bounded[int16](-3, 3)
	m := NewMinStd(9)
	seen := make(map[int16]bool)
	for i := 0; i < 1000; i++ {
		v := draw(m)
		if v < -3 || v > 3 {
			t.Fatalf("value %d out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 7 {
		t.Errorf("expected all 7 values, saw %d", len(seen))
	}

	full := Bounded[uint8](0, 255)
	for i := 0; i < 100; i++ {
		_ = full(m)
	}
}

func TestElementSize(t *testing.T) {
	for _, typ := range Types {
		if ElementSize(typ) == 0 {
			t.Errorf("no element size for %q", typ)
		}
	}
	if ElementSize("int128") != 0 {
		t.Error("unknown type should have size 0")
	}
}

func TestDrawPairU64_RepeatsFirst(t *testing.T) {
	data := make([]radix.Pair[uint64, uint64], 5000)
	Fill(data, DefaultSeed, DrawPairU64)

	firsts := make(map[uint64]int)
	for _, p := range data {
		if p.First >= PairFirstKeys {
			t.Fatalf("first %d out of range", p.First)
		}
		firsts[p.First]++
	}
	if len(firsts) == len(data) {
		t.Error("expected repeated first values")
	}
}
