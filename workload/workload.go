// Package workload generates the deterministic inputs the benchmark sorts.
package workload

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/ChristianF88/lsdsort/radix"
)

// DefaultSeed is the generator seed every benchmark round starts from.
const DefaultSeed = 114514

// Workload types accepted in the configuration
const (
	Int32        = "int32"
	Uint64       = "uint64"
	Float64      = "float64"
	PairI32U32   = "pair-i32-u32"
	PairU64First = "pair-u64-first"
)

// Types lists every workload type
var Types = []string{Int32, Uint64, Float64, PairI32U32, PairU64First}

const (
	minStdModulus    = 1<<31 - 1
	minStdMultiplier = 48271
)

// MinStd is the minimal standard linear congruential generator,
// x = x * 48271 mod (2^31 - 1). It yields values in [1, 2^31 - 2].
type MinStd struct {
	state uint64
}

// NewMinStd seeds a generator. A seed congruent to zero is replaced by 1,
// since zero is a fixed point.
func NewMinStd(seed uint64) *MinStd {
	seed %= minStdModulus
	if seed == 0 {
		seed = 1
	}
	return &MinStd{state: seed}
}

// Next advances the generator
func (m *MinStd) Next() uint32 {
	m.state = m.state * minStdMultiplier % minStdModulus
	return uint32(m.state)
}

// Uint32 combines two draws into 32 random bits
func (m *MinStd) Uint32() uint32 {
	return m.Next()<<16 ^ m.Next()
}

// Uint64 combines three draws into 64 random bits
func (m *MinStd) Uint64() uint64 {
	return uint64(m.Next())<<33 ^ uint64(m.Next())<<16 ^ uint64(m.Next())
}

// Float64 returns a value spread over [-1e6, 1e6).
func (m *MinStd) Float64() float64 {
	unit := float64(m.Uint64()>>11) / (1 << 53)
	return unit*2e6 - 1e6
}

// Fill overwrites dst with values drawn from a generator seeded with seed.
// Equal seeds give equal contents.
func Fill[T any](dst []T, seed uint64, draw func(*MinStd) T) {
	m := NewMinStd(seed)
	for i := range dst {
		dst[i] = draw(m)
	}
}

// Draw functions per workload element type

func DrawInt32(m *MinStd) int32 { return int32(m.Uint32()) }

func DrawUint64(m *MinStd) uint64 { return m.Uint64() }

func DrawFloat64(m *MinStd) float64 { return m.Float64() }

func DrawPairI32U32(m *MinStd) radix.Pair[int32, uint32] {
	return radix.Pair[int32, uint32]{First: int32(m.Uint32()), Second: m.Uint32()}
}

// pairFirsts keeps First in a small range so that equal keys are common
var pairFirsts = Bounded[uint64](0, PairFirstKeys-1)

// PairFirstKeys is the number of distinct First values of DrawPairU64
const PairFirstKeys = 1 << 12

func DrawPairU64(m *MinStd) radix.Pair[uint64, uint64] {
	return radix.Pair[uint64, uint64]{First: pairFirsts(m), Second: m.Uint64()}
}

// Bounded draws values in [lo, hi]. It is used for inputs with many
// repeated keys.
func Bounded[T constraints.Integer](lo, hi T) func(*MinStd) T {
	span := uint64(hi-lo) + 1
	return func(m *MinStd) T {
		if span == 0 {
			return T(m.Uint64())
		}
		return lo + T(m.Uint64()%span)
	}
}

// ElementSize is the in-memory size of one element of a workload type, or 0
// for an unknown type.
func ElementSize(typ string) int {
	switch typ {
	case Int32:
		return 4
	case Uint64, Float64:
		return 8
	case PairI32U32:
		return 8
	case PairU64First:
		return 16
	}
	return 0
}

// IsFinite reports whether every value is a real number. Float workloads
// never contain NaN or infinities.
func IsFinite(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
