package bench

import (
	"cmp"
	"fmt"

	"github.com/ChristianF88/lsdsort/radix"
	"github.com/ChristianF88/lsdsort/workload"
)

// suite is everything needed to time one element type: its radix key, the
// comparison the std sorters use and the generator of its values.
type suite[T comparable] struct {
	key     radix.Key[T]
	compare func(a, b T) int
	draw    func(*workload.MinStd) T
}

type pairI32U32 = radix.Pair[int32, uint32]

type pairU64 = radix.Pair[uint64, uint64]

var (
	int32Suite = suite[int32]{
		key:     radix.Signed[int32]{},
		compare: cmp.Compare[int32],
		draw:    workload.DrawInt32,
	}
	uint64Suite = suite[uint64]{
		key:     radix.Unsigned[uint64]{},
		compare: cmp.Compare[uint64],
		draw:    workload.DrawUint64,
	}
	float64Suite = suite[float64]{
		key:     radix.Float64{},
		compare: cmp.Compare[float64],
		draw:    workload.DrawFloat64,
	}
	pairI32U32Suite = suite[pairI32U32]{
		key: radix.PairOf[int32, uint32](radix.Signed[int32]{}, radix.Unsigned[uint32]{}),
		compare: func(a, b pairI32U32) int {
			if c := cmp.Compare(a.First, b.First); c != 0 {
				return c
			}
			return cmp.Compare(a.Second, b.Second)
		},
		draw: workload.DrawPairI32U32,
	}
	// Only First is keyed, so the order of equal firsts shows stability.
	pairU64FirstSuite = suite[pairU64]{
		key:     radix.Field[pairU64, uint64](radix.Unsigned[uint64]{}, func(p pairU64) uint64 { return p.First }),
		compare: func(a, b pairU64) int { return cmp.Compare(a.First, b.First) },
		draw:    workload.DrawPairU64,
	}
)

func equal[T comparable](a, b T) bool { return a == b }

// runType dispatches a workload type name to its typed run.
func (r *Runner) runType(name, typ string, sorters []string) error {
	switch typ {
	case workload.Int32:
		return runWorkload(r, name, typ, sorters, int32Suite)
	case workload.Uint64:
		return runWorkload(r, name, typ, sorters, uint64Suite)
	case workload.Float64:
		return runWorkload(r, name, typ, sorters, float64Suite)
	case workload.PairI32U32:
		return runWorkload(r, name, typ, sorters, pairI32U32Suite)
	case workload.PairU64First:
		return runWorkload(r, name, typ, sorters, pairU64FirstSuite)
	default:
		return fmt.Errorf("unknown workload type %q", typ)
	}
}
