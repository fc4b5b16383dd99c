package radix_test

import (
	"fmt"

	"github.com/ChristianF88/lsdsort/radix"
)

func ExampleInts() {
	data := []int32{2, 3, 1}
	if err := radix.Ints(data); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(data)
	// Output: [1 2 3]
}

func ExampleUints() {
	data := []uint16{513, 2, 65535, 256}
	if err := radix.Uints(data); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(data)
	// Output: [2 256 513 65535]
}

func ExampleDesc() {
	data := []uint64{2, 3, 1}
	if err := radix.Sort(data, radix.Desc[uint64](radix.Unsigned[uint64]{})); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(data)
	// Output: [3 2 1]
}

func ExampleFloat32s() {
	data := []float32{1.0, 2.4, -3.5}
	if err := radix.Float32s(data); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(data)
	// Output: [-3.5 1 2.4]
}

func ExamplePairOf() {
	data := []radix.Pair[int32, int32]{{2, 3}, {0, 1}, {5, 4}}
	key := radix.PairOf[int32, int32](radix.Signed[int32]{}, radix.Signed[int32]{})
	if err := radix.Sort(data, key); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(data)
	// Output: [{0 1} {2 3} {5 4}]
}

func ExamplePointers() {
	values := [3]string{"first", "second", "third"}
	ptrs := []*string{&values[2], &values[0], &values[1]}
	if err := radix.Pointers(ptrs); err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range ptrs {
		fmt.Println(*p)
	}
	// Output:
	// first
	// second
	// third
}

type reading struct {
	Value float64
	ID    int
}

func ExampleField() {
	data := []reading{{1, 2}, {-1.4, 123}, {-1.4, 0}}
	key := radix.Field[reading, float64](radix.Float64{}, func(r reading) float64 { return r.Value })
	if err := radix.Sort(data, key); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(data)
	// Output: [{-1.4 123} {-1.4 0} {1 2}]
}

func ExampleCompose() {
	type pair = radix.Pair[int32, int32]
	first := radix.Field[pair, int32](radix.Signed[int32]{}, func(p pair) int32 { return p.First })
	second := radix.Field[pair, int32](radix.Signed[int32]{}, func(p pair) int32 { return p.Second })

	data := []pair{{2, 3}, {0, 1}, {5, 4}, {2, 7}}
	if err := radix.Sort(data, radix.Compose(first, radix.Desc(second))); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(data)
	// Output: [{0 1} {2 7} {2 3} {5 4}]
}

func ExampleSortWithBuffer() {
	data := []int32{5, 3, 2, 6, 3}
	buf := make([]int32, len(data))
	if err := radix.SortWithBuffer(data, buf, radix.Key[int32](radix.Signed[int32]{})); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(data)
	// Output: [2 3 3 5 6]
}

func ExampleParallel() {
	data := []int{3, 5, 1, 3, 6}
	if err := radix.Ints(data, radix.Parallel(4)); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(data)
	// Output: [1 3 3 5 6]
}
