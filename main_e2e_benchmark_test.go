package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"testing"

	"github.com/ChristianF88/lsdsort/cli"
	"github.com/ChristianF88/lsdsort/ingestor"
	"github.com/ChristianF88/lsdsort/radix"
	"github.com/ChristianF88/lsdsort/testutil"
)

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

// BenchmarkEndToEndSort compares the sort command against a parse and
// slices.Sort pipeline over the same file
func BenchmarkEndToEndSort(b *testing.B) {
	sizes := []int{1000, 100000, 1000000}

	for _, size := range sizes {
		path, cleanup := testutil.GenerateNumberFile(b, size)

		b.Run(fmt.Sprintf("StdPath_%d_values", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				values, err := ingestor.ParseNumberFile(path, parseInt64)
				if err != nil {
					b.Fatal(err)
				}
				slices.Sort(values)
				for _, v := range values {
					io.WriteString(io.Discard, strconv.FormatInt(v, 10)+"\n")
				}
			}
		})

		b.Run(fmt.Sprintf("SortCommand_%d_values", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := cli.SortFile(cli.SortOptions{Type: cli.TypeInt64, Input: path}, nil, io.Discard); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(fmt.Sprintf("SortCommandParallel_%d_values", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				opts := cli.SortOptions{Type: cli.TypeInt64, Input: path, Parallel: true}
				if err := cli.SortFile(opts, nil, io.Discard); err != nil {
					b.Fatal(err)
				}
			}
		})

		cleanup()
	}
}

// BenchmarkParseVersusSort splits the sort command into its two phases
func BenchmarkParseVersusSort(b *testing.B) {
	path, cleanup := testutil.GenerateNumberFile(b, 100000)
	defer cleanup()

	values, err := ingestor.ParseNumberFile(path, parseInt64)
	if err != nil {
		b.Fatalf("Failed to parse numbers: %v", err)
	}

	b.Run("Parse", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := ingestor.ParseNumberFile(path, parseInt64); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Sort", func(b *testing.B) {
		data := make([]int64, len(values))
		buf := make([]int64, len(values))
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			copy(data, values)
			if err := radix.SortWithBuffer(data, buf, radix.Key[int64](radix.Signed[int64]{})); err != nil {
				b.Fatal(err)
			}
		}
	})
}
