package cli

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"
)

func FuzzSortFileFloat64(f *testing.F) {
	// Seed with valid input
	f.Add("3\n1\n2\n")
	f.Add("-0\n0\nNaN\n-Inf\n+Inf\n")
	f.Add("# header\n\n1e308\n-1e-308\n")
	// Invalid input
	f.Add("one\n")
	f.Add("1\n2,5\n")
	// Edge cases
	f.Add("")
	f.Add("\n\n\n")

	f.Fuzz(func(t *testing.T, input string) {
		var out bytes.Buffer
		if err := SortFile(SortOptions{Type: TypeFloat64}, strings.NewReader(input), &out); err != nil {
			return
		}

		var prev float64
		for i, line := range strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n") {
			if line == "" {
				continue
			}
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				t.Fatalf("unparsable output line %q: %v", line, err)
			}
			if i > 0 && !math.IsNaN(v) && !math.IsNaN(prev) && v < prev {
				t.Fatalf("output not ascending at line %d: %v after %v", i+1, v, prev)
			}
			prev = v
		}
	})
}

func FuzzSortFileRecords(f *testing.F) {
	f.Add(`{"key": 1, "message": "a"}` + "\n" + `{"key": "0.5"}`)
	f.Add(`{"key": null}`)
	f.Add("[1, 2]\n{}\n")
	f.Add(`{"key": 1, "@timestamp": "2024-06-01T13:45:00Z"}`)

	f.Fuzz(func(t *testing.T, input string) {
		var out bytes.Buffer
		// Should not panic
		_ = SortFile(SortOptions{Type: TypeRecords}, strings.NewReader(input), &out)
	})
}
