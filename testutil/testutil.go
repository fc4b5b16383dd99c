package testutil

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/ChristianF88/lsdsort/workload"
)

// GenerateNumberFile creates a temporary file with numLines signed integers,
// one per line, drawn from the workload generator with the default seed.
// Returns the file path and a cleanup function.
func GenerateNumberFile(t testing.TB, numLines int) (string, func()) {
	t.Helper()

	values := make([]int32, numLines)
	workload.Fill(values, workload.DefaultSeed, workload.DrawInt32)

	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = strconv.FormatInt(int64(v), 10)
	}
	return WriteLinesFile(t, "numbers_*.txt", lines)
}

// GenerateRecordFile creates a temporary JSON lines file of numLines keyed
// events with keys in [0, distinct). Repeated keys make stability visible.
func GenerateRecordFile(t testing.TB, numLines, distinct int) (string, func()) {
	t.Helper()

	keys := make([]int, numLines)
	workload.Fill(keys, workload.DefaultSeed, workload.Bounded(0, distinct-1))

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf(`{"key": %d, "message": "event %d"}`, k, i)
	}
	return WriteLinesFile(t, "records_*.jsonl", lines)
}

// WriteLinesFile writes lines to a new temporary file named after pattern
func WriteLinesFile(t testing.TB, pattern string, lines []string) (string, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	var content strings.Builder
	for _, line := range lines {
		content.WriteString(line)
		content.WriteString("\n")
	}
	if _, err := tmpFile.WriteString(content.String()); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}

	tmpFile.Close()

	cleanup := func() {
		os.Remove(tmpFile.Name())
	}

	return tmpFile.Name(), cleanup
}

// TempFilePath returns a cross-platform temporary file path
// with the given pattern. Does not create the file.
func TempFilePath(t testing.TB, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path) // Remove immediately, just need the path

	return path
}

// TempDirPath returns a cross-platform temporary directory path
func TempDirPath(t testing.TB) string {
	t.Helper()
	return t.TempDir()
}
