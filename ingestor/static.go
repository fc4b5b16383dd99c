package ingestor

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseNumbers reads one value per line. Blank lines and lines starting
// with '#' are ignored; any other line parse rejects fails the read with
// its line number.
func ParseNumbers[T any](r io.Reader, parse func(string) (T, error)) ([]T, error) {
	var values []T
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// ParseNumberFile is ParseNumbers over the file at path
func ParseNumberFile[T any](path string, parse func(string) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseNumbers(f, parse)
}

// ParseRecords reads JSON lines shaped like lumberjack events. Lines that
// are not JSON objects or carry no usable key are counted and skipped.
func ParseRecords(r io.Reader) ([]Record, int, error) {
	var records []Record
	skipped := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var evt map[string]interface{}
		if err := json.Unmarshal([]byte(line), &evt); err != nil {
			skipped++
			continue
		}
		var rec Record
		if err := parseEvent(evt, &rec); err != nil {
			skipped++
			continue
		}
		rec.Seq = uint64(len(records))
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return records, skipped, nil
}

// ParseRecordFile is ParseRecords over the file at path
func ParseRecordFile(path string) ([]Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return ParseRecords(f)
}
