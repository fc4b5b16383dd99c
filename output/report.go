package output

import (
	"encoding/json"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v2"
)

// Report is the complete benchmark output structure
type Report struct {
	Metadata Metadata  `json:"metadata" yaml:"metadata"`
	Results  []Result  `json:"results" yaml:"results"`
	Warnings []Warning `json:"warnings" yaml:"warnings"`
	Errors   []Error   `json:"errors" yaml:"errors"`

	// Mutex for thread-safe appending
	mu sync.Mutex `json:"-" yaml:"-"`
}

// Metadata describes the run and the host it ran on
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Command     string    `json:"command" yaml:"command"`
	Version     string    `json:"version" yaml:"version"`
	DurationMS  int64     `json:"duration_ms" yaml:"duration_ms"`
	Seed        uint64    `json:"seed" yaml:"seed"`
	Rounds      int       `json:"rounds" yaml:"rounds"`
	Host        Host      `json:"host" yaml:"host"`
}

// Host contains the platform the timings were taken on
type Host struct {
	GOOS        string   `json:"goos" yaml:"goos"`
	GOARCH      string   `json:"goarch" yaml:"goarch"`
	GoVersion   string   `json:"go_version" yaml:"go_version"`
	NumCPU      int      `json:"num_cpu" yaml:"num_cpu"`
	Workers     int      `json:"workers" yaml:"workers"`
	CPUFeatures []string `json:"cpu_features,omitempty" yaml:"cpu_features,omitempty"`
}

// Result is the timing of one sorter on one workload size
type Result struct {
	Workload       string  `json:"workload" yaml:"workload"`
	Type           string  `json:"type" yaml:"type"`
	Sorter         string  `json:"sorter" yaml:"sorter"`
	Size           int     `json:"size" yaml:"size"`
	ElementBytes   int     `json:"element_bytes" yaml:"element_bytes"`
	Rounds         int     `json:"rounds" yaml:"rounds"`
	MeanMS         float64 `json:"mean_ms" yaml:"mean_ms"`
	MinMS          float64 `json:"min_ms" yaml:"min_ms"`
	MaxMS          float64 `json:"max_ms" yaml:"max_ms"`
	ElementsPerSec float64 `json:"elements_per_sec" yaml:"elements_per_sec"`
	Verified       *bool   `json:"verified,omitempty" yaml:"verified,omitempty"`
	Fingerprint    string  `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// Warning represents a warning message
type Warning struct {
	Type    string `json:"type" yaml:"type"`
	Message string `json:"message" yaml:"message"`
	Count   int    `json:"count,omitempty" yaml:"count,omitempty"`
}

// Error represents an error message
type Error struct {
	Type    string `json:"type" yaml:"type"`
	Message string `json:"message" yaml:"message"`
	Count   int    `json:"count,omitempty" yaml:"count,omitempty"`
}

// NewReport creates a new Report with default metadata
func NewReport(command, version string, startTime time.Time) *Report {
	return &Report{
		Metadata: Metadata{
			GeneratedAt: time.Now().UTC(),
			Command:     command,
			Version:     version,
			DurationMS:  time.Since(startTime).Milliseconds(),
			Host: Host{
				GOOS:        runtime.GOOS,
				GOARCH:      runtime.GOARCH,
				GoVersion:   runtime.Version(),
				NumCPU:      runtime.NumCPU(),
				Workers:     runtime.GOMAXPROCS(0),
				CPUFeatures: CPUFeatures(),
			},
		},
		Results:  []Result{},
		Warnings: []Warning{},
		Errors:   []Error{},
	}
}

// ToJSON converts the report to pretty-printed JSON
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ToCompactJSON converts the report to compact JSON
func (r *Report) ToCompactJSON() ([]byte, error) {
	return json.Marshal(r)
}

// ToYAML converts the report to YAML
func (r *Report) ToYAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// AddResult appends a timing (thread-safe)
func (r *Report) AddResult(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Results = append(r.Results, res)
}

// AddWarning adds a warning to the output (thread-safe)
func (r *Report) AddWarning(warningType, message string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, Warning{
		Type:    warningType,
		Message: message,
		Count:   count,
	})
}

// AddError adds an error to the output (thread-safe)
func (r *Report) AddError(errorType, message string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, Error{
		Type:    errorType,
		Message: message,
		Count:   count,
	})
}

// UpdateDuration updates the duration in metadata
func (r *Report) UpdateDuration(startTime time.Time) {
	r.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}

// Failed reports whether any error was recorded
func (r *Report) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Errors) > 0
}
