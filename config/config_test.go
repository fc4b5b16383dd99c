package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/ChristianF88/lsdsort/workload"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test_config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return configPath
}

func TestLoadConfig(t *testing.T) {
	testConfigContent := `
[bench]
sizes = [1000, 1e5]
rounds = 3
seed = 42
workers = 4
verify = false

[output]
format = "YAML"
compact = true
plotPath = "/tmp/bench.html"

[serve]
port = "6000"
interval = "2s"
outFile = "/tmp/sorted.jsonl"
parallel = true

[workload.ints]
type = "int32"
sorters = ["std", "radix"]

[workload.pair-u64-first]
`

	config, err := LoadConfig(writeConfig(t, testConfigContent))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if !slices.Equal(config.Bench.Sizes, []int{1000, 100000}) {
		t.Errorf("Expected sizes [1000 100000], got %v", config.Bench.Sizes)
	}
	if config.Bench.Rounds != 3 {
		t.Errorf("Expected 3 rounds, got %d", config.Bench.Rounds)
	}
	if config.Bench.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", config.Bench.Seed)
	}
	if config.Bench.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", config.Bench.Workers)
	}
	if config.Bench.Verify {
		t.Error("Expected verify to be false")
	}

	if config.Output.Format != FormatYAML {
		t.Errorf("Expected format 'yaml', got '%s'", config.Output.Format)
	}
	if !config.Output.Compact {
		t.Error("Expected compact output")
	}
	if config.Output.PlotPath != "/tmp/bench.html" {
		t.Errorf("Expected PlotPath '/tmp/bench.html', got '%s'", config.Output.PlotPath)
	}

	if config.Serve.Port != "6000" || config.Serve.Interval != 2*time.Second {
		t.Errorf("Unexpected serve config %+v", config.Serve)
	}
	if config.Serve.OutFile != "/tmp/sorted.jsonl" || !config.Serve.Parallel {
		t.Errorf("Unexpected serve config %+v", config.Serve)
	}

	if len(config.Workloads) != 2 {
		t.Fatalf("Expected 2 workloads, got %d", len(config.Workloads))
	}
	ints := config.Workloads["ints"]
	if ints.Type != workload.Int32 || !slices.Equal(ints.Sorters, []string{"std", "radix"}) {
		t.Errorf("Unexpected workload ints: %+v", ints)
	}
	pairs := config.Workloads["pair-u64-first"]
	if pairs.Type != workload.PairU64First {
		t.Errorf("Expected type to default to the table name, got %q", pairs.Type)
	}
	if !slices.Equal(pairs.Sorters, Sorters) {
		t.Errorf("Expected all sorters by default, got %v", pairs.Sorters)
	}

	if err := config.ValidateBench(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
	if err := config.ValidateServe(); err != nil {
		t.Errorf("Expected valid serve config, got %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if !slices.Equal(config.Bench.Sizes, DefaultSizes) {
		t.Errorf("Expected default sizes, got %v", config.Bench.Sizes)
	}
	if config.Bench.Rounds != DefaultRounds || config.Bench.Seed != workload.DefaultSeed || !config.Bench.Verify {
		t.Errorf("Unexpected bench defaults %+v", config.Bench)
	}
	if config.Output.Format != FormatJSON {
		t.Errorf("Expected json by default, got %q", config.Output.Format)
	}
	if config.Serve.Port != DefaultPort || config.Serve.Interval != DefaultInterval {
		t.Errorf("Unexpected serve defaults %+v", config.Serve)
	}
	if !slices.Equal(config.WorkloadNames(), []string{"float64", "int32", "pair-i32-u32", "pair-u64-first", "uint64"}) {
		t.Errorf("Expected every workload type, got %v", config.WorkloadNames())
	}
	if err := config.ValidateBench(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed toml", content: "[bench\nsizes = 1"},
		{name: "fractional size", content: "[bench]\nsizes = [1.5]"},
		{name: "string size", content: "[bench]\nsizes = [\"many\"]"},
		{name: "negative seed", content: "[bench]\nseed = -1"},
		{name: "bad interval", content: "[serve]\ninterval = \"soon\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestValidateBench(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "no sizes", mutate: func(c *Config) { c.Bench.Sizes = nil }, wantErr: "at least one size"},
		{name: "zero size", mutate: func(c *Config) { c.Bench.Sizes = []int{10, 0} }, wantErr: "positive"},
		{name: "zero rounds", mutate: func(c *Config) { c.Bench.Rounds = 0 }, wantErr: "rounds"},
		{name: "negative workers", mutate: func(c *Config) { c.Bench.Workers = -2 }, wantErr: "workers"},
		{name: "no workloads", mutate: func(c *Config) { c.Workloads = nil }, wantErr: "at least one workload"},
		{
			name:    "unknown type",
			mutate:  func(c *Config) { c.Workloads["int32"].Type = "int128" },
			wantErr: "unknown type",
		},
		{
			name:    "unknown sorter",
			mutate:  func(c *Config) { c.Workloads["uint64"].Sorters = []string{"radix", "bogo"} },
			wantErr: "unknown sorters [bogo]",
		},
		{
			name:    "duplicate sorter",
			mutate:  func(c *Config) { c.Workloads["uint64"].Sorters = []string{"radix", "std", "radix"} },
			wantErr: "duplicate sorters [radix]",
		},
		{
			name:    "no sorters",
			mutate:  func(c *Config) { c.Workloads["float64"].Sorters = nil },
			wantErr: "at least one sorter",
		},
		{name: "bad format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: "unknown output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.ValidateBench()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateServe(t *testing.T) {
	c := Default()
	if err := c.ValidateServe(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
	c.Serve.Port = "http"
	if err := c.ValidateServe(); err == nil {
		t.Error("Expected error for non-numeric port")
	}
	c.Serve.Port = "70000"
	if err := c.ValidateServe(); err == nil {
		t.Error("Expected error for port out of range")
	}
	c.Serve.Port = "5044"
	c.Serve.Interval = 0
	if err := c.ValidateServe(); err == nil {
		t.Error("Expected error for zero interval")
	}
	c.Serve = nil
	if err := c.ValidateServe(); err == nil {
		t.Error("Expected error for missing section")
	}
}

func TestParseSizes(t *testing.T) {
	sizes, err := ParseSizes([]string{"1000", " 1e6 ", "2.5e3"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !slices.Equal(sizes, []int{1000, 1000000, 2500}) {
		t.Errorf("Expected [1000 1000000 2500], got %v", sizes)
	}

	for _, bad := range []string{"", "ten", "1.5", "1e300", "NaN"} {
		if _, err := ParseSizes([]string{bad}); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}
