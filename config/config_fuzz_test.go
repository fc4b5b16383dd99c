package config

import (
	"os"
	"strings"
	"testing"
)

func FuzzLoadConfig(f *testing.F) {
	// Seed with minimal valid config
	f.Add([]byte(`
[bench]
sizes = [1000]
[workload.int32]
sorters = ["radix"]
`))

	// Seed with empty config
	f.Add([]byte(""))

	// Seed with every section
	f.Add([]byte(`
[bench]
sizes = [1e6, 10000000]
rounds = 5
seed = 114514
workers = 0
verify = true
[output]
format = "plain"
plotPath = "/tmp/bench.html"
[serve]
port = "5044"
interval = "10s"
[workload.pairs]
type = "pair-i32-u32"
sorters = ["std", "std-stable", "radix", "radix-par"]
`))

	f.Fuzz(func(t *testing.T, data []byte) {
		tmpDir := t.TempDir()
		configPath := tmpDir + "/fuzz.toml"
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			return
		}
		// Should not panic; invalid configs return errors
		config, err := LoadConfig(configPath)
		if err != nil {
			return
		}
		_ = config.ValidateBench()
		_ = config.ValidateServe()
	})
}

func FuzzParseSizes(f *testing.F) {
	f.Add("1000,1e6")
	f.Add("")
	f.Add("abc,def")
	f.Add("-5")
	f.Add("1e400")

	f.Fuzz(func(t *testing.T, s string) {
		sizes, err := ParseSizes(strings.Split(s, ","))
		if err == nil && len(sizes) != len(strings.Split(s, ",")) {
			t.Errorf("Expected one size per field, got %v", sizes)
		}
	})
}
