package config

import (
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"

	"github.com/ChristianF88/lsdsort/workload"
)

// Sorter names accepted in a workload's sorters list
const (
	SorterStd       = "std"
	SorterStdStable = "std-stable"
	SorterRadix     = "radix"
	SorterRadixPar  = "radix-par"
)

// Sorters lists every sorter in report order
var Sorters = []string{SorterStd, SorterStdStable, SorterRadix, SorterRadixPar}

// Output formats
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatPlain = "plain"
)

var Formats = []string{FormatJSON, FormatYAML, FormatPlain}

// Defaults of the [bench] and [serve] sections
var (
	DefaultSizes    = []int{1000000, 10000000}
	DefaultRounds   = 5
	DefaultPort     = "5044"
	DefaultInterval = 10 * time.Second
)

type BenchConfig struct {
	Sizes   []int  `toml:"sizes"`
	Rounds  int    `toml:"rounds"`
	Seed    uint64 `toml:"seed"`
	Workers int    `toml:"workers"`
	Verify  bool   `toml:"verify"`
}

type OutputConfig struct {
	Format   string `toml:"format"`
	Compact  bool   `toml:"compact"`
	PlotPath string `toml:"plotPath"`
}

type ServeConfig struct {
	Port     string        `toml:"port"`
	Interval time.Duration `toml:"interval"`
	OutFile  string        `toml:"outFile"`
	Parallel bool          `toml:"parallel"`
}

// WorkloadConfig is one [workload.<name>] table
type WorkloadConfig struct {
	Type    string   `toml:"type"`
	Sorters []string `toml:"sorters"`
}

type Config struct {
	Bench     *BenchConfig               `toml:"bench"`
	Output    *OutputConfig              `toml:"output"`
	Serve     *ServeConfig               `toml:"serve"`
	Workloads map[string]*WorkloadConfig `toml:"workload"`
}

// Default returns the configuration used when no file is given: every
// workload type timed with every sorter.
func Default() *Config {
	config := &Config{
		Bench:     defaultBench(),
		Output:    &OutputConfig{Format: FormatJSON},
		Serve:     &ServeConfig{Port: DefaultPort, Interval: DefaultInterval},
		Workloads: make(map[string]*WorkloadConfig),
	}
	for _, typ := range workload.Types {
		config.Workloads[typ] = &WorkloadConfig{Type: typ, Sorters: slices.Clone(Sorters)}
	}
	return config
}

func defaultBench() *BenchConfig {
	return &BenchConfig{
		Sizes:  slices.Clone(DefaultSizes),
		Rounds: DefaultRounds,
		Seed:   workload.DefaultSeed,
		Verify: true,
	}
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]any
	if _, err := toml.Decode(string(configData), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := &Config{
		Workloads: make(map[string]*WorkloadConfig),
	}

	for key, value := range rawConfig {
		switch key {
		case "bench":
			if benchMap, ok := value.(map[string]any); ok {
				bench, err := parseBenchConfig(benchMap)
				if err != nil {
					return nil, fmt.Errorf("parsing bench config: %w", err)
				}
				config.Bench = bench
			}
		case "output":
			if outputMap, ok := value.(map[string]any); ok {
				config.Output = parseOutputConfig(outputMap)
			}
		case "serve":
			if serveMap, ok := value.(map[string]any); ok {
				serve, err := parseServeConfig(serveMap)
				if err != nil {
					return nil, fmt.Errorf("parsing serve config: %w", err)
				}
				config.Serve = serve
			}
		case "workload":
			if workloadMap, ok := value.(map[string]any); ok {
				for name, sub := range workloadMap {
					if m, ok := sub.(map[string]any); ok {
						config.Workloads[name] = parseWorkloadConfig(name, m)
					}
				}
			}
		}
	}

	if config.Bench == nil {
		config.Bench = defaultBench()
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}
	if config.Output.Format == "" {
		config.Output.Format = FormatJSON
	}
	if config.Serve == nil {
		config.Serve = &ServeConfig{}
	}
	if config.Serve.Port == "" {
		config.Serve.Port = DefaultPort
	}
	if config.Serve.Interval == 0 {
		config.Serve.Interval = DefaultInterval
	}
	if len(config.Workloads) == 0 {
		config.Workloads = Default().Workloads
	}

	return config, nil
}

func parseBenchConfig(m map[string]any) (*BenchConfig, error) {
	config := defaultBench()
	if v, ok := m["sizes"].([]any); ok {
		config.Sizes = config.Sizes[:0]
		for _, item := range v {
			size, ok := toInt(item)
			if !ok {
				return nil, fmt.Errorf("invalid size %v", item)
			}
			config.Sizes = append(config.Sizes, size)
		}
	}
	if v, ok := toInt(m["rounds"]); ok {
		config.Rounds = v
	}
	if v, ok := m["seed"].(int64); ok {
		if v < 0 {
			return nil, fmt.Errorf("invalid seed %d", v)
		}
		config.Seed = uint64(v)
	}
	if v, ok := toInt(m["workers"]); ok {
		config.Workers = v
	}
	if v, ok := m["verify"].(bool); ok {
		config.Verify = v
	}
	return config, nil
}

// toInt accepts TOML integers and integral floats such as 1e6
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func parseOutputConfig(m map[string]any) *OutputConfig {
	config := &OutputConfig{}
	if v, ok := m["format"].(string); ok {
		config.Format = strings.ToLower(v)
	}
	if v, ok := m["compact"].(bool); ok {
		config.Compact = v
	}
	if v, ok := m["plotPath"].(string); ok {
		config.PlotPath = v
	}
	return config
}

func parseServeConfig(m map[string]any) (*ServeConfig, error) {
	config := &ServeConfig{}
	if v, ok := m["port"].(string); ok {
		config.Port = v
	}
	if v, ok := m["interval"].(string); ok {
		duration, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid interval %q: %w", v, err)
		}
		config.Interval = duration
	}
	if v, ok := m["outFile"].(string); ok {
		config.OutFile = v
	}
	if v, ok := m["parallel"].(bool); ok {
		config.Parallel = v
	}
	return config, nil
}

// parseWorkloadConfig reads one workload table. The type defaults to the
// table name and the sorters to all of them.
func parseWorkloadConfig(name string, m map[string]any) *WorkloadConfig {
	config := &WorkloadConfig{Type: name}
	if v, ok := m["type"].(string); ok {
		config.Type = v
	}
	if v, ok := m["sorters"].([]any); ok {
		for _, item := range v {
			if s, ok := item.(string); ok {
				config.Sorters = append(config.Sorters, s)
			}
		}
	} else {
		config.Sorters = slices.Clone(Sorters)
	}
	return config
}

// WorkloadNames returns the configured workload names in sorted order
func (c *Config) WorkloadNames() []string {
	names := lo.Keys(c.Workloads)
	slices.Sort(names)
	return names
}

func (c *Config) ValidateBench() error {
	if c.Bench == nil {
		return fmt.Errorf("bench configuration section is required")
	}
	if len(c.Bench.Sizes) == 0 {
		return fmt.Errorf("at least one size is required in bench configuration")
	}
	if bad := lo.Filter(c.Bench.Sizes, func(size int, _ int) bool { return size <= 0 }); len(bad) > 0 {
		return fmt.Errorf("sizes must be positive, got %v", bad)
	}
	if c.Bench.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Bench.Rounds)
	}
	if c.Bench.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Bench.Workers)
	}

	if len(c.Workloads) == 0 {
		return fmt.Errorf("at least one workload is required (e.g., [workload.int32])")
	}
	for _, name := range c.WorkloadNames() {
		w := c.Workloads[name]
		if !lo.Contains(workload.Types, w.Type) {
			return fmt.Errorf("workload %q: unknown type %q (known: %s)", name, w.Type, strings.Join(workload.Types, ", "))
		}
		if len(w.Sorters) == 0 {
			return fmt.Errorf("workload %q: at least one sorter is required", name)
		}
		unknown := lo.Filter(w.Sorters, func(s string, _ int) bool { return !lo.Contains(Sorters, s) })
		if len(unknown) > 0 {
			return fmt.Errorf("workload %q: unknown sorters %v (known: %s)", name, unknown, strings.Join(Sorters, ", "))
		}
		if dup := lo.FindDuplicates(w.Sorters); len(dup) > 0 {
			return fmt.Errorf("workload %q: duplicate sorters %v", name, dup)
		}
	}

	return c.ValidateOutput()
}

func (c *Config) ValidateOutput() error {
	if c.Output == nil {
		return fmt.Errorf("output configuration section is required")
	}
	if !lo.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("unknown output format %q (known: %s)", c.Output.Format, strings.Join(Formats, ", "))
	}
	// PlotPath is optional - no validation needed if empty
	return nil
}

func (c *Config) ValidateServe() error {
	if c.Serve == nil {
		return fmt.Errorf("serve configuration section is required")
	}
	if c.Serve.Port == "" {
		return fmt.Errorf("port is required in serve configuration")
	}
	if _, err := strconv.ParseUint(c.Serve.Port, 10, 16); err != nil {
		return fmt.Errorf("invalid port %q", c.Serve.Port)
	}
	if c.Serve.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Serve.Interval)
	}
	return nil
}

// ParseSizes parses element counts given on the command line. Each value
// is an integer or an integral float such as 1e6.
func ParseSizes(args []string) ([]int, error) {
	sizes := make([]int, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if n, err := strconv.Atoi(arg); err == nil {
			sizes = append(sizes, n)
			continue
		}
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q", arg)
		}
		n, ok := toInt(f)
		if !ok {
			return nil, fmt.Errorf("invalid size %q", arg)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
