package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ChristianF88/lsdsort/config"
	"github.com/ChristianF88/lsdsort/version"
	"github.com/ChristianF88/lsdsort/workload"
	"github.com/samber/lo"
	cli "github.com/urfave/cli/v2"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Element types accepted by the sort command
const (
	TypeInt64   = "int64"
	TypeUint64  = "uint64"
	TypeFloat64 = "float64"
	TypeRecords = "records"
)

var sortTypes = []string{TypeInt64, TypeUint64, TypeFloat64, TypeRecords}

// Shared flag definitions to eliminate duplication
var (
	// Configuration flags
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to configuration file (mutually exclusive with other flags)",
	}

	// Benchmark flags
	sizesFlag = &cli.StringSliceFlag{
		Name:  "sizes",
		Usage: "Element counts to time (e.g., --sizes 1e6,1e7)",
	}
	roundsFlag = &cli.IntFlag{
		Name:  "rounds",
		Usage: "Timed repetitions per workload, sorter and size",
		Value: config.DefaultRounds,
	}
	seedFlag = &cli.Uint64Flag{
		Name:  "seed",
		Usage: "Seed of the workload generator",
		Value: workload.DefaultSeed,
	}
	workloadsFlag = &cli.StringSliceFlag{
		Name:  "workloads",
		Usage: "Workload types to time (int32, uint64, float64, pair-i32-u32, pair-u64-first). Default: all",
	}
	sortersFlag = &cli.StringSliceFlag{
		Name:  "sorters",
		Usage: "Sorters to time (std, std-stable, radix, radix-par). Default: all",
	}
	noVerifyFlag = &cli.BoolFlag{
		Name:  "noVerify",
		Usage: "Skip the verification of radix results",
		Value: false,
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Print a line per measurement to stderr instead of a progress bar",
		Value:   false,
	}

	// Engine flags
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Parallel workers, 0 means GOMAXPROCS",
	}
	parallelFlag = &cli.BoolFlag{
		Name:  "parallel",
		Usage: "Sort with the parallel engine",
		Value: false,
	}

	// Output flags
	plotPathFlag = &cli.StringFlag{
		Name:  "plotPath",
		Usage: "Path where to save the timing chart (e.g., '/path/to/bench.html'). If not provided, no plot will be generated.",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Output format: json, yaml or plain",
		Value: config.FormatJSON,
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}
	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Output plain text format for easy readability",
		Value: false,
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Launch TUI (Terminal User Interface) mode",
		Value: false,
	}

	// Sort-specific flags
	typeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "Element type: int64, uint64, float64 or records (JSON lines with a numeric key)",
		Value: TypeInt64,
	}
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "File to sort, one value per line. Reads stdin when omitted or '-'",
	}
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Write the result to this file instead of stdout",
	}
	descFlag = &cli.BoolFlag{
		Name:  "desc",
		Usage: "Sort in descending order",
		Value: false,
	}

	// Serve-specific flags
	portFlag = &cli.StringFlag{
		Name:  "port",
		Usage: "Port to listen on for lumberjack clients",
		Value: config.DefaultPort,
	}
	intervalFlag = &cli.DurationFlag{
		Name:  "interval",
		Usage: "Time between sorting and flushing received events",
		Value: config.DefaultInterval,
	}
)

// configModeFlags are the flags that conflict with --config
var configModeFlags = []string{
	"sizes", "rounds", "seed", "workloads", "sorters", "noVerify", "workers",
	"plotPath", "format", "compact", "plain", "tui", "verbose",
	"port", "interval", "out", "parallel",
}

// Shared validation functions
func validateConfigModeFlags(c *cli.Context, allowedFlags []string) error {
	allowed := make(map[string]bool)
	for _, flag := range allowedFlags {
		allowed[flag] = true
	}

	for _, flag := range configModeFlags {
		if c.IsSet(flag) && !allowed[flag] {
			return fmt.Errorf("when using --config, only %v flags are allowed", allowedFlags)
		}
	}
	return nil
}

func validatePlotPath(plotPath string) error {
	if plotPath != "" {
		plotDir := filepath.Dir(plotPath)
		if plotDir == "." {
			plotDir, _ = os.Getwd()
		}
		if _, err := os.Stat(plotDir); os.IsNotExist(err) {
			return fmt.Errorf("plot directory does not exist: %s", plotDir)
		}
	}
	return nil
}

func validateInputExists(path string) error {
	if path == "" || path == "-" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	return nil
}

// resolveFormat folds --plain and --compact into the output section
func resolveFormat(c *cli.Context, out *config.OutputConfig) {
	if c.IsSet("format") {
		out.Format = strings.ToLower(c.String("format"))
	}
	if c.Bool("plain") {
		out.Format = config.FormatPlain
	}
	if c.IsSet("compact") {
		out.Compact = c.Bool("compact")
	}
}

// Command handler functions to reduce deep nesting

// handleBenchCommand processes the bench command with proper separation of concerns
func handleBenchCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		return handleBenchConfigMode(c, configPath)
	}
	return handleBenchFlagsMode(c)
}

// handleBenchConfigMode handles bench command when using config file
func handleBenchConfigMode(c *cli.Context, configPath string) error {
	if err := validateConfigModeFlags(c, []string{"format", "compact", "plain", "tui", "verbose"}); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	resolveFormat(c, cfg.Output)

	if err := cfg.ValidateBench(); err != nil {
		return fmt.Errorf("invalid bench configuration: %w", err)
	}
	if err := validatePlotPath(cfg.Output.PlotPath); err != nil {
		return err
	}

	return BenchFromConfig(cfg, OutputConfig{TUI: c.Bool("tui"), Verbose: c.Bool("verbose")})
}

// handleBenchFlagsMode handles bench command when using CLI flags only
func handleBenchFlagsMode(c *cli.Context) error {
	cfg, err := createBenchConfigFromCLI(c)
	if err != nil {
		return err
	}
	if err := cfg.ValidateBench(); err != nil {
		return err
	}
	if err := validatePlotPath(cfg.Output.PlotPath); err != nil {
		return err
	}

	return BenchFromConfig(cfg, OutputConfig{TUI: c.Bool("tui"), Verbose: c.Bool("verbose")})
}

// createBenchConfigFromCLI builds the same structure a config file gives
func createBenchConfigFromCLI(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()

	if sizes := c.StringSlice("sizes"); len(sizes) > 0 {
		parsed, err := config.ParseSizes(sizes)
		if err != nil {
			return nil, err
		}
		cfg.Bench.Sizes = parsed
	}
	cfg.Bench.Rounds = c.Int("rounds")
	cfg.Bench.Seed = c.Uint64("seed")
	cfg.Bench.Workers = c.Int("workers")
	cfg.Bench.Verify = !c.Bool("noVerify")
	cfg.Output.PlotPath = c.String("plotPath")
	resolveFormat(c, cfg.Output)

	if types := c.StringSlice("workloads"); len(types) > 0 {
		cfg.Workloads = lo.SliceToMap(lo.Uniq(types), func(typ string) (string, *config.WorkloadConfig) {
			return typ, &config.WorkloadConfig{Type: typ}
		})
	}
	sorters := config.Sorters
	if s := c.StringSlice("sorters"); len(s) > 0 {
		sorters = s
	}
	for _, w := range cfg.Workloads {
		w.Sorters = append([]string(nil), sorters...)
	}
	return cfg, nil
}

// handleSortCommand processes the sort command
func handleSortCommand(c *cli.Context) error {
	typ := strings.ToLower(c.String("type"))
	if !lo.Contains(sortTypes, typ) {
		return fmt.Errorf("unknown type %q (known: %s)", typ, strings.Join(sortTypes, ", "))
	}
	if typ == TypeRecords && c.Bool("desc") {
		return fmt.Errorf("desc is not supported for records")
	}
	input := c.String("input")
	if input == "" && c.Args().Len() > 0 {
		input = c.Args().First()
	}
	if err := validateInputExists(input); err != nil {
		return err
	}
	if c.Int("workers") < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Int("workers"))
	}

	return SortFile(SortOptions{
		Type:       typ,
		Input:      input,
		Out:        c.String("out"),
		Descending: c.Bool("desc"),
		Parallel:   c.Bool("parallel"),
		Workers:    c.Int("workers"),
	}, c.App.Reader, c.App.Writer)
}

// handleServeCommand processes the serve command
func handleServeCommand(c *cli.Context) error {
	configPath := c.String("config")
	var cfg *config.Config
	if configPath != "" {
		if err := validateConfigModeFlags(c, []string{}); err != nil {
			return err
		}
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
		cfg.Serve.Port = c.String("port")
		cfg.Serve.Interval = c.Duration("interval")
		cfg.Serve.OutFile = c.String("out")
		cfg.Serve.Parallel = c.Bool("parallel")
	}

	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("invalid serve configuration: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Serving lumberjack on port %s, flushing every %s\n", cfg.Serve.Port, cfg.Serve.Interval)
	return Serve(cfg)
}

var App = &cli.App{
	Name:     "lsdsort",
	Usage:    "Byte-wise LSD radix sorting: benchmarks, file sorting and a sorting ingest server",
	Version:  version.Version,
	Compiled: parseDate(version.Date),
	Commands: []*cli.Command{
		{
			Name:  "bench",
			Usage: "Time the radix engine against the standard library sorts",
			Flags: []cli.Flag{
				// Configuration
				configFlag,
				// Workload flags
				sizesFlag,
				roundsFlag,
				seedFlag,
				workloadsFlag,
				sortersFlag,
				workersFlag,
				noVerifyFlag,
				// Output flags
				plotPathFlag,
				formatFlag,
				compactFlag,
				plainFlag,
				tuiFlag,
				verboseFlag,
			},
			Action: handleBenchCommand,
		},
		{
			Name:      "sort",
			Usage:     "Sort newline separated numbers or keyed JSON records",
			ArgsUsage: "[file]",
			Flags: []cli.Flag{
				typeFlag,
				inputFlag,
				outFlag,
				descFlag,
				parallelFlag,
				workersFlag,
			},
			Action: handleSortCommand,
		},
		{
			Name:  "demo",
			Usage: "Print a tour of the sort keys",
			Action: func(c *cli.Context) error {
				return Demo(c.App.Writer)
			},
		},
		{
			Name:  "serve",
			Usage: "Receive keyed events from lumberjack clients and emit them sorted by key",
			Flags: []cli.Flag{
				configFlag,
				portFlag,
				intervalFlag,
				outFlag,
				parallelFlag,
			},
			Action: handleServeCommand,
		},
	},
}
