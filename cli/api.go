package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ChristianF88/lsdsort/bench"
	"github.com/ChristianF88/lsdsort/config"
	"github.com/ChristianF88/lsdsort/ingestor"
	"github.com/ChristianF88/lsdsort/output"
	"github.com/ChristianF88/lsdsort/pools"
	"github.com/ChristianF88/lsdsort/radix"
	"github.com/ChristianF88/lsdsort/tui"
	"github.com/ChristianF88/lsdsort/version"
)

// ============================================================================
// CONFIGURATION STRUCTS
// ============================================================================

// OutputConfig contains the presentation options that are not part of a
// config file
type OutputConfig struct {
	TUI     bool
	Verbose bool
}

// SortOptions describes one run of the sort command
type SortOptions struct {
	Type       string
	Input      string
	Out        string
	Descending bool
	Parallel   bool
	Workers    int
}

// ============================================================================
// MAIN ENTRY POINTS - These are the only functions that should be called externally
// ============================================================================

// BenchFromConfig runs the benchmark described by cfg and prints its report
func BenchFromConfig(cfg *config.Config, outputConfig OutputConfig) error {
	if outputConfig.TUI {
		return executeTUI(cfg)
	}

	report, err := executeBench(cfg, outputConfig)
	if report != nil {
		if outErr := outputResult(report, cfg.Output, os.Stdout); outErr != nil && err == nil {
			err = outErr
		}
	}
	if err != nil {
		return err
	}
	if report.Failed() {
		return fmt.Errorf("benchmark finished with %d errors", len(report.Errors))
	}
	return nil
}

// SortFile sorts the values read from opts.Input, or stdin, and writes them
// one per line to opts.Out, or stdout.
func SortFile(opts SortOptions, stdin io.Reader, stdout io.Writer) error {
	fromFile := opts.Input != "" && opts.Input != "-"

	out := stdout
	var outFile *os.File
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return fmt.Errorf("could not create output file %s: %w", opts.Out, err)
		}
		outFile = f
		out = f
	}

	w := bufio.NewWriter(out)
	var sortOpts []radix.Option
	if opts.Parallel {
		sortOpts = append(sortOpts, radix.Parallel(opts.Workers))
	}

	var err error
	switch opts.Type {
	case TypeInt64:
		var values []int64
		if values, err = readNumbers(opts.Input, fromFile, stdin, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }); err == nil {
			err = sortNumbers(values, w, radix.Key[int64](radix.Signed[int64]{}), opts.Descending, sortOpts,
				func(v int64) string { return strconv.FormatInt(v, 10) })
		}
	case TypeUint64:
		var values []uint64
		if values, err = readNumbers(opts.Input, fromFile, stdin, func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }); err == nil {
			err = sortNumbers(values, w, radix.Key[uint64](radix.Unsigned[uint64]{}), opts.Descending, sortOpts,
				func(v uint64) string { return strconv.FormatUint(v, 10) })
		}
	case TypeFloat64:
		var values []float64
		if values, err = readNumbers(opts.Input, fromFile, stdin, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }); err == nil {
			err = sortNumbers(values, w, radix.Key[float64](radix.Float64{}), opts.Descending, sortOpts,
				func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) })
		}
	case TypeRecords:
		var records []ingestor.Record
		var skipped int
		if fromFile {
			records, skipped, err = ingestor.ParseRecordFile(opts.Input)
		} else {
			records, skipped, err = ingestor.ParseRecords(stdin)
		}
		if err == nil {
			if skipped > 0 {
				fmt.Fprintf(os.Stderr, "Skipped %d lines without a usable key\n", skipped)
			}
			if err = sortRecords(records, sortOpts...); err == nil {
				err = writeRecords(w, records)
			}
		}
	default:
		err = fmt.Errorf("unknown type %q", opts.Type)
	}

	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if outFile != nil {
		if closeErr := outFile.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

// Serve receives keyed events from lumberjack clients until SIGINT or
// SIGTERM and writes them, sorted per interval, as JSON lines.
func Serve(cfg *config.Config) error {
	ing, err := ingestor.NewTCPIngestor(
		":"+cfg.Serve.Port,
		5*time.Second, // read timeout: avoid client disconnects
	)
	if err != nil {
		return fmt.Errorf("error creating ingestor: %w", err)
	}

	if err := ing.Accept(); err != nil {
		ing.Close()
		return fmt.Errorf("error accepting connections: %w", err)
	}
	log.Printf("Listening for lumberjack clients on %s", ing.Addr())

	out := io.Writer(os.Stdout)
	if cfg.Serve.OutFile != "" {
		f, err := os.OpenFile(cfg.Serve.OutFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			ing.Close()
			return fmt.Errorf("could not open output file %s: %w", cfg.Serve.OutFile, err)
		}
		defer f.Close()
		out = f
	}

	// Graceful shutdown
	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Printf("Received shutdown signal...")
		close(stop)
	}()
	defer signal.Stop(sig)

	err = serveLoop(ing, out, cfg.Serve, stop)
	if closeErr := ing.Close(); closeErr != nil {
		log.Printf("Error closing ingestor: %v", closeErr)
	}
	return err
}

// Demo prints one sorted slice per kind of key
func Demo(w io.Writer) error {
	ints := []int32{2, 3, 1}
	if err := radix.Ints(ints); err != nil {
		return err
	}
	fmt.Fprintf(w, "signed:            %v\n", ints)

	shorts := []uint16{513, 2, 65535, 256}
	if err := radix.Uints(shorts); err != nil {
		return err
	}
	fmt.Fprintf(w, "unsigned:          %v\n", shorts)

	desc := []uint64{2, 3, 1}
	if err := radix.Sort(desc, radix.Desc[uint64](radix.Unsigned[uint64]{})); err != nil {
		return err
	}
	fmt.Fprintf(w, "descending:        %v\n", desc)

	floats := []float32{1.0, 2.4, -3.5}
	if err := radix.Float32s(floats); err != nil {
		return err
	}
	fmt.Fprintf(w, "float:             %v\n", floats)

	pairs := []radix.Pair[int32, int32]{{First: 2, Second: 3}, {First: 0, Second: 1}, {First: 5, Second: 4}}
	if err := radix.Sort(pairs, radix.PairOf[int32, int32](radix.Signed[int32]{}, radix.Signed[int32]{})); err != nil {
		return err
	}
	fmt.Fprintf(w, "pair:              %v\n", pairs)

	names := [3]string{"first", "second", "third"}
	ptrs := []*string{&names[2], &names[0], &names[1]}
	if err := radix.Pointers(ptrs); err != nil {
		return err
	}
	fmt.Fprintf(w, "pointer:           [%s %s %s]\n", *ptrs[0], *ptrs[1], *ptrs[2])

	type reading struct {
		Value float64
		ID    int
	}
	readings := []reading{{1, 2}, {-1.4, 123}, {-1.4, 0}}
	if err := radix.Sort(readings, radix.Field[reading, float64](radix.Float64{}, func(r reading) float64 { return r.Value })); err != nil {
		return err
	}
	fmt.Fprintf(w, "struct field:      %v\n", readings)

	type pair = radix.Pair[int32, int32]
	first := radix.Field[pair, int32](radix.Signed[int32]{}, func(p pair) int32 { return p.First })
	second := radix.Field[pair, int32](radix.Signed[int32]{}, func(p pair) int32 { return p.Second })
	mixed := []pair{{First: 2, Second: 3}, {First: 0, Second: 1}, {First: 5, Second: 4}, {First: 2, Second: 7}}
	if err := radix.Sort(mixed, radix.Compose(first, radix.Desc(second))); err != nil {
		return err
	}
	fmt.Fprintf(w, "custom key:        %v\n", mixed)

	buffered := []int32{5, 3, 2, 6, 3}
	if err := radix.SortWithBuffer(buffered, make([]int32, len(buffered)), radix.Key[int32](radix.Signed[int32]{})); err != nil {
		return err
	}
	fmt.Fprintf(w, "caller buffer:     %v\n", buffered)

	parallel := []int{3, 5, 1, 3, 6}
	if err := radix.Ints(parallel, radix.Parallel(0)); err != nil {
		return err
	}
	fmt.Fprintf(w, "parallel:          %v\n", parallel)
	return nil
}

// ============================================================================
// CORE EXECUTION LOGIC
// ============================================================================

// executeBench runs the benchmark and returns its report. The report is
// returned even when the run stops early.
func executeBench(cfg *config.Config, outputConfig OutputConfig) (*output.Report, error) {
	start := time.Now()
	report := output.NewReport("bench", version.Version, start)

	opts := bench.Options{Progress: os.Stderr}
	if outputConfig.Verbose {
		opts = bench.Options{Log: os.Stderr}
	}
	if err := bench.NewRunner(cfg, report, opts).Run(); err != nil {
		report.AddError("bench", err.Error(), 1)
		report.UpdateDuration(start)
		return report, err
	}

	if cfg.Output.PlotPath != "" {
		plotStart := time.Now()
		if err := output.PlotTimings(report, cfg.Output.PlotPath); err != nil {
			report.AddWarning("plot", fmt.Sprintf("could not generate timing chart: %v", err), 1)
		} else {
			report.AddWarning("info", fmt.Sprintf("Timing chart generated in %v at %s", time.Since(plotStart), cfg.Output.PlotPath), 0)
		}
	}

	report.UpdateDuration(start)
	return report, nil
}

// executeTUI runs the benchmark in the background and browses its report
func executeTUI(cfg *config.Config) error {
	app := tui.NewApp(cfg)

	go func() {
		start := time.Now()
		report := output.NewReport("bench", version.Version, start)
		if err := bench.NewRunner(cfg, report, bench.Options{}).Run(); err != nil {
			app.ShowError(fmt.Sprintf("Benchmark failed: %v", err))
			return
		}
		report.UpdateDuration(start)
		app.SetReport(report)
	}()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// batchReader is the part of the ingestor the serve loop needs
type batchReader interface {
	ReadBatch(dst []ingestor.Record) ([]ingestor.Record, int, error)
	IsClosed() bool
}

// serveLoop flushes every interval until stop is closed or the ingestor
// shuts down. Events still buffered at stop are flushed once more.
func serveLoop(src batchReader, w io.Writer, serveCfg *config.ServeConfig, stop <-chan struct{}) error {
	var sortOpts []radix.Option
	if serveCfg.Parallel {
		sortOpts = append(sortOpts, radix.Parallel(0))
	}

	ticker := time.NewTicker(serveCfg.Interval)
	defer ticker.Stop()

	for {
		stopping := false
		select {
		case <-stop:
			stopping = true
		case <-ticker.C:
		}

		if err := flushRecords(src, w, sortOpts); err != nil {
			return err
		}
		if stopping {
			return nil
		}
		if src.IsClosed() {
			log.Printf("Ingestor closed. Exiting loop.")
			return nil
		}
	}
}

// flushRecords drains the ingestor, stable-sorts the records by key and
// writes them as JSON lines.
func flushRecords(src batchReader, w io.Writer, sortOpts []radix.Option) error {
	loopStart := time.Now()
	batch := pools.Pools.GetRecordSlice()
	defer func() { pools.Pools.ReturnRecordSlice(batch) }()

	batch, skipped, err := src.ReadBatch(batch)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	if skipped > 0 {
		log.Printf("Skipped %d events without a usable key", skipped)
	}
	if len(batch) == 0 {
		return nil
	}

	if err := sortRecords(batch, sortOpts...); err != nil {
		return err
	}
	if err := writeRecords(w, batch); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	log.Printf("Flushed %s events in %v", output.FormatNumber(len(batch)), time.Since(loopStart))
	return nil
}

// ============================================================================
// HELPER FUNCTIONS
// ============================================================================

var recordKey = radix.Field[ingestor.Record, float64](radix.Float64{}, func(r ingestor.Record) float64 { return r.Key })

// sortRecords orders records by key. Equal keys keep their arrival order.
func sortRecords(records []ingestor.Record, opts ...radix.Option) error {
	return radix.Sort(records, recordKey, opts...)
}

func writeRecords(w io.Writer, records []ingestor.Record) error {
	enc := json.NewEncoder(w)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return err
		}
	}
	return nil
}

func readNumbers[T any](path string, fromFile bool, stdin io.Reader, parse func(string) (T, error)) ([]T, error) {
	if fromFile {
		return ingestor.ParseNumberFile(path, parse)
	}
	return ingestor.ParseNumbers(stdin, parse)
}

func sortNumbers[T any](values []T, w io.Writer, key radix.Key[T], desc bool, opts []radix.Option, format func(T) string) error {
	if desc {
		key = radix.Desc(key)
	}
	if err := radix.Sort(values, key, opts...); err != nil {
		return err
	}
	for _, v := range values {
		if _, err := io.WriteString(w, format(v)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// outputResult is the unified output function that handles all output formats
func outputResult(report *output.Report, outputConfig *config.OutputConfig, w io.Writer) error {
	data, err := report.Render(outputConfig.Format, outputConfig.Compact)
	if err != nil {
		fmt.Fprintf(w, `{"error": "failed to render output: %v"}`+"\n", err)
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(w)
	}
	return nil
}
