// Package bench times the radix engine against the slices sorts on
// generated workloads and verifies every radix result.
package bench

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"slices"
	"strconv"
	"time"

	"gopkg.in/cheggaaa/pb.v1"

	"github.com/ChristianF88/lsdsort/check"
	"github.com/ChristianF88/lsdsort/config"
	"github.com/ChristianF88/lsdsort/output"
	"github.com/ChristianF88/lsdsort/pools"
	"github.com/ChristianF88/lsdsort/radix"
	"github.com/ChristianF88/lsdsort/workload"
)

// Options controls what the runner prints while it works
type Options struct {
	// Progress, when set, receives a progress bar of the timed runs
	Progress io.Writer
	// Log, when set, receives one line per finished measurement
	Log io.Writer
}

type Runner struct {
	cfg     *config.Config
	report  *output.Report
	opts    Options
	workers int
	bar     *pb.ProgressBar
}

// NewRunner prepares a run of cfg that records into report. cfg must have
// passed ValidateBench.
func NewRunner(cfg *config.Config, report *output.Report, opts Options) *Runner {
	workers := cfg.Bench.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{cfg: cfg, report: report, opts: opts, workers: workers}
}

// Logf writes a diagnostic line when a log writer is configured
func (r *Runner) Logf(format string, args ...interface{}) {
	if r.opts.Log == nil {
		return
	}
	fmt.Fprintf(r.opts.Log, format+"\n", args...)
}

// Run times every configured workload, size and sorter. Failed
// verifications are recorded as report errors; the returned error is for
// failures that stop the run.
func (r *Runner) Run() error {
	start := time.Now()
	r.report.Metadata.Seed = r.cfg.Bench.Seed
	r.report.Metadata.Rounds = r.cfg.Bench.Rounds
	r.report.Metadata.Host.Workers = r.workers

	if r.opts.Progress != nil {
		r.bar = pb.New(r.totalRuns())
		r.bar.Output = r.opts.Progress
		r.bar.Prefix("Sorting ")
		r.bar.SetMaxWidth(80)
		r.bar.ShowTimeLeft = false
		r.bar.Start()
		defer r.bar.Finish()
	}

	for _, name := range r.cfg.WorkloadNames() {
		w := r.cfg.Workloads[name]
		if err := r.runType(name, w.Type, w.Sorters); err != nil {
			return fmt.Errorf("workload %s: %w", name, err)
		}
	}

	r.report.UpdateDuration(start)
	return nil
}

func (r *Runner) totalRuns() int {
	total := 0
	for _, w := range r.cfg.Workloads {
		total += len(w.Sorters)
	}
	return total * len(r.cfg.Bench.Sizes) * r.cfg.Bench.Rounds
}

// sorterFunc sorts data in place with one of the configured sorters
type sorterFunc[T any] func(data []T) error

func makeSorter[T comparable](name string, s suite[T], workers int, buffers *pools.SlicePool[T]) (sorterFunc[T], error) {
	switch name {
	case config.SorterStd:
		return func(data []T) error {
			slices.SortFunc(data, s.compare)
			return nil
		}, nil
	case config.SorterStdStable:
		return func(data []T) error {
			slices.SortStableFunc(data, s.compare)
			return nil
		}, nil
	case config.SorterRadix:
		return func(data []T) error {
			buf := buffers.Get(len(data))
			defer buffers.Put(buf)
			return radix.SortWithBuffer(data, buf, s.key, radix.Sequential())
		}, nil
	case config.SorterRadixPar:
		return func(data []T) error {
			return radix.Sort(data, s.key, radix.Parallel(workers))
		}, nil
	default:
		return nil, fmt.Errorf("unknown sorter %q", name)
	}
}

func isRadix(sorter string) bool {
	return sorter == config.SorterRadix || sorter == config.SorterRadixPar
}

// runWorkload generates the input of each size once, since every round is
// re-seeded with the same seed, and times each sorter on a fresh copy.
func runWorkload[T comparable](r *Runner, name, typ string, sorters []string, s suite[T]) error {
	buffers := pools.NewSlicePool[T](0)
	rounds := r.cfg.Bench.Rounds

	fns := make([]sorterFunc[T], len(sorters))
	for i, sorter := range sorters {
		fn, err := makeSorter(sorter, s, r.workers, buffers)
		if err != nil {
			return err
		}
		fns[i] = fn
	}

	for _, size := range r.cfg.Bench.Sizes {
		input := make([]T, size)
		workload.Fill(input, r.cfg.Bench.Seed, s.draw)
		if floats, ok := any(input).([]float64); ok && !workload.IsFinite(floats) {
			return fmt.Errorf("generated input of size %d holds non-finite values", size)
		}
		inputPrint := check.Fingerprint(input, s.key)
		work := make([]T, size)

		// the std-stable result, when that sorter is configured
		var reference []T
		if r.cfg.Bench.Verify && slices.Contains(sorters, config.SorterStdStable) {
			reference = slices.Clone(input)
			slices.SortStableFunc(reference, s.compare)
		}

		for i, sorter := range sorters {
			timings := make([]time.Duration, 0, rounds)
			var verified *bool
			failed := false

			for round := 0; round < rounds; round++ {
				copy(work, input)
				begin := time.Now()
				err := fns[i](work)
				timings = append(timings, time.Since(begin))
				if r.bar != nil {
					r.bar.Increment()
				}
				if err != nil {
					r.report.AddError("sort_failed", fmt.Sprintf("%s/%s/%d: %v", name, sorter, size, err), 1)
					failed = true
					break
				}
			}
			if failed {
				continue
			}

			if r.cfg.Bench.Verify && isRadix(sorter) {
				ok := verify(r.report, fmt.Sprintf("%s/%s/%d", name, sorter, size), input, work, reference, inputPrint, s, r.workers)
				verified = &ok
			}

			res := summarize(timings, size)
			res.Workload = name
			res.Type = typ
			res.Sorter = sorter
			res.ElementBytes = workload.ElementSize(typ)
			res.Verified = verified
			res.Fingerprint = strconv.FormatUint(inputPrint, 16)
			r.report.AddResult(res)

			r.Logf("%-16s %-10s %10d  mean %8.2fms  min %8.2fms  max %8.2fms",
				name, sorter, size, res.MeanMS, res.MinMS, res.MaxMS)
		}
	}
	return nil
}

// verify checks one radix result. Every failure is added to the report.
func verify[T comparable](report *output.Report, where string, input, got, reference []T, inputPrint uint64, s suite[T], workers int) bool {
	ok := true

	if err := check.Sorted(got, s.key); err != nil {
		report.AddError("not_sorted", fmt.Sprintf("%s: %v", where, err), 1)
		ok = false
	}
	if fp := check.Fingerprint(got, s.key); fp != inputPrint {
		report.AddError("fingerprint_mismatch", fmt.Sprintf("%s: input %x, output %x", where, inputPrint, fp), 1)
		ok = false
	}
	if len(got) <= maxExactCheck {
		if err := check.Permutation(input, got, s.key, workers); err != nil {
			report.AddError("not_permutation", fmt.Sprintf("%s: %v", where, err), 1)
			ok = false
		}
	}
	if reference != nil {
		if !slices.Equal(got, reference) {
			report.AddError("not_stable", fmt.Sprintf("%s: differs from std-stable result", where), 1)
			ok = false
		}
	} else if len(got) <= maxExactCheck {
		if err := check.Stable(input, got, s.key, equal[T]); err != nil {
			report.AddError("not_stable", fmt.Sprintf("%s: %v", where, err), 1)
			ok = false
		}
	}
	return ok
}

// maxExactCheck bounds the sizes verified by a key multiset count and, when
// std-stable is not among the configured sorters, by an extra reference
// sort. Larger inputs rely on the fingerprint.
const maxExactCheck = 1 << 20

func summarize(timings []time.Duration, size int) output.Result {
	res := output.Result{
		Size:   size,
		Rounds: len(timings),
		MinMS:  math.Inf(1),
	}
	var total time.Duration
	for _, d := range timings {
		total += d
		ms := float64(d) / float64(time.Millisecond)
		res.MinMS = math.Min(res.MinMS, ms)
		res.MaxMS = math.Max(res.MaxMS, ms)
	}
	mean := total / time.Duration(len(timings))
	res.MeanMS = float64(mean) / float64(time.Millisecond)
	if mean > 0 {
		res.ElementsPerSec = float64(size) / mean.Seconds()
	}
	return res
}
