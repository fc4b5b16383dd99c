package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel = color.New(color.FgYellow).SprintFunc()
)

// Render serializes the report in one of the formats json, yaml or plain
func (r *Report) Render(format string, compact bool) ([]byte, error) {
	switch format {
	case "", "json":
		if compact {
			return r.ToCompactJSON()
		}
		return r.ToJSON()
	case "yaml":
		return r.ToYAML()
	case "plain":
		var buf bytes.Buffer
		if err := r.WritePlain(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// WritePlain writes a human readable table of the results
func (r *Report) WritePlain(w io.Writer) error {
	m := r.Metadata
	fmt.Fprintf(w, "lsdsort %s  %s/%s  %s  %d CPUs", m.Version, m.Host.GOOS, m.Host.GOARCH, m.Host.GoVersion, m.Host.NumCPU)
	if len(m.Host.CPUFeatures) > 0 {
		fmt.Fprintf(w, "  [%s]", strings.Join(m.Host.CPUFeatures, " "))
	}
	fmt.Fprintf(w, "\nseed %d, %d rounds, finished in %s\n\n", m.Seed, m.Rounds, FormatDuration(m.DurationMS))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKLOAD\tSORTER\tSIZE\tMEMORY\tMEAN\tMIN\tMAX\tRATE\tCHECK")
	for _, res := range r.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2fms\t%.2fms\t%.2fms\t%s\t%s\n",
			res.Workload,
			res.Sorter,
			FormatNumber(res.Size),
			humanize.Bytes(uint64(res.Size)*uint64(res.ElementBytes)),
			res.MeanMS, res.MinMS, res.MaxMS,
			humanize.SI(res.ElementsPerSec, "el/s"),
			checkLabel(res.Verified),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "%s %s: %s\n", warnLabel("WARN"), warning.Type, warning.Message)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "%s %s: %s\n", failLabel("ERROR"), e.Type, e.Message)
	}
	return nil
}

func checkLabel(verified *bool) string {
	switch {
	case verified == nil:
		return "-"
	case *verified:
		return passLabel("PASS")
	default:
		return failLabel("FAIL")
	}
}

// FormatNumber formats an integer with thousands separators
func FormatNumber(n int) string {
	return humanize.Comma(int64(n))
}

// FormatDuration renders milliseconds the way the plain report shows them
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
