package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ChristianF88/lsdsort/output"
	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/samber/lo"
)

var tableHeaders = []string{"Workload", "Sorter", "Size", "Mean", "Min", "Max", "Elements/s", "Check"}

// workloadNames lists the workloads of results in first-seen order
func workloadNames(results []output.Result) []string {
	return lo.Uniq(lo.Map(results, func(r output.Result, _ int) string { return r.Workload }))
}

// filterResults keeps the results of one workload; an empty name keeps all
func filterResults(results []output.Result, workload string) []output.Result {
	if workload == "" {
		return results
	}
	return lo.Filter(results, func(r output.Result, _ int) bool { return r.Workload == workload })
}

func buildSummaryText(report *output.Report) string {
	var sb strings.Builder
	meta := report.Metadata

	sb.WriteString(fmt.Sprintf("[yellow]Generated:[white] %s   [yellow]Duration:[white] %s\n",
		meta.GeneratedAt.Format("2006-01-02 15:04:05 MST"), output.FormatDuration(meta.DurationMS)))
	sb.WriteString(fmt.Sprintf("[yellow]Seed:[white] %d   [yellow]Rounds:[white] %d   [yellow]Results:[white] %d\n",
		meta.Seed, meta.Rounds, len(report.Results)))
	sb.WriteString(fmt.Sprintf("[yellow]Host:[white] %s/%s %s, %d CPUs, %d workers\n",
		meta.Host.GOOS, meta.Host.GOARCH, meta.Host.GoVersion, meta.Host.NumCPU, meta.Host.Workers))
	if len(meta.Host.CPUFeatures) > 0 {
		sb.WriteString(fmt.Sprintf("[yellow]CPU:[white] %s\n", strings.Join(meta.Host.CPUFeatures, " ")))
	}

	verified := lo.CountBy(report.Results, func(r output.Result) bool { return r.Verified != nil && *r.Verified })
	failed := lo.CountBy(report.Results, func(r output.Result) bool { return r.Verified != nil && !*r.Verified })
	sb.WriteString(fmt.Sprintf("[yellow]Checks:[white] [green]%d passed[white], ", verified))
	if failed > 0 {
		sb.WriteString(fmt.Sprintf("[red]%d failed[white]\n", failed))
	} else {
		sb.WriteString("0 failed\n")
	}
	return sb.String()
}

func buildDiagnosticsText(report *output.Report) string {
	if len(report.Warnings) == 0 && len(report.Errors) == 0 {
		return "[green]No warnings or errors[white]"
	}

	var sb strings.Builder
	for _, e := range report.Errors {
		sb.WriteString(fmt.Sprintf("[red]%s[white]: %s\n", e.Type, e.Message))
	}
	for _, w := range report.Warnings {
		sb.WriteString(fmt.Sprintf("[yellow]%s[white]: %s\n", w.Type, w.Message))
	}
	return sb.String()
}

// fillResultsTable renders results ordered by workload, size and mean time
func fillResultsTable(table *tview.Table, results []output.Result) {
	table.Clear()
	for col, h := range tableHeaders {
		table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}

	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b output.Result) int {
		if c := strings.Compare(a.Workload, b.Workload); c != 0 {
			return c
		}
		if a.Size != b.Size {
			return a.Size - b.Size
		}
		switch {
		case a.MeanMS < b.MeanMS:
			return -1
		case a.MeanMS > b.MeanMS:
			return 1
		}
		return 0
	})

	for i, r := range sorted {
		row := i + 1
		cells := []string{
			r.Workload,
			r.Sorter,
			humanize.Comma(int64(r.Size)),
			fmt.Sprintf("%.2fms", r.MeanMS),
			fmt.Sprintf("%.2fms", r.MinMS),
			fmt.Sprintf("%.2fms", r.MaxMS),
			humanize.SI(r.ElementsPerSec, ""),
			checkText(r.Verified),
		}
		for col, text := range cells {
			cell := tview.NewTableCell(text).SetExpansion(1)
			if col == len(cells)-1 {
				cell.SetTextColor(checkColor(r.Verified))
			}
			table.SetCell(row, col, cell)
		}
	}
}

func checkText(verified *bool) string {
	switch {
	case verified == nil:
		return "-"
	case *verified:
		return "PASS"
	default:
		return "FAIL"
	}
}

func checkColor(verified *bool) tcell.Color {
	switch {
	case verified == nil:
		return tcell.ColorGray
	case *verified:
		return tcell.ColorGreen
	default:
		return tcell.ColorRed
	}
}
