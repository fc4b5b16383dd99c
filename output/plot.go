package output

import (
	"fmt"
	"os"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/samber/lo"
)

// PlotTimings writes an interactive HTML page with one bar chart per
// workload: sizes on the x axis, one series per sorter, mean milliseconds
// on a logarithmic y axis.
func PlotTimings(report *Report, filename string) error {
	if len(report.Results) == 0 {
		return fmt.Errorf("no results to plot")
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	byWorkload := lo.GroupBy(report.Results, func(r Result) string { return r.Workload })
	workloads := lo.Keys(byWorkload)
	slices.Sort(workloads)

	for _, name := range workloads {
		page.AddCharts(timingChart(name, byWorkload[name]))
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create plot file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Timing chart saved to %s\n", filename)
	return nil
}

func timingChart(workload string, results []Result) *charts.Bar {
	sizes := lo.Uniq(lo.Map(results, func(r Result, _ int) int { return r.Size }))
	slices.Sort(sizes)
	sorters := lo.Uniq(lo.Map(results, func(r Result, _ int) string { return r.Sorter }))

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           "600px",
			Height:          "400px",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    workload,
			Subtitle: fmt.Sprintf("type %s, mean of rounds", results[0].Type),
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "elements",
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "ms",
			Type: "log",
		}),
	)

	bar.SetXAxis(lo.Map(sizes, func(size int, _ int) string { return FormatNumber(size) }))
	for _, sorter := range sorters {
		data := make([]opts.BarData, len(sizes))
		for i, size := range sizes {
			res, ok := lo.Find(results, func(r Result) bool { return r.Sorter == sorter && r.Size == size })
			if ok {
				data[i] = opts.BarData{Name: sorter, Value: res.MeanMS}
			} else {
				data[i] = opts.BarData{Name: sorter, Value: "-"}
			}
		}
		bar.AddSeries(sorter, data)
	}
	return bar
}
