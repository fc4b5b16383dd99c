package tui

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/ChristianF88/lsdsort/output"
	"github.com/rivo/tview"
	"github.com/samber/lo"
)

// barWidth is the number of cells of the slowest sorter's bar
const barWidth = 50

// VisualizationView draws the mean time of each sorter on one workload size
// as horizontal bars.
type VisualizationView struct {
	view        *tview.TextView
	workload    string
	results     []output.Result
	sizes       []int
	currentSize int
}

func NewVisualizationView() *VisualizationView {
	v := &VisualizationView{}
	v.view = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	v.view.SetBorder(true).SetTitle(" Mean Time per Sorter ").SetTitleAlign(tview.AlignCenter)
	return v
}

// GetView returns the underlying text view
func (v *VisualizationView) GetView() *tview.TextView {
	return v.view
}

// SetResults replaces the charted results and redraws
func (v *VisualizationView) SetResults(workload string, results []output.Result) {
	v.workload = workload
	v.results = results
	v.sizes = lo.Uniq(lo.Map(results, func(r output.Result, _ int) int { return r.Size }))
	slices.Sort(v.sizes)
	if v.currentSize >= len(v.sizes) {
		v.currentSize = 0
	}
	v.render()
}

// CurrentSize is the workload size currently charted, 0 when there is none
func (v *VisualizationView) CurrentSize() int {
	if len(v.sizes) == 0 {
		return 0
	}
	return v.sizes[v.currentSize]
}

func (v *VisualizationView) NextSize() {
	if len(v.sizes) == 0 {
		return
	}
	v.currentSize = (v.currentSize + 1) % len(v.sizes)
	v.render()
}

func (v *VisualizationView) PrevSize() {
	if len(v.sizes) == 0 {
		return
	}
	v.currentSize = (v.currentSize - 1 + len(v.sizes)) % len(v.sizes)
	v.render()
}

func (v *VisualizationView) render() {
	size := v.CurrentSize()
	rows := lo.Filter(v.results, func(r output.Result, _ int) bool { return r.Size == size })
	v.view.SetText(renderBars(v.workload, size, rows))
	v.view.ScrollToBeginning()
}

// renderBars draws one bar per result, scaled to the slowest mean time, and
// marks the fastest sorter.
func renderBars(workload string, size int, results []output.Result) string {
	if len(results) == 0 {
		return "[dim]No results to chart[white]"
	}

	slowest := lo.MaxBy(results, func(a, b output.Result) bool { return a.MeanMS > b.MeanMS })
	fastest := lo.MinBy(results, func(a, b output.Result) bool { return a.MeanMS < b.MeanMS })
	nameWidth := lo.Max(lo.Map(results, func(r output.Result, _ int) int { return len(r.Sorter) }))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[white::b]%s[white::-], %s elements\n\n", workload, output.FormatNumber(size)))
	for _, r := range results {
		cells := 0
		if slowest.MeanMS > 0 {
			cells = int(math.Round(r.MeanMS / slowest.MeanMS * barWidth))
		}
		if cells == 0 && r.MeanMS > 0 {
			cells = 1
		}

		color := "blue"
		if r.Sorter == fastest.Sorter {
			color = "green"
		}
		sb.WriteString(fmt.Sprintf("%-*s [%s]%s[white]%s %8.2fms",
			nameWidth, r.Sorter, color, strings.Repeat("█", cells), strings.Repeat(" ", barWidth-cells), r.MeanMS))
		if fastest.MeanMS > 0 && r.Sorter != fastest.Sorter {
			sb.WriteString(fmt.Sprintf("  x%.1f", r.MeanMS/fastest.MeanMS))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
