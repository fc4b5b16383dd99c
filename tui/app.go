package tui

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ChristianF88/lsdsort/config"
	"github.com/ChristianF88/lsdsort/output"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App represents the TUI application
type App struct {
	app               *tview.Application
	pages             *tview.Pages
	progressView      *tview.TextView
	resultsView       *tview.Flex
	visualizationView *VisualizationView
	statusBar         *tview.TextView

	// Results panels
	summary        *tview.TextView
	results        *tview.Table
	diagnostics    *tview.TextView
	focusableItems []tview.Primitive
	currentFocus   int

	// Shared mutable state protected by mu (accessed from background goroutines)
	mu              sync.Mutex
	report          *output.Report
	workloads       []string
	currentWorkload int

	benchComplete atomic.Bool

	cfg *config.Config
}

// NewApp creates a TUI that waits for the report of a run of cfg
func NewApp(cfg *config.Config) *App {
	app := &App{
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
		cfg:   cfg,
	}
	app.setupUI()
	return app
}

// SetReport hands the finished benchmark report to the TUI
func (a *App) SetReport(report *output.Report) {
	if report == nil {
		return
	}

	a.mu.Lock()
	a.report = report
	a.workloads = workloadNames(report.Results)
	a.currentWorkload = -1
	a.mu.Unlock()

	a.benchComplete.Store(true)

	a.app.QueueUpdateDraw(func() {
		a.displayResults()
		a.updateStatusBar()
		a.pages.SwitchToPage("results")
	})
}

// ShowError displays an error message in the TUI and stops the progress animation
func (a *App) ShowError(message string) {
	a.app.QueueUpdateDraw(func() {
		a.progressView.SetText(fmt.Sprintf("[red]Error:[white] %s\n\n[yellow]Press 'q' to quit[white]", message))
		a.statusBar.SetText("[red]Benchmark failed![white] | Press 'q' to quit")
		a.pages.SwitchToPage("progress")
	})
}

func (a *App) setupUI() {
	a.progressView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false).
		SetWrap(false)
	a.progressView.SetBorder(true).SetTitle(" lsdsort Benchmark Progress ").SetTitleAlign(tview.AlignCenter)

	a.resultsView = tview.NewFlex().SetDirection(tview.FlexRow)
	a.setupResultsView()

	a.visualizationView = NewVisualizationView()

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]Starting benchmark...[white] | Press 'q' to quit")
	a.statusBar.SetBorder(false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.progressView, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	results := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.resultsView, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	visualization := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.visualizationView.GetView(), 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.pages.AddPage("progress", main, true, true)
	a.pages.AddPage("results", results, true, false)
	a.pages.AddPage("visualization", visualization, true, false)

	a.app.SetInputCapture(a.handleKey)
	a.app.SetRoot(a.pages, true)
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case 'q', 'Q':
		a.app.Stop()
		return nil
	case 'r', 'R':
		if a.benchComplete.Load() {
			a.pages.SwitchToPage("results")
			a.updateStatusBar()
		}
		return nil
	case 'p', 'P':
		a.pages.SwitchToPage("progress")
		a.updateStatusBar()
		return nil
	case 'v', 'V':
		if a.benchComplete.Load() {
			a.showVisualization()
		}
		return nil
	case 'w', 'W':
		if a.benchComplete.Load() {
			a.nextWorkload()
		}
		return nil
	}

	frontPageName, _ := a.pages.GetFrontPage()
	if !a.benchComplete.Load() {
		return event
	}

	switch frontPageName {
	case "results":
		switch event.Key() {
		case tcell.KeyTab:
			a.nextFocus()
			return nil
		case tcell.KeyBacktab:
			a.prevFocus()
			return nil
		case tcell.KeyDown, tcell.KeyUp:
			if tv, ok := a.getFocusedItem().(*tview.TextView); ok {
				row, col := tv.GetScrollOffset()
				if event.Key() == tcell.KeyDown {
					row++
				} else if row > 0 {
					row--
				}
				tv.ScrollTo(row, col)
				return nil
			}
		}
	case "visualization":
		switch event.Key() {
		case tcell.KeyLeft:
			a.visualizationView.PrevSize()
			a.updateStatusBar()
			return nil
		case tcell.KeyRight:
			a.visualizationView.NextSize()
			a.updateStatusBar()
			return nil
		}
	}

	return event
}

// setupResultsView creates the results display layout
func (a *App) setupResultsView() {
	a.summary = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.summary.SetBorder(true).SetTitle(" Summary ").SetTitleAlign(tview.AlignLeft)

	a.results = tview.NewTable().
		SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(true, false)
	a.results.SetBorder(true).SetTitle(" Timings ").SetTitleAlign(tview.AlignLeft)

	a.diagnostics = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	a.diagnostics.SetBorder(true).SetTitle(" Diagnostics ").SetTitleAlign(tview.AlignLeft)

	a.focusableItems = []tview.Primitive{a.results, a.diagnostics}
	a.currentFocus = 0
	a.updateFocusBorders()

	bottomRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.results, 0, 3, true).
		AddItem(a.diagnostics, 0, 1, false)

	a.resultsView.
		AddItem(a.summary, 8, 0, false).
		AddItem(bottomRow, 0, 1, true)
}

// Run starts the TUI application
func (a *App) Run() error {
	go a.animateProgress()
	return a.app.Run()
}

func (a *App) animateProgress() {
	stages := []string{
		"[yellow]▶[white] Generating workloads...",
		"[blue]▶[white] Timing comparison sorts...",
		"[cyan]▶[white] Timing radix passes...",
		"[green]▶[white] Verifying results...",
	}

	stageIndex := 0
	dots := 0

	var sizes []string
	workloads := 0
	if a.cfg != nil && a.cfg.Bench != nil {
		for _, size := range a.cfg.Bench.Sizes {
			sizes = append(sizes, output.FormatNumber(size))
		}
		workloads = len(a.cfg.Workloads)
	}

	for !a.benchComplete.Load() {
		stage := stages[stageIndex%len(stages)]
		dotStr := strings.Repeat(".", dots%4)

		content := fmt.Sprintf(`
[white::b]lsdsort Benchmark[white::-]

%s%s

[dim]Workloads:[white] %d
[dim]Sizes:[white] %s

[dim]Press 'q' to quit[white]
`, stage, dotStr, workloads, strings.Join(sizes, ", "))

		a.app.QueueUpdateDraw(func() {
			a.progressView.SetText(content)
		})

		time.Sleep(200 * time.Millisecond)
		dots++

		if dots%20 == 0 {
			stageIndex++
		}
	}
}

// nextWorkload cycles the workload filter: all workloads, then each one
func (a *App) nextWorkload() {
	a.mu.Lock()
	if len(a.workloads) > 0 {
		a.currentWorkload++
		if a.currentWorkload >= len(a.workloads) {
			a.currentWorkload = -1
		}
	}
	a.mu.Unlock()

	a.displayResults()
	frontPageName, _ := a.pages.GetFrontPage()
	if frontPageName == "visualization" {
		a.showVisualization()
	}
	a.updateStatusBar()
}

func (a *App) selectedWorkload() string {
	if a.currentWorkload < 0 || a.currentWorkload >= len(a.workloads) {
		return ""
	}
	return a.workloads[a.currentWorkload]
}

func (a *App) displayResults() {
	a.mu.Lock()
	report := a.report
	selected := a.selectedWorkload()
	a.mu.Unlock()
	if report == nil {
		return
	}

	a.summary.SetText(buildSummaryText(report))
	fillResultsTable(a.results, filterResults(report.Results, selected))
	a.diagnostics.SetText(buildDiagnosticsText(report))
	a.results.ScrollToBeginning()
}

func (a *App) showVisualization() {
	a.mu.Lock()
	report := a.report
	selected := a.selectedWorkload()
	a.mu.Unlock()
	if report == nil {
		return
	}

	if selected == "" && len(a.workloads) > 0 {
		selected = a.workloads[0]
	}
	a.visualizationView.SetResults(selected, filterResults(report.Results, selected))
	a.pages.SwitchToPage("visualization")
	a.updateStatusBar()
}

func (a *App) nextFocus() {
	a.currentFocus = (a.currentFocus + 1) % len(a.focusableItems)
	a.updateFocusBorders()
	a.app.SetFocus(a.focusableItems[a.currentFocus])
	a.updateStatusBar()
}

func (a *App) prevFocus() {
	a.currentFocus = (a.currentFocus - 1 + len(a.focusableItems)) % len(a.focusableItems)
	a.updateFocusBorders()
	a.app.SetFocus(a.focusableItems[a.currentFocus])
	a.updateStatusBar()
}

func (a *App) getFocusedItem() tview.Primitive {
	if a.currentFocus >= 0 && a.currentFocus < len(a.focusableItems) {
		return a.focusableItems[a.currentFocus]
	}
	return nil
}

var panelNames = []string{"Timings", "Diagnostics"}

func (a *App) updateFocusBorders() {
	a.results.SetBorderColor(tcell.ColorDefault).SetTitle(" Timings ")
	a.diagnostics.SetBorderColor(tcell.ColorDefault).SetTitle(" Diagnostics ")

	switch a.getFocusedItem() {
	case a.results:
		a.results.SetBorderColor(tcell.ColorYellow).SetTitle(" [::b]Timings[FOCUSED] ")
	case a.diagnostics:
		a.diagnostics.SetBorderColor(tcell.ColorYellow).SetTitle(" [::b]Diagnostics[FOCUSED] ")
	}
}

func (a *App) updateStatusBar() {
	if !a.benchComplete.Load() {
		a.statusBar.SetText("[yellow]Benchmark in progress...[white] | 'q' to quit")
		return
	}

	a.mu.Lock()
	selected := a.selectedWorkload()
	a.mu.Unlock()
	if selected == "" {
		selected = "all workloads"
	}

	frontPageName, _ := a.pages.GetFrontPage()
	switch frontPageName {
	case "visualization":
		a.statusBar.SetText(fmt.Sprintf("[green]Timing chart[white] | [cyan]%s[white] | size %s | ←→: change size, 'w': next workload, 'r': results, 'q': quit",
			a.visualizationView.workload, output.FormatNumber(a.visualizationView.CurrentSize())))
	case "progress":
		a.statusBar.SetText("[green]Benchmark complete![white] | 'r' for results, 'q' to quit")
	default:
		a.statusBar.SetText(fmt.Sprintf("[green]Benchmark complete![white] | [yellow]%s[white] focused | [cyan]%s[white] | Tab/Shift+Tab: panels, 'w': next workload, 'v': chart, 'p': progress, 'q': quit",
			panelNames[a.currentFocus], selected))
	}
}
