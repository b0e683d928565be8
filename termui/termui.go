package termui

import (
	"fmt"
	"sync"

	"github.com/nxtools/titleshelf/catalog"
	"github.com/rivo/tview"
)

// TermUI is the terminal front end; a live-filterable catalog table with
// the logs redirected to the side.
// It only ever consumes published catalog states, never builder internals

type TermUI struct {
	sync.Mutex
	app *tview.Application

	//Logger points to this
	LogsView *tview.TextView

	filterInput *tview.InputField
	titleTable  *tview.Table
	statistics  *Statistics

	catalog *catalog.Service
	running bool
}

func NewTermUI(service *catalog.Service) *TermUI {
	t := &TermUI{
		catalog: service,
	}

	//Logs stream

	t.LogsView = tview.NewTextView()
	t.LogsView.SetText("Loading...\n")
	t.LogsView.SetTextAlign(tview.AlignLeft)
	t.LogsView.SetDynamicColors(true)
	t.LogsView.SetChangedFunc(func() {
		t.app.Draw()
	})
	t.LogsView.SetMaxLines(4096)
	t.LogsView.SetWrap(false)
	t.LogsView.SetTitle("Logs")
	t.LogsView.SetBorder(true)

	//Live filter

	t.filterInput = tview.NewInputField()
	t.filterInput.SetLabel("Filter: ")
	t.filterInput.SetChangedFunc(func(text string) {
		t.catalog.SetFilterQuery(text)
		t.refresh()
	})

	//Catalog table

	t.titleTable = tview.NewTable()
	t.titleTable.SetBorders(false)
	t.titleTable.SetTitle("Titles")
	t.titleTable.SetFixed(1, 0)
	t.titleTable.SetSelectable(true, false)

	t.statistics = newStatistics()

	// Grid

	grid := tview.NewGrid()
	grid.SetRows(1, -1, 5)
	grid.SetColumns(-2, -1)
	grid.SetBorders(true)

	grid.AddItem(t.filterInput, 0, 0, 1, 1, 0, 0, true)
	grid.AddItem(t.titleTable, 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(t.statistics.table, 2, 0, 1, 1, 0, 0, false)
	grid.AddItem(t.LogsView, 0, 1, 3, 1, 0, 0, false)

	t.app = tview.NewApplication()
	t.app.SetRoot(grid, true)
	t.app.SetFocus(grid)
	return t
}

func (t *TermUI) Run() {
	t.Lock()
	t.running = true
	t.Unlock()
	//Catch up on anything published before the event loop existed.
	//QueueUpdateDraw blocks until the app processes it, so this has to
	//happen off the goroutine about to run the app
	go t.render(t.catalog.Store().Current())
	t.app.Run()
}

func (t *TermUI) Stop() {
	t.Lock()
	t.running = false
	t.Unlock()
	t.app.Stop()
}

// Watch renders every published catalog state until the process ends
func (t *TermUI) Watch() {
	observer := t.catalog.Store().Observe()
	go func() {
		for state := range observer {
			t.render(state)
		}
	}()
}

func (t *TermUI) isRunning() bool {
	t.Lock()
	defer t.Unlock()
	return t.running
}

// refresh re-renders the current state; used on filter keystrokes
func (t *TermUI) refresh() {
	t.renderLocked(t.catalog.Store().Current())
}

func (t *TermUI) render(state catalog.State) {
	if !t.isRunning() {
		return
	}
	t.app.QueueUpdateDraw(func() {
		t.renderLocked(state)
	})
}

// renderLocked redraws table + statistics; must run on the UI goroutine
func (t *TermUI) renderLocked(state catalog.State) {
	t.titleTable.Clear()
	t.titleTable.SetCellSimple(0, 0, "Title")
	t.titleTable.SetCellSimple(0, 1, "Contents")
	t.titleTable.SetCellSimple(0, 2, "TitleID")

	switch state.Phase {
	case catalog.PhaseLoading:
		t.titleTable.SetCellSimple(1, 0, "Loading...")
	case catalog.PhaseError:
		t.titleTable.SetCellSimple(1, 0, fmt.Sprintf("Search failed: %v", state.Err))
	case catalog.PhaseLoaded:
		groups := catalog.Filter(state.Groups, t.catalog.FilterQuery())
		for i, group := range groups {
			t.titleTable.SetCellSimple(i+1, 0, group.Root.Name)
			t.titleTable.SetCellSimple(i+1, 1, contentsSummary(group))
			if group.Root.TitleID != 0 {
				t.titleTable.SetCellSimple(i+1, 2, fmt.Sprintf("%016X", group.Root.TitleID))
			}
		}
		t.statistics.Update(statisticsForGroups(state.Groups))
	}
}

func contentsSummary(group catalog.Group) string {
	if len(group.Updates) == 0 && len(group.DLC) == 0 {
		return ""
	}
	return fmt.Sprintf("%d updates, %d DLC", len(group.Updates), len(group.DLC))
}
