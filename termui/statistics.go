package termui

import (
	"fmt"

	"github.com/nxtools/titleshelf/catalog"
	"github.com/rivo/tview"
)

// Tracks catalog statistics
// Used to show an info panel at the bottom of the screen

type Statistics struct {
	TotalTitles  int
	TotalUpdates int
	TotalDLC     int

	table *tview.Table
}

func newStatistics() *Statistics {
	s := &Statistics{}
	s.table = tview.NewTable()
	s.table.SetBorders(true)
	s.table.SetTitle("Statistics")
	s.table.SetFixed(0, 1)
	s.draw()
	return s
}

// Update replaces the counts; must run on the UI goroutine
func (s *Statistics) Update(counts Statistics) {
	s.TotalTitles = counts.TotalTitles
	s.TotalUpdates = counts.TotalUpdates
	s.TotalDLC = counts.TotalDLC
	s.draw()
}

func (s *Statistics) draw() {
	s.table.SetCellSimple(0, 0, "Total Titles")
	s.table.SetCellSimple(0, 1, fmt.Sprintf("%d", s.TotalTitles))
	s.table.SetCellSimple(1, 0, "Total Updates")
	s.table.SetCellSimple(1, 1, fmt.Sprintf("%d", s.TotalUpdates))
	s.table.SetCellSimple(2, 0, "Total DLC")
	s.table.SetCellSimple(2, 1, fmt.Sprintf("%d", s.TotalDLC))
}

func statisticsForGroups(groups []catalog.Group) Statistics {
	counts := Statistics{}
	for _, group := range groups {
		counts.TotalTitles++
		counts.TotalUpdates += len(group.Updates)
		counts.TotalDLC += len(group.DLC)
	}
	return counts
}
