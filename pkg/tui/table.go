package tui

import (
	"github.com/charmbracelet/bubbles/table"
)

const (
	initialTableHeight  = 10
	initialTableWidth   = 106
	initialDetailHeight = 12

	markerWidth   = 1
	idWidth       = 4
	severityWidth = 8
	reportedWidth = 24
	minTitleWidth = 16
)

// incidentListTableColumns sizes the columns for a terminal of the given
// width; the title column takes whatever is left over
func incidentListTableColumns(width int) []table.Column {
	cellPadding := (horizontalPadding * 2) * 5
	borderEdges := 2 + 2
	fixed := markerWidth + idWidth + severityWidth + reportedWidth + cellPadding + borderEdges

	titleWidth := width - fixed
	if titleWidth < minTitleWidth {
		titleWidth = minTitleWidth
	}

	return []table.Column{
		{Title: dot, Width: markerWidth},
		{Title: "ID", Width: idWidth},
		{Title: "Title", Width: titleWidth},
		{Title: "Severity", Width: severityWidth},
		{Title: "Reported", Width: reportedWidth},
	}
}
