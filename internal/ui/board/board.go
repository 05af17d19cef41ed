package board

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdrift/taskdrift/internal/ui/styles"
)

// Render renders the whole board, one column per workflow status
func Render(columns []Column, cursor Cursor, s *styles.Styles, width, height int) string {
	if len(columns) == 0 {
		return ""
	}

	columnWidth := width / len(columns)

	var columnStrings []string
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}

		columnStr := renderColumn(col, cursorTask, isActive, columnWidth, height, s)
		sized := lipgloss.NewStyle().Width(columnWidth).Height(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
