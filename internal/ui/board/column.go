package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdrift/taskdrift/internal/ui/styles"
)

// renderColumn renders a board column with header and record cards
func renderColumn(col Column, cursorTask int, isActive bool, width, height int, s *styles.Styles) string {
	headerStyle := s.ColumnHeader
	if isActive {
		headerStyle = s.ColumnHeaderActive
	}

	headerText := "─ " + col.Title + " "
	remainingWidth := width - len(headerText) - 2
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := headerStyle.Render(headerText)

	var cardStrings []string
	cardWidth := width - 4
	for i, r := range col.Records {
		isCursor := isActive && i == cursorTask
		cardStrings = append(cardStrings, renderCard(r, col.Dwell[r.ID], isCursor, cardWidth, s))
	}

	content := ""
	if len(cardStrings) > 0 {
		content = strings.Join(cardStrings, "\n")
	}

	columnStyle := s.Column.Width(width).Height(height)
	return lipgloss.JoinVertical(lipgloss.Left, header, columnStyle.Render(content))
}
