package board

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdrift/taskdrift/internal/domain"
	"github.com/taskdrift/taskdrift/internal/ui/styles"
)

// renderCard renders one record card: id, title, and the status and
// dwell badges.
func renderCard(r domain.Record, dwell string, isCursor bool, width int, s *styles.Styles) string {
	cardStyle := s.Card
	if isCursor {
		cardStyle = s.CardActive
	}
	cardStyle = cardStyle.Width(width)

	title := r.Title
	if title == "" {
		title = r.SourceRef
	}
	maxTitleLen := width - 4
	if maxTitleLen > 0 && len(title) > maxTitleLen {
		title = title[:maxTitleLen-1] + "…"
	}

	cursor := ""
	if isCursor {
		cursor = "▶"
	}

	idLine := cursor + s.TaskID.Render(r.ID)
	titleLine := s.TaskTitle.Render(title)

	statusBadge := s.StatusBadge(string(r.Status)).Render(string(r.Status))
	badgeLine := statusBadge
	if dwell != "" {
		badgeLine = lipgloss.JoinHorizontal(lipgloss.Left, statusBadge, " ", s.DwellBadge.Render(dwell))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, idLine, titleLine, badgeLine)
	return cardStyle.Render(content)
}

// RenderCard is the exported version for testing
func RenderCard(r domain.Record, dwell string, isCursor bool, width int, s *styles.Styles) string {
	return renderCard(r, dwell, isCursor, width, s)
}
