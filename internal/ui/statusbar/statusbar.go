package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdrift/taskdrift/internal/ui/styles"
)

// State is everything the status bar shows about the last board pass.
type State struct {
	Total         int
	Done          int
	CompletionPct float64
	ParseFailed   int
	Findings      int
}

// Render renders the bottom status bar: counts on the left, key hints
// on the right.
func Render(state State, width int, s *styles.Styles) string {
	counts := s.StatusInfo.Render(fmt.Sprintf("%d tasks · %d done (%.0f%%)", state.Total, state.Done, state.CompletionPct))

	warn := ""
	if state.ParseFailed > 0 || state.Findings > 0 {
		warn = " " + s.StatusWarn.Render(fmt.Sprintf("⚠ %d failed / %d findings", state.ParseFailed, state.Findings))
	}

	hints := s.StatusHint.Render("←/→ column · ↑/↓ task · r reload · q quit")

	left := counts + warn
	gap := width - lipgloss.Width(left) - lipgloss.Width(hints) - 2
	if gap < 1 {
		gap = 1
	}

	line := left + lipgloss.NewStyle().Width(gap).Render("") + hints
	return s.StatusBar.Width(width).Render(line)
}
