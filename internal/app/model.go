// Package app contains the interactive board model and TEA implementation.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coreboard "github.com/taskdrift/taskdrift/internal/board"
	"github.com/taskdrift/taskdrift/internal/cli"
	"github.com/taskdrift/taskdrift/internal/domain"
	"github.com/taskdrift/taskdrift/internal/dwell"
	uiboard "github.com/taskdrift/taskdrift/internal/ui/board"
	"github.com/taskdrift/taskdrift/internal/ui/statusbar"
	"github.com/taskdrift/taskdrift/internal/ui/styles"
)

// Model is the interactive board state
type Model struct {
	deps *cli.Dependencies

	columns []uiboard.Column
	bar     statusbar.State
	cursor  uiboard.Cursor

	// Terminal size
	width  int
	height int

	styles *styles.Styles

	// Loading state
	loading     bool
	spinner     spinner.Model
	lastRefresh time.Time
	loadErr     error
}

type boardLoadedMsg struct {
	columns []uiboard.Column
	bar     statusbar.State
}

type boardErrorMsg struct {
	err error
}

// New creates a new application model wired to the given services
func New(deps *cli.Dependencies) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	return Model{
		deps:    deps,
		styles:  styles.New(),
		loading: true,
		spinner: s,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadBoardCmd(),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case boardLoadedMsg:
		m.columns = msg.columns
		m.bar = msg.bar
		m.loading = false
		m.loadErr = nil
		m.lastRefresh = m.deps.Now()
		m.clampCursor()
		return m, nil

	case boardErrorMsg:
		m.loading = false
		m.loadErr = msg.err
		return m, nil
	}

	return m, nil
}

// View renders the board, or the loading and error states
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Scanning board...")
	}

	if m.loadErr != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.StatusWarn.Render(m.loadErr.Error())+"\n\nr to retry, q to quit")
	}

	boardHeight := m.height - 2
	boardView := uiboard.Render(m.columns, m.cursor, m.styles, m.width, boardHeight)
	barView := statusbar.Render(m.bar, m.width, m.styles)

	return lipgloss.JoinVertical(lipgloss.Left, boardView, barView)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "j", "down":
		if n := len(m.currentColumn()); m.cursor.Task < n-1 {
			m.cursor.Task++
		}
		return m, nil

	case "k", "up":
		if m.cursor.Task > 0 {
			m.cursor.Task--
		}
		return m, nil

	case "h", "left":
		if m.cursor.Column > 0 {
			m.cursor.Column--
			m.clampCursor()
		}
		return m, nil

	case "l", "right":
		if m.cursor.Column < len(m.columns)-1 {
			m.cursor.Column++
			m.clampCursor()
		}
		return m, nil

	case "g":
		m.cursor.Task = 0
		return m, nil

	case "G":
		if n := len(m.currentColumn()); n > 0 {
			m.cursor.Task = n - 1
		}
		return m, nil

	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadBoardCmd())
	}

	return m, nil
}

func (m Model) currentColumn() []domain.Record {
	if m.cursor.Column >= len(m.columns) {
		return nil
	}
	return m.columns[m.cursor.Column].Records
}

func (m *Model) clampCursor() {
	if n := len(m.currentColumn()); m.cursor.Task >= n {
		m.cursor.Task = 0
	}
}

// loadBoardCmd scans and parses the board off the update loop
func (m Model) loadBoardCmd() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		obs, err := cli.Observe(deps)
		if err != nil {
			return boardErrorMsg{err: err}
		}

		now := deps.Now()
		built := coreboard.Build(obs.Records)
		done, total, pct := coreboard.Completion(built)

		columns := buildColumns(built, now, deps)
		bar := statusbar.State{
			Total:         total,
			Done:          done,
			CompletionPct: pct,
			ParseFailed:   obs.Summary.ParseFailed,
			Findings:      len(obs.Summary.Findings),
		}

		return boardLoadedMsg{columns: columns, bar: bar}
	}
}

// buildColumns converts built columns into render columns with dwell labels
func buildColumns(built []domain.Column, now time.Time, deps *cli.Dependencies) []uiboard.Column {
	var columns []uiboard.Column
	for _, col := range built {
		if deps.Config.Board.HideUnknown && col.Status == domain.StatusUnknown && len(col.Records) == 0 {
			continue
		}

		uc := uiboard.Column{
			Title:   col.Status.String(),
			Records: col.Records,
			Dwell:   map[string]string{},
		}
		if deps.Config.Board.ShowDwell {
			for _, r := range col.Records {
				res := dwell.Compute(r.CreatedAt, r.Events, now)
				if res.OpenIntervalSeconds > 0 {
					uc.Dwell[r.ID] = dwell.Humanize(res.OpenIntervalSeconds)
				}
			}
		}
		columns = append(columns, uc)
	}
	return columns
}
