package board

import "github.com/taskdrift/taskdrift/internal/domain"

// Column is a board column prepared for rendering: the built column
// plus a per-id dwell label for the card badges.
type Column struct {
	Title   string
	Records []domain.Record
	Dwell   map[string]string // id → humanized open-interval label
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int
	Task   int
}
