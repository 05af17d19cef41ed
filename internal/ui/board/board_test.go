package board

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskdrift/taskdrift/internal/domain"
	"github.com/taskdrift/taskdrift/internal/ui/styles"
)

func testRecord(id, title string, status domain.Status) domain.Record {
	created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	return domain.Record{
		ID:        id,
		Title:     title,
		Status:    status,
		CreatedAt: &created,
	}
}

func TestRenderCardShowsIDAndTitle(t *testing.T) {
	s := styles.New()
	out := RenderCard(testRecord("t1", "Wire the parser", domain.StatusTodo), "2h15m", false, 40, s)

	assert.Contains(t, out, "t1")
	assert.Contains(t, out, "Wire the parser")
	assert.Contains(t, out, "todo")
	assert.Contains(t, out, "2h15m")
}

func TestRenderCardTruncatesLongTitle(t *testing.T) {
	s := styles.New()
	long := strings.Repeat("x", 80)
	out := RenderCard(testRecord("t1", long, domain.StatusTodo), "", false, 24, s)

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, long)
}

func TestRenderCardCursorMarker(t *testing.T) {
	s := styles.New()
	r := testRecord("t1", "A task", domain.StatusTodo)

	assert.Contains(t, RenderCard(r, "", true, 40, s), "▶")
	assert.NotContains(t, RenderCard(r, "", false, 40, s), "▶")
}

func TestRenderCardFallsBackToSourceRef(t *testing.T) {
	s := styles.New()
	r := testRecord("t1", "", domain.StatusTodo)
	r.SourceRef = "todo/t1.md"

	assert.Contains(t, RenderCard(r, "", false, 40, s), "todo/t1.md")
}

func TestRenderIncludesAllColumns(t *testing.T) {
	s := styles.New()
	columns := []Column{
		{Title: "backlog", Records: []domain.Record{testRecord("t1", "First", domain.StatusBacklog)}},
		{Title: "todo"},
		{Title: "in-progress", Records: []domain.Record{testRecord("t2", "Second", domain.StatusInProgress)}},
		{Title: "review"},
		{Title: "done"},
		{Title: "unknown"},
	}

	out := Render(columns, Cursor{}, s, 180, 40)

	for _, want := range []string{"backlog", "todo", "in-progress", "review", "done", "unknown", "t1", "t2", "First", "Second"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderEmptyBoard(t *testing.T) {
	s := styles.New()
	assert.Equal(t, "", Render(nil, Cursor{}, s, 80, 24))
}
