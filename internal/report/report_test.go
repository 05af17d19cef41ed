package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdrift/taskdrift/internal/board"
	"github.com/taskdrift/taskdrift/internal/domain"
	"github.com/taskdrift/taskdrift/internal/snapshot"
)

func tsp(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestMetrics(t *testing.T) {
	now := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{
			ID: "t-1", Status: domain.StatusInProgress, SourceRef: "in-progress/t-1.md",
			CreatedAt: tsp("2025-01-01T00:00:00Z"),
			Events: []domain.StatusEvent{
				{Timestamp: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), To: domain.StatusTodo},
				{Timestamp: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), To: domain.StatusInProgress},
			},
		},
		{ID: "t-2", Status: domain.StatusBacklog, SourceRef: "backlog/t-2.md", CreatedAt: tsp("2025-01-03T00:00:00Z")},
	}

	rep := Metrics(records, now, Summary{Parsed: 2})

	require.Len(t, rep.Entries, 2)
	assert.NotEmpty(t, rep.RunID)

	// Board order: backlog column before in-progress.
	assert.Equal(t, "t-2", rep.Entries[0].ID)

	e := rep.Entries[1]
	assert.Equal(t, "t-1", e.ID)
	assert.Equal(t, "in-progress", e.CurrentStatus)
	assert.InDelta(t, 86400, e.Durations["backlog"], 0.001)
	assert.InDelta(t, 86400, e.Durations["todo"], 0.001)
	assert.InDelta(t, 86400, e.OpenIntervalSeconds, 0.001)
}

func TestBoard(t *testing.T) {
	now := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)
	columns := board.Build([]domain.Record{
		{ID: "t-1", Status: domain.StatusDone},
		{ID: "t-2", Status: domain.StatusTodo},
	})

	rep := Board(columns, now, Summary{Parsed: 2})

	assert.Equal(t, 2, rep.Total)
	assert.Equal(t, 1, rep.Done)
	assert.InDelta(t, 50.0, rep.CompletionPct, 0.001)
	require.Len(t, rep.Columns, 6)
	assert.Equal(t, "todo", rep.Columns[1].Status)
	assert.Equal(t, 1, rep.Columns[1].Count)
}

func TestDiff(t *testing.T) {
	now := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)
	previous := map[string]domain.Entry{
		"t-1": {ID: "t-1", ContentHash: "h1"},
		"t-2": {ID: "t-2", ContentHash: "h2"},
	}
	current := map[string]domain.Entry{
		"t-1": {ID: "t-1", ContentHash: "h1x"},
		"t-3": {ID: "t-3", ContentHash: "h3"},
	}

	rep := Diff(snapshot.Diff(previous, current), BaseSnapshot, len(previous), now, Summary{})

	assert.Equal(t, BaseSnapshot, rep.BaseMode)
	assert.Equal(t, DiffTotals{
		Current: 2, Previous: 2, Added: 1, Modified: 1, Removed: 1, Unchanged: 0,
	}, rep.Totals)
}
