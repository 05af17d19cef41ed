package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdrift/taskdrift/internal/domain"
)

func entries(pairs ...string) map[string]domain.Entry {
	m := make(map[string]domain.Entry, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i]] = domain.Entry{ID: pairs[i], ContentHash: pairs[i+1]}
	}
	return m
}

func TestDiff_Classification(t *testing.T) {
	previous := entries("t1", "h1", "t2", "h2")
	current := entries("t1", "h1x", "t3", "h3")

	d := Diff(previous, current)

	require.Len(t, d.Modified, 1)
	assert.Equal(t, "t1", d.Modified[0].ID)
	assert.Equal(t, "h1", d.Modified[0].OldHash)
	assert.Equal(t, "h1x", d.Modified[0].NewHash)

	require.Len(t, d.Added, 1)
	assert.Equal(t, "t3", d.Added[0].ID)

	require.Len(t, d.Removed, 1)
	assert.Equal(t, "t2", d.Removed[0].ID)

	assert.Empty(t, d.Unchanged)
}

func TestDiff_Idempotent(t *testing.T) {
	s := entries("t1", "h1", "t2", "h2", "t3", "h3")

	d := Diff(s, s)

	assert.True(t, d.Empty())
	assert.Len(t, d.Unchanged, 3)
}

func TestDiff_AbsentPrevious(t *testing.T) {
	current := entries("t1", "h1", "t2", "h2")

	d := Diff(nil, current)

	assert.Len(t, d.Added, 2)
	assert.Empty(t, d.Modified)
	assert.Empty(t, d.Removed)
	assert.Empty(t, d.Unchanged)
}

func TestDiff_OutputSortedByID(t *testing.T) {
	current := entries("t9", "h", "t1", "h", "t5", "h")

	d := Diff(nil, current)

	require.Len(t, d.Added, 3)
	assert.Equal(t, "t1", d.Added[0].ID)
	assert.Equal(t, "t5", d.Added[1].ID)
	assert.Equal(t, "t9", d.Added[2].ID)
}

func TestNew_ProjectionRoundTrip(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{ID: "t-1", Status: domain.StatusTodo, ContentHash: "h1", SourceRef: "tasks/todo/t-1.md", CreatedAt: &created},
		{ID: "t-2", Status: domain.StatusDone, ContentHash: "h2", SourceRef: "tasks/done/t-2.md"},
	}

	s := New(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), records)
	p := s.Projection()

	require.Len(t, p, 2)
	assert.Equal(t, domain.Entry{ID: "t-1", SourceRef: "tasks/todo/t-1.md", ContentHash: "h1"}, p["t-1"])
}
