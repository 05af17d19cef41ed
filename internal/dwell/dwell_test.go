package dwell

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdrift/taskdrift/internal/domain"
)

const day = 86400.0

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func TestCompute_TwoTransitions(t *testing.T) {
	events := []domain.StatusEvent{
		{Timestamp: ts("2025-01-02T00:00:00Z"), To: domain.StatusTodo},
		{Timestamp: ts("2025-01-03T00:00:00Z"), To: domain.StatusInProgress},
	}

	res := Compute(tsp("2025-01-01T00:00:00Z"), events, ts("2025-01-04T00:00:00Z"))

	assert.Equal(t, domain.StatusInProgress, res.CurrentStatus)
	assert.InDelta(t, day, res.Durations[domain.StatusBacklog], 0.001)
	assert.InDelta(t, day, res.Durations[domain.StatusTodo], 0.001)
	assert.InDelta(t, 0, res.Durations[domain.StatusInProgress], 0.001)
	assert.InDelta(t, 0, res.Durations[domain.StatusReview], 0.001)
	assert.InDelta(t, 0, res.Durations[domain.StatusDone], 0.001)
	assert.InDelta(t, day, res.OpenIntervalSeconds, 0.001)
}

func TestCompute_ZeroEvents(t *testing.T) {
	res := Compute(tsp("2025-01-01T00:00:00Z"), nil, ts("2025-01-04T00:00:00Z"))

	assert.Equal(t, domain.StatusBacklog, res.CurrentStatus)
	assert.InDelta(t, 3*day, res.OpenIntervalSeconds, 0.001)
	for s, v := range res.Durations {
		assert.Zerof(t, v, "bucket %s should be empty with no events", s)
	}
	assert.InDelta(t, 3*day, res.Total(), 0.001)
}

func TestCompute_TerminalStopsAccumulating(t *testing.T) {
	events := []domain.StatusEvent{
		{Timestamp: ts("2025-01-02T00:00:00Z"), To: domain.StatusDone},
	}

	res := Compute(tsp("2025-01-01T00:00:00Z"), events, ts("2025-06-01T00:00:00Z"))

	assert.Equal(t, domain.StatusDone, res.CurrentStatus)
	assert.Zero(t, res.OpenIntervalSeconds, "done records must not keep accumulating")
	assert.InDelta(t, day, res.Durations[domain.StatusBacklog], 0.001)
	assert.Zero(t, res.Durations[domain.StatusDone])
}

func TestCompute_FromStatusWins(t *testing.T) {
	// The canonical shape carries fromStatus; attribution uses it even
	// when it disagrees with the implied prior status.
	events := []domain.StatusEvent{
		{Timestamp: ts("2025-01-02T00:00:00Z"), To: domain.StatusTodo},
		{Timestamp: ts("2025-01-04T00:00:00Z"), From: domain.StatusReview, To: domain.StatusDone},
	}

	res := Compute(tsp("2025-01-01T00:00:00Z"), events, ts("2025-01-05T00:00:00Z"))

	assert.InDelta(t, day, res.Durations[domain.StatusBacklog], 0.001)
	assert.InDelta(t, 2*day, res.Durations[domain.StatusReview], 0.001)
	assert.Zero(t, res.Durations[domain.StatusTodo])
}

func TestCompute_NegativeDeltaClamped(t *testing.T) {
	// First event predates createdAt: clock skew, clamp to zero.
	events := []domain.StatusEvent{
		{Timestamp: ts("2024-12-30T00:00:00Z"), To: domain.StatusTodo},
		{Timestamp: ts("2025-01-02T00:00:00Z"), To: domain.StatusInProgress},
	}

	res := Compute(tsp("2025-01-01T00:00:00Z"), events, ts("2025-01-03T00:00:00Z"))

	assert.Equal(t, 1, res.Anomalies)
	for s, v := range res.Durations {
		assert.GreaterOrEqualf(t, v, 0.0, "bucket %s went negative", s)
	}
	// Conservation still holds relative to createdAt.
	assert.InDelta(t, 2*day, res.Total(), 0.001)
}

func TestCompute_NowBeforeLastEvent(t *testing.T) {
	events := []domain.StatusEvent{
		{Timestamp: ts("2025-01-05T00:00:00Z"), To: domain.StatusTodo},
	}

	res := Compute(tsp("2025-01-01T00:00:00Z"), events, ts("2025-01-02T00:00:00Z"))

	assert.Equal(t, 1, res.Anomalies)
	assert.Zero(t, res.OpenIntervalSeconds)
}

func TestCompute_BaselineFallsBackToFirstEvent(t *testing.T) {
	events := []domain.StatusEvent{
		{Timestamp: ts("2025-01-02T00:00:00Z"), To: domain.StatusTodo},
	}

	res := Compute(nil, events, ts("2025-01-03T00:00:00Z"))

	assert.Zero(t, res.Durations[domain.StatusBacklog])
	assert.InDelta(t, day, res.OpenIntervalSeconds, 0.001)
	assert.InDelta(t, day, res.Total(), 0.001)
}

func TestCompute_NoCreatedAtNoEvents(t *testing.T) {
	res := Compute(nil, nil, ts("2025-01-01T00:00:00Z"))

	assert.Equal(t, domain.StatusBacklog, res.CurrentStatus)
	assert.Zero(t, res.OpenIntervalSeconds)
	assert.Zero(t, res.Total())
}

func TestCompute_BackwardTransitionAccepted(t *testing.T) {
	// done → todo reopens the record; time keeps accumulating.
	events := []domain.StatusEvent{
		{Timestamp: ts("2025-01-02T00:00:00Z"), To: domain.StatusDone},
		{Timestamp: ts("2025-01-03T00:00:00Z"), To: domain.StatusTodo},
	}

	res := Compute(tsp("2025-01-01T00:00:00Z"), events, ts("2025-01-04T00:00:00Z"))

	assert.Equal(t, domain.StatusTodo, res.CurrentStatus)
	assert.InDelta(t, day, res.Durations[domain.StatusDone], 0.001)
	assert.InDelta(t, day, res.OpenIntervalSeconds, 0.001)
}

func TestCompute_Conservation(t *testing.T) {
	// Property check across a handful of histories.
	now := ts("2025-03-01T00:00:00Z")
	histories := [][]domain.StatusEvent{
		nil,
		{{Timestamp: ts("2025-01-02T00:00:00Z"), To: domain.StatusTodo}},
		{
			{Timestamp: ts("2025-01-02T00:00:00Z"), To: domain.StatusTodo},
			{Timestamp: ts("2025-01-10T06:30:00Z"), To: domain.StatusInProgress},
			{Timestamp: ts("2025-02-01T12:00:00Z"), To: domain.StatusReview},
		},
		{
			{Timestamp: ts("2025-01-05T00:00:00Z"), From: domain.StatusBacklog, To: domain.StatusTodo},
			{Timestamp: ts("2025-01-05T00:00:00Z"), To: domain.StatusInProgress},
		},
	}

	created := ts("2025-01-01T00:00:00Z")
	for i, events := range histories {
		res := Compute(&created, events, now)
		require.Falsef(t, res.CurrentStatus.Terminal(), "history %d unexpectedly terminal", i)
		want := now.Sub(created).Seconds()
		if math.Abs(res.Total()-want) > 0.001 {
			t.Errorf("history %d: total = %f, want %f", i, res.Total(), want)
		}
	}
}
