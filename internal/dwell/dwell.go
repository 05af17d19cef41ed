// Package dwell computes per-status elapsed time for a record from its
// creation time, its sorted event history, and a reference now.
package dwell

import (
	"time"

	"github.com/taskdrift/taskdrift/internal/domain"
)

// Compute walks the event history and attributes elapsed time to the
// status that was active during each interval. Invariant: the bucket
// sum equals now minus baseline, except for terminal records where the
// open interval stops accumulating.
//
// Negative intervals (clock skew, out-of-order authorship) are clamped
// to zero and counted as anomalies, never subtracted.
func Compute(createdAt *time.Time, events []domain.StatusEvent, now time.Time) domain.DurationResult {
	result := domain.DurationResult{
		Durations: make(map[domain.Status]float64, len(domain.Pipeline)),
	}
	for _, s := range domain.Pipeline {
		result.Durations[s] = 0
	}

	baseline := now
	if createdAt != nil {
		baseline = *createdAt
	} else if len(events) > 0 {
		baseline = events[0].Timestamp
	}

	current := domain.StatusBacklog
	prev := baseline

	for _, ev := range events {
		delta := ev.Timestamp.Sub(prev).Seconds()
		if delta > 0 {
			active := current
			if ev.From != "" {
				active = ev.From
			}
			result.Durations[active] += delta
			prev = ev.Timestamp
		} else if delta < 0 {
			// Clamp; prev stays at the later timestamp so the
			// conservation invariant holds.
			result.Anomalies++
		}
		current = ev.To
	}

	open := now.Sub(prev).Seconds()
	if open < 0 {
		open = 0
		result.Anomalies++
	}

	result.CurrentStatus = current
	if !current.Terminal() {
		result.OpenIntervalSeconds = open
	}

	return result
}
