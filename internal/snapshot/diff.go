// Package snapshot builds point-in-time record collections and computes
// content-hash diffs between two observations of the population.
package snapshot

import (
	"sort"
	"time"

	"github.com/taskdrift/taskdrift/internal/domain"
)

// New builds a snapshot from freshly parsed records. Ids are unique
// within a snapshot; a duplicate id keeps the last record seen, which
// is deterministic because callers enumerate sources in sorted order.
func New(generatedAt time.Time, records []domain.Record) domain.Snapshot {
	s := domain.Snapshot{
		GeneratedAt: generatedAt,
		Records:     make(map[string]domain.Record, len(records)),
	}
	for _, r := range records {
		s.Records[r.ID] = r
	}
	return s
}

// Diff classifies every id across two snapshot projections. It is pure
// and order-independent over the input id sets; a nil previous models
// the no-prior-observation case and classifies everything as added.
// Output lists are sorted by id so repeated runs emit identical reports.
func Diff(previous, current map[string]domain.Entry) domain.DiffResult {
	var result domain.DiffResult

	for id, cur := range current {
		prev, ok := previous[id]
		switch {
		case !ok:
			result.Added = append(result.Added, domain.DiffEntry{
				ID: id, SourceRef: cur.SourceRef, NewHash: cur.ContentHash,
			})
		case prev.ContentHash != cur.ContentHash:
			result.Modified = append(result.Modified, domain.DiffEntry{
				ID: id, SourceRef: cur.SourceRef,
				OldHash: prev.ContentHash, NewHash: cur.ContentHash,
			})
		default:
			result.Unchanged = append(result.Unchanged, domain.DiffEntry{
				ID: id, SourceRef: cur.SourceRef, NewHash: cur.ContentHash,
			})
		}
	}

	for id, prev := range previous {
		if _, ok := current[id]; !ok {
			result.Removed = append(result.Removed, domain.DiffEntry{
				ID: id, SourceRef: prev.SourceRef, OldHash: prev.ContentHash,
			})
		}
	}

	for _, list := range [][]domain.DiffEntry{
		result.Added, result.Modified, result.Removed, result.Unchanged,
	} {
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}

	return result
}
