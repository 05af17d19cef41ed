// Package board groups records into ordered status columns and reports
// structural movement between two board observations.
package board

import (
	"sort"

	"github.com/taskdrift/taskdrift/internal/domain"
)

// Build groups records into the fixed pipeline columns plus a trailing
// unknown column for out-of-vocabulary statuses. Within a column,
// records order by (createdAt, id); records without a createdAt sort
// after dated ones, by id. The ordering is stable across repeated runs
// on unchanged input.
func Build(records []domain.Record) []domain.Column {
	columns := make([]domain.Column, len(domain.Pipeline)+1)
	for i, s := range domain.Pipeline {
		columns[i].Status = s
	}
	columns[len(domain.Pipeline)].Status = domain.StatusUnknown

	for _, r := range records {
		idx := r.Status.Column()
		columns[idx].Records = append(columns[idx].Records, r)
	}

	for i := range columns {
		col := &columns[i]
		sort.SliceStable(col.Records, func(a, b int) bool {
			return recordLess(col.Records[a], col.Records[b])
		})
		col.IDs = make([]string, len(col.Records))
		for j, r := range col.Records {
			col.IDs[j] = r.ID
		}
	}

	return columns
}

func recordLess(a, b domain.Record) bool {
	switch {
	case a.CreatedAt != nil && b.CreatedAt != nil:
		if !a.CreatedAt.Equal(*b.CreatedAt) {
			return a.CreatedAt.Before(*b.CreatedAt)
		}
	case a.CreatedAt != nil:
		return true
	case b.CreatedAt != nil:
		return false
	}
	return a.ID < b.ID
}

// Move records one id changing column between two observations
type Move struct {
	ID   string        `json:"id"`
	From domain.Status `json:"from"`
	To   domain.Status `json:"to"`
}

// BoardDiff is the structural drift between two boards: not just what
// changed, but what moved where.
type BoardDiff struct {
	Moved   []Move   `json:"moved"`
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

// DiffBoards compares per-id column membership across two boards.
// Ids present in both but in different columns are moved; the rest
// mirrors the snapshot differ's added/removed classification.
func DiffBoards(a, b []domain.Column) BoardDiff {
	before := membership(a)
	after := membership(b)

	var d BoardDiff
	for id, col := range after {
		prev, ok := before[id]
		switch {
		case !ok:
			d.Added = append(d.Added, id)
		case prev != col:
			d.Moved = append(d.Moved, Move{ID: id, From: prev, To: col})
		}
	}
	for id := range before {
		if _, ok := after[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}

	sort.Slice(d.Moved, func(i, j int) bool { return d.Moved[i].ID < d.Moved[j].ID })
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	return d
}

func membership(columns []domain.Column) map[string]domain.Status {
	m := make(map[string]domain.Status)
	for _, col := range columns {
		for _, id := range col.IDs {
			m[id] = col.Status
		}
	}
	return m
}

// Completion returns done count, total count, and the completion
// percentage for a built board.
func Completion(columns []domain.Column) (done, total int, pct float64) {
	for _, col := range columns {
		total += len(col.IDs)
		if col.Status == domain.StatusDone {
			done = len(col.IDs)
		}
	}
	if total > 0 {
		pct = float64(done) / float64(total) * 100
	}
	return done, total, pct
}
