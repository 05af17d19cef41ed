// Package report assembles the JSON artifacts a run emits: per-record
// dwell metrics, the board layout, and the snapshot diff.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskdrift/taskdrift/internal/board"
	"github.com/taskdrift/taskdrift/internal/domain"
	"github.com/taskdrift/taskdrift/internal/dwell"
)

// BaseMode records which previous observation a diff ran against
type BaseMode string

const (
	BaseSnapshot  BaseMode = "snapshot"  // the persisted cache file
	BaseReference BaseMode = "reference" // a named historical snapshot
	BaseFull      BaseMode = "full"      // forced-empty previous, full listing
)

// Summary aggregates the recoverable failures of one run. A run always
// completes; these counts annotate whatever could be computed.
type Summary struct {
	Parsed       int              `json:"parsed"`
	ParseFailed  int              `json:"parseFailed"`
	ScanFailures int              `json:"scanFailures"`
	Findings     []domain.Finding `json:"findings,omitempty"`
}

// MetricsEntry is the dwell-time result for one record
type MetricsEntry struct {
	ID                  string             `json:"id"`
	SourceRef           string             `json:"sourceRef"`
	Durations           map[string]float64 `json:"durations"`
	OpenIntervalSeconds float64            `json:"openIntervalSeconds"`
	CurrentStatus       string             `json:"currentStatus"`
}

// MetricsReport is the compute-metrics output artifact
type MetricsReport struct {
	Generated time.Time      `json:"generated"`
	RunID     string         `json:"runId"`
	Entries   []MetricsEntry `json:"entries"`
	Summary   Summary        `json:"summary"`
}

// ColumnReport is one board column in the report shape
type ColumnReport struct {
	Status string   `json:"status"`
	Count  int      `json:"count"`
	IDs    []string `json:"ids"`
}

// BoardReport is the build-board output artifact
type BoardReport struct {
	Generated     time.Time      `json:"generated"`
	RunID         string         `json:"runId"`
	Columns       []ColumnReport `json:"columns"`
	Total         int            `json:"total"`
	Done          int            `json:"done"`
	CompletionPct float64        `json:"completionPct"`
	Summary       Summary        `json:"summary"`
}

// DiffTotals summarizes a diff by classification
type DiffTotals struct {
	Current   int `json:"current"`
	Previous  int `json:"previous"`
	Added     int `json:"added"`
	Modified  int `json:"modified"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// DiffReport is the diff-snapshot output artifact
type DiffReport struct {
	Generated time.Time          `json:"generated"`
	RunID     string             `json:"runId"`
	BaseMode  BaseMode           `json:"baseMode"`
	Totals    DiffTotals         `json:"totals"`
	Added     []domain.DiffEntry `json:"added"`
	Modified  []domain.DiffEntry `json:"modified"`
	Removed   []domain.DiffEntry `json:"removed"`
	Unchanged []domain.DiffEntry `json:"unchanged"`
	Summary   Summary            `json:"summary"`
}

// Metrics builds the metrics report for a record set. Entries are in
// board order (status pipeline, then (createdAt, id) within a column)
// so repeated runs on unchanged input emit identical reports.
func Metrics(records []domain.Record, now time.Time, summary Summary) MetricsReport {
	rep := MetricsReport{
		Generated: now.UTC(),
		RunID:     uuid.NewString(),
		Entries:   make([]MetricsEntry, 0, len(records)),
		Summary:   summary,
	}

	for _, col := range board.Build(records) {
		for _, r := range col.Records {
			res := dwell.Compute(r.CreatedAt, r.Events, now)

			durations := make(map[string]float64, len(res.Durations))
			for s, v := range res.Durations {
				durations[string(s)] = v
			}
			rep.Entries = append(rep.Entries, MetricsEntry{
				ID:                  r.ID,
				SourceRef:           r.SourceRef,
				Durations:           durations,
				OpenIntervalSeconds: res.OpenIntervalSeconds,
				CurrentStatus:       string(res.CurrentStatus),
			})
		}
	}
	return rep
}

// Board builds the board report from built columns
func Board(columns []domain.Column, now time.Time, summary Summary) BoardReport {
	done, total, pct := board.Completion(columns)

	rep := BoardReport{
		Generated:     now.UTC(),
		RunID:         uuid.NewString(),
		Columns:       make([]ColumnReport, 0, len(columns)),
		Total:         total,
		Done:          done,
		CompletionPct: pct,
		Summary:       summary,
	}
	for _, col := range columns {
		rep.Columns = append(rep.Columns, ColumnReport{
			Status: string(col.Status),
			Count:  len(col.IDs),
			IDs:    col.IDs,
		})
	}
	return rep
}

// Diff builds the diff report from a classified comparison
func Diff(d domain.DiffResult, mode BaseMode, previousCount int, now time.Time, summary Summary) DiffReport {
	return DiffReport{
		Generated: now.UTC(),
		RunID:     uuid.NewString(),
		BaseMode:  mode,
		Totals: DiffTotals{
			Current:   len(d.Added) + len(d.Modified) + len(d.Unchanged),
			Previous:  previousCount,
			Added:     len(d.Added),
			Modified:  len(d.Modified),
			Removed:   len(d.Removed),
			Unchanged: len(d.Unchanged),
		},
		Added:     d.Added,
		Modified:  d.Modified,
		Removed:   d.Removed,
		Unchanged: d.Unchanged,
		Summary:   summary,
	}
}
