package domain

import "time"

// Record represents one task record parsed from its source text.
// Records are immutable once parsed; a re-run builds fresh ones.
type Record struct {
	ID         string
	StoryID    string
	Title      string
	Status     Status
	Type       string
	Owner      string
	RelatedIDs []string
	Acceptance []string
	Notes      string
	Extra      map[string]string // unrecognized header keys, passed through

	CreatedAt *time.Time
	UpdatedAt *time.Time

	Events      []StatusEvent
	ContentHash string
	SourceRef   string
}

// StatusEvent is one provenance entry in a record's status history
type StatusEvent struct {
	Timestamp time.Time
	To        Status
	From      Status // empty unless the source shape carried it
}

// Snapshot is a point-in-time, immutable collection of records keyed by id
type Snapshot struct {
	GeneratedAt time.Time
	Records     map[string]Record
}

// Entry is the persisted projection of one record. Only this shape is
// ever written to the cache, keeping the on-disk format stable as the
// full record grows.
type Entry struct {
	ID          string `yaml:"id" json:"id"`
	SourceRef   string `yaml:"sourceRef" json:"sourceRef"`
	ContentHash string `yaml:"contentHash" json:"contentHash"`
}

// Projection reduces a Snapshot to its persisted entries
func (s Snapshot) Projection() map[string]Entry {
	out := make(map[string]Entry, len(s.Records))
	for id, r := range s.Records {
		out[id] = Entry{ID: id, SourceRef: r.SourceRef, ContentHash: r.ContentHash}
	}
	return out
}

// DurationResult holds per-status dwell time for one record
type DurationResult struct {
	Durations           map[Status]float64 // seconds
	OpenIntervalSeconds float64
	CurrentStatus       Status
	Anomalies           int // clamped negative intervals
}

// Total returns the closed-interval bucket sum plus the open interval.
// For a well-formed history this equals now minus baseline.
func (d DurationResult) Total() float64 {
	sum := d.OpenIntervalSeconds
	for _, v := range d.Durations {
		sum += v
	}
	return sum
}

// DiffEntry carries one classified id. OldHash and NewHash are both set
// only for modified entries.
type DiffEntry struct {
	ID        string `json:"id"`
	SourceRef string `json:"sourceRef,omitempty"`
	OldHash   string `json:"oldHash,omitempty"`
	NewHash   string `json:"newHash,omitempty"`
}

// DiffResult is the four-way classification of two snapshots
type DiffResult struct {
	Added     []DiffEntry
	Modified  []DiffEntry
	Removed   []DiffEntry
	Unchanged []DiffEntry
}

// Empty reports whether the diff carries no structural change
func (d DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Modified) == 0 && len(d.Removed) == 0
}

// Column is one board column: a status plus its member ids in
// deterministic order.
type Column struct {
	Status  Status
	IDs     []string
	Records []Record
}

// FindingKind classifies advisory findings raised during a run
type FindingKind string

const (
	FindingStatusAnomaly    FindingKind = "status-anomaly"
	FindingLocationMismatch FindingKind = "location-mismatch"
	FindingClockAnomaly     FindingKind = "clock-anomaly"
)

// Finding is an advisory observation about one record. Findings never
// abort a run; they are aggregated into the run summary.
type Finding struct {
	Kind     FindingKind `json:"kind"`
	RecordID string      `json:"recordId"`
	Detail   string      `json:"detail,omitempty"`
}
