package domain

// Status represents the workflow status of a task record
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"

	// StatusUnknown is the board column for out-of-vocabulary statuses.
	// It is never a valid declared status itself.
	StatusUnknown Status = "unknown"
)

// Pipeline is the fixed workflow order used for column layout.
var Pipeline = []Status{
	StatusBacklog,
	StatusTodo,
	StatusInProgress,
	StatusReview,
	StatusDone,
}

// String returns the display string
func (s Status) String() string {
	return string(s)
}

// Known reports whether s is part of the fixed vocabulary
func (s Status) Known() bool {
	for _, p := range Pipeline {
		if s == p {
			return true
		}
	}
	return false
}

// Terminal reports whether s is the end of the pipeline. A record in a
// terminal status stops accumulating open-interval time.
func (s Status) Terminal() bool {
	return s == StatusDone
}

// Column returns the board column index for this status.
// Out-of-vocabulary statuses map to the trailing unknown column.
func (s Status) Column() int {
	for i, p := range Pipeline {
		if s == p {
			return i
		}
	}
	return len(Pipeline)
}

// CheckLocation compares a record's declared status against the status
// implied by where its source file was found. A mismatch is advisory:
// callers surface it as a finding and keep processing.
func CheckLocation(r Record, expected Status) *Finding {
	if expected == "" || r.Status == expected {
		return nil
	}
	return &Finding{
		Kind:     FindingLocationMismatch,
		RecordID: r.ID,
		Detail:   "declared " + r.Status.String() + ", found in " + expected.String(),
	}
}
