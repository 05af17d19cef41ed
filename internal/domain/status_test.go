package domain

import "testing"

func TestStatus_Known(t *testing.T) {
	tests := []struct {
		status Status
		known  bool
	}{
		{StatusBacklog, true},
		{StatusTodo, true},
		{StatusInProgress, true},
		{StatusReview, true},
		{StatusDone, true},
		{StatusUnknown, false},
		{Status("parked"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Known(); got != tt.known {
				t.Errorf("Known() = %v, want %v", got, tt.known)
			}
		})
	}
}

func TestStatus_Column(t *testing.T) {
	tests := []struct {
		status Status
		column int
	}{
		{StatusBacklog, 0},
		{StatusTodo, 1},
		{StatusInProgress, 2},
		{StatusReview, 3},
		{StatusDone, 4},
		{Status("parked"), 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Column(); got != tt.column {
				t.Errorf("Column() = %d, want %d", got, tt.column)
			}
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	if !StatusDone.Terminal() {
		t.Error("done should be terminal")
	}
	for _, s := range []Status{StatusBacklog, StatusTodo, StatusInProgress, StatusReview} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestCheckLocation(t *testing.T) {
	r := Record{ID: "t-1", Status: StatusTodo}

	if f := CheckLocation(r, StatusTodo); f != nil {
		t.Errorf("matching location should yield no finding, got %+v", f)
	}
	if f := CheckLocation(r, ""); f != nil {
		t.Errorf("empty hint should yield no finding, got %+v", f)
	}

	f := CheckLocation(r, StatusReview)
	if f == nil {
		t.Fatal("mismatched location should yield a finding")
	}
	if f.Kind != FindingLocationMismatch {
		t.Errorf("Kind = %s, want %s", f.Kind, FindingLocationMismatch)
	}
	if f.RecordID != "t-1" {
		t.Errorf("RecordID = %s, want t-1", f.RecordID)
	}
}
