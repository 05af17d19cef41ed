// Package parse turns raw task text into structured records. Failures
// are values, never panics: a bad record is reported and skipped, it
// does not abort the batch.
package parse

import (
	"path/filepath"
	"strings"

	"github.com/taskdrift/taskdrift/internal/domain"
)

// Result is the outcome of parsing one raw blob. Exactly one of Record
// and Failure is set; Findings may accompany a successful record.
type Result struct {
	Record   *domain.Record
	Failure  *domain.ParseFailure
	Findings []domain.Finding
}

// Parse produces a record from raw text, or a failure value. The two
// header dialects are tried in a fixed order; event extraction scans
// the whole document regardless of which dialect won.
func Parse(raw []byte, sourceRef string) Result {
	text := string(raw)
	if strings.TrimSpace(text) == "" {
		return Result{Failure: &domain.ParseFailure{
			SourceRef: sourceRef,
			Reason:    "empty",
			Err:       domain.ErrEmptyRecord,
		}}
	}

	var f *fields
	for _, try := range strategies {
		if parsed, ok := try(text); ok {
			f = parsed
			break
		}
	}
	if f == nil {
		return Result{Failure: &domain.ParseFailure{
			SourceRef: sourceRef,
			Reason:    "unrecognized",
			Err:       domain.ErrEmptyRecord,
		}}
	}

	r := domain.Record{
		Title:      f.title,
		StoryID:    f.values["story"],
		Type:       f.values["type"],
		Owner:      f.values["owner"],
		Notes:      f.values["notes"],
		Acceptance: f.acceptance,
		SourceRef:  sourceRef,
	}
	if len(f.extra) > 0 {
		r.Extra = f.extra
	}

	r.ID = f.values["id"]
	if r.ID == "" {
		r.ID = refID(sourceRef)
	}

	if related := f.values["related"]; related != "" {
		r.RelatedIDs = splitRelated(related)
	}
	if created, ok := parseTimestamp(f.values["created"]); ok {
		r.CreatedAt = &created
	}
	if updated, ok := parseTimestamp(f.values["updated"]); ok {
		r.UpdatedAt = &updated
	}

	var findings []domain.Finding
	r.Status = statusLiteral(f.values["status"])
	if !r.Status.Known() {
		findings = append(findings, domain.Finding{
			Kind:     domain.FindingStatusAnomaly,
			RecordID: r.ID,
			Detail:   "status " + string(r.Status) + " outside vocabulary",
		})
	}

	r.Events = extractEvents(text)
	r.ContentHash = ContentHash(r)

	return Result{Record: &r, Findings: findings}
}

// refID derives a record id from the source ref when the text itself
// carries none: the file basename without its extension.
func refID(sourceRef string) string {
	base := filepath.Base(sourceRef)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func splitRelated(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
