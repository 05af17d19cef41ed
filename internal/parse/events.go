package parse

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/taskdrift/taskdrift/internal/domain"
)

// Timestamps in provenance lines are RFC3339 or a bare date.
const timestampPattern = `(\d{4}-\d{2}-\d{2}(?:T\d{2}:\d{2}:\d{2}(?:Z|[+-]\d{2}:\d{2})?)?)`

// The three historically accumulated event shapes. Each matcher scans
// the whole document independently of the header dialect; results are
// merged and sorted, never deduplicated across shapes.
var eventShapes = []struct {
	name string
	re   *regexp.Regexp
	// build turns one regex match into an event
	build func(m []string) (domain.StatusEvent, bool)
}{
	{
		name: "canonical",
		re:   regexp.MustCompile(timestampPattern + `\s+EVENT:status-change\s+from=([\w-]+)\s+to=([\w-]+)`),
		build: func(m []string) (domain.StatusEvent, bool) {
			ts, ok := parseTimestamp(m[1])
			if !ok {
				return domain.StatusEvent{}, false
			}
			return domain.StatusEvent{Timestamp: ts, From: domain.Status(m[2]), To: domain.Status(m[3])}, true
		},
	},
	{
		name: "promoted",
		re:   regexp.MustCompile(timestampPattern + `\s+promoted\s+backlog→([\w-]+)`),
		build: func(m []string) (domain.StatusEvent, bool) {
			ts, ok := parseTimestamp(m[1])
			if !ok {
				return domain.StatusEvent{}, false
			}
			return domain.StatusEvent{Timestamp: ts, From: domain.StatusBacklog, To: domain.Status(m[2])}, true
		},
	},
	{
		name: "arrow",
		re:   regexp.MustCompile(timestampPattern + `\s+status→([\w-]+)`),
		build: func(m []string) (domain.StatusEvent, bool) {
			ts, ok := parseTimestamp(m[1])
			if !ok {
				return domain.StatusEvent{}, false
			}
			return domain.StatusEvent{Timestamp: ts, To: domain.Status(m[2])}, true
		},
	},
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// extractEvents collects status-change events from the full document
// text. Events are sorted ascending by timestamp; ties keep encounter
// order so repeated parses of unchanged input are byte-stable.
func extractEvents(text string) []domain.StatusEvent {
	type located struct {
		event  domain.StatusEvent
		offset int
	}

	var found []located
	for _, shape := range eventShapes {
		for _, idx := range shape.re.FindAllStringSubmatchIndex(text, -1) {
			m := make([]string, 0, len(idx)/2)
			for i := 0; i < len(idx); i += 2 {
				if idx[i] < 0 {
					m = append(m, "")
					continue
				}
				m = append(m, text[idx[i]:idx[i+1]])
			}
			ev, ok := shape.build(m)
			if !ok {
				continue
			}
			found = append(found, located{event: ev, offset: idx[0]})
		}
	}

	// Encounter order means document order, regardless of which shape
	// matched first.
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].offset < found[j].offset
	})
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].event.Timestamp.Before(found[j].event.Timestamp)
	})

	events := make([]domain.StatusEvent, 0, len(found))
	for _, l := range found {
		events = append(events, l.event)
	}
	return events
}

// statusLiteral normalizes a declared status for vocabulary lookup while
// preserving the author's literal when it falls outside the vocabulary.
func statusLiteral(raw string) domain.Status {
	normalized := domain.Status(strings.ToLower(strings.TrimSpace(raw)))
	if normalized.Known() {
		return normalized
	}
	return domain.Status(strings.TrimSpace(raw))
}
