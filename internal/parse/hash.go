package parse

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"
	"time"

	"github.com/taskdrift/taskdrift/internal/domain"
)

// ContentHash digests the semantically meaningful fields of a record.
// Volatile fields (updatedAt, sourceRef) and pass-through extras are
// excluded so that insignificant rewrites of the source text do not
// register as modifications. Every field is length-prefixed to keep the
// serialization unambiguous.
func ContentHash(r domain.Record) string {
	h := sha256.New()

	writeField := func(s string) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}

	writeField(r.ID)
	writeField(r.StoryID)
	writeField(r.Title)
	writeField(string(r.Status))
	writeField(r.Type)
	writeField(r.Owner)

	if r.CreatedAt != nil {
		writeField(r.CreatedAt.UTC().Format(time.RFC3339))
	} else {
		writeField("")
	}

	related := make([]string, len(r.RelatedIDs))
	copy(related, r.RelatedIDs)
	sort.Strings(related)
	for _, id := range related {
		writeField(id)
	}

	for _, line := range r.Acceptance {
		writeField(line)
	}
	writeField(r.Notes)

	for _, ev := range r.Events {
		writeField(ev.Timestamp.UTC().Format(time.RFC3339))
		writeField(string(ev.From))
		writeField(string(ev.To))
	}

	return hex.EncodeToString(h.Sum(nil))
}
