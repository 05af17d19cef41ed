package store

import (
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/taskdrift/taskdrift/internal/domain"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	ref       TEXT PRIMARY KEY,
	generated TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshot_records (
	ref          TEXT NOT NULL,
	id           TEXT NOT NULL,
	source_ref   TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	PRIMARY KEY (ref, id)
);
`

// History keeps named reference snapshots so a later run can diff
// against "the board as it stood at sprint-12" rather than only the
// most recent observation.
type History struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenHistory opens (creating if needed) the history database
func OpenHistory(path string, logger *slog.Logger) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &domain.StoreError{Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.StoreError{Op: "open", Err: err}
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, &domain.StoreError{Op: "open", Err: err}
	}

	return &History{db: db, logger: logger}, nil
}

// Close releases the underlying database
func (h *History) Close() error {
	return h.db.Close()
}

// Save stores a projection under ref, replacing any prior snapshot with
// the same name. Last writer wins.
func (h *History) Save(ref string, generatedAt time.Time, entries map[string]domain.Entry) error {
	tx, err := h.db.Begin()
	if err != nil {
		return &domain.StoreError{Op: "save", Ref: ref, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM snapshot_records WHERE ref = ?`, ref); err != nil {
		return &domain.StoreError{Op: "save", Ref: ref, Err: err}
	}
	if _, err := tx.Exec(
		`INSERT INTO snapshots (ref, generated) VALUES (?, ?)
		 ON CONFLICT(ref) DO UPDATE SET generated = excluded.generated`,
		ref, generatedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return &domain.StoreError{Op: "save", Ref: ref, Err: err}
	}

	for _, e := range entries {
		if _, err := tx.Exec(
			`INSERT INTO snapshot_records (ref, id, source_ref, content_hash) VALUES (?, ?, ?, ?)`,
			ref, e.ID, e.SourceRef, e.ContentHash,
		); err != nil {
			return &domain.StoreError{Op: "save", Ref: ref, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &domain.StoreError{Op: "save", Ref: ref, Err: err}
	}
	h.logger.Debug("reference snapshot saved", "ref", ref, "records", len(entries))
	return nil
}

// Load retrieves the projection stored under ref. An unknown ref
// returns domain.ErrRefNotFound.
func (h *History) Load(ref string) (map[string]domain.Entry, time.Time, error) {
	var generated string
	err := h.db.QueryRow(`SELECT generated FROM snapshots WHERE ref = ?`, ref).Scan(&generated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, domain.ErrRefNotFound
	}
	if err != nil {
		return nil, time.Time{}, &domain.StoreError{Op: "load", Ref: ref, Err: err}
	}

	generatedAt, err := time.Parse(time.RFC3339, generated)
	if err != nil {
		return nil, time.Time{}, &domain.StoreError{Op: "load", Ref: ref, Err: err}
	}

	rows, err := h.db.Query(
		`SELECT id, source_ref, content_hash FROM snapshot_records WHERE ref = ?`, ref)
	if err != nil {
		return nil, time.Time{}, &domain.StoreError{Op: "load", Ref: ref, Err: err}
	}
	defer rows.Close()

	entries := make(map[string]domain.Entry)
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.SourceRef, &e.ContentHash); err != nil {
			return nil, time.Time{}, &domain.StoreError{Op: "load", Ref: ref, Err: err}
		}
		entries[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, &domain.StoreError{Op: "load", Ref: ref, Err: err}
	}

	return entries, generatedAt, nil
}

// Refs lists stored reference names, newest first
func (h *History) Refs() ([]string, error) {
	rows, err := h.db.Query(`SELECT ref FROM snapshots ORDER BY generated DESC, ref`)
	if err != nil {
		return nil, &domain.StoreError{Op: "refs", Err: err}
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, &domain.StoreError{Op: "refs", Err: err}
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
