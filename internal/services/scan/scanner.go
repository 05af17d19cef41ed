// Package scan enumerates the board root and hands raw task text to the
// parser. It is the only component that touches the filesystem during a
// run; everything downstream is pure.
package scan

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/taskdrift/taskdrift/internal/domain"
)

// Blob is one raw task file: its text, an opaque source ref, the file's
// last-modified time, and the status implied by the directory it was
// found in.
type Blob struct {
	SourceRef    string
	Raw          []byte
	ModTime      time.Time
	LocationHint domain.Status
}

// Result is one enumeration pass over the board root
type Result struct {
	Blobs        []Blob
	ScanFailures int // files that could not be read, skipped
}

// Scanner walks the per-status directories named by the board manifest
type Scanner struct {
	root   string
	logger *slog.Logger
}

// NewScanner creates a scanner rooted at the board directory
func NewScanner(root string, logger *slog.Logger) *Scanner {
	return &Scanner{root: root, logger: logger}
}

// Scan loads the manifest and reads every task file under the column
// directories it names. Per-file read failures are counted and skipped;
// only a manifest failure is returned as an error. Enumeration order is
// sorted so downstream results are deterministic.
func (s *Scanner) Scan() (*Result, error) {
	manifest, err := LoadManifest(s.root)
	if err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(manifest.Columns))
	for status := range manifest.Columns {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	result := &Result{}
	for _, status := range statuses {
		dir := filepath.Join(s.root, manifest.Columns[status])

		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				s.logger.Debug("column directory absent", "status", status, "dir", dir)
				continue
			}
			s.logger.Warn("column directory unreadable",
				"error", &domain.ScanError{Op: "list", SourceRef: dir, Err: err})
			result.ScanFailures++
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			ref, relErr := filepath.Rel(s.root, path)
			if relErr != nil {
				ref = path
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				s.logger.Warn("task file unreadable",
					"error", &domain.ScanError{Op: "read", SourceRef: ref, Err: err})
				result.ScanFailures++
				continue
			}

			var modTime time.Time
			if info, err := entry.Info(); err == nil {
				modTime = info.ModTime()
			}

			result.Blobs = append(result.Blobs, Blob{
				SourceRef:    ref,
				Raw:          raw,
				ModTime:      modTime,
				LocationHint: domain.Status(status),
			})
		}
	}

	s.logger.Debug("scan complete", "blobs", len(result.Blobs), "failures", result.ScanFailures)
	return result, nil
}
