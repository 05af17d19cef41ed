// Package store persists snapshot projections between runs: a YAML
// cache file for the most recent observation and a SQLite history of
// named reference snapshots.
package store

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taskdrift/taskdrift/internal/domain"
)

// cacheDoc is the serialized snapshot projection. Entries are kept as a
// sorted list so the file is byte-stable across runs on unchanged input.
type cacheDoc struct {
	Generated time.Time      `yaml:"generated"`
	Records   []domain.Entry `yaml:"records"`
}

// Cache is the on-disk snapshot cache. Writers replace the whole file
// atomically; concurrent runs against the same path must be serialized
// by the caller.
type Cache struct {
	path   string
	logger *slog.Logger
}

// NewCache creates a cache backed by the given file path
func NewCache(path string, logger *slog.Logger) *Cache {
	return &Cache{path: path, logger: logger}
}

// Load reads the previously persisted projection. An absent cache file
// is not an error: it returns domain.ErrNoSnapshot, which callers treat
// as the everything-is-added case.
func (c *Cache) Load() (map[string]domain.Entry, time.Time, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, domain.ErrNoSnapshot
		}
		return nil, time.Time{}, &domain.StoreError{Op: "load", Err: err}
	}

	var doc cacheDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, time.Time{}, &domain.StoreError{Op: "load", Err: err}
	}

	entries := make(map[string]domain.Entry, len(doc.Records))
	for _, e := range doc.Records {
		entries[e.ID] = e
	}
	c.logger.Debug("snapshot cache loaded", "path", c.path, "records", len(entries))
	return entries, doc.Generated, nil
}

// Save writes the projection with whole-file atomic replace: marshal to
// a temp file in the same directory, then rename over the target.
func (c *Cache) Save(generatedAt time.Time, entries map[string]domain.Entry) error {
	doc := cacheDoc{
		Generated: generatedAt.UTC(),
		Records:   make([]domain.Entry, 0, len(entries)),
	}
	for _, e := range entries {
		doc.Records = append(doc.Records, e)
	}
	sort.Slice(doc.Records, func(i, j int) bool {
		return doc.Records[i].ID < doc.Records[j].ID
	})

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return &domain.StoreError{Op: "save", Err: err}
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.StoreError{Op: "save", Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.yaml")
	if err != nil {
		return &domain.StoreError{Op: "save", Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &domain.StoreError{Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.StoreError{Op: "save", Err: err}
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return &domain.StoreError{Op: "save", Err: err}
	}

	c.logger.Debug("snapshot cache written", "path", c.path, "records", len(entries))
	return nil
}
