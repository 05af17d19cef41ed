package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrEmptyRecord     = errors.New("empty record")
	ErrNoSnapshot      = errors.New("no previous snapshot")
	ErrRefNotFound     = errors.New("reference not found")
	ErrUnresolvedLinks = errors.New("unresolved cross-references")
)

// ParseFailure represents a record that could not be parsed. It is a
// value, not a panic: callers count it and move on.
type ParseFailure struct {
	SourceRef string
	Reason    string
	Err       error
}

func (e *ParseFailure) Error() string {
	if e.SourceRef != "" {
		return fmt.Sprintf("parse [%s]: %s", e.SourceRef, e.Reason)
	}
	return fmt.Sprintf("parse: %s", e.Reason)
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}

// ManifestError represents a fatal failure to load the board manifest.
// Unlike per-record failures, this aborts the whole run.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest [%s]: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// ScanError represents a failure reading one record's backing text
type ScanError struct {
	Op        string
	SourceRef string
	Err       error
}

func (e *ScanError) Error() string {
	if e.SourceRef != "" {
		return fmt.Sprintf("scan %s [%s]: %v", e.Op, e.SourceRef, e.Err)
	}
	return fmt.Sprintf("scan %s: %v", e.Op, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// StoreError represents a failure in the snapshot cache or history store
type StoreError struct {
	Op  string
	Ref string
	Err error
}

func (e *StoreError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("store %s [%s]: %v", e.Op, e.Ref, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
