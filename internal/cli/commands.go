// Package cli implements the taskdrift command surface: compute-metrics,
// diff-snapshot, and build-board.
package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/taskdrift/taskdrift/internal/board"
	"github.com/taskdrift/taskdrift/internal/config"
	"github.com/taskdrift/taskdrift/internal/domain"
	"github.com/taskdrift/taskdrift/internal/parse"
	"github.com/taskdrift/taskdrift/internal/report"
	"github.com/taskdrift/taskdrift/internal/services/scan"
	"github.com/taskdrift/taskdrift/internal/snapshot"
	"github.com/taskdrift/taskdrift/internal/store"
)

// Exit codes for the command surface
const (
	ExitOK    = 0
	ExitInput = 1 // unrecoverable input error (manifest missing or corrupt)
	ExitValid = 2 // validation failure treated as fatal (strict mode)
)

// ExitError carries the process exit code for a failed command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Dependencies holds the services the commands need
type Dependencies struct {
	Config  *config.Config
	Scanner *scan.Scanner
	Cache   *store.Cache
	Logger  *slog.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Now    func() time.Time
}

// NewDependencies wires the default services for a board root
func NewDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		Config:  cfg,
		Scanner: scan.NewScanner(cfg.BoardRoot, logger),
		Cache:   store.NewCache(cfg.CachePath, logger),
		Logger:  logger,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Now:     time.Now,
	}
}

// Observation is one parsed pass over the board
type Observation struct {
	Records  []domain.Record
	Snapshot domain.Snapshot
	Summary  report.Summary
}

// Observe scans the board once and parses everything it finds. Bad
// records are counted, never fatal; only a manifest failure aborts.
func Observe(deps *Dependencies) (*Observation, error) {
	scanned, err := deps.Scanner.Scan()
	if err != nil {
		return nil, &ExitError{Code: ExitInput, Err: err}
	}

	obs := &Observation{}
	obs.Summary.ScanFailures = scanned.ScanFailures

	for _, blob := range scanned.Blobs {
		res := parse.Parse(blob.Raw, blob.SourceRef)
		if res.Failure != nil {
			deps.Logger.Warn("record skipped", "ref", blob.SourceRef, "reason", res.Failure.Reason)
			obs.Summary.ParseFailed++
			continue
		}

		obs.Summary.Findings = append(obs.Summary.Findings, res.Findings...)
		if f := domain.CheckLocation(*res.Record, blob.LocationHint); f != nil {
			obs.Summary.Findings = append(obs.Summary.Findings, *f)
		}

		obs.Records = append(obs.Records, *res.Record)
		obs.Summary.Parsed++
	}

	obs.Snapshot = snapshot.New(deps.Now(), obs.Records)

	if unresolved := unresolvedLinks(obs.Records); len(unresolved) > 0 {
		if deps.Config.Strict {
			return nil, &ExitError{
				Code: ExitValid,
				Err:  fmt.Errorf("%w: %v", domain.ErrUnresolvedLinks, unresolved),
			}
		}
		deps.Logger.Warn("unresolved cross-references", "ids", unresolved)
	}

	return obs, nil
}

// unresolvedLinks returns related ids that do not resolve to any record
// in the observation, sorted for stable reporting.
func unresolvedLinks(records []domain.Record) []string {
	known := make(map[string]bool, len(records))
	for _, r := range records {
		known[r.ID] = true
	}

	seen := make(map[string]bool)
	var unresolved []string
	for _, r := range records {
		for _, id := range r.RelatedIDs {
			if !known[id] && !seen[id] {
				seen[id] = true
				unresolved = append(unresolved, id)
			}
		}
	}
	sort.Strings(unresolved)
	return unresolved
}

// ComputeMetrics runs the dwell-time engine over the current board and
// emits the metrics report.
func ComputeMetrics(deps *Dependencies) error {
	obs, err := Observe(deps)
	if err != nil {
		return err
	}

	rep := report.Metrics(obs.Records, deps.Now(), obs.Summary)
	return emit(deps.Stdout, rep)
}

// BuildBoard groups the current board into columns and emits the board
// report.
func BuildBoard(deps *Dependencies) error {
	obs, err := Observe(deps)
	if err != nil {
		return err
	}

	columns := board.Build(obs.Records)
	rep := report.Board(columns, deps.Now(), obs.Summary)
	return emit(deps.Stdout, rep)
}

// DiffOptions selects the previous observation for a diff run
type DiffOptions struct {
	Since       string // named reference snapshot
	Full        bool   // forced-empty previous: everything is added
	Interactive bool   // two live observations separated by operator input
	Tag         string // store the current observation under this ref
	HistoryPath string // override for tests; empty uses config
}

// DiffSnapshot compares the current board against a previous
// observation and emits the diff report. The new observation replaces
// the snapshot cache at the end of a successful run.
func DiffSnapshot(deps *Dependencies, opts DiffOptions) error {
	var (
		previous  map[string]domain.Entry
		prevCount int
		mode      report.BaseMode
	)

	switch {
	case opts.Interactive:
		first, err := Observe(deps)
		if err != nil {
			return err
		}
		previous = first.Snapshot.Projection()
		mode = report.BaseSnapshot

		fmt.Fprint(deps.Stdout, "waiting: press Enter when changes are in place... ")
		bufio.NewReader(deps.Stdin).ReadString('\n')

	case opts.Full:
		mode = report.BaseFull

	case opts.Since != "":
		history, err := store.OpenHistory(historyPath(deps, opts), deps.Logger)
		if err != nil {
			return &ExitError{Code: ExitInput, Err: err}
		}
		defer history.Close()

		previous, _, err = history.Load(opts.Since)
		if err != nil {
			return &ExitError{Code: ExitInput, Err: err}
		}
		mode = report.BaseReference

	default:
		entries, _, err := deps.Cache.Load()
		if err != nil && !errors.Is(err, domain.ErrNoSnapshot) {
			return &ExitError{Code: ExitInput, Err: err}
		}
		previous = entries
		mode = report.BaseSnapshot
	}
	prevCount = len(previous)

	obs, err := Observe(deps)
	if err != nil {
		return err
	}
	current := obs.Snapshot.Projection()

	d := snapshot.Diff(previous, current)
	rep := report.Diff(d, mode, prevCount, deps.Now(), obs.Summary)
	if err := emit(deps.Stdout, rep); err != nil {
		return err
	}

	if err := deps.Cache.Save(obs.Snapshot.GeneratedAt, current); err != nil {
		return err
	}

	if opts.Tag != "" {
		history, err := store.OpenHistory(historyPath(deps, opts), deps.Logger)
		if err != nil {
			return err
		}
		defer history.Close()
		if err := history.Save(opts.Tag, obs.Snapshot.GeneratedAt, current); err != nil {
			return err
		}
	}
	return nil
}

func historyPath(deps *Dependencies, opts DiffOptions) string {
	if opts.HistoryPath != "" {
		return opts.HistoryPath
	}
	return deps.Config.HistoryPath
}

func emit(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
