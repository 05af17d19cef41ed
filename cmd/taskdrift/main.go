// Package main provides the taskdrift command line entry point.
//
// taskdrift reads a directory of hand-authored task files, reconciles
// their status histories, and reports dwell-time metrics, a board
// layout, and content-hash diffs between observations.
//
// Usage:
//
//	taskdrift [-root dir] [-strict] compute-metrics
//	taskdrift [-root dir] [-strict] diff-snapshot [--since ref] [--full] [--interactive] [--tag ref]
//	taskdrift [-root dir] [-strict] build-board
//	taskdrift [-root dir] board
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdrift/taskdrift/internal/app"
	"github.com/taskdrift/taskdrift/internal/cli"
	"github.com/taskdrift/taskdrift/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	global := flag.NewFlagSet("taskdrift", flag.ExitOnError)
	root := global.String("root", ".", "board root directory")
	strict := global.Bool("strict", false, "treat unresolved cross-references as fatal")
	logLevel := global.String("log", "", "log level (debug, info, warn, error)")
	global.Parse(args)

	if global.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: taskdrift [flags] <compute-metrics|diff-snapshot|build-board|board>")
		return cli.ExitInput
	}

	cfg, err := config.Load(*root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return cli.ExitInput
	}
	if *strict {
		cfg.Strict = true
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger := newLogger(cfg.Log.Level)
	deps := cli.NewDependencies(cfg, logger)

	command := global.Arg(0)
	rest := global.Args()[1:]

	switch command {
	case "compute-metrics":
		err = cli.ComputeMetrics(deps)

	case "build-board":
		err = cli.BuildBoard(deps)

	case "diff-snapshot":
		fs := flag.NewFlagSet("diff-snapshot", flag.ExitOnError)
		since := fs.String("since", "", "diff against a named reference snapshot")
		full := fs.Bool("full", false, "force-empty previous: list everything as added")
		interactive := fs.Bool("interactive", false, "scan, wait for operator input, rescan, diff")
		tag := fs.String("tag", "", "store the current observation under this reference name")
		fs.Parse(rest)

		err = cli.DiffSnapshot(deps, cli.DiffOptions{
			Since:       *since,
			Full:        *full,
			Interactive: *interactive,
			Tag:         *tag,
		})

	case "board":
		model := app.New(deps)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		return cli.ExitInput
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return cli.ExitInput
	}
	return cli.ExitOK
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
