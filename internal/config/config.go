// Package config loads taskdrift settings from the board root.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the optional per-board settings file
const FileName = ".taskdrift.json"

// Config represents the full taskdrift configuration
type Config struct {
	BoardRoot   string      `json:"boardRoot"`
	CachePath   string      `json:"cachePath"`
	HistoryPath string      `json:"historyPath"`
	Strict      bool        `json:"strict"`
	Log         LogConfig   `json:"log"`
	Board       BoardConfig `json:"board"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `json:"level"` // debug, info, warn, error
}

// BoardConfig contains board rendering settings
type BoardConfig struct {
	ShowDwell   bool `json:"showDwell"`
	HideUnknown bool `json:"hideUnknown"`
	ColumnsWide int  `json:"columnsWide"`
}

// DefaultConfig returns a Config with sensible defaults, rooted at the
// given board directory.
func DefaultConfig(root string) *Config {
	return &Config{
		BoardRoot:   root,
		CachePath:   filepath.Join(root, ".taskdrift", "snapshot.yaml"),
		HistoryPath: filepath.Join(root, ".taskdrift", "history.db"),
		Strict:      false,
		Log: LogConfig{
			Level: "info",
		},
		Board: BoardConfig{
			ShowDwell:   true,
			HideUnknown: false,
			ColumnsWide: 6,
		},
	}
}

// Load reads the board-local settings file, merged over defaults.
// An absent file is not an error: defaults apply.
func Load(root string) (*Config, error) {
	cfg := DefaultConfig(root)

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var overrides Config
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Merge file values over defaults. Relative paths in the file
	// resolve against the board root.
	if overrides.CachePath != "" {
		cfg.CachePath = resolve(root, overrides.CachePath)
	}
	if overrides.HistoryPath != "" {
		cfg.HistoryPath = resolve(root, overrides.HistoryPath)
	}
	cfg.Strict = overrides.Strict
	if overrides.Log.Level != "" {
		cfg.Log.Level = overrides.Log.Level
	}
	if overrides.Board.ColumnsWide != 0 {
		cfg.Board = overrides.Board
	}
	return cfg, nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Save writes the configuration to the board root
func Save(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfg.BoardRoot, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
