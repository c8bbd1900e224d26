package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable ticker settings.
type Config struct {
	Target         string   `json:"target" yaml:"target"`       // date-time; empty runs a stopwatch
	Segments       []string `json:"segments" yaml:"segments"`   // subset of days, hours, minutes, seconds
	Direction      string   `json:"direction" yaml:"direction"` // "down" | "up"
	IntervalMillis int      `json:"interval_ms" yaml:"interval_ms"`
	FrameMillis    int      `json:"frame_ms" yaml:"frame_ms"`
	LogLevel       string   `json:"log_level" yaml:"log_level"` // "debug" | "info" | "warn" | "error"
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		Segments:       []string{"days", "hours", "minutes", "seconds"},
		Direction:      "down",
		IntervalMillis: 1000,
		FrameMillis:    16,
		LogLevel:       "warn",
	}
}

// GlobalPath returns ~/.config/ticker/config.json.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ticker", "config.json"), nil
}

// projectFiles are looked up in the current working directory, first match
// wins.
var projectFiles = []string{".tickerconfig", ".ticker.yaml", ".ticker.yml"}

// LoadGlobal reads ~/.config/ticker/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads the project config in the current working directory.
// Returns nil (no error) if none exists.
func LoadProject() (*Config, error) {
	path := ProjectPath()
	if path == "" {
		return nil, nil
	}
	return loadFile(path, false)
}

// ProjectPath returns the project config file in the current working
// directory, or "" if there is none.
func ProjectPath() string {
	for _, name := range projectFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadFile reads an explicitly named config file. Unlike the global and
// project lookups, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	cfg, err := loadFile(path, false)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return cfg, nil
}

// loadFile reads and parses a config file at path. Files ending in .yaml or
// .yml are YAML, everything else is JSON.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	apply(&result, global)
	apply(&result, project)
	return result
}

// Override applies every non-empty field of o over c. Used for command-line
// flags.
func (c Config) Override(o Config) Config {
	apply(&c, &o)
	return c
}

func apply(dst, src *Config) {
	if src == nil {
		return
	}
	if src.Target != "" {
		dst.Target = src.Target
	}
	if len(src.Segments) > 0 {
		dst.Segments = src.Segments
	}
	if src.Direction != "" {
		dst.Direction = src.Direction
	}
	if src.IntervalMillis > 0 {
		dst.IntervalMillis = src.IntervalMillis
	}
	if src.FrameMillis > 0 {
		dst.FrameMillis = src.FrameMillis
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}

// Attributes projects the config onto the widget's attribute names.
func (c Config) Attributes() map[string]string {
	return map[string]string{
		"target":    c.Target,
		"segments":  strings.Join(c.Segments, ","),
		"direction": c.Direction,
	}
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
