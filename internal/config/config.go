package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Dataset names the tabular sources and the columns the session reads.
type Dataset struct {
	UnmarkedPath string   `toml:"unmarked_path"`
	MarkedPath   string   `toml:"marked_path"`
	IDColumn     string   `toml:"id_column"`
	TextColumn   string   `toml:"text_column"`
	LabelColumn  string   `toml:"label_column"`
	ShowColumns  []string `toml:"show_columns"`
	SelectLabel  string   `toml:"select_label"`
}

// Controls maps operator keystrokes to the three non-label actions.
// More defaults to the empty string, i.e. a bare Enter.
type Controls struct {
	Skip string `toml:"skip"`
	Back string `toml:"back"`
	More string `toml:"more"`
}

// Display contains presentation settings for the labeling prompt.
type Display struct {
	ShowChars int `toml:"show_chars"`
}

// Metadata contains configuration for the meta.json snapshot written next to
// the marked destination after every label.
type Metadata struct {
	Enabled bool           `toml:"enabled"`
	Prefix  map[string]any `toml:"prefix"`
}

// Cache contains configuration for persisting skipped row indices between
// runs. Session preselects a cache session name, bypassing the startup prompt.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	Session string `toml:"session"`
}

// Timing contains the paired labeling/break interval lengths in minutes.
// Zero values disable timed sessions.
type Timing struct {
	SessionMinutes int `toml:"session_minutes"`
	BreakMinutes   int `toml:"break_minutes"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level    string `toml:"level"`
	Format   string `toml:"format"`
	FilePath string `toml:"file_path"`
}

// Config encapsulates all configuration values for tagmark.
//
// Sections:
//   - Dataset: source/destination tables and column names
//   - Labels: keystroke to output value map
//   - Controls: skip/back/show-more keystrokes
//   - Display: character reveal budget
//   - Metadata: snapshot toggle and operator-supplied prefix fields
//   - Cache: skip persistence across sessions
//   - Timing: timed labeling/break intervals
//   - Logging: log level, format, and optional file
type Config struct {
	Dataset  Dataset           `toml:"dataset"`
	Labels   map[string]string `toml:"labels"`
	Controls Controls          `toml:"controls"`
	Display  Display           `toml:"display"`
	Metadata Metadata          `toml:"metadata"`
	Cache    Cache             `toml:"cache"`
	Timing   Timing            `toml:"timing"`
	Logging  Logging           `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tagmark/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tagmark.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a labeling run writes into: the
// marked destination's parent and, when caching is enabled, the cache dir.
func (c *Config) EnsureDirectories() error {
	if dir := filepath.Dir(c.Dataset.MarkedPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Dir) != "" {
		if err := os.MkdirAll(c.Cache.Dir, 0o755); err != nil {
			return fmt.Errorf("create cache directory %q: %w", c.Cache.Dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// TimedSessions reports whether labeling/break intervals are configured.
func (c *Config) TimedSessions() bool {
	return c.Timing.SessionMinutes > 0 || c.Timing.BreakMinutes > 0
}
