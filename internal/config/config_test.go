package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagmark/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tagmark.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
[dataset]
unmarked_path = "data.csv"
marked_path = "marked.csv"
id_column = "id"
text_column = "text"
label_column = "label"

[labels]
"0" = "negative"
"1" = "positive"
`

func TestLoadAppliesDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := writeConfig(t, minimalConfig+`
[cache]
enabled = true
dir = "~/.cache/tagmark"
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected existing resolved config, got exists=%v path=%q", exists, resolved)
	}

	if cfg.Controls.Skip != " " || cfg.Controls.Back != "b" || cfg.Controls.More != "" {
		t.Fatalf("unexpected control defaults: %+v", cfg.Controls)
	}
	if cfg.Display.ShowChars != 500 {
		t.Fatalf("unexpected show_chars default: %d", cfg.Display.ShowChars)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Timing.SessionMinutes != 0 || cfg.TimedSessions() {
		t.Fatalf("expected timed sessions disabled by default")
	}

	wantCache := filepath.Join(tempHome, ".cache", "tagmark")
	if cfg.Cache.Dir != wantCache {
		t.Fatalf("unexpected cache dir: got %q want %q", cfg.Cache.Dir, wantCache)
	}
	if !filepath.IsAbs(cfg.Dataset.UnmarkedPath) {
		t.Fatalf("expected absolute unmarked path, got %q", cfg.Dataset.UnmarkedPath)
	}
	if cfg.Labels["1"] != "positive" {
		t.Fatalf("unexpected label map: %v", cfg.Labels)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Cache.Dir); err != nil || !info.IsDir() {
		t.Fatalf("expected cache dir to exist: %v", err)
	}
}

func TestLoadMissingFileUsesDefaultsButFailsValidation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected validation error for config without dataset paths")
	}
	if !strings.Contains(err.Error(), "dataset.unmarked_path") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadNormalizesUnknownLogFormat(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, minimalConfig+`
[logging]
format = "fancy"
level = "DEBUG"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected unknown format to normalize to console, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased level, got %q", cfg.Logging.Level)
	}
}

func TestLoadDedupesShowColumns(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, strings.Replace(minimalConfig,
		`label_column = "label"`,
		"label_column = \"label\"\nshow_columns = [\"title\", \" title \", \"\", \"author\"]", 1))

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []string{"title", "author"}
	if len(cfg.Dataset.ShowColumns) != len(want) {
		t.Fatalf("unexpected show columns: %v", cfg.Dataset.ShowColumns)
	}
	for i, column := range want {
		if cfg.Dataset.ShowColumns[i] != column {
			t.Fatalf("unexpected show columns: %v", cfg.Dataset.ShowColumns)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Labels["0"] != "negative" || cfg.Labels["1"] != "positive" {
		t.Fatalf("unexpected sample labels: %v", cfg.Labels)
	}
}
