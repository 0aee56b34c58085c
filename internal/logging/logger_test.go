package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagmark/internal/logging"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "session")
	logger.Info("row labeled", logging.String("label", "pos"), logging.Int("queue", 3))

	line := buf.String()
	if !strings.Contains(line, "INFO session: row labeled") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "label=pos") || !strings.Contains(line, "queue=3") {
		t.Fatalf("expected attrs in line: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("loaded", logging.String("path", "my data.csv"))
	if !strings.Contains(buf.String(), `path="my data.csv"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestJSONHandlerEmitsLowercaseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept", logging.Int("skipped", 2))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("parse json line: %v (%q)", err, buf.String())
	}
	if record["level"] != "warn" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if record["msg"] != "kept" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewAppendsToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "tagmark.log")

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf, FilePath: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected message in file, got %q", string(data))
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("ignored", logging.Error(nil))
	if logger.Enabled(context.Background(), 0) {
		t.Fatal("nop logger should report disabled")
	}
}
