package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDatasetColumns()
	c.normalizeDisplay()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Dataset.UnmarkedPath = strings.TrimSpace(c.Dataset.UnmarkedPath); c.Dataset.UnmarkedPath != "" {
		if c.Dataset.UnmarkedPath, err = expandPath(c.Dataset.UnmarkedPath); err != nil {
			return fmt.Errorf("dataset.unmarked_path: %w", err)
		}
	}
	if c.Dataset.MarkedPath = strings.TrimSpace(c.Dataset.MarkedPath); c.Dataset.MarkedPath != "" {
		if c.Dataset.MarkedPath, err = expandPath(c.Dataset.MarkedPath); err != nil {
			return fmt.Errorf("dataset.marked_path: %w", err)
		}
	}
	if strings.TrimSpace(c.Cache.Dir) == "" {
		c.Cache.Dir = defaultCacheDir
	}
	if c.Cache.Dir, err = expandPath(c.Cache.Dir); err != nil {
		return fmt.Errorf("cache.dir: %w", err)
	}
	if c.Logging.FilePath = strings.TrimSpace(c.Logging.FilePath); c.Logging.FilePath != "" {
		if c.Logging.FilePath, err = expandPath(c.Logging.FilePath); err != nil {
			return fmt.Errorf("logging.file_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeDatasetColumns() {
	c.Dataset.IDColumn = strings.TrimSpace(c.Dataset.IDColumn)
	c.Dataset.TextColumn = strings.TrimSpace(c.Dataset.TextColumn)
	c.Dataset.LabelColumn = strings.TrimSpace(c.Dataset.LabelColumn)
	c.Dataset.SelectLabel = strings.TrimSpace(c.Dataset.SelectLabel)
	c.Cache.Session = strings.TrimSpace(c.Cache.Session)

	columns := make([]string, 0, len(c.Dataset.ShowColumns))
	seen := make(map[string]struct{}, len(c.Dataset.ShowColumns))
	for _, column := range c.Dataset.ShowColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		columns = append(columns, trimmed)
	}
	c.Dataset.ShowColumns = columns
}

func (c *Config) normalizeDisplay() {
	if c.Display.ShowChars <= 0 {
		c.Display.ShowChars = defaultShowChars
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
