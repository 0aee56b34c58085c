package skipcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tagmark/internal/logging"
)

// FileName is the cache file created under the configured directory.
const FileName = "cache.json"

type entry struct {
	Skipped []int `json:"skipped"`
}

// Cache holds skipped row indices per session name and persists them to a
// JSON file.
type Cache struct {
	path     string
	logger   *slog.Logger
	sessions map[string]*entry
}

// Open loads the cache file under dir, creating the directory when missing.
func Open(dir string, logger *slog.Logger) (*Cache, error) {
	logger = logging.NewComponentLogger(logger, "skipcache")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory %q: %w", dir, err)
	}

	c := &Cache{
		path:     filepath.Join(dir, FileName),
		logger:   logger,
		sessions: make(map[string]*entry),
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return c, nil
	}

	if err := json.Unmarshal(data, &c.sessions); err != nil {
		return nil, fmt.Errorf("parse cache file %s: %w", c.path, err)
	}
	for name, session := range c.sessions {
		if session == nil {
			c.sessions[name] = &entry{}
		}
	}

	logger.Debug("loaded skip cache",
		logging.Int("session_count", len(c.sessions)),
		logging.String("path", c.path))
	return c, nil
}

// Path returns the location of the backing file.
func (c *Cache) Path() string { return c.path }

// Sessions returns the known session names in sorted order.
func (c *Cache) Sessions() []string {
	names := make([]string, 0, len(c.sessions))
	for name := range c.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SessionByIndex resolves a numeric selection against the sorted session
// list.
func (c *Cache) SessionByIndex(i int) (string, bool) {
	names := c.Sessions()
	if i < 0 || i >= len(names) {
		return "", false
	}
	return names[i], true
}

// Has reports whether a session name is already known.
func (c *Cache) Has(name string) bool {
	_, ok := c.sessions[name]
	return ok
}

// Skipped returns the recorded skipped indices for a session. Unknown
// sessions yield an empty list.
func (c *Cache) Skipped(name string) []int {
	session, ok := c.sessions[name]
	if !ok {
		return nil
	}
	return append([]int(nil), session.Skipped...)
}

// Count returns the number of skipped indices recorded for a session.
func (c *Cache) Count(name string) int {
	session, ok := c.sessions[name]
	if !ok {
		return 0
	}
	return len(session.Skipped)
}

// SetSkipped replaces the skipped indices for a session and persists the
// cache. Empty session names are rejected.
func (c *Cache) SetSkipped(name string, skipped []int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("session name cannot be empty")
	}

	session, ok := c.sessions[name]
	if !ok {
		session = &entry{}
		c.sessions[name] = session
	}
	session.Skipped = append([]int(nil), skipped...)

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("persisted skipped indices",
		logging.String("session", name),
		logging.Int("skipped", len(session.Skipped)))
	return nil
}

func (c *Cache) save() error {
	data, err := json.Marshal(c.sessions)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}
