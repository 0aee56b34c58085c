package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tagmark/internal/logging"
)

// MetaFileName is written next to the marked destination.
const MetaFileName = "meta.json"

var reservedMetaKeys = map[string]bool{
	"run_id":        true,
	"started_at":    true,
	"saved_at":      true,
	"size":          true,
	"labels":        true,
	"cache_session": true,
}

// writeMeta snapshots the session state after a label was persisted. Prefix
// fields are merged in first so the built-in keys always win.
func (s *Session) writeMeta() error {
	meta := make(map[string]any, len(s.opts.MetaPrefix)+6)
	for key, value := range s.opts.MetaPrefix {
		if reservedMetaKeys[key] {
			s.logger.Debug("metadata prefix key shadowed by a built-in field",
				logging.String("key", key))
			continue
		}
		meta[key] = value
	}
	meta["run_id"] = s.runID
	meta["started_at"] = s.startedAt.UTC().Format("2006-01-02 15:04:05")
	meta["saved_at"] = s.now().UTC().Format(time.RFC3339)
	meta["size"] = s.marked.Len()
	meta["labels"] = s.marked.CountValues(s.opts.LabelColumn)
	meta["cache_session"] = s.opts.SessionName

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	path := filepath.Join(filepath.Dir(s.opts.MarkedPath), MetaFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
