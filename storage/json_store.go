package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"eventim-monitor/models"
	"eventim-monitor/utils"
)

// JSONStore persists the latest snapshot to a single JSON file, overwriting
// the previous one each cycle.
type JSONStore struct {
	path   string
	logger *utils.Logger
}

// NewJSONStore creates a JSONStore backed by the file at path.
func NewJSONStore(path string, logger *utils.Logger) *JSONStore {
	return &JSONStore{path: path, logger: logger}
}

// Load reads the persisted snapshot. A missing or unreadable file is not an
// error for the caller: the monitor falls back to a zero-valued snapshot and
// treats every seat as newly observed.
func (s *JSONStore) Load() models.Snapshot {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("[store] No previous data file found, using defaults")
		return models.Snapshot{}
	}
	if err != nil {
		s.logger.Error("[store] Failed to read %s: %v", s.path, err)
		return models.Snapshot{}
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Error("[store] Failed to parse %s: %v", s.path, err)
		return models.Snapshot{}
	}

	s.logger.Info("[store] Loaded previous data — standard: %d, premium: %d, sold: %d",
		snap.AvailableStandard, snap.AvailablePremium, snap.Sold)
	return snap
}

// Save stamps the snapshot with the capture time and writes it to disk,
// replacing any previously persisted state.
func (s *JSONStore) Save(snap models.Snapshot) error {
	now := time.Now()
	snap.Timestamp = now
	snap.LastCheck = now.Format("2006-01-02 15:04:05")

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("store: create data dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("store: write %s: %w", s.path, err)
	}

	s.logger.Info("[store] Saved current data — standard: %d, premium: %d, sold: %d",
		snap.AvailableStandard, snap.AvailablePremium, snap.Sold)
	return nil
}
