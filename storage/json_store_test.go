package storage

import (
	"os"
	"path/filepath"
	"testing"

	"eventim-monitor/models"
	"eventim-monitor/utils"
)

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "seat_data.json"), utils.NewLogger())

	snap := store.Load()
	if snap.AvailableStandard != 0 || snap.AvailablePremium != 0 || snap.Sold != 0 {
		t.Errorf("missing file should load as zero snapshot, got %+v", snap)
	}
}

func TestJSONStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seat_data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path, utils.NewLogger())
	snap := store.Load()
	if snap.Total() != 0 {
		t.Errorf("corrupt file should load as zero snapshot, got %+v", snap)
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seat_data.json")
	store := NewJSONStore(path, utils.NewLogger())

	in := models.Snapshot{AvailableStandard: 3, AvailablePremium: 1, Sold: 7}
	if err := store.Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out := store.Load()
	if out.AvailableStandard != 3 || out.AvailablePremium != 1 || out.Sold != 7 {
		t.Errorf("round trip counts: got %+v, want {3 1 7}", out)
	}
	if out.Timestamp.IsZero() {
		t.Error("Save should stamp a capture timestamp")
	}
	if out.LastCheck == "" {
		t.Error("Save should stamp a human-readable last_check")
	}
}

func TestJSONStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seat_data.json")
	store := NewJSONStore(path, utils.NewLogger())

	if err := store.Save(models.Snapshot{AvailableStandard: 9}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := store.Save(models.Snapshot{Sold: 4}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	out := store.Load()
	if out.AvailableStandard != 0 || out.Sold != 4 {
		t.Errorf("second save should fully replace the first, got %+v", out)
	}
}

func TestJSONStoreSaveCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "seat_data.json")
	store := NewJSONStore(path, utils.NewLogger())

	if err := store.Save(models.Snapshot{Sold: 1}); err != nil {
		t.Fatalf("Save into missing dir failed: %v", err)
	}
	if store.Load().Sold != 1 {
		t.Error("snapshot not readable after save into nested dir")
	}
}
