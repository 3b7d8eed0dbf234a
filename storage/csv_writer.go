package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"eventim-monitor/models"
)

// CSVWriter appends one snapshot row per cycle to a CSV history file,
// giving the operator a cheap local record of how counts moved over time.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter opens (or creates) the CSV file at the given path in append
// mode and writes the header row if the file is new. Intermediate
// directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("csv: open file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: stat file: %w", err)
	}
	if info.Size() == 0 {
		if err := w.Write([]string{
			"available_standard", "available_premium", "sold", "total", "captured_at",
		}); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("csv: write header: %w", err)
		}
		w.Flush()
	}

	return &CSVWriter{file: f, writer: w}, nil
}

// Append writes one history row for the given snapshot.
func (c *CSVWriter) Append(snap models.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	capturedAt := snap.Timestamp
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	row := []string{
		strconv.Itoa(snap.AvailableStandard),
		strconv.Itoa(snap.AvailablePremium),
		strconv.Itoa(snap.Sold),
		strconv.Itoa(snap.Total()),
		capturedAt.Format(time.RFC3339),
	}
	if err := c.writer.Write(row); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
