package storage

import "eventim-monitor/models"

// SnapshotStore persists the most recent snapshot between cycles.
type SnapshotStore interface {
	Load() models.Snapshot
	Save(snapshot models.Snapshot) error
}

// HistoryWriter appends one record per completed monitoring cycle.
type HistoryWriter interface {
	Append(snapshot models.Snapshot) error
	Close() error
}
