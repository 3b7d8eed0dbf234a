package monitor

import (
	"context"
	"time"

	"eventim-monitor/config"
	"eventim-monitor/models"
	"eventim-monitor/services"
	"eventim-monitor/storage"
	"eventim-monitor/utils"
)

// Fetcher produces the current seat snapshot. Implementations degrade every
// failure to a zero-count snapshot and return the cause for logging; they
// never panic the caller.
type Fetcher interface {
	Fetch(ctx context.Context) (models.Snapshot, error)
}

// Monitor runs the fetch → report → diff → persist cycle on a fixed
// interval until the context is cancelled.
type Monitor struct {
	cfg      *config.Config
	logger   *utils.Logger
	fetcher  Fetcher
	store    storage.SnapshotStore
	reporter *services.Reporter
	metrics  *Metrics
	history  []storage.HistoryWriter
}

// New creates a Monitor wired to the given collaborators. history writers
// are optional best-effort sinks.
func New(cfg *config.Config, logger *utils.Logger, fetcher Fetcher, store storage.SnapshotStore,
	reporter *services.Reporter, metrics *Metrics, history []storage.HistoryWriter) *Monitor {
	return &Monitor{
		cfg:      cfg,
		logger:   logger,
		fetcher:  fetcher,
		store:    store,
		reporter: reporter,
		metrics:  metrics,
		history:  history,
	}
}

// Run executes cycles forever. The only exit path is context cancellation,
// checked at the top of each cycle and during the inter-cycle wait; a
// failing cycle never terminates the loop.
func (m *Monitor) Run(ctx context.Context) {
	m.logger.Info("[monitor] Starting Eventim seat monitor")
	m.logger.Info("[monitor] Monitoring URL: %s", m.cfg.EventURL)
	m.logger.Info("[monitor] Check interval: %s", m.cfg.CheckInterval)

	for {
		if ctx.Err() != nil {
			m.logger.Info("[monitor] Monitoring stopped by operator")
			return
		}

		m.runCycle(ctx)

		m.logger.Info("[monitor] Waiting %s before next check", m.cfg.CheckInterval)
		select {
		case <-ctx.Done():
			m.logger.Info("[monitor] Monitoring stopped by operator")
			return
		case <-time.After(m.cfg.CheckInterval):
		}
	}
}

// runCycle performs one full fetch → load → report → diff → save pass. Every
// step failure is logged and swallowed here so the loop always reaches the
// next wait.
func (m *Monitor) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("[monitor] Cycle panicked: %v — continuing", r)
			m.metrics.IncCycleError()
		}
	}()

	start := time.Now()
	m.logger.Info("[monitor] Checking seat availability")

	current, err := m.fetcher.Fetch(ctx)
	if err != nil {
		// Already logged by the fetcher; the zero snapshot still flows
		// through the rest of the cycle.
		m.metrics.IncFetchError()
	}

	previous := m.store.Load()

	m.reporter.PrintSummary(current)
	m.reporter.Notify(services.Diff(current, previous))

	if err := m.store.Save(current); err != nil {
		m.logger.Error("[monitor] Error saving current data: %v", err)
		m.metrics.IncPersistError()
	}

	for _, h := range m.history {
		if err := h.Append(current); err != nil {
			m.logger.Error("[monitor] History append failed: %v", err)
			m.metrics.IncPersistError()
		}
	}

	m.metrics.ObserveCycle(current, time.Since(start))
}
