package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventim-monitor/config"
	"eventim-monitor/models"
	"eventim-monitor/services"
	"eventim-monitor/storage"
	"eventim-monitor/utils"
)

type fakeFetcher struct {
	snap  models.Snapshot
	err   error
	panic bool
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context) (models.Snapshot, error) {
	f.calls++
	if f.panic {
		panic("automation engine blew up")
	}
	if f.err != nil {
		return models.Snapshot{}, f.err
	}
	return f.snap, nil
}

type fakeStore struct {
	previous models.Snapshot
	saved    []models.Snapshot
	saveErr  error
}

func (s *fakeStore) Load() models.Snapshot { return s.previous }

func (s *fakeStore) Save(snap models.Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, snap)
	return nil
}

type fakeHistory struct {
	rows []models.Snapshot
	err  error
}

func (h *fakeHistory) Append(snap models.Snapshot) error {
	if h.err != nil {
		return h.err
	}
	h.rows = append(h.rows, snap)
	return nil
}

func (h *fakeHistory) Close() error { return nil }

func testMonitor(fetcher Fetcher, store storage.SnapshotStore, history ...storage.HistoryWriter) *Monitor {
	cfg := &config.Config{
		EventURL:      "https://example.com/event",
		CheckInterval: 10 * time.Millisecond,
	}
	logger := utils.NewLogger()
	return New(cfg, logger, fetcher, store, services.NewReporter(logger), NewMetrics(), history)
}

func TestCyclePersistsCurrentSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{snap: models.Snapshot{AvailableStandard: 3, AvailablePremium: 2, Sold: 12}}
	store := &fakeStore{previous: models.Snapshot{AvailableStandard: 5, AvailablePremium: 2, Sold: 10}}
	history := &fakeHistory{}

	m := testMonitor(fetcher, store, history)
	m.runCycle(context.Background())

	if len(store.saved) != 1 {
		t.Fatalf("store saves: got %d, want 1", len(store.saved))
	}
	if store.saved[0].Sold != 12 {
		t.Errorf("saved snapshot: got %+v, want current counts", store.saved[0])
	}
	if len(history.rows) != 1 {
		t.Errorf("history appends: got %d, want 1", len(history.rows))
	}
}

func TestCycleFetchErrorSavesZeroSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("navigation timeout")}
	store := &fakeStore{previous: models.Snapshot{AvailableStandard: 5}}

	m := testMonitor(fetcher, store)
	m.runCycle(context.Background())

	if len(store.saved) != 1 {
		t.Fatalf("store saves: got %d, want 1", len(store.saved))
	}
	if store.saved[0].Total() != 0 {
		t.Errorf("a failed fetch must persist zero counts, got %+v", store.saved[0])
	}
}

func TestCycleRecoversFromPanic(t *testing.T) {
	fetcher := &fakeFetcher{panic: true}
	store := &fakeStore{}

	m := testMonitor(fetcher, store)
	m.runCycle(context.Background()) // must not propagate
}

func TestCycleSurvivesPersistFailures(t *testing.T) {
	fetcher := &fakeFetcher{snap: models.Snapshot{Sold: 1}}
	store := &fakeStore{saveErr: errors.New("disk full")}
	history := &fakeHistory{err: errors.New("db gone")}

	m := testMonitor(fetcher, store, history)
	m.runCycle(context.Background()) // must not propagate
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	fetcher := &fakeFetcher{}
	m := testMonitor(fetcher, &fakeStore{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return on cancelled context")
	}
	if fetcher.calls != 0 {
		t.Errorf("no cycle should run after cancellation, got %d", fetcher.calls)
	}
}

func TestRunContinuesAcrossCycles(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("always failing")}
	m := testMonitor(fetcher, &fakeStore{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if fetcher.calls < 2 {
		t.Errorf("loop should keep cycling despite fetch errors, got %d calls", fetcher.calls)
	}
}
