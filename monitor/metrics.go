package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"eventim-monitor/models"
)

// Metrics bundles Prometheus collectors for the monitor loop.
type Metrics struct {
	Registry           *prometheus.Registry
	CyclesTotal        prometheus.Counter
	FetchErrorsTotal   prometheus.Counter
	PersistErrorsTotal prometheus.Counter
	CycleErrorsTotal   prometheus.Counter
	CycleDuration      prometheus.Histogram
	SeatCount          *prometheus.GaugeVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	cycles := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "monitor_cycles_total",
		Help: "Total monitoring cycles completed.",
	})
	fetchErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "monitor_fetch_errors_total",
		Help: "Total fetches degraded to a zero snapshot.",
	})
	persistErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "monitor_persist_errors_total",
		Help: "Total snapshot save or history append failures.",
	})
	cycleErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "monitor_cycle_errors_total",
		Help: "Total cycles abandoned by a recovered panic.",
	})
	cycleDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "monitor_cycle_duration_seconds",
		Help:    "Wall-clock duration of one monitoring cycle.",
		Buckets: prometheus.DefBuckets,
	})
	seatCount := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "monitor_seat_count",
		Help: "Latest seat count per availability category.",
	}, []string{"category"})

	registry.MustRegister(cycles, fetchErrors, persistErrors, cycleErrors, cycleDuration, seatCount)

	return &Metrics{
		Registry:           registry,
		CyclesTotal:        cycles,
		FetchErrorsTotal:   fetchErrors,
		PersistErrorsTotal: persistErrors,
		CycleErrorsTotal:   cycleErrors,
		CycleDuration:      cycleDuration,
		SeatCount:          seatCount,
	}
}

// ObserveCycle records the outcome of one completed cycle.
func (m *Metrics) ObserveCycle(snap models.Snapshot, d time.Duration) {
	if m == nil {
		return
	}
	m.CyclesTotal.Inc()
	m.CycleDuration.Observe(d.Seconds())
	for _, cat := range models.Categories {
		m.SeatCount.WithLabelValues(string(cat)).Set(float64(snap.Count(cat)))
	}
}

// IncFetchError increments the degraded-fetch counter.
func (m *Metrics) IncFetchError() {
	if m == nil {
		return
	}
	m.FetchErrorsTotal.Inc()
}

// IncPersistError increments the persistence-failure counter.
func (m *Metrics) IncPersistError() {
	if m == nil {
		return
	}
	m.PersistErrorsTotal.Inc()
}

// IncCycleError increments the abandoned-cycle counter.
func (m *Metrics) IncCycleError() {
	if m == nil {
		return
	}
	m.CycleErrorsTotal.Inc()
}
