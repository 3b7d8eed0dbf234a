package eventim

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"eventim-monitor/config"
	"eventim-monitor/models"
	"eventim-monitor/services"
	"eventim-monitor/utils"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// chartSelectors are probed in priority order to confirm the seating chart
// rendered. The first one present within the bounded wait wins; none
// matching is a warning, not a failure.
var chartSelectors = []string{
	"svg",
	"[class*='seat']",
	"[class*='chart']",
	".seatmap",
	"[data-testid*='seat']",
}

// seatSelectors are probed in priority order, most specific first. The first
// selector returning a non-empty result set supplies the seat markers and
// probing stops.
var seatSelectors = []string{
	"svg g[class*='seat']",
	"svg circle[class*='seat']",
	"svg rect[class*='seat']",
	"[class*='seat']",
	"svg [fill]",
	"svg [class*='available']",
	"svg [class*='sold']",
}

// Scraper drives a headless browser against the configured event page and
// turns the rendered seat markers into a classified snapshot.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger

	// collect is the browser-facing step, replaceable in tests.
	collect func(ctx context.Context) ([]models.SeatMarker, bool, error)
}

// New creates a ready-to-use Eventim Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	s := &Scraper{cfg: cfg, logger: logger}
	s.collect = s.collectMarkers
	return s
}

// Fetch loads the event page and returns the classified seat counts. Any
// failure is logged and degraded to a zero-count snapshot alongside the
// error; the monitor loop must never crash because of a fetch.
func (s *Scraper) Fetch(ctx context.Context) (models.Snapshot, error) {
	markers, chartFound, err := s.collect(ctx)
	if err != nil {
		s.logger.Error("[eventim] Error fetching seat data: %v", err)
		return models.Snapshot{}, err
	}

	if !chartFound {
		s.logger.Warn("[eventim] Could not find seating chart, trying to extract any available data")
	}
	if len(markers) == 0 {
		s.logger.Warn("[eventim] No seats found — page may not contain the chart or selectors need adjustment")
	}

	snap := services.CountMarkers(markers)
	s.logger.Info("[eventim] Seat data extracted — standard: %d, premium: %d, sold: %d (markers: %d)",
		snap.AvailableStandard, snap.AvailablePremium, snap.Sold, len(markers))
	return snap, nil
}

// collectMarkers launches the browser, navigates to the event page, and runs
// both selector cascades.
func (s *Scraper) collectMarkers(ctx context.Context) ([]models.SeatMarker, bool, error) {
	chromeBin := findChromeBinary(s.cfg.ChromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	s.logger.Info("[eventim] Loading page: %s", s.cfg.EventURL)

	navCtx, cancelNav := context.WithTimeout(browserCtx, s.cfg.NavTimeout)
	defer cancelNav()

	if err := chromedp.Run(navCtx,
		chromedp.Navigate(s.cfg.EventURL),
		// Let dynamic chart rendering settle before probing.
		chromedp.Sleep(5*time.Second),
	); err != nil {
		return nil, false, fmt.Errorf("navigate %s: %w", s.cfg.EventURL, err)
	}

	chartFound := s.probeChart(browserCtx)
	markers := s.probeSeats(browserCtx)

	return markers, chartFound, nil
}

// probeChart tries each chart-presence selector with a bounded wait and
// reports whether any matched.
func (s *Scraper) probeChart(ctx context.Context) bool {
	for _, sel := range chartSelectors {
		waitCtx, cancel := context.WithTimeout(ctx, s.cfg.SelectorTimeout)
		err := chromedp.Run(waitCtx, chromedp.WaitReady(sel, chromedp.ByQuery))
		cancel()

		if err == nil {
			s.logger.Info("[eventim] Found seating chart with selector: %s", sel)
			return true
		}
	}
	return false
}

// probeSeats tries each seat selector in order and returns the attribute
// sets of the first non-empty result. Per-selector errors are logged and
// skipped; they are part of normal probing against an unknown DOM.
func (s *Scraper) probeSeats(ctx context.Context) []models.SeatMarker {
	for _, sel := range seatSelectors {
		markers, err := s.queryMarkers(ctx, sel)
		if err != nil {
			s.logger.Debug("[eventim] Selector %q failed: %v", sel, err)
			continue
		}
		if len(markers) > 0 {
			s.logger.Info("[eventim] Found %d elements with selector: %s", len(markers), sel)
			return markers
		}
	}
	return nil
}

// queryMarkers reads the fill and class attributes of every element matching
// the selector in a single in-page evaluation.
func (s *Scraper) queryMarkers(ctx context.Context, sel string) ([]models.SeatMarker, error) {
	type attrPair struct {
		Fill  string `json:"fill"`
		Class string `json:"class"`
	}
	var pairs []attrPair

	evalCtx, cancel := context.WithTimeout(ctx, s.cfg.SelectorTimeout)
	defer cancel()

	err := chromedp.Run(evalCtx, chromedp.Evaluate(fmt.Sprintf(`
		(function() {
			var out = [];
			var nodes = document.querySelectorAll(%q);
			for (var i = 0; i < nodes.length; i++) {
				out.push({
					fill:  nodes[i].getAttribute('fill')  || '',
					class: nodes[i].getAttribute('class') || ''
				});
			}
			return out;
		})()
	`, sel), &pairs))
	if err != nil {
		return nil, err
	}

	markers := make([]models.SeatMarker, 0, len(pairs))
	for _, p := range pairs {
		markers = append(markers, models.SeatMarker{Fill: p.Fill, Class: p.Class})
	}
	return markers, nil
}

// findChromeBinary locates the Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
