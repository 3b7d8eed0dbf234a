package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventim-monitor/config"
	"eventim-monitor/monitor"
	"eventim-monitor/scraper/eventim"
	"eventim-monitor/services"
	"eventim-monitor/storage"
	"eventim-monitor/utils"
)

func main() {
	cfg := config.Load()

	logger, err := utils.NewFileLogger(cfg.LogFile)
	if err != nil {
		logger = utils.NewLogger()
		logger.Warn("Log file unavailable (%v) — console only", err)
	}
	defer logger.Close()

	logger.Info("=== Eventim Seat Monitor starting ===")
	logger.Info("Config — url: %s | interval: %s | data file: %s | log file: %s",
		cfg.EventURL, cfg.CheckInterval, cfg.DataFile, cfg.LogFile)

	store := storage.NewJSONStore(cfg.DataFile, logger)

	var history []storage.HistoryWriter
	if cfg.HistoryCSVPath != "" {
		csvWriter, err := storage.NewCSVWriter(cfg.HistoryCSVPath)
		if err != nil {
			logger.Error("Failed to create CSV history writer: %v — continuing without it", err)
		} else {
			defer csvWriter.Close()
			history = append(history, csvWriter)
		}
	}
	if cfg.HistoryDBEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v — continuing without DB history", err)
		} else {
			defer pgWriter.Close()
			history = append(history, pgWriter)
		}
	}

	metrics := monitor.NewMetrics()
	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed: %v", err)
			}
		}()
		logger.Info("Metrics server enabled on %s", cfg.MetricsAddr)
	}

	fetcher := eventim.New(cfg, logger)
	reporter := services.NewReporter(logger)
	m := monitor.New(cfg, logger, fetcher, store, reporter, metrics, history)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m.Run(ctx)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown failed: %v", err)
		}
		cancel()
	}

	fmt.Println("\n👋 Seat monitoring stopped. Goodbye!")
}
