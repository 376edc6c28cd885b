package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"DCSentinel/internal/analyzer"
	"DCSentinel/internal/backtest"
	"DCSentinel/internal/collector"
	"DCSentinel/internal/config"
	"DCSentinel/internal/dc"
	"DCSentinel/internal/logging"
	"DCSentinel/internal/model"
	"DCSentinel/internal/runstate"
	"DCSentinel/internal/scheduler"
	"DCSentinel/internal/store"
)

func main() {
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	logger.Infof("DCSentinel starting")

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewBarsAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	logger.Infof("data source: %s", fetcher.Name())

	// Init bar cache
	var st store.Store
	if cfg.Cache.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Cache.SQLitePath, logger)
		if err != nil {
			logger.Warnf("init sqlite cache failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	col := collector.New(fetcher, st, cfg.DataSource.MinValidRows, logger)

	states, err := runstate.NewManager(cfg.Output.StateFile)
	if err != nil {
		log.Fatalf("init run state: %v", err)
	}

	run := func() error { return runAll(cfg, col, states, logger) }

	if cfg.Schedule.WatchCron != "" {
		sched := scheduler.NewScheduler(run, logger)
		if err := sched.Register(cfg.Schedule.WatchCron); err != nil {
			log.Fatalf("register watch schedule: %v", err)
		}
		sched.Start()
		defer sched.Stop()
		go sched.RunNow()

		logger.Infof("watch mode active (%s), press Ctrl+C to stop", cfg.Schedule.WatchCron)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Infof("shutdown signal received, stopping")
		return
	}

	if err := run(); err != nil {
		logger.Errorf("analysis failed: %v", err)
		os.Exit(1)
	}
	logger.Infof("DCSentinel finished")
}

// runAll executes the full analysis pipeline for every configured symbol.
// A failure for one symbol does not abort the others.
func runAll(cfg *config.Config, col *collector.Collector, states *runstate.Manager, logger *logrus.Logger) error {
	start, end, err := cfg.DateRange()
	if err != nil {
		return err
	}

	runID := runstate.NewRunID()
	var firstErr error
	for _, symbol := range cfg.Symbols {
		if err := runSymbol(cfg, col, states, logger, runID, symbol, start, end); err != nil {
			logger.Errorf("analysis for %s failed: %v", symbol, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func runSymbol(cfg *config.Config, col *collector.Collector, states *runstate.Manager,
	logger *logrus.Logger, runID, symbol string, start, end time.Time) error {

	series, valid, err := col.Collect(symbol, start, end, cfg.DC.PriceColumn)
	if err != nil {
		return err
	}
	if !valid {
		logger.Warnf("skipping %s: not enough data for a reliable analysis", symbol)
		return nil
	}

	annotated, err := dc.Detect(series, cfg.DC.Threshold, logger)
	if err != nil {
		return err
	}

	anz := analyzer.New(logger)
	report := anz.SummaryReport(annotated, cfg.DC.Threshold)

	if rows, err := anz.ThresholdSensitivity(series, cfg.DC.Thresholds); err != nil {
		logger.Warnf("threshold sensitivity for %s failed: %v", symbol, err)
	} else {
		for _, r := range rows {
			logger.Infof("sensitivity %s: %d events, mean period %.1f days",
				r.ThresholdPct, r.TotalEvents, r.MeanEventPeriod)
		}
	}

	if clusters, err := anz.EventClustering(annotated, cfg.DC.WindowDays); err != nil {
		logger.Warnf("event clustering for %s failed: %v", symbol, err)
	} else {
		highVol := 0
		for _, p := range clusters.Points {
			if p.HighVolatility {
				highVol++
			}
		}
		logger.Infof("clustering %s: %d high-volatility days (density >= %.2f over %d-day windows)",
			symbol, highVol, clusters.HighVolThreshold, cfg.DC.WindowDays)
	}

	reportPath, err := writeReport(cfg.Output.ResultsDir, symbol, runID, report)
	if err != nil {
		return err
	}
	logger.Infof("report for %s written to %s", symbol, reportPath)

	if cfg.Backtest.Enabled {
		if err := runBacktest(cfg, logger, symbol, series, annotated); err != nil {
			logger.Warnf("backtest for %s failed: %v", symbol, err)
		}
	}

	return states.RecordRun(runstate.RunRecord{
		RunID:      runID,
		Symbol:     symbol,
		Threshold:  cfg.DC.Threshold,
		Rows:       annotated.Len(),
		Events:     len(annotated.Events()),
		ReportPath: reportPath,
	})
}

func runBacktest(cfg *config.Config, logger *logrus.Logger, symbol string,
	series model.PriceSeries, annotated model.AnnotatedSeries) error {

	signals := backtest.GenerateSignals(annotated, false, logger)
	rows, err := backtest.Run(signals, cfg.Backtest.InitialCapital, cfg.Backtest.TransactionCost, logger)
	if err != nil {
		return err
	}
	metrics, err := backtest.Metrics(rows, cfg.Backtest.RiskFreeRate, logger)
	if err != nil {
		return err
	}

	hold, err := backtest.RunBuyAndHold(series, cfg.Backtest.InitialCapital, cfg.Backtest.TransactionCost, logger)
	if err != nil {
		return err
	}
	holdMetrics, err := backtest.Metrics(hold, cfg.Backtest.RiskFreeRate, logger)
	if err != nil {
		return err
	}

	logger.Infof("backtest %s: DC strategy %.2f%% total (%d trades, sharpe %.2f) vs buy & hold %.2f%%",
		symbol, metrics.TotalReturn*100, metrics.Trades, metrics.SharpeRatio, holdMetrics.TotalReturn*100)
	return nil
}

func writeReport(dir, symbol, runID, report string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_dc_report_%s.txt", symbol, runID))
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return "", err
	}
	return path, nil
}
