package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Symbols   []string `yaml:"symbols"`
	StartDate string   `yaml:"start_date"`
	EndDate   string   `yaml:"end_date"`
	// LookbackYears is used when start_date is empty.
	LookbackYears int `yaml:"lookback_years"`
	DC            struct {
		Threshold   float64   `yaml:"threshold"`
		Thresholds  []float64 `yaml:"thresholds"`
		WindowDays  int       `yaml:"window_days"`
		PriceColumn string    `yaml:"price_column"`
	} `yaml:"dc"`
	DataSource struct {
		BaseURL      string `yaml:"base_url"`
		APIKey       string `yaml:"api_key"`
		MinValidRows int    `yaml:"min_valid_rows"`
	} `yaml:"data_source"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"cache"`
	Output struct {
		ResultsDir string `yaml:"results_dir"`
		StateFile  string `yaml:"state_file"`
	} `yaml:"output"`
	Backtest struct {
		Enabled         bool    `yaml:"enabled"`
		InitialCapital  float64 `yaml:"initial_capital"`
		TransactionCost float64 `yaml:"transaction_cost"`
		RiskFreeRate    float64 `yaml:"risk_free_rate"`
	} `yaml:"backtest"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DCS_SYMBOL"); v != "" {
		cfg.Symbols = []string{v}
	}
	if v := os.Getenv("DCS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DCS_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("DCS_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DC.Threshold = f
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("DCS_WATCH_CRON"); v != "" {
		cfg.Schedule.WatchCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Defaults
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = []string{"SPX500"}
	}
	if cfg.LookbackYears == 0 {
		cfg.LookbackYears = 10
	}
	if cfg.DC.Threshold == 0 {
		cfg.DC.Threshold = 0.02
	}
	if len(cfg.DC.Thresholds) == 0 {
		cfg.DC.Thresholds = []float64{0.005, 0.01, 0.02, 0.03, 0.05}
	}
	if cfg.DC.WindowDays == 0 {
		cfg.DC.WindowDays = 30
	}
	if cfg.DC.PriceColumn == "" {
		cfg.DC.PriceColumn = "close"
	}
	if cfg.DataSource.MinValidRows == 0 {
		cfg.DataSource.MinValidRows = 2000
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = "data/dc_sentinel.db"
	}
	if cfg.Output.ResultsDir == "" {
		cfg.Output.ResultsDir = "results"
	}
	if cfg.Output.StateFile == "" {
		cfg.Output.StateFile = "data/run_state.json"
	}
	if cfg.Backtest.InitialCapital == 0 {
		cfg.Backtest.InitialCapital = 10000
	}
	if cfg.Backtest.TransactionCost == 0 {
		cfg.Backtest.TransactionCost = 0.001
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must not be empty")
	}
	if c.DC.Threshold <= 0 || c.DC.Threshold >= 1 {
		return fmt.Errorf("dc.threshold must be in (0, 1), got %v", c.DC.Threshold)
	}
	for _, t := range c.DC.Thresholds {
		if t <= 0 || t >= 1 {
			return fmt.Errorf("dc.thresholds entry %v must be in (0, 1)", t)
		}
	}
	if c.DC.WindowDays < 1 {
		return fmt.Errorf("dc.window_days must be at least 1")
	}
	if c.StartDate != "" {
		if _, err := time.Parse(dateLayout, c.StartDate); err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
	}
	if c.EndDate != "" {
		if _, err := time.Parse(dateLayout, c.EndDate); err != nil {
			return fmt.Errorf("end_date: %w", err)
		}
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if c.Backtest.TransactionCost < 0 || c.Backtest.TransactionCost >= 1 {
		return fmt.Errorf("backtest.transaction_cost must be in [0, 1)")
	}
	return nil
}

// DateRange resolves the analysis window: explicit dates when set, otherwise
// lookback_years back from today.
func (c *Config) DateRange() (time.Time, time.Time, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if c.EndDate != "" {
		t, err := time.Parse(dateLayout, c.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date: %w", err)
		}
		end = t
	}
	start := end.AddDate(-c.LookbackYears, 0, 0)
	if c.StartDate != "" {
		t, err := time.Parse(dateLayout, c.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date: %w", err)
		}
		start = t
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date %s must precede end_date %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return start, end, nil
}
