package config

import (
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
)

// Config holds all application configuration.
type Config struct {
	Indicators indicators.Config `yaml:"indicators"`
	Data       DataConfig        `yaml:"data"`
	Output     OutputConfig      `yaml:"output"`
	State      StateConfig       `yaml:"state"`
	Recorder   RecorderConfig    `yaml:"recorder"`
	Monitoring MonitoringConfig  `yaml:"monitoring"`
	Schedule   ScheduleConfig    `yaml:"schedule"`
	Exchange   ExchangeConfig    `yaml:"exchange"`
	Logging    LoggingConfig     `yaml:"logging"`
	Notify     NotifyConfig      `yaml:"notify"`
}

// DataConfig selects where price history comes from
type DataConfig struct {
	Source   string `yaml:"source"`   // "csv" or "bybit"
	File     string `yaml:"file"`     // CSV path when source is csv
	Root     string `yaml:"root"`     // Data root searched when file is empty
	Symbol   string `yaml:"symbol"`   // Trading pair symbol (e.g., BTCUSDT)
	Category string `yaml:"category"` // Bybit category: spot, linear, inverse
	Interval string `yaml:"interval"` // Candle interval (5m, 1h, 1d, ...)
	Limit    int    `yaml:"limit"`    // Candles fetched from the exchange
}

// OutputConfig controls report generation
type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

// StateConfig controls the saved analysis used for reload and reset
type StateConfig struct {
	File string `yaml:"file"`
}

// RecorderConfig enables the SQLite signal history when SQLitePath is set
type RecorderConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// MonitoringConfig exposes /metrics and /health when MetricsAddr is set
type MonitoringConfig struct {
	MetricsAddr string `yaml:"metrics_addr"`
}

// ScheduleConfig re-runs the analysis on a cron expression
type ScheduleConfig struct {
	Cron string `yaml:"cron"`
}

// ExchangeConfig holds exchange credentials. Kline data is public, so the
// keys are optional.
type ExchangeConfig struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Testnet   bool   `yaml:"testnet"`
}

// LoggingConfig enables the per-session file log when Dir is set
type LoggingConfig struct {
	Dir string `yaml:"dir"`
}

// NotifyConfig sends Telegram alerts on signal changes when both fields are set
type NotifyConfig struct {
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID string `yaml:"telegram_chat_id"`
}

// Enabled reports whether alerts can be delivered
func (n NotifyConfig) Enabled() bool {
	return n.TelegramToken != "" && n.TelegramChatID != ""
}

// Data sources
const (
	SourceCSV   = "csv"
	SourceBybit = "bybit"
)

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}
