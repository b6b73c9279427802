package config

import (
	"fmt"
	"os"
	"strings"

	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/scheduler"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/reporting"
	"gopkg.in/yaml.v3"
)

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing or empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, apperrors.WrapError(err, apperrors.ErrorCategoryConfiguration, "config", "read")
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, apperrors.WrapError(fmt.Errorf("parse config %s: %w", path, err),
					apperrors.ErrorCategoryConfiguration, "config", "parse")
			}
		}
	}

	cfg.applyEnv()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv applies environment variable overrides
func (c *Config) applyEnv() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			var n int
			if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
				*dst = n
			}
		}
	}

	setString("ANALYZER_SOURCE", &c.Data.Source)
	setString("ANALYZER_DATA_FILE", &c.Data.File)
	setString("ANALYZER_DATA_ROOT", &c.Data.Root)
	setString("ANALYZER_SYMBOL", &c.Data.Symbol)
	setString("ANALYZER_CATEGORY", &c.Data.Category)
	setString("ANALYZER_INTERVAL", &c.Data.Interval)
	setInt("ANALYZER_LIMIT", &c.Data.Limit)

	setInt("ANALYZER_SMA_PERIOD", &c.Indicators.SMAPeriod)
	setInt("ANALYZER_EMA_PERIOD", &c.Indicators.EMAPeriod)
	setInt("ANALYZER_RSI_PERIOD", &c.Indicators.RSIPeriod)
	setInt("ANALYZER_MACD_FAST", &c.Indicators.MACDFast)
	setInt("ANALYZER_MACD_SLOW", &c.Indicators.MACDSlow)
	setInt("ANALYZER_MACD_SIGNAL", &c.Indicators.MACDSignal)

	setString("ANALYZER_OUTPUT_DIR", &c.Output.Dir)
	if v := os.Getenv("ANALYZER_FORMATS"); v != "" {
		c.Output.Formats = strings.Split(v, ",")
	}

	setString("ANALYZER_STATE_FILE", &c.State.File)
	setString("ANALYZER_SQLITE_PATH", &c.Recorder.SQLitePath)
	setString("ANALYZER_METRICS_ADDR", &c.Monitoring.MetricsAddr)
	setString("ANALYZER_SCHEDULE", &c.Schedule.Cron)
	setString("ANALYZER_LOG_DIR", &c.Logging.Dir)

	setString("TELEGRAM_BOT_TOKEN", &c.Notify.TelegramToken)
	setString("TELEGRAM_CHAT_ID", &c.Notify.TelegramChatID)

	setString("BYBIT_API_KEY", &c.Exchange.APIKey)
	setString("BYBIT_API_SECRET", &c.Exchange.APISecret)
	if v := os.Getenv("BYBIT_TESTNET"); v != "" {
		c.Exchange.Testnet = strings.EqualFold(v, "true") || v == "1"
	}
}

// setDefaults fills zero values. Negative periods are kept so that
// validation can reject them.
func (c *Config) setDefaults() {
	def := indicators.DefaultConfig()
	if c.Indicators.SMAPeriod == 0 {
		c.Indicators.SMAPeriod = def.SMAPeriod
	}
	if c.Indicators.EMAPeriod == 0 {
		c.Indicators.EMAPeriod = def.EMAPeriod
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = def.RSIPeriod
	}
	if c.Indicators.MACDFast == 0 {
		c.Indicators.MACDFast = def.MACDFast
	}
	if c.Indicators.MACDSlow == 0 {
		c.Indicators.MACDSlow = def.MACDSlow
	}
	if c.Indicators.MACDSignal == 0 {
		c.Indicators.MACDSignal = def.MACDSignal
	}

	if c.Data.Source == "" {
		c.Data.Source = SourceCSV
	}
	c.Data.Source = strings.ToLower(strings.TrimSpace(c.Data.Source))
	if c.Data.Root == "" {
		c.Data.Root = "data"
	}
	if c.Data.Category == "" {
		c.Data.Category = "spot"
	}
	if c.Data.Interval == "" {
		c.Data.Interval = "1d"
	}
	if c.Data.Limit == 0 {
		c.Data.Limit = 200
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "results"
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{reporting.FormatConsole}
	}
}

// Validate checks that all fields are usable
func (c *Config) Validate() error {
	if err := c.Indicators.Validate(); err != nil {
		return err
	}

	switch c.Data.Source {
	case SourceCSV:
	case SourceBybit:
		if c.Data.Symbol == "" {
			return apperrors.NewConfigurationError("config", "validate", "data.symbol is required for the bybit source")
		}
	default:
		return apperrors.NewConfigurationError("config", "validate",
			fmt.Sprintf("data.source must be %q or %q, got %q", SourceCSV, SourceBybit, c.Data.Source))
	}

	if c.Data.Limit < 1 || c.Data.Limit > 1000 {
		return apperrors.NewConfigurationError("config", "validate",
			fmt.Sprintf("data.limit must be between 1 and 1000, got %d", c.Data.Limit))
	}

	formats, err := reporting.ParseFormats(strings.Join(c.Output.Formats, ","))
	if err != nil {
		return apperrors.NewConfigurationError("config", "validate", err.Error())
	}
	c.Output.Formats = formats

	if c.Schedule.Cron != "" {
		if err := scheduler.ValidateSpec(c.Schedule.Cron); err != nil {
			return err
		}
	}

	return nil
}
