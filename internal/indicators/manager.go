package indicators

import (
	"fmt"

	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

// Config holds the indicator periods used by the aggregator
type Config struct {
	SMAPeriod  int `yaml:"sma" json:"sma"`
	EMAPeriod  int `yaml:"ema" json:"ema"`
	RSIPeriod  int `yaml:"rsi" json:"rsi"`
	MACDFast   int `yaml:"macd_fast" json:"macd_fast"`
	MACDSlow   int `yaml:"macd_slow" json:"macd_slow"`
	MACDSignal int `yaml:"macd_signal" json:"macd_signal"`
}

// DefaultConfig returns the standard periods: SMA 20, EMA 20, RSI 14, MACD 12/26/9
func DefaultConfig() Config {
	return Config{
		SMAPeriod:  20,
		EMAPeriod:  20,
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
	}
}

// Validate checks that every period is positive and the MACD fast period is
// shorter than the slow one
func (c Config) Validate() error {
	periods := []struct {
		name  string
		value int
	}{
		{"sma", c.SMAPeriod},
		{"ema", c.EMAPeriod},
		{"rsi", c.RSIPeriod},
		{"macd_fast", c.MACDFast},
		{"macd_slow", c.MACDSlow},
		{"macd_signal", c.MACDSignal},
	}
	for _, p := range periods {
		if p.value <= 0 {
			return apperrors.NewConfigurationError("indicators", "validate",
				fmt.Sprintf("%s period must be positive, got %d", p.name, p.value))
		}
	}
	if c.MACDFast >= c.MACDSlow {
		return apperrors.NewConfigurationError("indicators", "validate",
			fmt.Sprintf("macd_fast (%d) must be less than macd_slow (%d)", c.MACDFast, c.MACDSlow))
	}
	return nil
}

// Result bundles every indicator series computed over one input sequence
type Result struct {
	SMA  Series     `json:"sma"`
	EMA  Series     `json:"ema"`
	RSI  Series     `json:"rsi"`
	MACD MACDResult `json:"macd"`
}

// Len returns the length of the input the result was computed over
func (r Result) Len() int {
	return len(r.SMA)
}

// CalculateAll runs SMA, EMA, RSI and MACD over the close prices of data
func CalculateAll(data []types.OHLC, cfg Config) Result {
	closes := types.Closes(data)

	return Result{
		SMA:  NewSMA(cfg.SMAPeriod).Calculate(closes),
		EMA:  NewEMA(cfg.EMAPeriod).Calculate(closes),
		RSI:  NewRSI(cfg.RSIPeriod).Calculate(closes),
		MACD: NewMACD(cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal).Calculate(closes),
	}
}

// Aggregator computes the full indicator bundle with a fixed configuration
type Aggregator struct {
	config Config
}

// NewAggregator validates cfg and returns an aggregator using it
func NewAggregator(cfg Config) (*Aggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Aggregator{config: cfg}, nil
}

// Calculate recomputes every indicator over data from scratch
func (a *Aggregator) Calculate(data []types.OHLC) Result {
	return CalculateAll(data, a.config)
}

// Config returns the periods in use
func (a *Aggregator) Config() Config {
	return a.config
}

// RequiredPeriods returns the record count after which every indicator and
// the previous histogram entry are defined at the last index
func (a *Aggregator) RequiredPeriods() int {
	required := []SeriesIndicator{
		NewSMA(a.config.SMAPeriod),
		NewEMA(a.config.EMAPeriod),
		NewRSI(a.config.RSIPeriod),
	}
	max := NewMACD(a.config.MACDFast, a.config.MACDSlow, a.config.MACDSignal).GetRequiredPeriods() + 1
	for _, ind := range required {
		if p := ind.GetRequiredPeriods(); p > max {
			max = p
		}
	}
	return max
}
