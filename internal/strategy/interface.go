package strategy

import (
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

// Strategy turns a price history and its indicators into a trading signal
type Strategy interface {
	// Generate evaluates the rules at the last record of data
	Generate(data []types.OHLC, result indicators.Result) TradingSignal

	// GetName returns the name of the strategy
	GetName() string
}

// SignalType represents the direction of a trading signal
type SignalType string

const (
	SignalCall    SignalType = "CALL"
	SignalPut     SignalType = "PUT"
	SignalNeutral SignalType = "NEUTRAL"
)

func (s SignalType) String() string {
	return string(s)
}

// TradingSignal is the verdict produced for the last record of a sequence
type TradingSignal struct {
	Type       SignalType `json:"type"`
	Confidence int        `json:"confidence"` // 0-100
	Reasons    []string   `json:"reasons"`
	Price      float64    `json:"price"`
	Time       string     `json:"time"`

	BullishVotes int `json:"bullish_votes"`
	BearishVotes int `json:"bearish_votes"`
}
