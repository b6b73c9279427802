package recorder

import (
	"context"
	"time"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"
)

// SignalRecord is one stored signal.
type SignalRecord struct {
	ID           int64
	RecordedAt   time.Time
	Symbol       string
	Time         string // label of the record the signal was computed at
	Type         strategy.SignalType
	Confidence   int
	Price        float64
	BullishVotes int
	BearishVotes int
	Reasons      []string
}

// Recorder persists the history of produced signals.
type Recorder interface {
	RecordSignal(ctx context.Context, symbol string, signal strategy.TradingSignal) error
	Close() error
}
