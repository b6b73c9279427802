package recorder

import (
	"context"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSignal(_ context.Context, _ string, _ strategy.TradingSignal) error {
	return nil
}
func (n *NoopRecorder) Close() error { return nil }
