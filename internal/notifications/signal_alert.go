package notifications

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"
)

// SignalAlerter sends an alert whenever the signal type of a symbol changes.
// The first signal seen for a symbol is always sent.
type SignalAlerter struct {
	notifier Notifier

	mu   sync.Mutex
	last map[string]strategy.SignalType
}

func NewSignalAlerter(notifier Notifier) *SignalAlerter {
	return &SignalAlerter{
		notifier: notifier,
		last:     make(map[string]strategy.SignalType),
	}
}

// Observe records signal and alerts on a change. It reports whether an alert
// was sent. A failed alert is retried on the next observation. Concurrent
// observations are serialized so one change produces one alert.
func (a *SignalAlerter) Observe(ctx context.Context, symbol string, signal strategy.TradingSignal) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if previous, seen := a.last[symbol]; seen && previous == signal.Type {
		return false, nil
	}

	if err := a.notifier.SendAlert(ctx, alertLevel(signal.Type), FormatSignal(symbol, signal)); err != nil {
		return false, err
	}

	a.last[symbol] = signal.Type
	return true, nil
}

func alertLevel(t strategy.SignalType) string {
	switch t {
	case strategy.SignalCall:
		return LevelSuccess
	case strategy.SignalPut:
		return LevelWarning
	default:
		return LevelInfo
	}
}

// FormatSignal renders a signal as alert text
func FormatSignal(symbol string, signal strategy.TradingSignal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: *%s* (%d%% confidence)\n", symbol, signal.Type, signal.Confidence)
	fmt.Fprintf(&b, "Price %.2f at %s\n", signal.Price, signal.Time)
	for _, reason := range signal.Reasons {
		fmt.Fprintf(&b, "• %s\n", reason)
	}
	return strings.TrimRight(b.String(), "\n")
}
