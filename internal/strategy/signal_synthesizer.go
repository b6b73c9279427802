package strategy

import (
	"fmt"
	"math"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0

	// CrossoverWeight is the vote count of a MACD crossover. Every other rule
	// casts one vote. The value has not been tuned or backtested.
	CrossoverWeight = 2
	DefaultWeight   = 1

	NeutralTieConfidence = 50
)

const (
	ReasonInsufficient = "insufficient indicators to generate a signal"
	ReasonConflicting  = "conflicting signals - wait for confirmation"
)

// SignalSynthesizer applies a fixed, ordered rule set to the indicator
// readings at the last index and tallies weighted votes
type SignalSynthesizer struct {
	macd *indicators.MACD
}

// NewSignalSynthesizer creates the rule-based synthesizer
func NewSignalSynthesizer() *SignalSynthesizer {
	return &SignalSynthesizer{
		macd: &indicators.MACD{},
	}
}

// GetName returns the strategy name
func (s *SignalSynthesizer) GetName() string {
	return "Indicator Vote"
}

// tally accumulates votes and reasons in rule order
type tally struct {
	bullish int
	bearish int
	reasons []string
}

func (t *tally) bull(weight int, format string, args ...interface{}) {
	t.bullish += weight
	t.reasons = append(t.reasons, fmt.Sprintf(format, args...))
}

func (t *tally) bear(weight int, format string, args ...interface{}) {
	t.bearish += weight
	t.reasons = append(t.reasons, fmt.Sprintf(format, args...))
}

// Generate evaluates the rules at the last index of data. It never fails:
// missing readings simply cast no vote.
func (s *SignalSynthesizer) Generate(data []types.OHLC, result indicators.Result) TradingSignal {
	last := len(data) - 1
	var current types.OHLC
	if last >= 0 {
		current = data[last]
	}

	t := &tally{reasons: make([]string, 0, 6)}

	s.rsiRule(t, result.RSI.At(last))
	s.macdRules(t, result.MACD, last)
	s.priceRule(t, "SMA", current.Close, result.SMA.At(last))
	s.priceRule(t, "EMA", current.Close, result.EMA.At(last))

	signal := resolve(t)
	signal.Price = current.Close
	signal.Time = current.Time
	return signal
}

// rsiRule votes on oversold/overbought readings
func (s *SignalSynthesizer) rsiRule(t *tally, rsi indicators.Value) {
	if !rsi.Valid {
		return
	}
	if rsi.Value < RSIOversold {
		t.bull(DefaultWeight, "RSI at %.2f (oversold)", rsi.Value)
	} else if rsi.Value > RSIOverbought {
		t.bear(DefaultWeight, "RSI at %.2f (overbought)", rsi.Value)
	}
}

// macdRules votes on crossovers and histogram momentum. Both need the
// current MACD and signal readings, and the previous histogram entry.
func (s *SignalSynthesizer) macdRules(t *tally, macd indicators.MACDResult, last int) {
	line := macd.MACD.At(last)
	signal := macd.Signal.At(last)
	if !line.Valid || !signal.Valid {
		return
	}

	hist := macd.Histogram.At(last)
	prevHist := macd.Histogram.At(last - 1)
	if !prevHist.Valid {
		return
	}

	if s.macd.ShouldBuy(line.Value, signal.Value, prevHist.Value, hist.Value) {
		t.bull(CrossoverWeight, "MACD crossed above signal line (bullish crossover)")
	} else if s.macd.ShouldSell(line.Value, signal.Value, prevHist.Value, hist.Value) {
		t.bear(CrossoverWeight, "MACD crossed below signal line (bearish crossover)")
	}

	if hist.Value > prevHist.Value && hist.Value > 0 {
		t.bull(DefaultWeight, "MACD histogram rising (positive momentum)")
	} else if hist.Value < prevHist.Value && hist.Value < 0 {
		t.bear(DefaultWeight, "MACD histogram falling (negative momentum)")
	}
}

// priceRule votes on the close relative to a moving average
func (s *SignalSynthesizer) priceRule(t *tally, name string, price float64, average indicators.Value) {
	if !average.Valid {
		return
	}
	if price > average.Value {
		t.bull(DefaultWeight, "Price above %s (%.2f)", name, average.Value)
	} else if price < average.Value {
		t.bear(DefaultWeight, "Price below %s (%.2f)", name, average.Value)
	}
}

// resolve converts the tally into a verdict and confidence
func resolve(t *tally) TradingSignal {
	signal := TradingSignal{
		Type:         SignalNeutral,
		BullishVotes: t.bullish,
		BearishVotes: t.bearish,
	}

	total := t.bullish + t.bearish
	switch {
	case total == 0:
		signal.Confidence = 0
		t.reasons = append(t.reasons, ReasonInsufficient)
	case t.bullish > t.bearish:
		signal.Type = SignalCall
		signal.Confidence = confidence(t.bullish, total)
	case t.bearish > t.bullish:
		signal.Type = SignalPut
		signal.Confidence = confidence(t.bearish, total)
	default:
		signal.Confidence = NeutralTieConfidence
		t.reasons = append(t.reasons, ReasonConflicting)
	}

	signal.Reasons = t.reasons
	return signal
}

func confidence(votes, total int) int {
	c := int(math.Round(100 * float64(votes) / float64(total)))
	if c > 100 {
		return 100
	}
	if c < 0 {
		return 0
	}
	return c
}
