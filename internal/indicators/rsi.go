package indicators

import (
	"math"
)

// RSI calculates the Relative Strength Index
type RSI struct {
	period int
}

// NewRSI creates a new RSI instance with the given period
func NewRSI(period int) *RSI {
	return &RSI{
		period: period,
	}
}

// Calculate returns the RSI series. Entry i (i >= period) uses the period
// price changes ending at values[i]; earlier entries are undefined. A window
// without losses reads exactly 100.
func (r *RSI) Calculate(values []float64) Series {
	result := newUndefinedSeries(len(values))
	if r.period <= 0 || len(values) <= r.period {
		return result
	}

	// changes[k] is the move into values[k+1]
	changes := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		changes[i-1] = values[i] - values[i-1]
	}

	var gainSum, lossSum float64
	lossCount := 0
	add := func(change float64, sign float64) {
		if change > 0 {
			gainSum += sign * change
		} else if change < 0 {
			lossSum += sign * math.Abs(change)
			lossCount += int(sign)
		}
	}

	for k := 0; k < r.period; k++ {
		add(changes[k], 1)
	}

	for i := r.period; i < len(values); i++ {
		if i > r.period {
			add(changes[i-1], 1)
			add(changes[i-r.period-1], -1)
		}

		if lossCount == 0 {
			result[i] = Defined(100)
			continue
		}

		avgGain := math.Max(gainSum, 0) / float64(r.period)
		avgLoss := lossSum / float64(r.period)
		rs := avgGain / avgLoss
		result[i] = Defined(100 - (100 / (1 + rs)))
	}

	return result
}

// GetName returns the indicator name
func (r *RSI) GetName() string {
	return "RSI"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (r *RSI) GetRequiredPeriods() int {
	return r.period + 1
}
