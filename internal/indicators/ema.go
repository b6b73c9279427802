package indicators

// EMA represents the Exponential Moving Average technical indicator
type EMA struct {
	period int
	alpha  float64
}

// NewEMA creates a new EMA indicator
func NewEMA(period int) *EMA {
	return &EMA{
		period: period,
		alpha:  2.0 / float64(period+1), // Standard EMA alpha calculation
	}
}

// Calculate returns the EMA series over a fully defined price sequence.
// The seed at period-1 is the SMA of the first period values.
func (e *EMA) Calculate(values []float64) Series {
	return e.CalculateSeries(seriesFromValues(values))
}

// CalculateSeries applies the EMA recurrence to the defined entries of
// input, keeping the original index space. The seed is the mean of the
// first period defined entries and lands on the index of the last of them.
// Undefined entries after the seed stay undefined and do not advance the
// recurrence.
func (e *EMA) CalculateSeries(input Series) Series {
	result := newUndefinedSeries(len(input))
	if e.period <= 0 {
		return result
	}

	seen := 0
	sum := 0.0
	var ema float64
	for i, v := range input {
		if !v.Valid {
			continue
		}
		seen++

		if seen < e.period {
			sum += v.Value
			continue
		}

		if seen == e.period {
			sum += v.Value
			ema = sum / float64(e.period)
		} else {
			ema = (v.Value-ema)*e.alpha + ema
		}
		result[i] = Defined(ema)
	}

	return result
}

// GetName returns the indicator name
func (e *EMA) GetName() string {
	return "EMA"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (e *EMA) GetRequiredPeriods() int {
	return e.period
}

// Multiplier returns the smoothing factor 2/(period+1)
func (e *EMA) Multiplier() float64 {
	return e.alpha
}
