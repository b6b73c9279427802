package indicators

// SMA represents the Simple Moving Average technical indicator
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator
func NewSMA(period int) *SMA {
	return &SMA{
		period: period,
	}
}

// Calculate returns the SMA series. Entries before period-1 are undefined.
func (s *SMA) Calculate(values []float64) Series {
	result := newUndefinedSeries(len(values))
	if s.period <= 0 || len(values) < s.period {
		return result
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= s.period {
			sum -= values[i-s.period]
		}
		if i >= s.period-1 {
			result[i] = Defined(sum / float64(s.period))
		}
	}

	return result
}

// GetName returns the indicator name
func (s *SMA) GetName() string {
	return "SMA"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (s *SMA) GetRequiredPeriods() int {
	return s.period
}
