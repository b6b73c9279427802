package indicators

// MACDResult holds the three MACD series, all aligned with the input.
type MACDResult struct {
	MACD      Series `json:"macd"`
	Signal    Series `json:"signal"`
	Histogram Series `json:"histogram"`
}

type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD instance with specified fast, slow, and signal periods
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

// Calculate computes the MACD line, signal line, and histogram.
//
// The signal line is the EMA of the defined MACD entries; its first defined
// index is FirstDefined(MACD) + signalPeriod - 1. With fewer defined MACD
// entries than signalPeriod the signal line and histogram stay undefined.
func (m *MACD) Calculate(values []float64) MACDResult {
	fastEMA := NewEMA(m.fastPeriod).Calculate(values)
	slowEMA := NewEMA(m.slowPeriod).Calculate(values)

	macdLine := newUndefinedSeries(len(values))
	for i := range values {
		if fastEMA[i].Valid && slowEMA[i].Valid {
			macdLine[i] = Defined(fastEMA[i].Value - slowEMA[i].Value)
		}
	}

	signalLine := NewEMA(m.signalPeriod).CalculateSeries(macdLine)

	histogram := newUndefinedSeries(len(values))
	for i := range values {
		if macdLine[i].Valid && signalLine[i].Valid {
			histogram[i] = Defined(macdLine[i].Value - signalLine[i].Value)
		}
	}

	return MACDResult{
		MACD:      macdLine,
		Signal:    signalLine,
		Histogram: histogram,
	}
}

// ShouldBuy returns true on a bullish crossover:
// when the MACD line crosses the signal line from below
func (m *MACD) ShouldBuy(macdLine, signalLine, prevHistogram, histogram float64) bool {
	return macdLine > signalLine && prevHistogram < 0 && histogram > 0
}

// ShouldSell returns true on a bearish crossover
func (m *MACD) ShouldSell(macdLine, signalLine, prevHistogram, histogram float64) bool {
	return macdLine < signalLine && prevHistogram > 0 && histogram < 0
}

// GetName returns the indicator name
func (m *MACD) GetName() string {
	return "MACD"
}

// GetRequiredPeriods returns the number of records before the histogram is defined
func (m *MACD) GetRequiredPeriods() int {
	return m.slowPeriod + m.signalPeriod - 1
}
